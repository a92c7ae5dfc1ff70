package notif

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"courier/internal/common"
	"courier/internal/config"
)

const deliveryTimeout = 15 * time.Second

// Dispatcher decouples email delivery from the request path: Enqueue never
// blocks and never returns an error, a fixed worker pool drains the channel,
// and delivery failures are logged and swallowed.
type Dispatcher struct {
	mailer  common.Mailer
	events  chan common.NotificationEvent
	enabled bool
	ctx     context.Context
	cancel  context.CancelFunc
	wg      sync.WaitGroup
	logger  *zap.SugaredLogger
}

func NewDispatcher(cfg *config.Config, mailer common.Mailer, logger *zap.SugaredLogger) *Dispatcher {
	ctx, cancel := context.WithCancel(context.Background())

	d := &Dispatcher{
		mailer:  mailer,
		events:  make(chan common.NotificationEvent, cfg.Notification.ChannelBufferSize),
		enabled: cfg.Notification.Enabled,
		ctx:     ctx,
		cancel:  cancel,
		logger:  logger,
	}

	for i := 0; i < cfg.Notification.Workers; i++ {
		d.wg.Add(1)
		go d.processEvents()
	}

	return d
}

// Enqueue hands an event to the workers. A full channel drops the event;
// losing a notification is preferred over stalling a send.
func (d *Dispatcher) Enqueue(event common.NotificationEvent) {
	if !d.enabled {
		return
	}

	select {
	case d.events <- event:
	case <-d.ctx.Done():
	default:
		d.logger.Warnw("notification channel full, dropping event", "type", event.Type)
	}
}

func (d *Dispatcher) processEvents() {
	defer d.wg.Done()

	for {
		select {
		case event := <-d.events:
			d.deliver(event)
		case <-d.ctx.Done():
			return
		}
	}
}

func (d *Dispatcher) deliver(event common.NotificationEvent) {
	ctx, cancel := context.WithTimeout(context.Background(), deliveryTimeout)
	defer cancel()

	var err error
	switch event.Type {
	case common.NewMessageEvent:
		err = d.mailer.SendNewMessageNotification(ctx, event.ReceiverEmail, event.ReceiverName, event.SenderName, event.Preview)
	case common.WelcomeEvent:
		err = d.mailer.SendWelcomeEmail(ctx, event.ReceiverEmail, event.ReceiverName)
	case common.UnreadDigestEvent:
		err = d.mailer.SendUnreadDigest(ctx, event.ReceiverEmail, event.ReceiverName, event.UnreadCount, event.SenderNames)
	default:
		d.logger.Warnw("unknown notification event type", "type", event.Type)
		return
	}

	if err != nil {
		d.logger.Warnw("notification delivery failed",
			"type", event.Type,
			"receiver", event.ReceiverEmail,
			"error", err,
		)
	}
}

// Shutdown stops the workers. Buffered events that no worker picked up
// before cancellation are discarded.
func (d *Dispatcher) Shutdown() {
	d.cancel()
	d.wg.Wait()
	d.logger.Info("notification dispatcher stopped")
}
