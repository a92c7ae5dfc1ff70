package handler

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/gorilla/mux"
	"github.com/stretchr/testify/require"

	"courier/internal/chat/service"
	"courier/internal/common"
	"courier/internal/dbmysql"
	"courier/pkg/apperr"
)

// newTestRouter mounts the handler behind the real route patterns with a
// middleware that injects the given identity, so mux path variables resolve
// exactly as in production.
func newTestRouter(h *ChatHandler, userID uint) *mux.Router {
	router := mux.NewRouter()
	router.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := common.ContextWithUser(r.Context(), userID, "tester")
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	})

	router.HandleFunc("/messages", h.SendMessage).Methods("POST")
	router.HandleFunc("/messages", h.ListMessages).Methods("GET")
	router.HandleFunc("/messages/{messageID}", h.GetMessage).Methods("GET")
	router.HandleFunc("/messages/{messageID}/read", h.MarkMessageRead).Methods("PATCH")
	router.HandleFunc("/conversations", h.ListConversations).Methods("GET")
	router.HandleFunc("/conversations/{conversationID}", h.GetConversation).Methods("GET")
	router.HandleFunc("/conversations/{conversationID}/messages", h.ListConversationMessages).Methods("GET")
	router.HandleFunc("/notifications/digest", h.SendUnreadDigest).Methods("POST")
	return router
}

func doRequest(router *mux.Router, method, target string, body interface{}) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, target, &buf)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestChatHandler_SendMessage(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockSvc := service.NewMockChatService(ctrl)
	router := newTestRouter(NewChatHandler(mockSvc), 1)

	tests := []struct {
		name       string
		body       interface{}
		setup      func()
		wantStatus int
	}{
		{
			name: "created",
			body: map[string]interface{}{"receiver_id": 2, "content": "hello"},
			setup: func() {
				mockSvc.EXPECT().SendMessage(gomock.Any(), uint(1), uint(2), "hello").
					Return(&dbmysql.Message{ID: 10, SenderID: 1, ReceiverID: 2, Content: "hello"}, nil)
			},
			wantStatus: http.StatusCreated,
		},
		{
			name:       "missing receiver rejected",
			body:       map[string]interface{}{"content": "hello"},
			setup:      func() {},
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "empty content rejected",
			body:       map[string]interface{}{"receiver_id": 2, "content": ""},
			setup:      func() {},
			wantStatus: http.StatusBadRequest,
		},
		{
			name: "receiver not found",
			body: map[string]interface{}{"receiver_id": 99, "content": "hello"},
			setup: func() {
				mockSvc.EXPECT().SendMessage(gomock.Any(), uint(1), uint(99), "hello").
					Return(nil, apperr.NotFound("receiver not found"))
			},
			wantStatus: http.StatusNotFound,
		},
		{
			name: "self send",
			body: map[string]interface{}{"receiver_id": 1, "content": "hello"},
			setup: func() {
				mockSvc.EXPECT().SendMessage(gomock.Any(), uint(1), uint(1), "hello").
					Return(nil, apperr.InvalidArg("cannot send a message to yourself"))
			},
			wantStatus: http.StatusBadRequest,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			tc.setup()
			rec := doRequest(router, http.MethodPost, "/messages", tc.body)
			require.Equal(t, tc.wantStatus, rec.Code)
		})
	}
}

func TestChatHandler_ListMessages(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockSvc := service.NewMockChatService(ctrl)
	router := newTestRouter(NewChatHandler(mockSvc), 1)

	t.Run("defaults applied", func(t *testing.T) {
		mockSvc.EXPECT().ListMessages(gomock.Any(), uint(1), 0, 100, gomock.Nil()).
			Return([]*dbmysql.Message{{ID: 2}, {ID: 1}}, nil)

		rec := doRequest(router, http.MethodGet, "/messages", nil)
		require.Equal(t, http.StatusOK, rec.Code)

		var msgs []dbmysql.Message
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &msgs))
		require.Len(t, msgs, 2)
	})

	t.Run("explicit pagination and filter", func(t *testing.T) {
		convID := uint(7)
		mockSvc.EXPECT().ListMessages(gomock.Any(), uint(1), 5, 10, &convID).
			Return([]*dbmysql.Message{}, nil)

		rec := doRequest(router, http.MethodGet, "/messages?skip=5&limit=10&conversation_id=7", nil)
		require.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("non-integer skip", func(t *testing.T) {
		rec := doRequest(router, http.MethodGet, "/messages?skip=abc", nil)
		require.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("out-of-range limit surfaces from the service", func(t *testing.T) {
		mockSvc.EXPECT().ListMessages(gomock.Any(), uint(1), 0, 500, gomock.Nil()).
			Return(nil, apperr.InvalidArg("limit must be between 1 and 100"))

		rec := doRequest(router, http.MethodGet, "/messages?limit=500", nil)
		require.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("bad conversation filter", func(t *testing.T) {
		rec := doRequest(router, http.MethodGet, "/messages?conversation_id=abc", nil)
		require.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestChatHandler_GetMessage(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockSvc := service.NewMockChatService(ctrl)
	router := newTestRouter(NewChatHandler(mockSvc), 1)

	t.Run("found", func(t *testing.T) {
		mockSvc.EXPECT().GetMessage(gomock.Any(), uint(10), uint(1)).
			Return(&dbmysql.Message{ID: 10}, nil)

		rec := doRequest(router, http.MethodGet, "/messages/10", nil)
		require.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("not found", func(t *testing.T) {
		mockSvc.EXPECT().GetMessage(gomock.Any(), uint(10), uint(1)).
			Return(nil, apperr.NotFound("message not found"))

		rec := doRequest(router, http.MethodGet, "/messages/10", nil)
		require.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("non-numeric id", func(t *testing.T) {
		rec := doRequest(router, http.MethodGet, "/messages/abc", nil)
		require.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("zero id", func(t *testing.T) {
		rec := doRequest(router, http.MethodGet, "/messages/0", nil)
		require.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestChatHandler_MarkMessageRead(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockSvc := service.NewMockChatService(ctrl)
	router := newTestRouter(NewChatHandler(mockSvc), 2)

	t.Run("marked", func(t *testing.T) {
		mockSvc.EXPECT().MarkMessageRead(gomock.Any(), uint(10), uint(2)).
			Return(&dbmysql.Message{ID: 10, ReceiverID: 2, IsRead: true}, nil)

		rec := doRequest(router, http.MethodPatch, "/messages/10/read", nil)
		require.Equal(t, http.StatusOK, rec.Code)

		var msg dbmysql.Message
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &msg))
		require.True(t, msg.IsRead)
	})

	t.Run("not the receiver", func(t *testing.T) {
		mockSvc.EXPECT().MarkMessageRead(gomock.Any(), uint(10), uint(2)).
			Return(nil, apperr.NotFound("message not found"))

		rec := doRequest(router, http.MethodPatch, "/messages/10/read", nil)
		require.Equal(t, http.StatusNotFound, rec.Code)
	})
}

func TestChatHandler_Conversations(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockSvc := service.NewMockChatService(ctrl)
	router := newTestRouter(NewChatHandler(mockSvc), 1)

	t.Run("list", func(t *testing.T) {
		mockSvc.EXPECT().ListConversations(gomock.Any(), uint(1), 0, 100).
			Return([]service.ConversationView{{ID: 7}}, nil)

		rec := doRequest(router, http.MethodGet, "/conversations", nil)
		require.Equal(t, http.StatusOK, rec.Code)

		var views []service.ConversationView
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &views))
		require.Len(t, views, 1)
	})

	t.Run("get", func(t *testing.T) {
		mockSvc.EXPECT().GetConversation(gomock.Any(), uint(7), uint(1)).
			Return(&dbmysql.Conversation{ID: 7, LowUserID: 1, HighUserID: 2}, nil)

		rec := doRequest(router, http.MethodGet, "/conversations/7", nil)
		require.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("get hidden", func(t *testing.T) {
		mockSvc.EXPECT().GetConversation(gomock.Any(), uint(7), uint(1)).
			Return(nil, apperr.NotFound("conversation not found"))

		rec := doRequest(router, http.MethodGet, "/conversations/7", nil)
		require.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("thread messages", func(t *testing.T) {
		mockSvc.EXPECT().ListConversationMessages(gomock.Any(), uint(7), uint(1), 0, 100).
			Return([]*dbmysql.Message{{ID: 1}, {ID: 2}}, nil)

		rec := doRequest(router, http.MethodGet, "/conversations/7/messages", nil)
		require.Equal(t, http.StatusOK, rec.Code)
	})
}

func TestChatHandler_SendUnreadDigest(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockSvc := service.NewMockChatService(ctrl)
	router := newTestRouter(NewChatHandler(mockSvc), 1)

	mockSvc.EXPECT().SendUnreadDigest(gomock.Any(), uint(1)).Return(nil)

	rec := doRequest(router, http.MethodPost, "/notifications/digest", nil)
	require.Equal(t, http.StatusAccepted, rec.Code)

	var resp map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Equal(t, "digest queued", resp["status"])
}

func TestChatHandler_Unauthenticated(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	h := NewChatHandler(service.NewMockChatService(ctrl))

	// No identity middleware: every endpoint must refuse.
	req := httptest.NewRequest(http.MethodGet, "/messages", nil)
	rec := httptest.NewRecorder()
	h.ListMessages(rec, req)
	require.Equal(t, http.StatusUnauthorized, rec.Code)
}
