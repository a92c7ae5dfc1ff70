package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/gorilla/mux"

	"courier/internal/chat/service"
	"courier/internal/common"
	"courier/pkg/apperr"
)

// ChatHandler is the HTTP adapter over the chat service: it translates the
// verified identity and parsed request into service calls and maps error
// kinds to status codes.
type ChatHandler struct {
	service  service.ChatService
	validate *validator.Validate
}

func NewChatHandler(svc service.ChatService) *ChatHandler {
	return &ChatHandler{
		service:  svc,
		validate: validator.New(),
	}
}

type sendMessageRequest struct {
	ReceiverID uint   `json:"receiver_id" validate:"required"`
	Content    string `json:"content" validate:"required,max=5000"`
}

func (h *ChatHandler) SendMessage(w http.ResponseWriter, r *http.Request) {
	userID, ok := common.UserIDFromContext(r.Context())
	if !ok {
		common.WriteError(w, apperr.Unauthenticated("user not authenticated"))
		return
	}

	var req sendMessageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		common.WriteError(w, apperr.InvalidArg("invalid request body"))
		return
	}
	if err := h.validate.Struct(req); err != nil {
		common.WriteError(w, apperr.InvalidArg(err.Error()))
		return
	}

	msg, err := h.service.SendMessage(r.Context(), userID, req.ReceiverID, req.Content)
	if err != nil {
		common.WriteError(w, err)
		return
	}

	common.WriteJSON(w, http.StatusCreated, msg)
}

func (h *ChatHandler) ListMessages(w http.ResponseWriter, r *http.Request) {
	userID, ok := common.UserIDFromContext(r.Context())
	if !ok {
		common.WriteError(w, apperr.Unauthenticated("user not authenticated"))
		return
	}

	skip, limit, err := parsePagination(r)
	if err != nil {
		common.WriteError(w, err)
		return
	}

	var conversationID *uint
	if raw := r.URL.Query().Get("conversation_id"); raw != "" {
		id, err := strconv.ParseUint(raw, 10, 32)
		if err != nil {
			common.WriteError(w, apperr.InvalidArg("conversation_id must be a positive integer"))
			return
		}
		cid := uint(id)
		conversationID = &cid
	}

	msgs, err := h.service.ListMessages(r.Context(), userID, skip, limit, conversationID)
	if err != nil {
		common.WriteError(w, err)
		return
	}

	common.WriteJSON(w, http.StatusOK, msgs)
}

func (h *ChatHandler) GetMessage(w http.ResponseWriter, r *http.Request) {
	userID, ok := common.UserIDFromContext(r.Context())
	if !ok {
		common.WriteError(w, apperr.Unauthenticated("user not authenticated"))
		return
	}

	messageID, err := pathID(r, "messageID")
	if err != nil {
		common.WriteError(w, err)
		return
	}

	msg, err := h.service.GetMessage(r.Context(), messageID, userID)
	if err != nil {
		common.WriteError(w, err)
		return
	}

	common.WriteJSON(w, http.StatusOK, msg)
}

func (h *ChatHandler) MarkMessageRead(w http.ResponseWriter, r *http.Request) {
	userID, ok := common.UserIDFromContext(r.Context())
	if !ok {
		common.WriteError(w, apperr.Unauthenticated("user not authenticated"))
		return
	}

	messageID, err := pathID(r, "messageID")
	if err != nil {
		common.WriteError(w, err)
		return
	}

	msg, err := h.service.MarkMessageRead(r.Context(), messageID, userID)
	if err != nil {
		common.WriteError(w, err)
		return
	}

	common.WriteJSON(w, http.StatusOK, msg)
}

func (h *ChatHandler) ListConversations(w http.ResponseWriter, r *http.Request) {
	userID, ok := common.UserIDFromContext(r.Context())
	if !ok {
		common.WriteError(w, apperr.Unauthenticated("user not authenticated"))
		return
	}

	skip, limit, err := parsePagination(r)
	if err != nil {
		common.WriteError(w, err)
		return
	}

	views, err := h.service.ListConversations(r.Context(), userID, skip, limit)
	if err != nil {
		common.WriteError(w, err)
		return
	}

	common.WriteJSON(w, http.StatusOK, views)
}

func (h *ChatHandler) GetConversation(w http.ResponseWriter, r *http.Request) {
	userID, ok := common.UserIDFromContext(r.Context())
	if !ok {
		common.WriteError(w, apperr.Unauthenticated("user not authenticated"))
		return
	}

	conversationID, err := pathID(r, "conversationID")
	if err != nil {
		common.WriteError(w, err)
		return
	}

	conv, err := h.service.GetConversation(r.Context(), conversationID, userID)
	if err != nil {
		common.WriteError(w, err)
		return
	}

	common.WriteJSON(w, http.StatusOK, conv)
}

func (h *ChatHandler) ListConversationMessages(w http.ResponseWriter, r *http.Request) {
	userID, ok := common.UserIDFromContext(r.Context())
	if !ok {
		common.WriteError(w, apperr.Unauthenticated("user not authenticated"))
		return
	}

	conversationID, err := pathID(r, "conversationID")
	if err != nil {
		common.WriteError(w, err)
		return
	}

	skip, limit, err := parsePagination(r)
	if err != nil {
		common.WriteError(w, err)
		return
	}

	msgs, err := h.service.ListConversationMessages(r.Context(), conversationID, userID, skip, limit)
	if err != nil {
		common.WriteError(w, err)
		return
	}

	common.WriteJSON(w, http.StatusOK, msgs)
}

// SendUnreadDigest lets a user mail themselves a summary of unread messages.
func (h *ChatHandler) SendUnreadDigest(w http.ResponseWriter, r *http.Request) {
	userID, ok := common.UserIDFromContext(r.Context())
	if !ok {
		common.WriteError(w, apperr.Unauthenticated("user not authenticated"))
		return
	}

	if err := h.service.SendUnreadDigest(r.Context(), userID); err != nil {
		common.WriteError(w, err)
		return
	}

	common.WriteJSON(w, http.StatusAccepted, map[string]string{"status": "digest queued"})
}

func pathID(r *http.Request, name string) (uint, error) {
	raw := mux.Vars(r)[name]
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil || id == 0 {
		return 0, apperr.InvalidArg(name + " must be a positive integer")
	}
	return uint(id), nil
}

func parsePagination(r *http.Request) (skip, limit int, err error) {
	skip, limit = 0, 100

	if raw := r.URL.Query().Get("skip"); raw != "" {
		skip, err = strconv.Atoi(raw)
		if err != nil {
			return 0, 0, apperr.InvalidArg("skip must be an integer")
		}
	}
	if raw := r.URL.Query().Get("limit"); raw != "" {
		limit, err = strconv.Atoi(raw)
		if err != nil {
			return 0, 0, apperr.InvalidArg("limit must be an integer")
		}
	}

	return skip, limit, nil
}
