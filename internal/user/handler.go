package user

import (
	"encoding/json"
	"net/http"

	"github.com/go-playground/validator/v10"

	"courier/internal/common"
	"courier/pkg/apperr"
)

// Handler adapts the HTTP surface onto the user service. Validation of the
// request shape happens here; business rules live in the service.
type Handler struct {
	service  UserService
	validate *validator.Validate
}

func NewHandler(service UserService) *Handler {
	return &Handler{
		service:  service,
		validate: validator.New(),
	}
}

type registerRequest struct {
	Username string `json:"username" validate:"required,min=3,max=50"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
}

type loginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type authResponse struct {
	Token string      `json:"access_token"`
	Type  string      `json:"token_type"`
	User  interface{} `json:"user"`
}

func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		common.WriteError(w, apperr.InvalidArg("invalid request body"))
		return
	}
	if err := h.validate.Struct(req); err != nil {
		common.WriteError(w, apperr.InvalidArg(err.Error()))
		return
	}

	u, token, err := h.service.Register(r.Context(), req.Username, req.Email, req.Password)
	if err != nil {
		common.WriteError(w, err)
		return
	}

	common.WriteJSON(w, http.StatusCreated, authResponse{Token: token, Type: "bearer", User: u})
}

func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		common.WriteError(w, apperr.InvalidArg("invalid request body"))
		return
	}
	if err := h.validate.Struct(req); err != nil {
		common.WriteError(w, apperr.InvalidArg(err.Error()))
		return
	}

	u, token, err := h.service.Login(r.Context(), req.Username, req.Password)
	if err != nil {
		common.WriteError(w, err)
		return
	}

	common.WriteJSON(w, http.StatusOK, authResponse{Token: token, Type: "bearer", User: u})
}

func (h *Handler) Me(w http.ResponseWriter, r *http.Request) {
	userID, ok := common.UserIDFromContext(r.Context())
	if !ok {
		common.WriteError(w, apperr.Unauthenticated("user not authenticated"))
		return
	}

	u, err := h.service.GetProfile(r.Context(), userID)
	if err != nil {
		common.WriteError(w, err)
		return
	}

	common.WriteJSON(w, http.StatusOK, u)
}
