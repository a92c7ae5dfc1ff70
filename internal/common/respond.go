package common

import (
	"encoding/json"
	"errors"
	"net/http"

	"courier/pkg/apperr"
)

type errorBody struct {
	Error string      `json:"error"`
	Code  apperr.Code `json:"code"`
}

func WriteJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if v != nil {
		_ = json.NewEncoder(w).Encode(v)
	}
}

// WriteError maps an application error to its HTTP status. Anything that is
// not an AppError is reported as a generic server error so internals never
// reach the caller.
func WriteError(w http.ResponseWriter, err error) {
	status := apperr.HTTPStatus(err)
	body := errorBody{Error: "internal server error", Code: apperr.CodeInternal}

	var appErr *apperr.AppError
	if errors.As(err, &appErr) && appErr.Code != apperr.CodeInternal && appErr.Code != apperr.CodeUnknown {
		body = errorBody{Error: appErr.Message, Code: appErr.Code}
	}

	WriteJSON(w, status, body)
}
