package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/dmitrijs2005/inkwell/internal/common"
	"github.com/dmitrijs2005/inkwell/internal/logging"
)

// Responder writes JSON bodies and maps domain errors onto status codes.
type Responder struct {
	logger logging.Logger
}

func NewResponder(logger logging.Logger) Responder {
	return Responder{logger: logger}
}

type errorResponse struct {
	Error string `json:"error"`
	Field string `json:"field,omitempty"`
}

type messageResponse struct {
	ID      string `json:"id,omitempty"`
	Message string `json:"message"`
}

func (r Responder) WriteJSON(w http.ResponseWriter, req *http.Request, status int, data any) {
	body, err := json.Marshal(data)
	if err != nil {
		r.logger.Error(req.Context(), "error marshaling response", "error", err)
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if _, err := w.Write(body); err != nil {
		r.logger.Warn(req.Context(), "error writing response", "error", err)
	}
}

// WriteError maps err: validation 400, unauthorized 401, not found 404,
// duplicate slug 409, anything else 500 with a generic message.
func (r Responder) WriteError(w http.ResponseWriter, req *http.Request, err error) {
	var ve *common.ValidationError
	switch {
	case errors.As(err, &ve):
		r.WriteJSON(w, req, http.StatusBadRequest, errorResponse{Error: ve.Error(), Field: ve.Field})
	case errors.Is(err, common.ErrValidation):
		r.WriteJSON(w, req, http.StatusBadRequest, errorResponse{Error: err.Error()})
	case errors.Is(err, common.ErrUnauthorized), errors.Is(err, common.ErrInvalidToken):
		r.WriteJSON(w, req, http.StatusUnauthorized, errorResponse{Error: "unauthorized"})
	case errors.Is(err, common.ErrNotFound):
		r.WriteJSON(w, req, http.StatusNotFound, errorResponse{Error: "not found"})
	case errors.Is(err, common.ErrDuplicateSlug):
		r.WriteJSON(w, req, http.StatusConflict, errorResponse{Error: "category slug already exists"})
	default:
		r.logger.Error(req.Context(), "request failed", "method", req.Method, "path", req.URL.Path, "error", err)
		r.WriteJSON(w, req, http.StatusInternalServerError, errorResponse{Error: "internal server error"})
	}
}

// decodeJSON reads a JSON body into dst. Malformed JSON is a validation error.
func decodeJSON(req *http.Request, dst any) error {
	if err := json.NewDecoder(req.Body).Decode(dst); err != nil {
		return common.NewValidationError("body", "malformed JSON")
	}
	return nil
}
