package httpapi

import (
	"net/http"

	"github.com/dmitrijs2005/inkwell/internal/server/auth"
)

type loginRequest struct {
	Password string `json:"password"`
}

type loginResponse struct {
	Token string `json:"token"`
}

func (s *Server) login(w http.ResponseWriter, r *http.Request) {
	var in loginRequest
	if err := decodeJSON(r, &in); err != nil {
		s.responder.WriteError(w, r, err)
		return
	}
	if err := auth.CheckPassword(s.adminHash, in.Password); err != nil {
		s.logger.Warn(r.Context(), "admin login rejected", "remote", clientIP(r))
		s.responder.WriteError(w, r, err)
		return
	}

	token, err := auth.GenerateToken("admin", s.jwtSecret, s.tokenValidity)
	if err != nil {
		s.responder.WriteError(w, r, err)
		return
	}
	s.responder.WriteJSON(w, r, http.StatusOK, loginResponse{Token: token})
}
