package httpapi

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/dmitrijs2005/inkwell/internal/common"
	"github.com/dmitrijs2005/inkwell/internal/server/models"
)

type chatRequest struct {
	Question string `json:"question"`
	PostID   string `json:"postId"`
}

type chatResponse struct {
	Answer string `json:"answer"`
}

// aiChat answers a question, optionally about a post, and records the
// exchange. An unknown post id just means no context.
func (s *Server) aiChat(w http.ResponseWriter, r *http.Request) {
	var in chatRequest
	if err := decodeJSON(r, &in); err != nil {
		s.responder.WriteError(w, r, err)
		return
	}
	if strings.TrimSpace(in.Question) == "" {
		s.responder.WriteError(w, r, common.NewValidationError("question", "is required"))
		return
	}

	var post *models.Post
	if in.PostID != "" {
		p, err := s.storage.Posts.Get(r.Context(), in.PostID)
		if err != nil {
			s.responder.WriteError(w, r, err)
			return
		}
		post = p
	}

	answer, err := s.answerer.Answer(r.Context(), in.Question, post)
	if err != nil {
		s.responder.WriteError(w, r, err)
		return
	}

	if _, err := s.storage.AIConversations.Record(r.Context(), in.Question, answer, &in.PostID); err != nil {
		s.responder.WriteError(w, r, err)
		return
	}
	s.responder.WriteJSON(w, r, http.StatusOK, chatResponse{Answer: answer})
}

func (s *Server) listConversations(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			s.responder.WriteError(w, r, common.NewValidationError("limit", "must be a non-negative integer"))
			return
		}
		limit = n
	}
	list, err := s.storage.AIConversations.Recent(r.Context(), limit)
	if err != nil {
		s.responder.WriteError(w, r, err)
		return
	}
	s.responder.WriteJSON(w, r, http.StatusOK, list)
}
