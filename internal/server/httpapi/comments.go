package httpapi

import (
	"html"
	"net/http"

	"github.com/dmitrijs2005/inkwell/internal/common"
	"github.com/dmitrijs2005/inkwell/internal/server/services"
	"github.com/go-chi/chi/v5"
)

func (s *Server) listComments(w http.ResponseWriter, r *http.Request) {
	postID := r.URL.Query().Get("postId")
	if postID == "" {
		s.responder.WriteError(w, r, common.NewValidationError("postId", "query parameter is required"))
		return
	}
	list, err := s.storage.Comments.ListByPost(r.Context(), postID)
	if err != nil {
		s.responder.WriteError(w, r, err)
		return
	}
	s.responder.WriteJSON(w, r, http.StatusOK, list)
}

// stripTags removes all markup but keeps the remaining text as typed. The
// strict policy entity-escapes what it keeps, so that is undone here;
// renderers escape on output.
func (s *Server) stripTags(text string) string {
	return html.UnescapeString(s.sanitizer.Sanitize(text))
}

// createComment strips all markup from reader supplied text.
func (s *Server) createComment(w http.ResponseWriter, r *http.Request) {
	var in services.CommentInput
	if err := decodeJSON(r, &in); err != nil {
		s.responder.WriteError(w, r, err)
		return
	}
	in.Author = s.stripTags(in.Author)
	in.Content = s.stripTags(in.Content)

	id, err := s.storage.Comments.Create(r.Context(), in)
	if err != nil {
		s.responder.WriteError(w, r, err)
		return
	}
	s.responder.WriteJSON(w, r, http.StatusOK, messageResponse{ID: id, Message: "comment created"})
}

func (s *Server) deleteComment(w http.ResponseWriter, r *http.Request) {
	if err := s.storage.Comments.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		s.responder.WriteError(w, r, err)
		return
	}
	s.responder.WriteJSON(w, r, http.StatusOK, messageResponse{Message: "comment deleted"})
}
