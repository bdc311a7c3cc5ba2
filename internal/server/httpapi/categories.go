package httpapi

import (
	"net/http"

	"github.com/dmitrijs2005/inkwell/internal/common"
	"github.com/dmitrijs2005/inkwell/internal/server/services"
	"github.com/go-chi/chi/v5"
)

func (s *Server) listCategories(w http.ResponseWriter, r *http.Request) {
	list, err := s.storage.Categories.List(r.Context())
	if err != nil {
		s.responder.WriteError(w, r, err)
		return
	}
	s.responder.WriteJSON(w, r, http.StatusOK, list)
}

func (s *Server) getCategory(w http.ResponseWriter, r *http.Request) {
	c, err := s.storage.Categories.GetBySlug(r.Context(), chi.URLParam(r, "slug"))
	if err == nil && c == nil {
		err = common.ErrNotFound
	}
	if err != nil {
		s.responder.WriteError(w, r, err)
		return
	}
	s.responder.WriteJSON(w, r, http.StatusOK, c)
}

func (s *Server) createCategory(w http.ResponseWriter, r *http.Request) {
	var in services.CategoryInput
	if err := decodeJSON(r, &in); err != nil {
		s.responder.WriteError(w, r, err)
		return
	}
	id, err := s.storage.Categories.Create(r.Context(), in)
	if err != nil {
		s.responder.WriteError(w, r, err)
		return
	}
	s.responder.WriteJSON(w, r, http.StatusOK, messageResponse{ID: id, Message: "category created"})
}

func (s *Server) deleteCategory(w http.ResponseWriter, r *http.Request) {
	if err := s.storage.Categories.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		s.responder.WriteError(w, r, err)
		return
	}
	s.responder.WriteJSON(w, r, http.StatusOK, messageResponse{Message: "category deleted"})
}
