package httpapi

import (
	"net/http"

	"github.com/dmitrijs2005/inkwell/internal/common"
	"github.com/dmitrijs2005/inkwell/internal/server/models"
	"github.com/dmitrijs2005/inkwell/internal/server/services"
	"github.com/go-chi/chi/v5"
)

func (s *Server) listPosts(w http.ResponseWriter, r *http.Request) {
	var (
		list []*models.Post
		err  error
	)
	if category := r.URL.Query().Get("category"); category != "" {
		list, err = s.storage.Posts.ListByCategory(r.Context(), category)
	} else {
		list, err = s.storage.Posts.List(r.Context())
	}
	if err != nil {
		s.responder.WriteError(w, r, err)
		return
	}
	s.responder.WriteJSON(w, r, http.StatusOK, list)
}

func (s *Server) listPostsForAdmin(w http.ResponseWriter, r *http.Request) {
	list, err := s.storage.Posts.ListForAdmin(r.Context())
	if err != nil {
		s.responder.WriteError(w, r, err)
		return
	}
	s.responder.WriteJSON(w, r, http.StatusOK, list)
}

func (s *Server) getPost(w http.ResponseWriter, r *http.Request) {
	p, err := s.storage.Posts.Get(r.Context(), chi.URLParam(r, "id"))
	if err == nil && p == nil {
		err = common.ErrNotFound
	}
	if err != nil {
		s.responder.WriteError(w, r, err)
		return
	}
	s.responder.WriteJSON(w, r, http.StatusOK, p)
}

func (s *Server) createPost(w http.ResponseWriter, r *http.Request) {
	var in services.PostInput
	if err := decodeJSON(r, &in); err != nil {
		s.responder.WriteError(w, r, err)
		return
	}
	id, err := s.storage.Posts.Create(r.Context(), in)
	if err != nil {
		s.responder.WriteError(w, r, err)
		return
	}
	s.responder.WriteJSON(w, r, http.StatusOK, messageResponse{ID: id, Message: "post created"})
}

func (s *Server) updatePost(w http.ResponseWriter, r *http.Request) {
	var patch models.PostPatch
	if err := decodeJSON(r, &patch); err != nil {
		s.responder.WriteError(w, r, err)
		return
	}
	if _, err := s.storage.Posts.Update(r.Context(), chi.URLParam(r, "id"), patch); err != nil {
		s.responder.WriteError(w, r, err)
		return
	}
	s.responder.WriteJSON(w, r, http.StatusOK, messageResponse{Message: "post updated"})
}

func (s *Server) deletePost(w http.ResponseWriter, r *http.Request) {
	if err := s.storage.Posts.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		s.responder.WriteError(w, r, err)
		return
	}
	s.responder.WriteJSON(w, r, http.StatusOK, messageResponse{Message: "post deleted"})
}
