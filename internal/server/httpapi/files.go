package httpapi

import (
	"errors"
	"net/http"

	"github.com/dmitrijs2005/inkwell/internal/common"
	"github.com/dmitrijs2005/inkwell/internal/server/models"
	"github.com/dmitrijs2005/inkwell/internal/server/services"
	"github.com/go-chi/chi/v5"
)

type uploadResponse struct {
	ID       string `json:"id"`
	URL      string `json:"url"`
	Filename string `json:"filename"`
	Message  string `json:"message"`
}

func (s *Server) listFiles(w http.ResponseWriter, r *http.Request) {
	var (
		list []*models.FileMeta
		err  error
	)
	if postID := r.URL.Query().Get("postId"); postID != "" {
		list, err = s.storage.Files.ListByPost(r.Context(), postID)
	} else {
		list, err = s.storage.Files.List(r.Context())
	}
	if err != nil {
		s.responder.WriteError(w, r, err)
		return
	}
	s.responder.WriteJSON(w, r, http.StatusOK, list)
}

// upload accepts multipart/form-data with a "file" part and an optional
// "postId" field.
func (s *Server) upload(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, s.maxUploadBytes)
	if err := r.ParseMultipartForm(1 << 20); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			s.responder.WriteJSON(w, r, http.StatusRequestEntityTooLarge, errorResponse{Error: "file too large"})
			return
		}
		s.responder.WriteError(w, r, common.NewValidationError("file", "no file uploaded"))
		return
	}
	defer r.MultipartForm.RemoveAll()

	file, header, err := r.FormFile("file")
	if err != nil {
		s.responder.WriteError(w, r, common.NewValidationError("file", "no file uploaded"))
		return
	}
	defer file.Close()

	postID := r.FormValue("postId")
	meta, err := s.storage.Files.Upload(r.Context(), services.UploadInput{
		OriginalName: header.Filename,
		ContentType:  header.Header.Get("Content-Type"),
		Size:         header.Size,
		Body:         file,
		PostID:       &postID,
	})
	if err != nil {
		s.responder.WriteError(w, r, err)
		return
	}
	s.responder.WriteJSON(w, r, http.StatusOK, uploadResponse{
		ID:       meta.ID,
		URL:      meta.FilePath,
		Filename: meta.OriginalName,
		Message:  "file uploaded",
	})
}

func (s *Server) deleteFile(w http.ResponseWriter, r *http.Request) {
	if _, err := s.storage.Files.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		s.responder.WriteError(w, r, err)
		return
	}
	s.responder.WriteJSON(w, r, http.StatusOK, messageResponse{Message: "file deleted"})
}
