// Package httpapi exposes the storage facade as a JSON API.
package httpapi

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/dmitrijs2005/inkwell/internal/logging"
	"github.com/dmitrijs2005/inkwell/internal/server/assistant"
	"github.com/dmitrijs2005/inkwell/internal/server/services"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/microcosm-cc/bluemonday"
	"golang.org/x/time/rate"
)

type Options struct {
	Address           string
	SecretKey         string
	AdminPasswordHash string
	TokenValidity     time.Duration
	AllowedOrigins    []string
	MaxUploadBytes    int64
	// UploadDir, when set, is served under /uploads/.
	UploadDir string
	// SubmitRate and SubmitBurst limit comment, AI and login submissions per
	// client. Logins draw from their own buckets.
	SubmitRate  rate.Limit
	SubmitBurst int
	// TrustProxyHeaders takes the client address from X-Forwarded-For,
	// X-Real-IP or True-Client-IP. Only safe behind a proxy that sets them.
	TrustProxyHeaders bool
}

type Server struct {
	address   string
	storage   *services.Storage
	answerer  assistant.Answerer
	logger    logging.Logger
	responder Responder

	jwtSecret      []byte
	adminHash      string
	tokenValidity  time.Duration
	allowedOrigins []string
	maxUploadBytes int64
	uploadDir      string

	sanitizer    *bluemonday.Policy
	limiter      *ipLimiter
	loginLimiter *ipLimiter
	trustProxy   bool
}

func NewServer(o Options, storage *services.Storage, answerer assistant.Answerer, logger logging.Logger) *Server {
	l := logging.Component(logger, "http_server")
	if o.SubmitRate == 0 {
		o.SubmitRate = rate.Every(2 * time.Second)
	}
	if o.SubmitBurst == 0 {
		o.SubmitBurst = 5
	}
	if o.MaxUploadBytes <= 0 {
		o.MaxUploadBytes = 10 << 20
	}
	return &Server{
		address:        o.Address,
		storage:        storage,
		answerer:       answerer,
		logger:         l,
		responder:      NewResponder(l),
		jwtSecret:      []byte(o.SecretKey),
		adminHash:      o.AdminPasswordHash,
		tokenValidity:  o.TokenValidity,
		allowedOrigins: o.AllowedOrigins,
		maxUploadBytes: o.MaxUploadBytes,
		uploadDir:      o.UploadDir,
		sanitizer:      bluemonday.StrictPolicy(),
		limiter:        newIPLimiter(o.SubmitRate, o.SubmitBurst),
		loginLimiter:   newIPLimiter(o.SubmitRate, o.SubmitBurst),
		trustProxy:     o.TrustProxyHeaders,
	}
}

// Routes builds the router.
func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	if s.trustProxy {
		r.Use(middleware.RealIP)
	}
	r.Use(s.requestLogger)
	r.Use(s.recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: s.allowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type"},
		MaxAge:         300,
	}))

	r.Get("/healthz", func(w http.ResponseWriter, req *http.Request) {
		s.responder.WriteJSON(w, req, http.StatusOK, map[string]string{"status": "ok"})
	})
	if s.uploadDir != "" {
		r.Handle("/uploads/*", http.StripPrefix("/uploads/", http.FileServer(http.Dir(s.uploadDir))))
	}

	r.Route("/api", func(r chi.Router) {
		r.Get("/posts", s.listPosts)
		r.Get("/posts/{id}", s.getPost)
		r.Get("/comments", s.listComments)
		r.Get("/categories", s.listCategories)
		r.Get("/categories/{slug}", s.getCategory)
		r.With(s.rateLimited(s.loginLimiter)).Post("/admin/login", s.login)

		r.Group(func(r chi.Router) {
			r.Use(s.rateLimited(s.limiter))
			r.Post("/comments", s.createComment)
			r.Post("/ai/chat", s.aiChat)
		})

		r.Group(func(r chi.Router) {
			r.Use(s.adminOnly)
			r.Get("/admin/posts", s.listPostsForAdmin)
			r.Post("/posts", s.createPost)
			r.Put("/posts/{id}", s.updatePost)
			r.Delete("/posts/{id}", s.deletePost)
			r.Delete("/comments/{id}", s.deleteComment)
			r.Post("/categories", s.createCategory)
			r.Delete("/categories/{id}", s.deleteCategory)
			r.Get("/files", s.listFiles)
			r.Post("/upload", s.upload)
			r.Delete("/files/{id}", s.deleteFile)
			r.Get("/ai/conversations", s.listConversations)
		})
	})

	return r
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	listen, err := net.Listen("tcp", s.address)
	if err != nil {
		return err
	}

	srv := &http.Server{
		Handler:           s.Routes(),
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       120 * time.Second,
		BaseContext:       func(net.Listener) context.Context { return context.WithoutCancel(ctx) },
	}

	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping HTTP server...")
		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			s.logger.Error(ctx, "shutdown failed", "error", err)
		}
	}()

	s.logger.Info(ctx, "Starting HTTP server", "address", listen.Addr().String())

	if err := srv.Serve(listen); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
