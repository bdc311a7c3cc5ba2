package httpapi

import (
	"net"
	"net/http"
	"runtime/debug"
	"strings"
	"sync"
	"time"

	"github.com/dmitrijs2005/inkwell/internal/common"
	"github.com/dmitrijs2005/inkwell/internal/server/auth"
	"github.com/go-chi/chi/v5/middleware"
	"golang.org/x/time/rate"
)

// recoverer turns a panic into a logged 500.
func (s *Server) recoverer(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				if rec == http.ErrAbortHandler {
					panic(rec)
				}
				s.logger.Error(r.Context(), "recovered from panic",
					"method", r.Method, "path", r.URL.Path, "panic", rec, "stack", string(debug.Stack()))
				s.responder.WriteJSON(w, r, http.StatusInternalServerError, errorResponse{Error: "internal server error"})
			}
		}()
		next.ServeHTTP(w, r)
	})
}

func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)

		args := []any{
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"bytes", ww.BytesWritten(),
			"duration", time.Since(start),
			"request_id", middleware.GetReqID(r.Context()),
		}
		if ww.Status() >= http.StatusInternalServerError {
			s.logger.Error(r.Context(), "request", args...)
			return
		}
		s.logger.Debug(r.Context(), "request", args...)
	})
}

// adminOnly requires "Authorization: Bearer <token>" with a valid admin token.
func (s *Server) adminOnly(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get(common.AuthorizationHeader)
		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || token == "" {
			s.responder.WriteError(w, r, common.ErrUnauthorized)
			return
		}
		if _, err := auth.ParseToken(token, s.jwtSecret); err != nil {
			s.responder.WriteError(w, r, err)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// Defaults for ipLimiter housekeeping.
const (
	limiterIdleTTL    = 10 * time.Minute
	limiterMaxClients = 10000
)

type clientBucket struct {
	lim  *rate.Limiter
	seen time.Time
}

// ipLimiter hands out one token bucket per client address. Buckets idle for
// longer than idleTTL are dropped; idleTTL is never shorter than the time a
// bucket needs to refill, so dropping one never grants extra tokens. At most
// maxClients buckets are kept; past that the least recently seen goes first.
type ipLimiter struct {
	mu         sync.Mutex
	buckets    map[string]*clientBucket
	limit      rate.Limit
	burst      int
	idleTTL    time.Duration
	maxClients int
	lastSweep  time.Time
	now        func() time.Time
}

func newIPLimiter(limit rate.Limit, burst int) *ipLimiter {
	ttl := limiterIdleTTL
	if limit != rate.Inf && limit > 0 {
		if refill := time.Duration(float64(burst) / float64(limit) * float64(time.Second)); refill > ttl {
			ttl = refill
		}
	}
	return &ipLimiter{
		buckets:    make(map[string]*clientBucket),
		limit:      limit,
		burst:      burst,
		idleTTL:    ttl,
		maxClients: limiterMaxClients,
		now:        time.Now,
	}
}

func (l *ipLimiter) allow(key string) bool {
	l.mu.Lock()
	now := l.now()
	if now.Sub(l.lastSweep) >= l.idleTTL {
		l.sweep(now)
	}
	b, ok := l.buckets[key]
	if !ok {
		if len(l.buckets) >= l.maxClients {
			l.sweep(now)
			if len(l.buckets) >= l.maxClients {
				l.evictOldest()
			}
		}
		b = &clientBucket{lim: rate.NewLimiter(l.limit, l.burst)}
		l.buckets[key] = b
	}
	b.seen = now
	l.mu.Unlock()
	return b.lim.AllowN(now, 1)
}

// sweep drops idle buckets. Callers hold mu.
func (l *ipLimiter) sweep(now time.Time) {
	for k, b := range l.buckets {
		if now.Sub(b.seen) >= l.idleTTL {
			delete(l.buckets, k)
		}
	}
	l.lastSweep = now
}

// evictOldest drops the least recently seen bucket. Callers hold mu.
func (l *ipLimiter) evictOldest() {
	var (
		oldestKey string
		oldest    time.Time
		found     bool
	)
	for k, b := range l.buckets {
		if !found || b.seen.Before(oldest) {
			oldestKey, oldest, found = k, b.seen, true
		}
	}
	if found {
		delete(l.buckets, oldestKey)
	}
}

func (l *ipLimiter) size() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.buckets)
}

// clientIP is the peer address of r. RemoteAddr carries proxy supplied
// addresses only when the server trusts proxy headers (middleware.RealIP).
func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

func (s *Server) rateLimited(l *ipLimiter) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !l.allow(clientIP(r)) {
				w.Header().Set("Retry-After", "1")
				s.responder.WriteJSON(w, r, http.StatusTooManyRequests, errorResponse{Error: "too many requests"})
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
