package api

import (
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/rs/zerolog/log"

	"style-outfits/internal/domain/services"
)

const requestIDHeader = "X-Request-ID"

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

func (r *statusRecorder) Write(b []byte) (int, error) {
	if r.status == 0 {
		r.status = http.StatusOK
	}
	return r.ResponseWriter.Write(b)
}

// RequestLogger attaches a request-scoped zerolog logger to the context, echoes or assigns
// X-Request-ID and counts requests by route template and status class.
func RequestLogger(reg services.MetricsRecorder) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			rid := r.Header.Get(requestIDHeader)
			if rid == "" {
				rid = uuid.NewString()
			}
			w.Header().Set(requestIDHeader, rid)

			path := r.URL.Path
			if route := mux.CurrentRoute(r); route != nil {
				if tmpl, err := route.GetPathTemplate(); err == nil {
					path = tmpl
				}
			}

			logger := log.With().
				Str("request_id", rid).
				Str("method", r.Method).
				Str("path", path).
				Str("remote_ip", realIP(r)).
				Str("user_agent", r.UserAgent()).
				Logger()

			rec := &statusRecorder{ResponseWriter: w}
			next.ServeHTTP(rec, r.WithContext(logger.WithContext(r.Context())))

			status := rec.status
			if status == 0 {
				status = http.StatusOK
			}
			duration := time.Since(start)

			labels := map[string]string{
				"method": r.Method,
				"path":   path,
				"status": statusClass(status),
			}
			if reg != nil {
				reg.Inc(r.Context(), "http_requests_total", labels, 1)
			}

			if status >= 500 {
				logger.Error().Int("status", status).Dur("duration", duration).Msg("http request failed")
				if reg != nil {
					reg.Inc(r.Context(), "http_requests_errors_total", labels, 1)
				}
				return
			}
			logger.Info().Int("status", status).Dur("duration", duration).Msg("http request served")
		})
	}
}

func realIP(r *http.Request) string {
	if fwd := r.Header.Get("X-Forwarded-For"); fwd != "" {
		first, _, _ := strings.Cut(fwd, ",")
		return strings.TrimSpace(first)
	}
	if ip := r.Header.Get("X-Real-IP"); ip != "" {
		return ip
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

func statusClass(code int) string {
	switch {
	case code >= 100 && code < 200:
		return "1xx"
	case code >= 200 && code < 300:
		return "2xx"
	case code >= 300 && code < 400:
		return "3xx"
	case code >= 400 && code < 500:
		return "4xx"
	case code >= 500 && code < 600:
		return "5xx"
	default:
		return "0"
	}
}
