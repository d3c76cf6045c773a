package monitoring

import (
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"
)

// RequestLogger is the logging surface the middleware needs
type RequestLogger interface {
	HTTPRequest(method, path, clientIP, requestID string, statusCode int, durationMs int64)
}

// HTTPMiddleware records metrics and logs every request, tagging each with
// a request ID that is echoed back in the X-Request-ID header.
func HTTPMiddleware(log RequestLogger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			requestID := r.Header.Get("X-Request-ID")
			if requestID == "" {
				requestID = uuid.New().String()
			}

			wrapper := &statusRecorder{
				ResponseWriter: w,
				statusCode:     http.StatusOK,
			}
			wrapper.Header().Set("X-Request-ID", requestID)

			next.ServeHTTP(wrapper, r)

			duration := time.Since(start)
			RecordHTTPRequest(r.Method, r.URL.Path, strconv.Itoa(wrapper.statusCode), duration)
			log.HTTPRequest(r.Method, r.URL.Path, r.RemoteAddr, requestID, wrapper.statusCode, duration.Milliseconds())
		})
	}
}

// statusRecorder captures the status code written by the handler
type statusRecorder struct {
	http.ResponseWriter
	statusCode int
	written    bool
}

func (sr *statusRecorder) WriteHeader(code int) {
	if !sr.written {
		sr.statusCode = code
		sr.written = true
	}
	sr.ResponseWriter.WriteHeader(code)
}

func (sr *statusRecorder) Write(b []byte) (int, error) {
	sr.written = true
	return sr.ResponseWriter.Write(b)
}
