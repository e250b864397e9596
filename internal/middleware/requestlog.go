// internal/middleware/requestlog.go
//
// Access-log middleware.
//
// Context
//   Each request gets a uuid request id (echoed in X-Request-Id), a parsed
//   user-agent fingerprint, and a best-effort GeoLite2 country lookup when
//   a database is configured.  The whole thing lands in one structured zap
//   line per request, plus a Prometheus counter bucketed by status class.
//
//   All look-ups are read-only and pool-based, so the middleware is safe
//   under heavy concurrency.

package middleware

import (
	"net"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/avct/uasurfer"
	"github.com/google/uuid"
	"github.com/oschwald/geoip2-golang"
	"go.uber.org/zap"

	"github.com/nlplab/labsite/internal/metrics"
)

// geoReader is a singleton MaxMind handle, nil when no database is
// configured.  Concurrent reads are safe.
var geoReader *geoip2.Reader

// InitGeo opens the GeoLite2 database at startup.  Optional; without it
// the access log simply omits the country field.
func InitGeo(dbPath string) error {
	r, err := geoip2.Open(dbPath)
	if err != nil {
		return err
	}
	geoReader = r
	return nil
}

// statusRecorder captures the response status for the log line.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (sr *statusRecorder) WriteHeader(code int) {
	if sr.status == 0 {
		sr.status = code
	}
	sr.ResponseWriter.WriteHeader(code)
}

func (sr *statusRecorder) Write(b []byte) (int, error) {
	if sr.status == 0 {
		sr.status = http.StatusOK
	}
	return sr.ResponseWriter.Write(b)
}

// RequestLog wraps next with per-request logging and metrics.
func RequestLog(log *zap.SugaredLogger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			reqID := uuid.NewString()
			w.Header().Set("X-Request-Id", reqID)

			rec := &statusRecorder{ResponseWriter: w}
			next.ServeHTTP(rec, r)

			status := rec.status
			if status == 0 {
				status = http.StatusOK
			}

			ua := uasurfer.Parse(r.UserAgent())
			ip := clientIP(r)

			fields := []any{
				"request_id", reqID,
				"method", r.Method,
				"path", r.URL.Path,
				"status", status,
				"duration_ms", time.Since(start).Milliseconds(),
				"ip", ip.String(),
				"browser", strings.TrimPrefix(ua.Browser.Name.String(), "Browser"),
				"device", deviceClass(ua.DeviceType),
				"bot", ua.IsBot(),
			}
			if country := lookupCountry(ip); country != "" {
				fields = append(fields, "country", country)
			}
			log.Infow("request", fields...)

			metrics.HTTPRequestsTotal.WithLabelValues(
				pathClass(r.URL.Path), strconv.Itoa(status)).Inc()
		})
	}
}

// deviceClass maps uasurfer.DeviceType to a short label.
func deviceClass(dt uasurfer.DeviceType) string {
	switch dt {
	case uasurfer.DeviceComputer:
		return "desktop"
	case uasurfer.DevicePhone:
		return "phone"
	case uasurfer.DeviceTablet:
		return "tablet"
	case uasurfer.DeviceTV:
		return "tv"
	default:
		return "unknown"
	}
}

// pathClass buckets paths so the counter stays low-cardinality.
func pathClass(path string) string {
	switch {
	case path == "/":
		return "home"
	case strings.HasPrefix(path, "/admin"):
		return "admin"
	case strings.HasPrefix(path, "/static/"):
		return "static"
	default:
		return "public"
	}
}

// clientIP extracts the left-most address from X-Forwarded-For or
// X-Real-Ip, falling back to r.RemoteAddr ("ip:port").
func clientIP(r *http.Request) net.IP {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		for _, part := range strings.Split(xff, ",") {
			if ip := net.ParseIP(strings.TrimSpace(part)); ip != nil {
				return ip
			}
		}
	}
	if xrip := r.Header.Get("X-Real-Ip"); xrip != "" {
		if ip := net.ParseIP(strings.TrimSpace(xrip)); ip != nil {
			return ip
		}
	}
	if host, _, err := net.SplitHostPort(r.RemoteAddr); err == nil {
		return net.ParseIP(host)
	}
	return nil
}

// lookupCountry returns a best-effort ISO country code.
func lookupCountry(ip net.IP) string {
	if geoReader == nil || ip == nil {
		return ""
	}
	rec, err := geoReader.Country(ip)
	if err != nil {
		return ""
	}
	return rec.Country.IsoCode
}
