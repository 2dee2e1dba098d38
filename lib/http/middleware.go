package http

import (
	"net/http"
	"sync"
	"time"

	"github.com/cldimg/cldimg/fs"
	"github.com/go-chi/chi/v5/middleware"
)

var onlyOnceWarningAllowOrigin sync.Once

// MiddlewareCORS instantiates middleware that handles basic CORS protections
func MiddlewareCORS(allowOrigin string) Middleware {
	onlyOnceWarningAllowOrigin.Do(func() {
		if allowOrigin == "*" {
			fs.Logf(nil, "Warning: Allow origin set to *. Any web page can use this server.")
		}
	})

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			// skip cors for unix sockets
			if IsUnixSocket(r) {
				next.ServeHTTP(w, r)
				return
			}

			if allowOrigin != "" {
				w.Header().Add("Access-Control-Allow-Origin", allowOrigin)
				w.Header().Add("Access-Control-Allow-Headers", "Content-Type")
				w.Header().Add("Access-Control-Allow-Methods", "GET, HEAD, OPTIONS")
			}

			next.ServeHTTP(w, r)
		})
	}
}

// MiddlewareStripPrefix instantiates middleware that removes the BaseURL from the path
func MiddlewareStripPrefix(prefix string) Middleware {
	return func(next http.Handler) http.Handler {
		stripPrefixHandler := http.StripPrefix(prefix, next)
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			// Allow OPTIONS on the root only
			if r.URL.Path == "/" && r.Method == "OPTIONS" {
				next.ServeHTTP(w, r)
				return
			}
			stripPrefixHandler.ServeHTTP(w, r)
		})
	}
}

// MiddlewareLog logs each request at debug level once it is done.
//
// The status, size, duration and user agent are JSON fields when
// --use-json-log is set.
func MiddlewareLog() Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r)
			fs.Debugf(r.RemoteAddr, "%s %s %v %v bytes in %v%v",
				r.Method, r.URL.RequestURI(),
				fs.LogValue("status", ww.Status()),
				fs.LogValue("bytes", ww.BytesWritten()),
				fs.LogValue("duration", time.Since(start)),
				fs.LogValueHide("user_agent", r.UserAgent()),
			)
		})
	}
}
