package api

import (
	"log"
	"net/http"
)

// AllowOrigins rejects any request whose Origin header is not on the list
// before it reaches the router. Requests without an Origin pass through.
// The entry "*" allows every origin.
func AllowOrigins(origins []string, next http.Handler) http.Handler {
	allowAll := false
	allowed := make(map[string]bool, len(origins))
	for _, o := range origins {
		if o == "*" {
			allowAll = true
		}
		allowed[o] = true
	}

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		origin := r.Header.Get("Origin")
		if origin == "" {
			next.ServeHTTP(w, r)
			return
		}

		if !allowAll && !allowed[origin] {
			log.Printf("[Server] Blocked %s %s from origin %s", r.Method, r.URL.Path, origin)
			http.Error(w, "Origin not allowed", http.StatusForbidden)
			return
		}

		header := w.Header()
		header.Set("Access-Control-Allow-Origin", origin)
		header.Set("Access-Control-Allow-Headers", "Content-Type")
		header.Add("Vary", "Origin")
		next.ServeHTTP(w, r)
	})
}

// preflight answers OPTIONS once mux.CORSMethodMiddleware has set the
// allowed methods.
func preflight(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}
