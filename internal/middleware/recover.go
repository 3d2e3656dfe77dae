package middleware

import (
	"log"
	"net/http"

	chimiddleware "github.com/go-chi/chi/v5/middleware"
)

// Recoverer turns a panic into a generic JSON 500. The stack goes to the log only.
func Recoverer(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			rvr := recover()
			if rvr == nil {
				return
			}
			if rvr == http.ErrAbortHandler {
				panic(rvr)
			}

			log.Printf("Unhandled error: %v", rvr)
			chimiddleware.PrintPrettyStack(rvr)

			if r.Header.Get("Connection") != "Upgrade" {
				writeError(w, http.StatusInternalServerError, "Something went wrong!", r)
			}
		}()

		next.ServeHTTP(w, r)
	})
}
