// internal/app/features/errors/render.go
package errors

import "net/http"

// RenderUnauthorized shows a friendly "sign in required" page.
// If backURL is empty, it will default to /.
func RenderUnauthorized(w http.ResponseWriter, r *http.Request, backURL string) {
	if backURL == "" {
		backURL = "/"
	}
	data := newPageData(r, "Sign in required", "Please sign in to continue.", backURL)
	render(w, r, http.StatusUnauthorized, "error_page", data)
}

// RenderNotFound shows the not-found page for unmatched paths.
func RenderNotFound(w http.ResponseWriter, r *http.Request) {
	data := newPageData(r, "Page not found", "The page you were looking for does not exist.", "/")
	render(w, r, http.StatusNotFound, "error_notfound", data)
}

// RenderServerError shows a generic failure page with a message.
func RenderServerError(w http.ResponseWriter, r *http.Request, msg, backURL string) {
	if msg == "" {
		msg = "A server error occurred."
	}
	if backURL == "" {
		backURL = "/"
	}
	data := newPageData(r, "Something went wrong", msg, backURL)
	render(w, r, http.StatusInternalServerError, "error_page", data)
}
