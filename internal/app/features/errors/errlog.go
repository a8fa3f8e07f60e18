// internal/app/features/errors/errlog.go
package errors

import (
	"net/http"

	"go.uber.org/zap"
)

// ErrorLogger pairs structured logging with a user-facing error page.
// Handlers call it instead of logging and rendering separately, so the
// log line and the page the user sees never drift apart.
type ErrorLogger struct {
	log *zap.Logger
}

func NewErrorLogger(logger *zap.Logger) *ErrorLogger {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ErrorLogger{log: logger}
}

// LogBadRequest logs a client-side failure and renders an error page
// with userMsg. logMsg and err go to the log only.
func (e *ErrorLogger) LogBadRequest(w http.ResponseWriter, r *http.Request, logMsg string, err error, userMsg, backURL string) {
	e.log.Warn(logMsg,
		zap.Error(err),
		zap.String("path", r.URL.Path),
		zap.String("method", r.Method))

	if backURL == "" {
		backURL = "/"
	}
	data := newPageData(r, "Invalid request", userMsg, backURL)
	render(w, r, http.StatusBadRequest, "error_page", data)
}

// LogServerError logs a server-side failure and renders an error page
// with userMsg.
func (e *ErrorLogger) LogServerError(w http.ResponseWriter, r *http.Request, logMsg string, err error, userMsg, backURL string) {
	e.log.Error(logMsg,
		zap.Error(err),
		zap.String("path", r.URL.Path),
		zap.String("method", r.Method))

	RenderServerError(w, r, userMsg, backURL)
}
