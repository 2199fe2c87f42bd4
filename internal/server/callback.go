package server

import (
	"context"
	"fmt"
	"net/http"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/subx/internal/shared"
	"github.com/desertthunder/subx/internal/tasks"
)

// SessionDriver decides how a migration session responds to one parsed OAuth
// redirect. Implemented by [tasks.Orchestrator].
type SessionDriver interface {
	HandleCallback(ctx context.Context, event tasks.CallbackEvent) tasks.CallbackStatus
}

// CallbackHandler serves the OAuth redirect endpoint for a migration session.
//
// Unlike [OAuthHandler] it stays armed across requests: the session expects
// two authorizations, and a rejected or failed redirect leaves it waiting for
// a manual retry of the same link. All validation and the code exchange
// happen in the driver; this handler only parses the request and renders the
// classification.
type CallbackHandler struct {
	driver SessionDriver
	logger *log.Logger
}

// NewCallbackHandler creates a CallbackHandler for the given session.
func NewCallbackHandler(driver SessionDriver, logger *log.Logger) *CallbackHandler {
	if logger == nil {
		logger = shared.NewLogger(nil)
	}
	return &CallbackHandler{driver: driver, logger: logger}
}

// Routes returns the HTTP routes this handler serves.
func (h *CallbackHandler) Routes() []string {
	return []string{"/callback"}
}

func (h *CallbackHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	event := parseCallback(r)
	status := h.driver.HandleCallback(r.Context(), event)
	h.logger.Debug("callback classified", "status", status)

	switch status {
	case tasks.CallbackAccepted:
		w.Header().Set("Content-Type", "text/html")
		w.WriteHeader(http.StatusOK)
		fmt.Fprint(w, successPage)
	case tasks.CallbackRejectedCode:
		http.Error(w, "Authorization failed", http.StatusBadRequest)
	case tasks.CallbackRejectedState:
		http.Error(w, "Invalid state parameter", http.StatusBadRequest)
	case tasks.CallbackExchangeFailed:
		http.Error(w, "Token exchange failed. Return to the terminal and use the authorization link again.", http.StatusInternalServerError)
	default:
		fmt.Fprint(w, "No authorization in progress.")
	}
}

// parseCallback reduces a redirect request to the parameters the session
// cares about. A repeated code parameter is treated as missing.
func parseCallback(r *http.Request) tasks.CallbackEvent {
	q := r.URL.Query()

	event := tasks.CallbackEvent{
		State:     q.Get("state"),
		AuthError: q.Get("error"),
		ErrorDesc: q.Get("error_description"),
	}
	if codes := q["code"]; len(codes) == 1 {
		event.Code = codes[0]
	}
	return event
}

// RootHandler serves the static landing page of the callback listener.
type RootHandler struct{}

// Routes returns the HTTP routes this handler serves.
func (RootHandler) Routes() []string {
	return []string{"/"}
}

func (RootHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	fmt.Fprint(w, "subx callback listener. Continue in the terminal.")
}
