// package tasks implements the subscription migration session between two YouTube accounts.
//
// The core abstraction is Orchestrator, which drives the dual-session flow: source
// authorization, subscription enumeration, destination authorization, replication.
// Operations emit progress updates via channels for non-blocking status reporting to CLI/UI layers.
package tasks

import (
	"context"
	"fmt"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/subx/internal/services"
	"github.com/desertthunder/subx/internal/shared"
	"golang.org/x/oauth2"
)

// SessionPhase identifies which account authorization a migration session is
// currently waiting on.
type SessionPhase int

const (
	AwaitingSource SessionPhase = iota
	AwaitingDestination
	SessionDone
)

func (p SessionPhase) String() string {
	switch p {
	case AwaitingSource:
		return "awaiting_source"
	case AwaitingDestination:
		return "awaiting_destination"
	case SessionDone:
		return "done"
	default:
		return ""
	}
}

// CallbackEvent carries the query parameters parsed from one OAuth redirect.
//
// Code is empty when the parameter was absent or not a single value.
type CallbackEvent struct {
	Code      string // Authorization code
	State     string // Anti-forgery token echoed by the provider
	AuthError string // Provider error code, e.g. access_denied
	ErrorDesc string // Provider error description
}

// CallbackStatus classifies how the session handled one redirect.
type CallbackStatus int

const (
	CallbackAccepted CallbackStatus = iota
	CallbackRejectedCode
	CallbackRejectedState
	CallbackExchangeFailed
	CallbackIgnored
)

func (s CallbackStatus) String() string {
	switch s {
	case CallbackAccepted:
		return "accepted"
	case CallbackRejectedCode:
		return "rejected_code"
	case CallbackRejectedState:
		return "rejected_state"
	case CallbackExchangeFailed:
		return "exchange_failed"
	case CallbackIgnored:
		return "ignored"
	default:
		return ""
	}
}

// OutcomeStatus classifies how a migration session ended. The command layer
// maps it to a process exit code; the orchestrator itself never exits.
type OutcomeStatus int

const (
	OutcomeCompleted OutcomeStatus = iota
	OutcomeDeclined
	OutcomeEmptySource
)

func (s OutcomeStatus) String() string {
	switch s {
	case OutcomeCompleted:
		return "completed"
	case OutcomeDeclined:
		return "declined"
	case OutcomeEmptySource:
		return "empty_source"
	default:
		return ""
	}
}

// Outcome is the terminal result of a migration session.
type Outcome struct {
	Status      OutcomeStatus
	RunID       string
	Collected   []services.Subscription
	Replication *ReplicationResult
}

// ConfirmFunc asks the user a yes/no question and reports the answer.
type ConfirmFunc func(prompt string) bool

// OpenURLFunc presents an authorization URL to the user, typically by
// launching a browser.
type OpenURLFunc func(url string) error

// OrchestratorOpts configures a migration session.
type OrchestratorOpts struct {
	Service  services.Service      // Subscription service, required
	Logger   *log.Logger           // Defaults to a stderr logger
	Confirm  ConfirmFunc           // Defaults to accepting every prompt
	OpenURL  OpenURLFunc           // Defaults to shared.OpenBrowser
	Progress chan<- ProgressUpdate // Optional, never blocks
}

// Orchestrator drives one migration session across two account authorizations.
//
// It owns all mutable session state: the current phase, the outstanding
// anti-forgery token, and the collected subscription list. The callback
// listener parses redirects into [CallbackEvent] values and delegates every
// decision to [Orchestrator.HandleCallback].
type Orchestrator struct {
	svc      services.Service
	logger   *log.Logger
	confirm  ConfirmFunc
	openURL  OpenURLFunc
	progress chan<- ProgressUpdate
	runID    string

	mu     sync.Mutex
	phase  SessionPhase
	state  string // outstanding anti-forgery token, empty once consumed
	tokens chan *oauth2.Token
}

// NewOrchestrator creates an Orchestrator, filling in defaults for every
// option but the service.
func NewOrchestrator(opts OrchestratorOpts) *Orchestrator {
	logger := opts.Logger
	if logger == nil {
		logger = shared.NewLogger(nil)
	}
	confirm := opts.Confirm
	if confirm == nil {
		confirm = func(string) bool { return true }
	}
	openURL := opts.OpenURL
	if openURL == nil {
		openURL = shared.OpenBrowser
	}

	runID := shared.GenerateID()
	return &Orchestrator{
		svc:      opts.Service,
		logger:   shared.WithLogger(logger, "run", runID[:8]),
		confirm:  confirm,
		openURL:  openURL,
		progress: opts.Progress,
		runID:    runID,
		tokens:   make(chan *oauth2.Token, 1),
	}
}

// RunID returns the unique identifier of this migration session.
func (o *Orchestrator) RunID() string { return o.runID }

// Phase returns the session phase at the time of the call.
func (o *Orchestrator) Phase() SessionPhase {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.phase
}

func (o *Orchestrator) sendProgress(update ProgressUpdate) {
	sendProgress(o.progress, update)
}

// HandleCallback classifies one authorization redirect against the current
// phase and anti-forgery token, exchanging the code when the redirect is
// valid. Accepting a callback consumes the outstanding token, so a duplicate
// redirect is rejected as stale; a failed exchange leaves the token
// outstanding so the user can retry the same authorization link.
func (o *Orchestrator) HandleCallback(ctx context.Context, event CallbackEvent) CallbackStatus {
	o.mu.Lock()
	phase := o.phase
	state := o.state
	o.mu.Unlock()

	if phase == SessionDone {
		o.logger.Warn("callback after session end ignored")
		return CallbackIgnored
	}

	if event.Code == "" {
		if event.AuthError != "" {
			o.logger.Error("authorization denied by provider", "error", event.AuthError, "description", event.ErrorDesc)
		} else {
			o.logger.Error("callback missing authorization code", "phase", phase)
		}
		return CallbackRejectedCode
	}

	if state == "" || event.State != state {
		o.logger.Error("callback state mismatch", "phase", phase)
		return CallbackRejectedState
	}

	token, err := o.svc.Exchange(ctx, event.Code)
	if err != nil {
		o.logger.Error("token exchange failed, authorize again with the same link", "phase", phase, "error", err)
		o.sendProgress(authRetryUpdate(phase))
		return CallbackExchangeFailed
	}

	o.mu.Lock()
	// The token is single use. A second redirect carrying the same state must
	// not race past the exchange above.
	if o.state != state {
		o.mu.Unlock()
		o.logger.Error("callback state mismatch", "phase", phase)
		return CallbackRejectedState
	}
	o.state = ""
	o.mu.Unlock()

	o.tokens <- token
	return CallbackAccepted
}

// Run drives a full migration session: confirm and authorize the source
// account, enumerate its subscriptions, confirm and authorize the destination
// account, then replicate. It blocks until the session reaches a terminal
// outcome or ctx is canceled.
//
// A declined prompt or an empty source collection is a terminal outcome, not
// an error; err is non-nil only for setup problems and context cancellation.
func (o *Orchestrator) Run(ctx context.Context) (*Outcome, error) {
	if o.svc == nil {
		return nil, fmt.Errorf("%w: subscription service not initialized", shared.ErrServiceUnavailable)
	}

	if !o.confirm("Sign in to the source account (the one to copy subscriptions from)?") {
		o.logger.Info("user declined source authorization")
		return &Outcome{Status: OutcomeDeclined, RunID: o.runID}, nil
	}

	token, err := o.beginPhase(ctx, AwaitingSource)
	if err != nil {
		return nil, err
	}

	o.logger.Info("source account authorized")
	o.sendProgress(fetchSubscriptionsUpdate())

	subs, err := o.svc.ListSubscriptions(ctx, token, nil)
	if err != nil {
		// Partial enumeration: keep whatever was collected before the failure.
		o.logger.Error("subscription enumeration incomplete", "collected", len(subs), "error", err)
	}

	if len(subs) == 0 {
		o.logger.Error("no subscriptions collected from the source account")
		o.finish()
		return &Outcome{Status: OutcomeEmptySource, RunID: o.runID}, nil
	}

	o.logger.Info("collected subscriptions", "count", len(subs))
	o.sendProgress(collectedUpdate(subs))

	prompt := fmt.Sprintf("Collected %d subscriptions. Sign in to the destination account and subscribe it to all of them?", len(subs))
	if !o.confirm(prompt) {
		o.logger.Info("user declined destination authorization")
		o.finish()
		return &Outcome{Status: OutcomeDeclined, RunID: o.runID, Collected: subs}, nil
	}

	destToken, err := o.beginPhase(ctx, AwaitingDestination)
	if err != nil {
		return nil, err
	}

	o.logger.Info("destination account authorized")
	result := o.Replicate(ctx, destToken, subs)

	o.finish()
	return &Outcome{
		Status:      OutcomeCompleted,
		RunID:       o.runID,
		Collected:   subs,
		Replication: result,
	}, nil
}

// beginPhase moves the session into phase, mints a fresh anti-forgery token
// (invalidating any link minted earlier), opens the authorization URL, and
// waits for an accepted callback to deliver a token. There is no timeout: an
// abandoned browser flow leaves the session waiting until ctx is canceled.
func (o *Orchestrator) beginPhase(ctx context.Context, phase SessionPhase) (*oauth2.Token, error) {
	o.mu.Lock()
	o.phase = phase
	o.state = shared.GenerateState()
	url := o.svc.GetAuthURL(o.state)
	o.mu.Unlock()

	o.logger.Info("waiting for authorization", "phase", phase)
	o.sendProgress(awaitAuthUpdate(phase, url))

	if err := o.openURL(url); err != nil {
		o.logger.Warn("could not open browser, visit the URL manually", "url", url, "error", err)
	}

	select {
	case token := <-o.tokens:
		o.sendProgress(authorizedUpdate(phase))
		return token, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// finish marks the session terminal. Later callbacks are ignored.
func (o *Orchestrator) finish() {
	o.mu.Lock()
	o.phase = SessionDone
	o.state = ""
	o.mu.Unlock()
}
