package ui

import (
	"github.com/desertthunder/subx/internal/tasks"
)

// ConfirmRequest carries one interactive prompt from the migration session to
// the TUI. The session goroutine blocks until an answer is sent on Reply.
type ConfirmRequest struct {
	Prompt string
	Reply  chan bool
}

// SessionResult carries the terminal outcome of the migration session.
type SessionResult struct {
	Outcome *tasks.Outcome
	Err     error
}

// Confirmer returns a [tasks.ConfirmFunc] that forwards every prompt to the
// TUI over requests and waits for the answer.
func Confirmer(requests chan<- ConfirmRequest) tasks.ConfirmFunc {
	return func(prompt string) bool {
		reply := make(chan bool, 1)
		requests <- ConfirmRequest{Prompt: prompt, Reply: reply}
		return <-reply
	}
}

// confirmRequestMsg surfaces a pending [ConfirmRequest] in the Elm loop.
type confirmRequestMsg ConfirmRequest

// progressUpdateMsg wraps a [tasks.ProgressUpdate] from the session.
type progressUpdateMsg tasks.ProgressUpdate

// sessionDoneMsg wraps the [SessionResult] delivered when the session ends.
type sessionDoneMsg SessionResult
