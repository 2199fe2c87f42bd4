// Package tasks orchestrates subscription migration between two YouTube accounts with real-time progress reporting.
//
// # Session State Machine
//
// An [Orchestrator] owns one migration session and its two-phase flow:
//
//  1. [AwaitingSource] : authorize the account whose subscriptions are copied
//     - Mints a fresh anti-forgery token and opens the authorization URL
//     - An accepted callback exchanges the code and consumes the token
//     - Enumerates the full subscription list (partial on page failure)
//
//  2. [AwaitingDestination] : authorize the account that receives them
//     - A second token is minted, invalidating the source-phase link
//     - On acceptance the replicator subscribes the account to every channel
//
// Redirects are parsed into [CallbackEvent] values by the server package and
// classified by [Orchestrator.HandleCallback]; the state machine is testable
// with synthetic events and no listener. The returned [Outcome] classifies
// how the session ended, leaving process exit codes to the command layer.
//
// # Replication
//
// [Orchestrator.Replicate] fans out one goroutine per subscription and joins
// into a result indexed by input position. Item failures are recorded and
// logged, never escalated: the aggregate completes only after every request
// settles.
//
// # Progress Reporting
//
// All operations use non-blocking channels for progress updates
//
// The [ProgressUpdate] struct contains phase, step counters, messages, and optional data for advanced UI rendering.
// Updates use select with default to prevent blocking.
package tasks
