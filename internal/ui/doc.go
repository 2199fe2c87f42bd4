// Package ui implements an interactive terminal interface using bubbletea's Elm architecture.
//
// The TUI walks a single migration session through four views:
//  1. [ConfirmView] : Answer the session's yes/no prompts; before the destination
//     sign-in the collected subscriptions appear in a scrollable list
//  2. [AuthView] : Wait for browser authorization, with the URL as a fallback
//  3. [ProgressView] : Monitor enumeration and replication, one line per channel
//  4. [ResultView] : Display the outcome, including channels that failed
//
// The (view) [Model] implements bubbletea/Elm's standard Init/Update/View pattern.
// The session runs in its own goroutine and communicates over three channels
// (prompts, progress, outcome); the model re-arms a listener command per channel
// after every message, so the Elm loop stays responsive while the session blocks
// on a prompt.
//
// Keyboard navigation uses vim-style bindings (j/k, y/n, q) with contextual help
// displayed via charmbracelet/bubbles/help.
package ui
