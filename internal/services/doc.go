// Package services defines the [Service] interface for subscription providers and implements it for the YouTube Data API.
//
// # Service Interface
//
// A provider authorizes accounts through the OAuth2 authorization code flow and
// exposes the signed-in account's subscription list for reading and writing.
// Callers depend on the interface so orchestration can be tested against fakes.
//
// # YouTube Implementation
//
// [YouTubeService] talks to the YouTube Data API v3. Authorization uses
// [oauth2.Config] built from the TOML credentials; data requests attach the
// bearer token per call rather than binding it to the client, because a
// migration run holds two tokens for the same provider in one process.
//
// Subscription enumeration walks pages of up to 50 items by continuation
// token. The walk is strictly sequential and order preserving; a failed page
// yields the records gathered so far together with the error.
//
// # Error Handling
//
// Services use typed errors from the shared package:
//   - [shared.ErrMissingCredentials] : client id or secret absent
//   - [shared.ErrAuthFailed] : code exchange produced no usable token
//   - [shared.ErrAPIRequest] : HTTP request failed or returned non-2xx
//   - [shared.ErrStalledPagination] : the API repeated a continuation token
package services
