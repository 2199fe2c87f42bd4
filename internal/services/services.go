// package services defines interface Service for interacting with HTTP APIs
//
// YouTube Data API v3
package services

import (
	"context"

	"golang.org/x/oauth2"
	"golang.org/x/time/rate"
)

// Service defines the interface for a subscription provider that can authorize
// accounts and read or write the signed-in account's subscription list.
type Service interface {
	// GetAuthURL returns the authorization URL a user visits to grant access,
	// carrying the anti-forgery state token for one redirect.
	GetAuthURL(state string) string

	// Exchange trades an authorization code for a bearer token.
	// Returns an error when the provider issues no usable token.
	Exchange(ctx context.Context, code string) (*oauth2.Token, error)

	// ListSubscriptions retrieves the account's subscription list in order.
	// A nil options value means pages of 50 with no pacing.
	ListSubscriptions(ctx context.Context, token *oauth2.Token, opts *ListOptions) ([]Subscription, error)

	// Subscribe subscribes the account behind token to the given channel.
	Subscribe(ctx context.Context, token *oauth2.Token, channel ChannelRef) error

	// SignedInChannel identifies the channel of the account behind token.
	SignedInChannel(ctx context.Context, token *oauth2.Token) (*Channel, error)

	// Name returns the name of the provider (e.g., "YouTube")
	Name() string
}

// Subscription represents one entry in an account's subscription list
type Subscription struct {
	ID      string     `json:"id"`
	Title   string     `json:"title"`
	Channel ChannelRef `json:"channel"`
}

// ChannelRef identifies the channel a subscription points at, shaped the way
// the API nests it inside a subscription snippet
type ChannelRef struct {
	Kind      string `json:"kind"`
	ChannelID string `json:"channelId"`
}

// Channel represents the channel belonging to an authenticated account
type Channel struct {
	ID    string `json:"id"`
	Title string `json:"title"`
}

// ListOptions tunes subscription enumeration.
type ListOptions struct {
	// PageSize caps items per page; zero or negative means the API maximum of 50.
	PageSize int
	// Limiter, when set, paces page fetches. The migration path leaves it nil.
	Limiter *rate.Limiter
}
