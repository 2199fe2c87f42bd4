// YouTube Data API implementation of [Service]
//
// Response types based on https://developers.google.com/youtube/v3/docs/subscriptions
package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/desertthunder/subx/internal/shared"
	"golang.org/x/oauth2"
	"golang.org/x/time/rate"
)

const (
	youtubeAuthURL  = "https://accounts.google.com/o/oauth2/v2/auth"
	youtubeTokenURL = "https://oauth2.googleapis.com/token"
	youtubeBaseURL  = "https://www.googleapis.com/youtube/v3"
	youtubeScope    = "https://www.googleapis.com/auth/youtube"

	maxPageSize = 50
)

// SubscriptionSnippet carries the fields of a subscription resource the
// migration needs: the channel's display title and its resource reference.
type SubscriptionSnippet struct {
	Title      string     `json:"title"`
	ResourceID ChannelRef `json:"resourceId"`
}

// YouTubeSubscription represents a subscription resource returned by the API.
type YouTubeSubscription struct {
	ID      string              `json:"id"`
	Snippet SubscriptionSnippet `json:"snippet"`
}

// SubscriptionPage is one page of the subscriptions collection. An empty
// NextPageToken marks the final page.
type SubscriptionPage struct {
	NextPageToken string                `json:"nextPageToken"`
	Items         []YouTubeSubscription `json:"items"`
}

// YouTubeChannel represents a channel resource returned by the API.
type YouTubeChannel struct {
	ID      string         `json:"id"`
	Snippet channelSnippet `json:"snippet"`
}

type channelSnippet struct {
	Title string `json:"title"`
}

type channelListResponse struct {
	Items []YouTubeChannel `json:"items"`
}

type subscribeSnippet struct {
	ResourceID ChannelRef `json:"resourceId"`
}

type subscribeRequest struct {
	Snippet subscribeSnippet `json:"snippet"`
}

// YouTubeService implements the Service interface for the YouTube Data API.
// Uses [oauth2] for the authorization code flow; data methods take the bearer
// token explicitly so one client can serve both accounts of a migration.
type YouTubeService struct {
	config     *oauth2.Config
	baseURL    string
	httpClient *http.Client
}

// NewYouTubeService creates a YouTube service from Google OAuth client
// credentials. Endpoint URLs left empty fall back to the public Google ones.
func NewYouTubeService(creds shared.YouTubeConfig, client *http.Client) (*YouTubeService, error) {
	if creds.ClientID == "" {
		return nil, fmt.Errorf("%w: client_id", shared.ErrMissingCredentials)
	}

	if creds.ClientSecret == "" {
		return nil, fmt.Errorf("%w: client_secret", shared.ErrMissingCredentials)
	}

	redirectURI := creds.RedirectURI
	if redirectURI == "" {
		redirectURI = "http://localhost:8080/callback"
	}

	scope := creds.Scope
	if scope == "" {
		scope = youtubeScope
	}

	authURL := creds.AuthURL
	if authURL == "" {
		authURL = youtubeAuthURL
	}

	tokenURL := creds.TokenURL
	if tokenURL == "" {
		tokenURL = youtubeTokenURL
	}

	baseURL := creds.APIBaseURL
	if baseURL == "" {
		baseURL = youtubeBaseURL
	}

	if client == nil {
		client = http.DefaultClient
	}

	config := &oauth2.Config{
		ClientID:     creds.ClientID,
		ClientSecret: creds.ClientSecret,
		RedirectURL:  redirectURI,
		Scopes:       []string{scope},
		Endpoint: oauth2.Endpoint{
			AuthURL:  authURL,
			TokenURL: tokenURL,
		},
	}

	return &YouTubeService{
		config:     config,
		baseURL:    baseURL,
		httpClient: client,
	}, nil
}

func (s *YouTubeService) Name() string {
	return "YouTube"
}

// GetAuthURL returns the OAuth2 authorization URL for user consent.
func (s *YouTubeService) GetAuthURL(state string) string {
	return s.config.AuthCodeURL(state)
}

// Exchange trades an authorization code for a bearer token. The token
// endpoint receives grant_type=authorization_code with the configured client
// credentials and redirect URI.
func (s *YouTubeService) Exchange(ctx context.Context, code string) (*oauth2.Token, error) {
	ctx = context.WithValue(ctx, oauth2.HTTPClient, s.httpClient)

	token, err := s.config.Exchange(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", shared.ErrAuthFailed, err)
	}

	if token.AccessToken == "" {
		return nil, fmt.Errorf("%w: token response missing access token", shared.ErrAuthFailed)
	}

	return token, nil
}

// doRequest performs an authenticated HTTP request to the YouTube Data API.
func (s *YouTubeService) doRequest(ctx context.Context, token *oauth2.Token, method, endpoint string, body any, result any) error {
	if token == nil || token.AccessToken == "" {
		return fmt.Errorf("%w: request without access token", shared.ErrAuthFailed)
	}

	apiURL := s.baseURL + endpoint

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request body: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, apiURL, reader)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Authorization", "Bearer "+token.AccessToken)
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("%w: status %d", shared.ErrAPIRequest, resp.StatusCode)
	}

	if result != nil {
		if err := json.NewDecoder(resp.Body).Decode(result); err != nil {
			return fmt.Errorf("failed to decode response: %w", err)
		}
	}

	return nil
}

// Subscriptions retrieves a single page of the signed-in account's
// subscriptions, requesting the id and snippet parts.
func (s *YouTubeService) Subscriptions(ctx context.Context, token *oauth2.Token, pageToken string, limit int) (*SubscriptionPage, error) {
	if limit <= 0 || limit > maxPageSize {
		limit = maxPageSize
	}

	endpoint := fmt.Sprintf("/subscriptions?part=id,snippet&mine=true&maxResults=%d", limit)
	if pageToken != "" {
		endpoint += "&pageToken=" + url.QueryEscape(pageToken)
	}

	var page SubscriptionPage
	if err := s.doRequest(ctx, token, "GET", endpoint, nil, &page); err != nil {
		return nil, err
	}

	return &page, nil
}

// ListSubscriptions retrieves the account's full subscription list, walking
// pages strictly in sequence and preserving item order.
//
// A page failure returns the records accumulated so far alongside the error,
// so the caller can proceed with a partial list. A continuation token equal
// to the one just used would loop forever; enumeration stops there with
// [shared.ErrStalledPagination] and the partial list.
func (s *YouTubeService) ListSubscriptions(ctx context.Context, token *oauth2.Token, opts *ListOptions) ([]Subscription, error) {
	limit := maxPageSize
	var limiter *rate.Limiter
	if opts != nil {
		if opts.PageSize > 0 {
			limit = opts.PageSize
		}
		limiter = opts.Limiter
	}

	var all []Subscription
	var pageToken string

	for {
		if limiter != nil {
			if err := limiter.Wait(ctx); err != nil {
				return all, fmt.Errorf("rate limit wait: %w", err)
			}
		}

		page, err := s.Subscriptions(ctx, token, pageToken, limit)
		if err != nil {
			return all, err
		}

		for _, item := range page.Items {
			all = append(all, Subscription{
				ID:      item.ID,
				Title:   item.Snippet.Title,
				Channel: item.Snippet.ResourceID,
			})
		}

		if page.NextPageToken == "" {
			break
		}

		if page.NextPageToken == pageToken {
			return all, fmt.Errorf("%w: continuation token %q repeated", shared.ErrStalledPagination, pageToken)
		}
		pageToken = page.NextPageToken
	}

	return all, nil
}

// Subscribe creates a subscription to the given channel for the account
// behind token. The response body is not interpreted beyond the status code.
func (s *YouTubeService) Subscribe(ctx context.Context, token *oauth2.Token, channel ChannelRef) error {
	body := subscribeRequest{Snippet: subscribeSnippet{ResourceID: channel}}
	return s.doRequest(ctx, token, "POST", "/subscriptions?part=snippet", body, nil)
}

// SignedInChannel returns the channel of the account the token belongs to.
func (s *YouTubeService) SignedInChannel(ctx context.Context, token *oauth2.Token) (*Channel, error) {
	var response channelListResponse
	if err := s.doRequest(ctx, token, "GET", "/channels?part=snippet&mine=true", nil, &response); err != nil {
		return nil, err
	}

	if len(response.Items) == 0 {
		return nil, fmt.Errorf("%w: no channel for authenticated account", shared.ErrAPIRequest)
	}

	item := response.Items[0]
	return &Channel{ID: item.ID, Title: item.Snippet.Title}, nil
}
