// package testing contains shared testing utilities
package testing

import (
	"context"
	"errors"
	"os"
	"sync"
	"testing"

	"github.com/desertthunder/subx/internal/services"
	"golang.org/x/oauth2"
)

// MockService is a configurable test double for [services.Service].
//
// Zero value methods succeed with canned data; set the exported fields to
// steer individual calls. Recorded calls are safe for concurrent use.
type MockService struct {
	AuthBase      string
	Token         *oauth2.Token
	ExchangeErr   error
	Subscriptions []services.Subscription
	ListErr       error
	SubscribeErr  error
	Channel       *services.Channel
	ChannelErr    error

	mu             sync.Mutex
	exchangedCodes []string
	subscribedTo   []services.ChannelRef
}

func (m *MockService) GetAuthURL(state string) string {
	base := m.AuthBase
	if base == "" {
		base = "https://accounts.example.com/authorize"
	}
	return base + "?state=" + state
}

func (m *MockService) Exchange(ctx context.Context, code string) (*oauth2.Token, error) {
	m.mu.Lock()
	m.exchangedCodes = append(m.exchangedCodes, code)
	m.mu.Unlock()

	if m.ExchangeErr != nil {
		return nil, m.ExchangeErr
	}
	if m.Token != nil {
		return m.Token, nil
	}
	return &oauth2.Token{AccessToken: "mock_access_token"}, nil
}

func (m *MockService) ListSubscriptions(ctx context.Context, token *oauth2.Token, opts *services.ListOptions) ([]services.Subscription, error) {
	return m.Subscriptions, m.ListErr
}

func (m *MockService) Subscribe(ctx context.Context, token *oauth2.Token, channel services.ChannelRef) error {
	m.mu.Lock()
	m.subscribedTo = append(m.subscribedTo, channel)
	m.mu.Unlock()
	return m.SubscribeErr
}

func (m *MockService) SignedInChannel(ctx context.Context, token *oauth2.Token) (*services.Channel, error) {
	if m.ChannelErr != nil {
		return nil, m.ChannelErr
	}
	if m.Channel != nil {
		return m.Channel, nil
	}
	return &services.Channel{ID: "UCmock", Title: "Mock Channel"}, nil
}

func (m *MockService) Name() string { return "mock" }

// ExchangedCodes returns the authorization codes passed to Exchange, in order.
func (m *MockService) ExchangedCodes() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.exchangedCodes...)
}

// SubscribedTo returns the channels passed to Subscribe, in call order.
func (m *MockService) SubscribedTo() []services.ChannelRef {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]services.ChannelRef(nil), m.subscribedTo...)
}

// FWriter always returns an error on Write
type FWriter struct{}

func (f *FWriter) Write(p []byte) (n int, err error) {
	return 0, errors.New("write failed")
}

func MustGetwd(t *testing.T) string {
	t.Helper()
	wd, err := os.Getwd()
	if err != nil {
		t.Fatalf("Failed to get working directory: %v", err)
	}
	return wd
}

func MustChdir(t *testing.T, dir string) {
	t.Helper()
	if err := os.Chdir(dir); err != nil {
		t.Fatalf("Failed to change directory to %s: %v", dir, err)
	}
}

func AssertFileExists(t *testing.T, path string) {
	t.Helper()
	if _, err := os.Stat(path); os.IsNotExist(err) {
		t.Errorf("File does not exist: %s", path)
	}
}

func MustReadFile(t *testing.T, path string) string {
	t.Helper()
	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read file %s: %v", path, err)
	}
	return string(content)
}
