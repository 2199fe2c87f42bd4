package main

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/desertthunder/subx/internal/server"
	"github.com/desertthunder/subx/internal/shared"
	"github.com/urfave/cli/v3"
	"golang.org/x/oauth2"
)

// AuthTest runs the full OAuth flow and verifies the credentials by looking up
// the signed-in account's channel.
func (r *Runner) AuthTest(ctx context.Context, cmd *cli.Command) error {
	if r.youtube == nil {
		return fmt.Errorf("%w: YouTube service not initialized, run 'subx setup' first", shared.ErrServiceUnavailable)
	}

	token, err := r.doOAuth(ctx, "verification")
	if err != nil {
		return err
	}

	channel, err := r.youtube.SignedInChannel(ctx, token)
	if err != nil {
		return fmt.Errorf("%w: %v", shared.ErrAPIRequest, err)
	}

	r.writePlainln("✓ Authorization successful")
	r.writePlain("Signed in as: %s\n", channel.Title)
	r.writePlain("Channel ID: %s\n", channel.ID)

	return nil
}

// doOAuth executes a single OAuth2 authorization flow with a local HTTP server
func (r *Runner) doOAuth(ctx context.Context, prefix string) (*oauth2.Token, error) {
	state := shared.GenerateState()

	authURL := r.youtube.GetAuthURL(state)
	oauthHandler := server.NewOAuthHandler(r.youtube.Exchange, state)
	router := server.NewBasicRouter()
	router.Use(server.RequestLogger(r.logger))
	router.Handler(oauthHandler)
	router.Handler(&server.RootHandler{})

	httpServer := &http.Server{
		Addr:    r.config.Server.Addr(),
		Handler: router,
	}

	serverErrors := make(chan error, 1)
	go func() {
		r.logger.Infof("starting OAuth server for %s at %v", prefix, httpServer.Addr)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serverErrors <- err
		}
	}()

	time.Sleep(100 * time.Millisecond)

	r.writePlain("→ Opening browser for %s...\n", prefix)
	if err := shared.OpenBrowser(authURL); err != nil {
		r.logger.Warnf("failed to open browser automatically %v", err)
		r.writePlainln("⚠ Could not open browser automatically.")
		r.writePlain("Please open this URL in your browser:\n%s\n\n", authURL)
	}

	r.writePlain("→ Waiting for authorization (2 minute timeout)...\n")

	timeout := time.NewTimer(2 * time.Minute)
	defer timeout.Stop()

	var result server.OAuthResult

	select {
	case result = <-oauthHandler.Result():
		// Got result from callback
	case err := <-serverErrors:
		return nil, fmt.Errorf("server error: %w", err)
	case <-timeout.C:
		return nil, fmt.Errorf("%w: authorization timed out after 2 minutes", shared.ErrTimeout)
	case <-ctx.Done():
		return nil, ctx.Err()
	}

	r.shutdownCallbackServer(httpServer, r.logger)

	if result.Error() != nil {
		return nil, fmt.Errorf("authorization failed: %w", result.Error())
	}

	if result.Token == nil {
		return nil, fmt.Errorf("no token received")
	}

	return result.Token, nil
}
