package main

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/desertthunder/tasktube/internal/auth"
	"github.com/desertthunder/tasktube/internal/server"
	"github.com/desertthunder/tasktube/internal/shared"
	"github.com/urfave/cli/v3"
)

// AuthLogin runs the interactive OAuth flow: a local callback server is
// started, the browser opened on the consent URL, and the resulting
// credential persisted to the store.
func (r *Runner) AuthLogin(ctx context.Context, cmd *cli.Command) error {
	if r.session == nil {
		return fmt.Errorf("%w: set credentials.google.client_secrets_path in config.toml", shared.ErrMissingCredentials)
	}
	if r.store == nil {
		return fmt.Errorf("%w: credential store not initialized", shared.ErrMissingConfig)
	}

	cred, err := r.doOAuth(ctx)
	if err != nil {
		return err
	}

	if err := r.store.Save(cred); err != nil {
		return fmt.Errorf("failed to persist credential: %w", err)
	}

	r.logger.Info("authorization complete", "expiry", cred.Expiry)
	r.writePlain("✓ Authorization successful\n")
	r.writePlain("Access expires: %s\n", cred.Expiry.Format(time.RFC1123))
	return nil
}

// AuthStatus reports whether a usable credential is stored, without
// touching the network.
func (r *Runner) AuthStatus(ctx context.Context, cmd *cli.Command) error {
	if r.store == nil {
		return fmt.Errorf("%w: credential store not initialized", shared.ErrMissingConfig)
	}

	cred := r.store.Load(ctx)

	if cmd.Bool("json") {
		status := map[string]any{"authenticated": cred.Valid()}
		if cred != nil {
			status["expiry"] = cred.Expiry
			status["scopes"] = cred.Scopes
		}
		return r.writeJSON(status, true)
	}

	if cred == nil {
		r.writePlain("✗ Not authenticated\n")
		r.writePlain("Run 'tasktube auth login' to connect your Google account.\n")
		return nil
	}

	r.writePlain("✓ Authenticated\n")
	r.writePlain("Access expires: %s\n", cred.Expiry.Format(time.RFC1123))
	for _, scope := range cred.Scopes {
		r.writePlain("Scope: %s\n", scope)
	}
	return nil
}

// AuthLogout removes the credential from the file store and the mirror.
func (r *Runner) AuthLogout(ctx context.Context, cmd *cli.Command) error {
	if r.store == nil {
		return fmt.Errorf("%w: credential store not initialized", shared.ErrMissingConfig)
	}

	if err := r.store.Clear(); err != nil {
		return fmt.Errorf("failed to clear credential: %w", err)
	}

	r.logger.Info("stored credential removed")
	return r.writePlain("✓ Logged out\n")
}

// doOAuth executes the OAuth2 authorization flow with a local HTTP server
func (r *Runner) doOAuth(ctx context.Context) (*auth.Credential, error) {
	serverAddr := fmt.Sprintf("%s:%d", r.config.Server.Host, r.config.Server.Port)
	callbackURL := fmt.Sprintf("http://%s/oauth2callback", serverAddr)

	authURL, err := r.session.Begin(callbackURL)
	if err != nil {
		return nil, err
	}

	callbackHandler := server.NewCallbackHandler(r.session)
	router := server.NewBasicRouter()
	router.Handler(callbackHandler)
	router.Handler(server.NewStatusHandler(r.store.IsValid))

	httpServer := &http.Server{
		Addr:    serverAddr,
		Handler: router,
	}

	serverErrors := make(chan error, 1)
	go func() {
		r.logger.Infof("starting OAuth callback server at %v", serverAddr)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serverErrors <- err
		}
	}()

	time.Sleep(100 * time.Millisecond)

	r.writePlain("→ Opening browser for Google authorization...\n")
	if err := shared.OpenBrowser(authURL); err != nil {
		r.logger.Warnf("failed to open browser automatically %v", err)
		r.writePlainln("⚠ Could not open browser automatically.")
		r.writePlain("Please open this URL in your browser:\n%s\n\n", authURL)
	}

	r.writePlain("→ Waiting for authorization (2 minute timeout)...\n")

	timeout := time.NewTimer(2 * time.Minute)
	defer timeout.Stop()

	var result server.CallbackResult

	select {
	case result = <-callbackHandler.Result():
		// Got result from callback
	case err := <-serverErrors:
		return nil, fmt.Errorf("server error: %w", err)
	case <-timeout.C:
		return nil, fmt.Errorf("%w: authorization timed out after 2 minutes", shared.ErrTimeout)
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		r.logger.Warn("error shutting down server", "error", err)
	}

	if result.Error() != nil {
		return nil, fmt.Errorf("authorization failed: %w", result.Error())
	}

	if result.Credential == nil {
		return nil, fmt.Errorf("no credential received")
	}

	return result.Credential, nil
}
