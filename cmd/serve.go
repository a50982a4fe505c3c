package main

import (
	"context"
	"fmt"
	"net/http"

	"github.com/desertthunder/tasktube/internal/server"
	"github.com/desertthunder/tasktube/internal/shared"
	"github.com/urfave/cli/v3"
)

// Serve runs the callback server as a long-lived process. Useful when the
// browser lives on another machine and the redirect has to stay reachable:
// the consent URL is printed instead of opened, and the credential is
// persisted as soon as the callback arrives. The server keeps running so the
// root page can confirm the result.
func (r *Runner) Serve(ctx context.Context, cmd *cli.Command) error {
	if r.session == nil {
		return fmt.Errorf("%w: set credentials.google.client_secrets_path in config.toml", shared.ErrMissingCredentials)
	}

	serverAddr := fmt.Sprintf("%s:%d", r.config.Server.Host, r.config.Server.Port)
	callbackURL := fmt.Sprintf("http://%s/oauth2callback", serverAddr)

	authURL, err := r.session.Begin(callbackURL)
	if err != nil {
		return err
	}

	callbackHandler := server.NewCallbackHandler(r.session)
	router := server.NewBasicRouter()
	router.Use(server.Logging(r.logger))
	router.Handler(callbackHandler)
	router.Handler(server.NewStatusHandler(r.store.IsValid))

	httpServer := &http.Server{
		Addr:    serverAddr,
		Handler: router,
	}

	go func() {
		result, ok := <-callbackHandler.Result()
		if !ok {
			return
		}
		if result.Error() != nil {
			r.logger.Error("authorization failed", "error", result.Error())
			return
		}
		if err := r.store.Save(result.Credential); err != nil {
			r.logger.Error("failed to persist credential", "error", err)
			return
		}
		r.logger.Info("authorization complete", "expiry", result.Credential.Expiry)
	}()

	go func() {
		<-ctx.Done()
		httpServer.Shutdown(context.Background())
	}()

	r.writePlain("→ Open this URL in a browser to authorize:\n%s\n\n", authURL)
	r.logger.Infof("listening at %v", serverAddr)
	if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("server error: %w", err)
	}
	return nil
}
