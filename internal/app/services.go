package app

import (
	"context"

	"github.com/adanyl0v/go-todo-client/internal/api"
	"github.com/adanyl0v/go-todo-client/internal/config"
	"github.com/adanyl0v/go-todo-client/internal/credstore"
	"github.com/adanyl0v/go-todo-client/internal/services"
)

var (
	globalAuthService services.AuthService
	globalTodoService services.TodoService
)

// MustInitServices wires the credential store, the API client and the
// two services, then restores any persisted session. Restore completes
// before the TUI starts, so the first fetch always observes it.
func MustInitServices() {
	cfg := config.Global()

	credsPath := cfg.Credentials.File
	if credsPath == "" {
		var err error
		credsPath, err = credstore.DefaultPath()
		if err != nil {
			globalLogger.Error().
				Err(err).
				Msg("failed to resolve credentials path")
			panic(err)
		}
	}
	creds := credstore.NewFileStore(globalLogger, credsPath)

	client := api.NewClient(globalLogger, cfg.API)

	globalAuthService = services.NewAuthService(globalLogger, client, creds)
	globalTodoService = services.NewTodoService(globalLogger, client, globalAuthService)

	globalAuthService.Restore(context.Background())

	globalLogger.Info().
		Str("base_url", cfg.API.BaseURL).
		Str("credentials", credsPath).
		Bool("session_restored", globalAuthService.Session().Active()).
		Msg("initialized services")
}
