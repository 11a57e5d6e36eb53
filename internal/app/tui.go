package app

import "github.com/adanyl0v/go-todo-client/internal/tui"

func MustRunTUI() {
	err := tui.Run(globalLogger, globalAuthService, globalTodoService)
	if err != nil {
		globalLogger.Error().
			Err(err).
			Msg("tui exited with error")
		panic(err)
	}
	globalLogger.Info().Msg("tui exited")
}
