package app

import (
	"log/slog"
	"os"

	"github.com/shandysiswandi/otplogin/internal/login"
)

func (a *App) initModules() {
	a.router.GET("/health", a.health)

	if !a.config.GetBool("modules.login.enabled") {
		slog.Warn("module login is disabled")
		return
	}

	if err := login.New(login.Dependency{
		DBConn:      a.dbConn,
		Goroutine:   a.goroutine,
		Router:      a.router,
		Config:      a.config,
		Instrument:  a.ins,
		UID:         a.uid,
		UUID:        a.uuid,
		Hasher:      a.hasher,
		Code:        a.code,
		Clock:       a.clock,
		Validator:   a.validator,
		Idempotency: a.idemp,
		Messaging:   a.messaging,
		Mail:        a.mail,
	}); err != nil {
		slog.Error("failed to init module login", "error", err)
		os.Exit(1)
	}
}
