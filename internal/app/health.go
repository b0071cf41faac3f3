package app

import (
	"context"
	"time"

	"github.com/shandysiswandi/otplogin/internal/pkg/goerror"
	"github.com/shandysiswandi/otplogin/internal/pkg/router"
)

var (
	errDraining    = goerror.NewBusiness("Service is shutting down", goerror.CodeUnavailable)
	errUnavailable = goerror.NewBusiness("Service is unavailable", goerror.CodeUnavailable)
)

type healthResponse struct {
	Database string `json:"database"`
	Redis    string `json:"redis,omitempty"`
}

func (healthResponse) Message() string { return "OK" }

func (a *App) health(r *router.Request) (any, error) {
	if a.draining.Load() {
		return nil, errDraining
	}

	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	resp := healthResponse{Database: "up"}
	if err := a.dbConn.Ping(ctx); err != nil {
		return nil, errUnavailable
	}
	if a.cacheConn != nil {
		if err := a.cacheConn.Ping(ctx).Err(); err != nil {
			return nil, errUnavailable
		}
		resp.Redis = "up"
	}

	return resp, nil
}
