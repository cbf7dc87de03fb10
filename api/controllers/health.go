package controllers

import (
	"context"
	"net/http"

	"github.com/angelmondragon/stockroom/api/responses"
	"github.com/angelmondragon/stockroom/pkg/config"
	pkgerrors "github.com/angelmondragon/stockroom/pkg/errors"
)

const envHeader = "X-Stockroom-Env"

// Pinger is satisfied by the database and redis clients.
type Pinger interface {
	Ping(ctx context.Context) error
}

func HealthLive(cfg *config.Config, rw *responses.Writer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set(envHeader, cfg.App.Env)
		rw.Success(w, map[string]string{"status": "live"})
	}
}

// HealthReady pings the database and, when configured, redis. Nil pingers
// are skipped.
func HealthReady(cfg *config.Config, rw *responses.Writer, database Pinger, cache Pinger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set(envHeader, cfg.App.Env)
		if database != nil {
			if err := database.Ping(r.Context()); err != nil {
				rw.Error(r.Context(), w, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "database ping"))
				return
			}
		}
		if cache != nil {
			if err := cache.Ping(r.Context()); err != nil {
				rw.Error(r.Context(), w, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "redis ping"))
				return
			}
		}
		rw.Success(w, map[string]string{"status": "ready"})
	}
}
