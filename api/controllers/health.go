package controllers

import (
	"net/http"

	"go.uber.org/multierr"

	"github.com/verdantcarry/veganbags-backend/api/responses"
	"github.com/verdantcarry/veganbags-backend/pkg/config"
	pkgerrors "github.com/verdantcarry/veganbags-backend/pkg/errors"
	"github.com/verdantcarry/veganbags-backend/pkg/logger"
)

func HealthLive(cfg *config.Config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-VeganBags-Env", cfg.App.Env)
		responses.WriteSuccess(w, map[string]string{"status": "live"})
	}
}

// HealthReady reports ready only when every registered dependency answers a
// ping. All failures are reported together, not just the first.
func HealthReady(cfg *config.Config, logg *logger.Logger, checks map[string]func(r *http.Request) error) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-VeganBags-Env", cfg.App.Env)

		var combined error
		failing := make([]string, 0)
		for name, check := range checks {
			if check == nil {
				continue
			}
			if err := check(r); err != nil {
				combined = multierr.Append(combined, err)
				failing = append(failing, name)
			}
		}

		if combined != nil {
			err := pkgerrors.Wrap(pkgerrors.CodeDependency, combined, "dependencies unavailable").
				WithDetails(map[string]any{"failing": failing})
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, map[string]string{"status": "ready"})
	}
}
