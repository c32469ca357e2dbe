package app

import (
	"net/http"

	"github.com/metinatakli/venue-checkout/api"
)

func (app *Application) GetHealth(w http.ResponseWriter, r *http.Request) {
	status := "UP"
	if err := app.redis.Ping(r.Context()).Err(); err != nil {
		app.contextGetLogger(r).Warn("health check could not reach redis", "error", err)
		status = "DEGRADED"
	}

	resp := api.HealthcheckResponse{
		Status: status,
		SystemInfo: api.SystemInfo{
			Version:     version,
			Environment: app.config.Env,
		},
	}

	err := app.writeJSON(w, http.StatusOK, resp, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}
