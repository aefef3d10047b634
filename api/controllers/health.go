package controllers

import (
	"net/http"

	"github.com/salesdeskhq/salesdesk-backend/api/responses"
	"github.com/salesdeskhq/salesdesk-backend/pkg/db"
	pkgerrors "github.com/salesdeskhq/salesdesk-backend/pkg/errors"
	"github.com/salesdeskhq/salesdesk-backend/pkg/logger"
)

// HealthController serves liveness and readiness probes.
type HealthController struct {
	pinger db.Pinger
	logg   *logger.Logger
}

func NewHealthController(pinger db.Pinger, logg *logger.Logger) *HealthController {
	return &HealthController{pinger: pinger, logg: logg}
}

// Live reports process liveness; it never touches dependencies.
func (c *HealthController) Live(w http.ResponseWriter, r *http.Request) {
	responses.WriteSuccess(w, map[string]string{"status": "ok"})
}

// Ready reports whether the datasource is reachable.
func (c *HealthController) Ready(w http.ResponseWriter, r *http.Request) {
	if c.pinger != nil {
		if err := c.pinger.Ping(r.Context()); err != nil {
			responses.WriteError(r.Context(), c.logg, w, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "database unreachable"))
			return
		}
	}
	responses.WriteSuccess(w, map[string]string{"status": "ready"})
}
