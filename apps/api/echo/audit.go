package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Reema362/learn-spark-lms-sub001/core"
	"github.com/Reema362/learn-spark-lms-sub001/core/audit"
)

type auditApi struct {
	svc    *audit.Service
	logger core.Logger
}

func registerAuditAPI(g *echo.Group, jwt, identity echo.MiddlewareFunc, deps ServerDeps) {
	api := auditApi{svc: deps.AuditSvc, logger: deps.Logger}

	ag := g.Group("/audit-logs", jwt, identity, adminMiddleware())
	ag.GET("", api.query)
}

func (api *auditApi) query(ctx echo.Context) error {
	entries, err := api.svc.Query(ctx.Request().Context())
	if err != nil {
		if core.IsPermissionDenied(err) {
			return err
		}
		api.logger.Warn("listing audit entries", err)
		entries = []audit.Entry{}
	}
	return ctx.JSON(http.StatusOK, entries)
}
