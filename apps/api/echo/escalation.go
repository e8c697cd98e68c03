package echoapi

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/Reema362/learn-spark-lms-sub001/core"
	"github.com/Reema362/learn-spark-lms-sub001/core/audit"
	"github.com/Reema362/learn-spark-lms-sub001/core/escalation"
)

type escalationApi struct {
	svc      *escalation.Service
	auditSvc *audit.Service
	logger   core.Logger
	validate *validator.Validate
}

func registerEscalationAPI(g *echo.Group, jwt, identity echo.MiddlewareFunc, deps ServerDeps) {
	api := escalationApi{
		svc:      deps.EscalationSvc,
		auditSvc: deps.AuditSvc,
		logger:   deps.Logger,
		validate: deps.Validate,
	}

	eg := g.Group("/escalations", jwt, identity)
	eg.GET("", api.query)
	eg.GET("/:id", api.retrieve)
	eg.POST("", api.create, adminMiddleware())
	eg.PUT("/:id", api.update, adminMiddleware())
	eg.DELETE("/:id", api.destroy, adminMiddleware())
}

func (api *escalationApi) query(ctx echo.Context) error {
	escs, err := api.svc.Query(ctx.Request().Context())
	if err != nil {
		api.logger.Warn("listing escalations", err)
		escs = []escalation.Escalation{}
	}
	return ctx.JSON(http.StatusOK, escs)
}

func (api *escalationApi) retrieve(ctx echo.Context) error {
	esc, err := api.svc.GetByID(ctx.Request().Context(), ctx.Param("id"))
	if err != nil {
		if errors.Cause(err) == escalation.ErrNotFound {
			return errHttpNotFound
		}
		return err
	}
	return ctx.JSON(http.StatusOK, esc)
}

func (api *escalationApi) create(ctx echo.Context) error {
	var data escalation.NewEscalation
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewEscalation")
	}
	if err := data.Validate(api.validate); err != nil {
		return err
	}

	esc, err := api.svc.Create(ctx.Request().Context(), data)
	if err != nil {
		return err
	}
	api.auditSvc.Record(ctx.Request().Context(), audit.ActionCreate, "escalation", esc.ID, esc.Title)
	return ctx.JSON(http.StatusCreated, esc)
}

func (api *escalationApi) update(ctx echo.Context) error {
	var data escalation.UpdateEscalation
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to UpdateEscalation")
	}
	if err := data.Validate(api.validate); err != nil {
		return err
	}

	esc, err := api.svc.Update(ctx.Request().Context(), ctx.Param("id"), data)
	if err != nil {
		return err
	}
	api.auditSvc.Record(ctx.Request().Context(), audit.ActionUpdate, "escalation", esc.ID, esc.Title)
	return ctx.JSON(http.StatusOK, esc)
}

func (api *escalationApi) destroy(ctx echo.Context) error {
	id := ctx.Param("id")
	if err := api.svc.Delete(ctx.Request().Context(), id); err != nil {
		return err
	}
	api.auditSvc.Record(ctx.Request().Context(), audit.ActionDelete, "escalation", id, "")
	return ctx.NoContent(http.StatusNoContent)
}
