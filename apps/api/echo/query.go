package echoapi

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/Reema362/learn-spark-lms-sub001/core"
	"github.com/Reema362/learn-spark-lms-sub001/core/audit"
	"github.com/Reema362/learn-spark-lms-sub001/core/query"
)

type queryApi struct {
	svc      *query.Service
	auditSvc *audit.Service
	logger   core.Logger
	validate *validator.Validate
}

func registerQueryAPI(g *echo.Group, jwt, identity echo.MiddlewareFunc, deps ServerDeps) {
	api := queryApi{
		svc:      deps.QuerySvc,
		auditSvc: deps.AuditSvc,
		logger:   deps.Logger,
		validate: deps.Validate,
	}

	qg := g.Group("/queries", jwt, identity)
	qg.GET("", api.query)
	qg.POST("", api.create)
	qg.PUT("/:id", api.update, adminMiddleware())
	qg.DELETE("/:id", api.destroy, adminMiddleware())
}

// query lists support queries: all of them for admins, own submissions for
// learners.
func (api *queryApi) query(ctx echo.Context) error {
	queries, err := api.svc.Query(ctx.Request().Context())
	if err != nil {
		api.logger.Warn("listing queries", err)
		queries = []query.Query{}
	}
	return ctx.JSON(http.StatusOK, queries)
}

func (api *queryApi) create(ctx echo.Context) error {
	var data query.NewQuery
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewQuery")
	}
	if err := data.Validate(api.validate); err != nil {
		return err
	}

	q, err := api.svc.Create(ctx.Request().Context(), data)
	if err != nil {
		return err
	}
	api.auditSvc.Record(ctx.Request().Context(), audit.ActionCreate, "query", q.ID, q.Subject)
	return ctx.JSON(http.StatusCreated, q)
}

func (api *queryApi) update(ctx echo.Context) error {
	var data query.UpdateQuery
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to UpdateQuery")
	}
	if err := data.Validate(api.validate); err != nil {
		return err
	}

	q, err := api.svc.Update(ctx.Request().Context(), ctx.Param("id"), data)
	if err != nil {
		return err
	}
	api.auditSvc.Record(ctx.Request().Context(), audit.ActionUpdate, "query", q.ID, q.Subject)
	return ctx.JSON(http.StatusOK, q)
}

func (api *queryApi) destroy(ctx echo.Context) error {
	id := ctx.Param("id")
	if err := api.svc.Delete(ctx.Request().Context(), id); err != nil {
		return err
	}
	api.auditSvc.Record(ctx.Request().Context(), audit.ActionDelete, "query", id, "")
	return ctx.NoContent(http.StatusNoContent)
}
