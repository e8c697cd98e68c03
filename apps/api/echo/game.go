package echoapi

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/Reema362/learn-spark-lms-sub001/core"
	"github.com/Reema362/learn-spark-lms-sub001/core/audit"
	"github.com/Reema362/learn-spark-lms-sub001/core/game"
)

type gameApi struct {
	svc      *game.Service
	auditSvc *audit.Service
	logger   core.Logger
	validate *validator.Validate
}

func registerGameAPI(g *echo.Group, jwt, identity echo.MiddlewareFunc, deps ServerDeps) {
	api := gameApi{
		svc:      deps.GameSvc,
		auditSvc: deps.AuditSvc,
		logger:   deps.Logger,
		validate: deps.Validate,
	}

	gg := g.Group("/games", jwt, identity)
	gg.GET("", api.query)
	gg.POST("", api.create, adminMiddleware())
	gg.DELETE("/:id", api.destroy, adminMiddleware())
	gg.POST("/sessions", api.recordSession)
	gg.GET("/stats", api.stats)
}

func (api *gameApi) query(ctx echo.Context) error {
	games, err := api.svc.Query(ctx.Request().Context())
	if err != nil {
		api.logger.Warn("listing games", err)
		games = []game.Game{}
	}
	return ctx.JSON(http.StatusOK, games)
}

func (api *gameApi) create(ctx echo.Context) error {
	var data game.NewGame
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewGame")
	}
	if err := data.Validate(api.validate); err != nil {
		return err
	}

	g, err := api.svc.Create(ctx.Request().Context(), data)
	if err != nil {
		return err
	}
	api.auditSvc.Record(ctx.Request().Context(), audit.ActionCreate, "game", g.ID, g.Title)
	return ctx.JSON(http.StatusCreated, g)
}

func (api *gameApi) destroy(ctx echo.Context) error {
	id := ctx.Param("id")
	if err := api.svc.Delete(ctx.Request().Context(), id); err != nil {
		return err
	}
	api.auditSvc.Record(ctx.Request().Context(), audit.ActionDelete, "game", id, "")
	return ctx.NoContent(http.StatusNoContent)
}

func (api *gameApi) recordSession(ctx echo.Context) error {
	var data game.NewSession
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewSession")
	}
	if err := data.Validate(api.validate); err != nil {
		return err
	}

	s, err := api.svc.RecordSession(ctx.Request().Context(), data)
	if err != nil {
		if errors.Cause(err) == game.ErrNotFound {
			return errHttpNotFound
		}
		return err
	}
	return ctx.JSON(http.StatusCreated, s)
}

func (api *gameApi) stats(ctx echo.Context) error {
	stats, err := api.svc.UserStats(ctx.Request().Context())
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, stats)
}
