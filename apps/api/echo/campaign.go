package echoapi

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/Reema362/learn-spark-lms-sub001/core"
	"github.com/Reema362/learn-spark-lms-sub001/core/audit"
	"github.com/Reema362/learn-spark-lms-sub001/core/campaign"
)

type campaignApi struct {
	svc      *campaign.Service
	auditSvc *audit.Service
	logger   core.Logger
	validate *validator.Validate
}

func registerCampaignAPI(g *echo.Group, jwt, identity echo.MiddlewareFunc, deps ServerDeps) {
	api := campaignApi{
		svc:      deps.CampaignSvc,
		auditSvc: deps.AuditSvc,
		logger:   deps.Logger,
		validate: deps.Validate,
	}

	cg := g.Group("/campaigns", jwt, identity)
	cg.GET("", api.query)
	cg.GET("/:id", api.retrieve)
	cg.POST("", api.create)
	cg.PUT("/:id", api.update)
	cg.DELETE("/:id", api.destroy)
}

func (api *campaignApi) query(ctx echo.Context) error {
	campaigns, err := api.svc.Query(ctx.Request().Context())
	if err != nil {
		api.logger.Warn("listing campaigns", err)
		campaigns = []campaign.Campaign{}
	}
	return ctx.JSON(http.StatusOK, campaigns)
}

func (api *campaignApi) retrieve(ctx echo.Context) error {
	c, err := api.svc.GetByID(ctx.Request().Context(), ctx.Param("id"))
	if err != nil {
		if errors.Cause(err) == campaign.ErrNotFound {
			return errHttpNotFound
		}
		return err
	}
	return ctx.JSON(http.StatusOK, c)
}

func (api *campaignApi) create(ctx echo.Context) error {
	var data campaign.NewCampaign
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewCampaign")
	}
	if err := data.Validate(api.validate); err != nil {
		return err
	}

	c, err := api.svc.Create(ctx.Request().Context(), data)
	if err != nil {
		return err
	}
	api.auditSvc.Record(ctx.Request().Context(), audit.ActionCreate, "campaign", c.ID, c.Name)
	return ctx.JSON(http.StatusCreated, c)
}

func (api *campaignApi) update(ctx echo.Context) error {
	var data campaign.UpdateCampaign
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to UpdateCampaign")
	}
	if err := data.Validate(api.validate); err != nil {
		return err
	}

	c, err := api.svc.Update(ctx.Request().Context(), ctx.Param("id"), data)
	if err != nil {
		return err
	}
	api.auditSvc.Record(ctx.Request().Context(), audit.ActionUpdate, "campaign", c.ID, c.Name)
	return ctx.JSON(http.StatusOK, c)
}

func (api *campaignApi) destroy(ctx echo.Context) error {
	id := ctx.Param("id")
	if err := api.svc.Delete(ctx.Request().Context(), id); err != nil {
		return err
	}
	api.auditSvc.Record(ctx.Request().Context(), audit.ActionDelete, "campaign", id, "")
	return ctx.NoContent(http.StatusNoContent)
}
