package echoapi

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/Reema362/learn-spark-lms-sub001/core"
	"github.com/Reema362/learn-spark-lms-sub001/core/audit"
	"github.com/Reema362/learn-spark-lms-sub001/core/auth"
)

type (
	authApi struct {
		conf     *core.Config
		gateway  *auth.Gateway
		sessions *auth.SessionManager
		auditSvc *audit.Service
		validate *validator.Validate
	}

	LoginRequest struct {
		Email    string `json:"email" validate:"required"`
		Password string `json:"password" validate:"required"`
	}

	LoginResponse struct {
		Token               string        `json:"token"`
		Identity            auth.Identity `json:"identity"`
		NeedsPasswordChange bool          `json:"needs_password_change"`
	}
)

func (lr *LoginRequest) Validate(validate *validator.Validate) error {
	lr.Email = core.CleanString(lr.Email, true /* lower */)
	return validate.Struct(lr)
}

func registerAuthAPI(g *echo.Group, jwt, identity echo.MiddlewareFunc, deps ServerDeps) {
	api := authApi{
		conf:     deps.Conf,
		gateway:  deps.Gateway,
		sessions: deps.Sessions,
		auditSvc: deps.AuditSvc,
		validate: deps.Validate,
	}

	ag := g.Group("/auth")
	ag.POST("/login", api.login)

	authed := ag.Group("", jwt, identity)
	authed.POST("/logout", api.logout)
	authed.GET("/session", api.session)
}

func (api *authApi) login(ctx echo.Context) error {
	var data LoginRequest
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to LoginRequest")
	}
	if err := data.Validate(api.validate); err != nil {
		return err
	}

	res, err := api.gateway.Login(ctx.Request().Context(), data.Email, data.Password)
	if err != nil {
		return err
	}

	token, err := GenerateToken(getIdentityClaims(res.Identity, api.conf), api.conf)
	if err != nil {
		return errors.Wrap(err, "generating token")
	}

	api.auditSvc.Record(auth.ContextWithIdentity(ctx.Request().Context(), res.Identity),
		audit.ActionLogin, "session", res.Identity.ID, "")

	return ctx.JSON(http.StatusOK, LoginResponse{
		Token:               token,
		Identity:            res.Identity,
		NeedsPasswordChange: res.NeedsPasswordChange,
	})
}

func (api *authApi) logout(ctx echo.Context) error {
	reqCtx := ctx.Request().Context()
	if ident, ok := auth.IdentityFromContext(reqCtx); ok {
		api.auditSvc.Record(reqCtx, audit.ActionLogout, "session", ident.ID, "")
	}
	api.gateway.Logout(reqCtx)
	return ctx.NoContent(http.StatusNoContent)
}

// session reports whether a non-expired local session record exists, and
// echoes back the identity attached to the verified token.
func (api *authApi) session(ctx echo.Context) error {
	ident, _ := auth.IdentityFromContext(ctx.Request().Context())
	return ctx.JSON(http.StatusOK, echo.Map{
		"valid":    api.gateway.IsSessionValid(),
		"identity": ident,
	})
}
