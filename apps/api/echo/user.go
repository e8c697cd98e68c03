package echoapi

import (
	"net/http"
	"sort"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/Reema362/learn-spark-lms-sub001/core"
	"github.com/Reema362/learn-spark-lms-sub001/core/audit"
	"github.com/Reema362/learn-spark-lms-sub001/core/user"
)

type userApi struct {
	svc      *user.Service
	auditSvc *audit.Service
	logger   core.Logger
	validate *validator.Validate
}

func registerUserAPI(g *echo.Group, jwt, identity echo.MiddlewareFunc, deps ServerDeps) {
	api := userApi{
		svc:      deps.UserSvc,
		auditSvc: deps.AuditSvc,
		logger:   deps.Logger,
		validate: deps.Validate,
	}

	ug := g.Group("/users", jwt, identity)
	ug.GET("", api.query, adminMiddleware())
	ug.POST("", api.create, adminMiddleware())
	ug.GET("/:id", api.retrieve, adminMiddleware())
	ug.PUT("/:id", api.update, adminMiddleware())
	ug.DELETE("/:id", api.destroy, adminMiddleware())

	rg := g.Group("/roles", jwt, identity, adminMiddleware())
	rg.GET("", api.queryRoles)
	rg.POST("", api.createRole)
	rg.DELETE("/:id", api.destroyRole)
	rg.POST("/assignments", api.assignRole)
	rg.GET("/assignments/:userID", api.queryAssignments)
}

func (api *userApi) query(ctx echo.Context) error {
	users, err := api.svc.Query(ctx.Request().Context())
	if err != nil {
		api.logger.Warn("listing users", err)
		users = []user.User{}
	}

	var ord Ordering
	ord.Bind(ctx)
	applyUserOrdering(users, ord.Orderings)

	return ctx.JSON(http.StatusOK, users)
}

// applyUserOrdering re-sorts the listing per the first requested ordering.
// Unknown fields leave the default (newest first) untouched.
func applyUserOrdering(users []user.User, orderings []core.DBOrdering) {
	if len(orderings) == 0 {
		return
	}
	ord := orderings[0]

	var less func(a, b user.User) bool
	switch ord.Field {
	case "name":
		less = func(a, b user.User) bool { return a.Name < b.Name }
	case "email":
		less = func(a, b user.User) bool { return a.Email < b.Email }
	case "created_at":
		less = func(a, b user.User) bool { return a.CreatedAt.Before(b.CreatedAt) }
	default:
		return
	}
	sort.SliceStable(users, func(i, j int) bool {
		if ord.Ascending {
			return less(users[i], users[j])
		}
		return less(users[j], users[i])
	})
}

func (api *userApi) retrieve(ctx echo.Context) error {
	usr, err := api.svc.GetByID(ctx.Request().Context(), ctx.Param("id"))
	if err != nil {
		if errors.Cause(err) == user.ErrNotFound {
			return errHttpNotFound
		}
		return err
	}
	return ctx.JSON(http.StatusOK, usr)
}

func (api *userApi) create(ctx echo.Context) error {
	var data user.NewUser
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewUser")
	}
	if err := data.Validate(api.validate); err != nil {
		return err
	}

	usr, err := api.svc.Create(ctx.Request().Context(), data)
	if err != nil {
		if errors.Cause(err) == user.ErrEmailExists {
			return core.NewValidationError(nil, core.FieldError{Field: "email", Error: user.ErrEmailExists.Error()})
		}
		return err
	}
	api.auditSvc.Record(ctx.Request().Context(), audit.ActionCreate, "user", usr.ID, usr.Email)
	return ctx.JSON(http.StatusCreated, usr)
}

func (api *userApi) update(ctx echo.Context) error {
	var data user.UpdateUser
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to UpdateUser")
	}
	if err := data.Validate(api.validate); err != nil {
		return err
	}

	usr, err := api.svc.Update(ctx.Request().Context(), ctx.Param("id"), data)
	if err != nil {
		if errors.Cause(err) == user.ErrEmailExists {
			return core.NewValidationError(nil, core.FieldError{Field: "email", Error: user.ErrEmailExists.Error()})
		}
		return err
	}
	api.auditSvc.Record(ctx.Request().Context(), audit.ActionUpdate, "user", usr.ID, usr.Email)
	return ctx.JSON(http.StatusOK, usr)
}

func (api *userApi) destroy(ctx echo.Context) error {
	id := ctx.Param("id")
	if err := api.svc.Delete(ctx.Request().Context(), id); err != nil {
		return err
	}
	api.auditSvc.Record(ctx.Request().Context(), audit.ActionDelete, "user", id, "")
	return ctx.NoContent(http.StatusNoContent)
}

// Roles

func (api *userApi) queryRoles(ctx echo.Context) error {
	roles, err := api.svc.QueryRoles(ctx.Request().Context())
	if err != nil {
		api.logger.Warn("listing roles", err)
		roles = []user.Role{}
	}
	return ctx.JSON(http.StatusOK, roles)
}

func (api *userApi) createRole(ctx echo.Context) error {
	var data user.NewRole
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewRole")
	}
	if err := data.Validate(api.validate); err != nil {
		return err
	}

	role, err := api.svc.CreateRole(ctx.Request().Context(), data)
	if err != nil {
		return err
	}
	api.auditSvc.Record(ctx.Request().Context(), audit.ActionCreate, "role", role.ID, role.Name)
	return ctx.JSON(http.StatusCreated, role)
}

func (api *userApi) destroyRole(ctx echo.Context) error {
	id := ctx.Param("id")
	if err := api.svc.DeleteRole(ctx.Request().Context(), id); err != nil {
		return err
	}
	api.auditSvc.Record(ctx.Request().Context(), audit.ActionDelete, "role", id, "")
	return ctx.NoContent(http.StatusNoContent)
}

func (api *userApi) assignRole(ctx echo.Context) error {
	var data user.NewRoleAssignment
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewRoleAssignment")
	}
	if err := data.Validate(api.validate); err != nil {
		return err
	}

	asgn, err := api.svc.AssignRole(ctx.Request().Context(), data)
	if err != nil {
		return err
	}
	api.auditSvc.Record(ctx.Request().Context(), audit.ActionCreate, "role_assignment", asgn.ID, "")
	return ctx.JSON(http.StatusCreated, asgn)
}

func (api *userApi) queryAssignments(ctx echo.Context) error {
	asgns, err := api.svc.QueryRoleAssignments(ctx.Request().Context(), ctx.Param("userID"))
	if err != nil {
		api.logger.Warn("listing role assignments", err)
		asgns = []user.RoleAssignment{}
	}
	return ctx.JSON(http.StatusOK, asgns)
}
