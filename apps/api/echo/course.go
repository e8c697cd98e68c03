package echoapi

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/Reema362/learn-spark-lms-sub001/core"
	"github.com/Reema362/learn-spark-lms-sub001/core/audit"
	"github.com/Reema362/learn-spark-lms-sub001/core/course"
	"github.com/Reema362/learn-spark-lms-sub001/storage/files"
)

type courseApi struct {
	svc      *course.Service
	auditSvc *audit.Service
	files    files.Store
	logger   core.Logger
	validate *validator.Validate
}

func registerCourseAPI(g *echo.Group, jwt, identity echo.MiddlewareFunc, deps ServerDeps) {
	api := courseApi{
		svc:      deps.CourseSvc,
		auditSvc: deps.AuditSvc,
		files:    deps.Files,
		logger:   deps.Logger,
		validate: deps.Validate,
	}

	cg := g.Group("/courses", jwt, identity)
	cg.GET("", api.query)
	cg.GET("/:id", api.retrieve)
	cg.POST("", api.create, adminMiddleware())
	cg.PUT("/:id", api.update, adminMiddleware())
	cg.DELETE("/:id", api.destroy, adminMiddleware())
	cg.POST("/:id/thumbnail", api.uploadThumbnail, adminMiddleware())
	cg.GET("/:id/lessons", api.queryLessons)

	catg := g.Group("/categories", jwt, identity)
	catg.GET("", api.queryCategories)
	catg.POST("", api.createCategory, adminMiddleware())
	catg.POST("/seed", api.seedCategories, adminMiddleware())
	catg.DELETE("/:id", api.destroyCategory, adminMiddleware())

	lg := g.Group("/lessons", jwt, identity)
	lg.POST("", api.createLesson, adminMiddleware())
	lg.DELETE("/:id", api.destroyLesson, adminMiddleware())

	pg := g.Group("/progress", jwt, identity)
	pg.GET("", api.queryProgress)
	pg.POST("", api.recordProgress)
}

// Courses

func (api *courseApi) query(ctx echo.Context) error {
	courses, err := api.svc.QueryCourses(ctx.Request().Context())
	if err != nil {
		api.logger.Warn("listing courses", err)
		courses = []course.Course{}
	}
	return ctx.JSON(http.StatusOK, courses)
}

func (api *courseApi) retrieve(ctx echo.Context) error {
	c, err := api.svc.GetCourseByID(ctx.Request().Context(), ctx.Param("id"))
	if err != nil {
		if errors.Cause(err) == course.ErrNotFound {
			return errHttpNotFound
		}
		return err
	}
	return ctx.JSON(http.StatusOK, c)
}

func (api *courseApi) create(ctx echo.Context) error {
	var data course.NewCourse
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewCourse")
	}
	if err := data.Validate(api.validate); err != nil {
		return err
	}

	c, err := api.svc.CreateCourse(ctx.Request().Context(), data)
	if err != nil {
		return err
	}
	api.auditSvc.Record(ctx.Request().Context(), audit.ActionCreate, "course", c.ID, c.Title)
	return ctx.JSON(http.StatusCreated, c)
}

func (api *courseApi) update(ctx echo.Context) error {
	var data course.UpdateCourse
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to UpdateCourse")
	}
	if err := data.Validate(api.validate); err != nil {
		return err
	}

	c, err := api.svc.UpdateCourse(ctx.Request().Context(), ctx.Param("id"), data)
	if err != nil {
		return err
	}
	api.auditSvc.Record(ctx.Request().Context(), audit.ActionUpdate, "course", c.ID, c.Title)
	return ctx.JSON(http.StatusOK, c)
}

func (api *courseApi) destroy(ctx echo.Context) error {
	id := ctx.Param("id")
	if err := api.svc.DeleteCourse(ctx.Request().Context(), id); err != nil {
		return err
	}
	api.auditSvc.Record(ctx.Request().Context(), audit.ActionDelete, "course", id, "")
	return ctx.NoContent(http.StatusNoContent)
}

// uploadThumbnail stores the uploaded image and points the course at it.
func (api *courseApi) uploadThumbnail(ctx echo.Context) error {
	if api.files == nil {
		return errHttpNotFound
	}

	fh, err := ctx.FormFile("file")
	if err != nil {
		return core.NewValidationError(nil, core.FieldError{Field: "file", Error: "file is required"})
	}
	src, err := fh.Open()
	if err != nil {
		return errors.Wrap(err, "opening upload")
	}
	defer func() { _ = src.Close() }()

	urlPath, err := api.files.Save(fh.Filename, src)
	if err != nil {
		return errors.Wrap(err, "saving upload")
	}

	c, err := api.svc.SetCourseThumbnail(ctx.Request().Context(), ctx.Param("id"), urlPath)
	if err != nil {
		// roll back the orphaned file
		_ = api.files.Remove(urlPath)
		return err
	}
	api.auditSvc.Record(ctx.Request().Context(), audit.ActionUpdate, "course", c.ID, "thumbnail")
	return ctx.JSON(http.StatusOK, c)
}

// Categories

func (api *courseApi) queryCategories(ctx echo.Context) error {
	cats, err := api.svc.QueryCategories(ctx.Request().Context())
	if err != nil {
		api.logger.Warn("listing categories", err)
		cats = []course.Category{}
	}
	return ctx.JSON(http.StatusOK, cats)
}

func (api *courseApi) createCategory(ctx echo.Context) error {
	var data course.NewCategory
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewCategory")
	}
	if err := data.Validate(api.validate); err != nil {
		return err
	}

	cat, err := api.svc.CreateCategory(ctx.Request().Context(), data)
	if err != nil {
		return err
	}
	api.auditSvc.Record(ctx.Request().Context(), audit.ActionCreate, "category", cat.ID, cat.Name)
	return ctx.JSON(http.StatusCreated, cat)
}

func (api *courseApi) seedCategories(ctx echo.Context) error {
	if err := api.svc.CreateSampleCategories(ctx.Request().Context()); err != nil {
		return err
	}
	return ctx.NoContent(http.StatusNoContent)
}

func (api *courseApi) destroyCategory(ctx echo.Context) error {
	id := ctx.Param("id")
	if err := api.svc.DeleteCategory(ctx.Request().Context(), id); err != nil {
		return err
	}
	api.auditSvc.Record(ctx.Request().Context(), audit.ActionDelete, "category", id, "")
	return ctx.NoContent(http.StatusNoContent)
}

// Lessons

func (api *courseApi) queryLessons(ctx echo.Context) error {
	lessons, err := api.svc.QueryLessons(ctx.Request().Context(), ctx.Param("id"))
	if err != nil {
		api.logger.Warn("listing lessons", err)
		lessons = []course.Lesson{}
	}
	return ctx.JSON(http.StatusOK, lessons)
}

func (api *courseApi) createLesson(ctx echo.Context) error {
	var data course.NewLesson
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewLesson")
	}
	if err := data.Validate(api.validate); err != nil {
		return err
	}

	l, err := api.svc.CreateLesson(ctx.Request().Context(), data)
	if err != nil {
		return err
	}
	api.auditSvc.Record(ctx.Request().Context(), audit.ActionCreate, "lesson", l.ID, l.Title)
	return ctx.JSON(http.StatusCreated, l)
}

func (api *courseApi) destroyLesson(ctx echo.Context) error {
	id := ctx.Param("id")
	if err := api.svc.DeleteLesson(ctx.Request().Context(), id); err != nil {
		return err
	}
	api.auditSvc.Record(ctx.Request().Context(), audit.ActionDelete, "lesson", id, "")
	return ctx.NoContent(http.StatusNoContent)
}

// Progress

func (api *courseApi) queryProgress(ctx echo.Context) error {
	items, err := api.svc.QueryProgress(ctx.Request().Context())
	if err != nil {
		api.logger.Warn("listing lesson progress", err)
		items = []course.LessonProgress{}
	}
	return ctx.JSON(http.StatusOK, items)
}

func (api *courseApi) recordProgress(ctx echo.Context) error {
	var data course.ProgressUpdate
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to ProgressUpdate")
	}
	if err := data.Validate(api.validate); err != nil {
		return err
	}

	p, err := api.svc.RecordProgress(ctx.Request().Context(), data)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, p)
}
