package echoapi

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/log"

	"github.com/Reema362/learn-spark-lms-sub001/core"
	"github.com/Reema362/learn-spark-lms-sub001/core/audit"
	"github.com/Reema362/learn-spark-lms-sub001/core/auth"
	"github.com/Reema362/learn-spark-lms-sub001/core/campaign"
	"github.com/Reema362/learn-spark-lms-sub001/core/course"
	"github.com/Reema362/learn-spark-lms-sub001/core/escalation"
	"github.com/Reema362/learn-spark-lms-sub001/core/game"
	"github.com/Reema362/learn-spark-lms-sub001/core/query"
	"github.com/Reema362/learn-spark-lms-sub001/core/template"
	"github.com/Reema362/learn-spark-lms-sub001/core/user"
	"github.com/Reema362/learn-spark-lms-sub001/storage/files"
)

type (
	// ServerDeps lists everything the API server needs. All fields are
	// required unless noted.
	ServerDeps struct {
		Conf       *core.Config
		Logger     core.Logger
		Validate   *validator.Validate
		Translator ut.Translator

		Gateway       *auth.Gateway
		Sessions      *auth.SessionManager
		UserSvc       *user.Service
		TemplateSvc   *template.Service
		EscalationSvc *escalation.Service
		QuerySvc      *query.Service
		CampaignSvc   *campaign.Service
		CourseSvc     *course.Service
		GameSvc       *game.Service
		AuditSvc      *audit.Service
		Files         files.Store // optional; thumbnail uploads 404 without it
	}

	Server interface {
		http.Handler
		Start()
		Errors() <-chan error
		ShutdownSignal() <-chan os.Signal
		Shutdown(context.Context) error
		Close() error
	}

	server struct {
		deps     ServerDeps
		app      *echo.Echo
		errs     chan error
		shutdown chan os.Signal
	}
)

var _ Server = (*server)(nil)

func NewServer(deps ServerDeps) Server {
	s := &server{
		deps:     deps,
		app:      echo.New(),
		errs:     make(chan error, 1),
		shutdown: make(chan os.Signal, 1),
	}
	signal.Notify(s.shutdown, syscall.SIGINT, syscall.SIGTERM)
	s.setup()
	return s
}

func (s *server) setup() {
	conf := s.deps.Conf

	s.app.Pre(middleware.RemoveTrailingSlash())
	if !conf.TestMode {
		s.app.Use(middleware.Logger())
	}
	// do not recover in DEV|TEST mode
	if !(conf.Debug || conf.TestMode) {
		s.app.Use(middleware.RecoverWithConfig(middleware.RecoverConfig{LogLevel: log.ERROR}))
	}

	s.app.HTTPErrorHandler = newAppHTTPErrorHandler(s.deps.Logger, func() { s.errs <- core.NewShutdownError("integrity issue") })
	s.app.Debug = conf.Debug
	s.app.HideBanner = true

	s.app.GET("/", home)

	v1 := s.app.Group("/v1")
	jwt := middleware.JWTWithConfig(newJWTConfig(conf))
	identity := identityMiddleware()

	registerAuthAPI(v1, jwt, identity, s.deps)
	registerUserAPI(v1, jwt, identity, s.deps)
	registerTemplateAPI(v1, jwt, identity, s.deps)
	registerEscalationAPI(v1, jwt, identity, s.deps)
	registerQueryAPI(v1, jwt, identity, s.deps)
	registerCampaignAPI(v1, jwt, identity, s.deps)
	registerCourseAPI(v1, jwt, identity, s.deps)
	registerGameAPI(v1, jwt, identity, s.deps)
	registerAuditAPI(v1, jwt, identity, s.deps)

	if ds, ok := s.deps.Files.(*files.DiskStore); ok {
		s.app.Static("/uploads", ds.Root())
	}
}

func (s *server) Start() {
	if err := s.app.Start(s.deps.Conf.Server.Address()); err != nil && err != http.ErrServerClosed {
		s.errs <- err
	}
}

func (s *server) Errors() <-chan error             { return s.errs }
func (s *server) ShutdownSignal() <-chan os.Signal { return s.shutdown }

func (s *server) Shutdown(ctx context.Context) error {
	return s.app.Shutdown(ctx)
}

func (s *server) Close() error {
	return s.app.Close()
}

func (s *server) ServeHTTP(w http.ResponseWriter, r *http.Request) { // for tests
	s.app.ServeHTTP(w, r)
}

func home(ctx echo.Context) error {
	return ctx.String(http.StatusOK, "Welcome to Avocop API!")
}
