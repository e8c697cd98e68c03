package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/jmoiron/sqlx"

	echoapi "github.com/Reema362/learn-spark-lms-sub001/apps/api/echo"
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
	cachesvc "github.com/Reema362/learn-spark-lms-sub001/services/cache"
	logsvc "github.com/Reema362/learn-spark-lms-sub001/services/logger"
	"github.com/Reema362/learn-spark-lms-sub001/storage/database"
	sqlxrepos "github.com/Reema362/learn-spark-lms-sub001/storage/database/sqlx"
	demodb "github.com/Reema362/learn-spark-lms-sub001/storage/demo"
	"github.com/Reema362/learn-spark-lms-sub001/storage/files"
	"github.com/Reema362/learn-spark-lms-sub001/storage/kvstore"
	sessionstore "github.com/Reema362/learn-spark-lms-sub001/storage/session"
)

func main() {
	conf, err := core.NewConfig()
	if err != nil {
		log.Fatalf("loading config: %v", err)
	}

	// set up loggers
	logger := logsvc.NewRollbarLogger(
		log.New(os.Stdout, "API : ", log.LstdFlags|log.Lmicroseconds|log.Lshortfile),
		conf,
	)
	logger.Enable(!conf.Debug)

	// set up DB
	db, err := setUpDB(conf)
	if err != nil {
		logger.Fatal(fmt.Sprintf("setting up database: %v", err), err)
	}
	defer func() {
		if err = db.Close(); err != nil {
			logger.Error("closing database", err)
		}
	}()

	// local persistent area: session record + demo arrays
	kv, err := kvstore.Open(filepath.Join(conf.DataDir, "local.json"))
	if err != nil {
		logger.Fatal(fmt.Sprintf("opening local store: %v", err), err)
	}
	sessions := auth.NewSessionManager(sessionstore.NewStore(kv), conf.SessionTimeout)
	idp := &auth.Provider{Sessions: sessions}

	// cache invalidation
	cache := cachesvc.NewRedisInvalidator(conf, logger)
	defer func() { _ = cache.Close() }()

	// uploads
	uploads, err := files.NewDiskStore(filepath.Join(conf.DataDir, "uploads"), "/uploads")
	if err != nil {
		logger.Fatal(fmt.Sprintf("setting up upload store: %v", err), err)
	}

	// repositories
	userRepo := sqlxrepos.NewUserRepository(db)
	remoteStores := course.Stores{
		Courses:    sqlxrepos.NewCourseRepository(db),
		Categories: sqlxrepos.NewCategoryRepository(db),
		Lessons:    sqlxrepos.NewLessonRepository(db),
		Progress:   sqlxrepos.NewProgressRepository(db),
	}
	demoStores := course.Stores{
		Lessons:  demodb.NewLessonRepository(kv),
		Progress: demodb.NewProgressRepository(kv),
	}

	// services
	auditSvc := audit.NewService(sqlxrepos.NewAuditRepository(db), idp, cache, logger)
	limiter := auth.NewLimiter(conf.MaxLoginAttempts, conf.LockoutDuration)
	gateway := auth.NewGateway(conf, database.NewAuthenticator(userRepo), sessions, limiter, logger)

	deps := echoapi.ServerDeps{
		Conf:          conf,
		Logger:        logger,
		Gateway:       gateway,
		Sessions:      sessions,
		UserSvc:       user.NewService(userRepo, sqlxrepos.NewRoleRepository(db), idp, cache),
		TemplateSvc:   template.NewService(sqlxrepos.NewTemplateRepository(db), idp, cache),
		EscalationSvc: escalation.NewService(sqlxrepos.NewEscalationRepository(db), idp, cache),
		QuerySvc:      query.NewService(sqlxrepos.NewQueryRepository(db), idp, cache),
		CampaignSvc:   campaign.NewService(sqlxrepos.NewCampaignRepository(db), idp, cache),
		CourseSvc:     course.NewService(remoteStores, demoStores, idp, cache, logger),
		GameSvc:       game.NewService(sqlxrepos.NewGameRepository(db), idp, cache),
		AuditSvc:      auditSvc,
		Files:         uploads,
	}

	validate, translator := core.NewValidator()
	core.InitValidators(validate, translator)
	deps.Validate = validate
	deps.Translator = translator

	// =========================================================================
	// Start API Service

	logger.Info(fmt.Sprintf("Application initializing : version %q", conf.Build))
	defer logger.Info("Application stopped")

	server := echoapi.NewServer(deps)

	go func() {
		server.Start()
	}()

	// =========================================================================
	// Shutdown

	select {
	case err = <-server.Errors():
		logger.Fatal(fmt.Sprintf("server error: %v", err), err)

	case sig := <-server.ShutdownSignal():
		logger.Info(fmt.Sprintf("%v: Start shutdown...", sig))

		// give outstanding requests a deadline for completion
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err = server.Shutdown(ctx); err != nil {
			logger.Error(fmt.Sprintf("could not stop server gracefully: %v", err), err)

			if err = server.Close(); err != nil {
				logger.Fatal(fmt.Sprintf("could not force stop server: %v", err), err)
			}
		}
	}
}

func setUpDB(conf *core.Config) (*sqlx.DB, error) {
	if err := database.CreateIfNotExist(conf); err != nil {
		return nil, err
	}

	db, err := database.Open(conf)
	if err != nil {
		return nil, err
	}

	if err = database.Migrate(db); err != nil {
		return nil, err
	}
	return db, nil
}
