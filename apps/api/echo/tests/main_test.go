package tests

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"reflect"
	"testing"
	"time"

	"github.com/dgrijalva/jwt-go"

	. "github.com/Reema362/learn-spark-lms-sub001/apps/api/echo"
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
	"github.com/Reema362/learn-spark-lms-sub001/storage/database"
	demodb "github.com/Reema362/learn-spark-lms-sub001/storage/demo"
	inmemdb "github.com/Reema362/learn-spark-lms-sub001/storage/inmem"
	"github.com/Reema362/learn-spark-lms-sub001/storage/kvstore"
	"github.com/Reema362/learn-spark-lms-sub001/storage/session"
	testutil "github.com/Reema362/learn-spark-lms-sub001/tests"
)

var (
	conf     *core.Config
	app      Server
	usrRepo  user.Repository
	tplRepo  template.Repository
	sessions *auth.SessionManager
	cache    *cachesvc.MemoryInvalidator

	errMissingToken = httpErr{Error: "missing or malformed jwt"}
)

func TestMain(m *testing.M) {
	conf = &core.Config{
		TestMode:  true,
		AppName:   "Avocop",
		SecretKey: "sekret",
		Server: core.ServerConfig{
			JWTExpirationDelta: 1 * time.Hour,
		},
		SessionTimeout:   8 * time.Hour,
		LockoutDuration:  15 * time.Minute,
		MaxLoginAttempts: 5,
		Bootstrap: core.BootstrapConfig{
			Enabled:      true,
			AdminEmails:  []string{"boss@test.cd"},
			TempPassword: "TempPass123",
		},
	}
	logger := testutil.Logger{}
	validate, translator := core.NewValidator()
	core.InitValidators(validate, translator)

	// repos
	usrRepo = inmemdb.NewUserRepository()
	tplRepo = inmemdb.NewTemplateRepository()
	kv := kvstore.NewMemStore()

	// auth
	sessions = auth.NewSessionManager(session.NewStore(kv), conf.SessionTimeout)
	limiter := auth.NewLimiter(conf.MaxLoginAttempts, conf.LockoutDuration)
	gateway := auth.NewGateway(conf, database.NewAuthenticator(usrRepo), sessions, limiter, logger)
	idp := &auth.Provider{Sessions: sessions}

	// services
	cache = cachesvc.NewMemoryInvalidator()
	remote := course.Stores{
		Courses:    inmemdb.NewCourseRepository(),
		Categories: inmemdb.NewCategoryRepository(),
		Lessons:    inmemdb.NewLessonRepository(),
		Progress:   inmemdb.NewProgressRepository(),
	}
	demo := course.Stores{
		Lessons:  demodb.NewLessonRepository(kv),
		Progress: demodb.NewProgressRepository(kv),
	}

	app = NewServer(ServerDeps{
		Conf:          conf,
		Logger:        logger,
		Validate:      validate,
		Translator:    translator,
		Gateway:       gateway,
		Sessions:      sessions,
		UserSvc:       user.NewService(usrRepo, inmemdb.NewRoleRepository(), idp, cache),
		TemplateSvc:   template.NewService(tplRepo, idp, cache),
		EscalationSvc: escalation.NewService(inmemdb.NewEscalationRepository(), idp, cache),
		QuerySvc:      query.NewService(inmemdb.NewQueryRepository(), idp, cache),
		CampaignSvc:   campaign.NewService(inmemdb.NewCampaignRepository(), idp, cache),
		CourseSvc:     course.NewService(remote, demo, idp, cache, logger),
		GameSvc:       game.NewService(inmemdb.NewGameRepository(), idp, cache),
		AuditSvc:      audit.NewService(inmemdb.NewAuditRepository(), idp, cache, logger),
	})

	m.Run()
}

type httpErr struct {
	Error string `json:"error"`
}

type httpTest struct {
	name     string
	method   string
	path     string
	body     []byte
	token    string
	wantCode int
	wantData []byte
	extra    interface{}
}

func newAuthRequest(method, path, token string, data ...[]byte) (*http.Request, *httptest.ResponseRecorder) {
	var body bytes.Buffer
	if len(data) > 0 {
		body.Write(data[0])
	}
	req := httptest.NewRequest(method, path, &body)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	return req, rec
}

func newRequest(method, path string, data ...[]byte) (*http.Request, *httptest.ResponseRecorder) {
	return newAuthRequest(method, path, "", data...)
}

func getToken(t *testing.T, ident auth.Identity) string {
	now := time.Now()
	claims := &Claims{
		StandardClaims: jwt.StandardClaims{
			Issuer:    conf.AppName,
			Subject:   ident.ID,
			Audience:  "Avocop",
			ExpiresAt: now.Add(conf.Server.JWTExpirationDelta).Unix(),
			IssuedAt:  now.Unix(),
		},
		Email:  ident.Email,
		Name:   ident.Name,
		Role:   ident.Role,
		IsDemo: ident.IsDemo,
	}
	token, err := GenerateToken(claims, conf)
	if err != nil {
		t.Fatalf("getToken(): %v", err)
	}
	return token
}

func marchallObj(t *testing.T, obj interface{}) []byte {
	data, err := json.Marshal(obj)
	if err != nil {
		t.Fatalf("marchallObj(): %v", err)
	}
	return data
}

func marchallList(t *testing.T, objs ...interface{}) []byte {
	data, err := json.Marshal(objs)
	if err != nil {
		t.Fatalf("marchallList(): %v", err)
	}
	return data
}

func jsonBytesEqual(b1, b2 []byte) (bool, error) {
	var j1, j2 interface{}
	if err := json.Unmarshal(b1, &j1); err != nil {
		return false, err
	}
	if err := json.Unmarshal(b2, &j2); err != nil {
		return false, err
	}
	return reflect.DeepEqual(j1, j2), nil
}

func checkCodeAndData(t *testing.T, tt httpTest, rec *httptest.ResponseRecorder) {
	if rec.Code != tt.wantCode {
		t.Errorf("failed! code = %v; wantCode %v", rec.Code, tt.wantCode)
	}
	ok, err := jsonBytesEqual(rec.Body.Bytes(), tt.wantData)
	if err != nil {
		t.Errorf("jsonBytesEqual() failed to compare; err %v", err)
	}
	if !ok {
		t.Errorf("failed! data = %v; wantData %v", rec.Body.String(), string(tt.wantData))
	}
}
