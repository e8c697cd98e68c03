package tests

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"testing"

	. "github.com/Reema362/learn-spark-lms-sub001/apps/api/echo"
	"github.com/Reema362/learn-spark-lms-sub001/core/auth"
	testutil "github.com/Reema362/learn-spark-lms-sub001/tests"
)

func doLogin(t *testing.T, email, password string) (*http.Response, LoginResponse) {
	t.Helper()
	body := marchallObj(t, LoginRequest{Email: email, Password: password})
	req, rec := newRequest(http.MethodPost, "/v1/auth/login", body)
	app.ServeHTTP(rec, req)

	var res LoginResponse
	if rec.Code == http.StatusOK {
		if err := json.Unmarshal(rec.Body.Bytes(), &res); err != nil {
			t.Fatalf("decoding LoginResponse: %v", err)
		}
	}
	return rec.Result(), res
}

func Test_authApi_login(t *testing.T) {
	usr := testutil.CreateUser(t, usrRepo, "Awe", "awe@test.cd", "Mdr12345", auth.RoleLearner, true)
	testutil.CreateUser(t, usrRepo, "Gone", "gone@test.cd", "Mdr12345", auth.RoleLearner, false)

	t.Run("missing fields", func(t *testing.T) {
		req, rec := newRequest(http.MethodPost, "/v1/auth/login", marchallObj(t, LoginRequest{}))
		app.ServeHTTP(rec, req)
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("code = %v; want 400", rec.Code)
		}
		if !strings.Contains(rec.Body.String(), "Email") {
			t.Errorf("expected an Email field error, got %s", rec.Body.String())
		}
	})

	t.Run("unknown email", func(t *testing.T) {
		res, _ := doLogin(t, "lol@test.cd", "Mdr12345")
		if res.StatusCode != http.StatusBadRequest {
			t.Errorf("code = %v; want 400", res.StatusCode)
		}
	})

	t.Run("wrong password", func(t *testing.T) {
		res, _ := doLogin(t, usr.Email, "Nope1234")
		if res.StatusCode != http.StatusBadRequest {
			t.Errorf("code = %v; want 400", res.StatusCode)
		}
	})

	t.Run("inactive account", func(t *testing.T) {
		res, _ := doLogin(t, "gone@test.cd", "Mdr12345")
		if res.StatusCode != http.StatusBadRequest {
			t.Errorf("code = %v; want 400", res.StatusCode)
		}
	})

	t.Run("known account", func(t *testing.T) {
		res, data := doLogin(t, "AWE@test.cd", "Mdr12345") // email is case-insensitive
		if res.StatusCode != http.StatusOK {
			t.Fatalf("code = %v; want 200", res.StatusCode)
		}
		if data.Token == "" {
			t.Error("expected a token")
		}
		if data.Identity.ID != usr.ID {
			t.Errorf("Identity.ID = %s; want %s", data.Identity.ID, usr.ID)
		}
		if data.Identity.IsDemo {
			t.Error("expected a non-demo identity")
		}
		if data.NeedsPasswordChange {
			t.Error("NeedsPasswordChange should be false")
		}
	})

	t.Run("demo fallback", func(t *testing.T) {
		res, data := doLogin(t, "learner@demo.avocop.io", "Demo1234")
		if res.StatusCode != http.StatusOK {
			t.Fatalf("code = %v; want 200", res.StatusCode)
		}
		if !data.Identity.IsDemo {
			t.Error("expected a demo identity")
		}
		if data.Identity.Role != auth.RoleLearner {
			t.Errorf("Role = %s; want learner", data.Identity.Role)
		}
	})

	t.Run("demo wrong password", func(t *testing.T) {
		res, _ := doLogin(t, "learner@demo.avocop.io", "Nope1234")
		if res.StatusCode != http.StatusBadRequest {
			t.Errorf("code = %v; want 400", res.StatusCode)
		}
	})

	t.Run("lazy admin provisioning", func(t *testing.T) {
		res, data := doLogin(t, "boss@test.cd", "TempPass123")
		if res.StatusCode != http.StatusOK {
			t.Fatalf("code = %v; want 200", res.StatusCode)
		}
		if data.Identity.Role != auth.RoleAdmin {
			t.Errorf("Role = %s; want admin", data.Identity.Role)
		}
		if !data.NeedsPasswordChange {
			t.Error("NeedsPasswordChange should be true")
		}
		// the account now exists remotely
		if _, err := usrRepo.GetUserByEmail(context.Background(), "boss@test.cd"); err != nil {
			t.Errorf("GetUserByEmail() failed, %v", err)
		}
	})

	t.Run("rate limited", func(t *testing.T) {
		for i := 0; i < conf.MaxLoginAttempts; i++ {
			res, _ := doLogin(t, "locked@test.cd", "Nope1234")
			if res.StatusCode != http.StatusBadRequest {
				t.Fatalf("attempt %d: code = %v; want 400", i, res.StatusCode)
			}
		}
		res, _ := doLogin(t, "locked@test.cd", "Nope1234")
		if res.StatusCode != http.StatusTooManyRequests {
			t.Errorf("code = %v; want 429", res.StatusCode)
		}
	})
}

func Test_authApi_sessionFlow(t *testing.T) {
	usr := testutil.CreateUser(t, usrRepo, "Flow", "flow@test.cd", "Mdr12345", auth.RoleLearner, true)

	res, data := doLogin(t, usr.Email, "Mdr12345")
	if res.StatusCode != http.StatusOK {
		t.Fatalf("login failed, code = %v", res.StatusCode)
	}

	// a local session record now exists
	if ident, err := sessions.Current(); err != nil {
		t.Fatalf("sessions.Current() failed, %v", err)
	} else if ident.ID != usr.ID {
		t.Errorf("session identity = %s; want %s", ident.ID, usr.ID)
	}

	req, rec := newAuthRequest(http.MethodGet, "/v1/auth/session", data.Token)
	app.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("session check failed, code = %v", rec.Code)
	}
	var sess struct {
		Valid    bool          `json:"valid"`
		Identity auth.Identity `json:"identity"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &sess); err != nil {
		t.Fatal(err)
	}
	if !sess.Valid {
		t.Error("expected a valid session")
	}
	if sess.Identity.Email != usr.Email {
		t.Errorf("Identity.Email = %s; want %s", sess.Identity.Email, usr.Email)
	}

	// logout clears the session record
	req, rec = newAuthRequest(http.MethodPost, "/v1/auth/logout", data.Token)
	app.ServeHTTP(rec, req)
	if rec.Code != http.StatusNoContent {
		t.Fatalf("logout failed, code = %v", rec.Code)
	}
	if sessions.IsValid() {
		t.Error("expected the session to be cleared")
	}

	// session endpoints still require a token
	req, rec = newRequest(http.MethodGet, "/v1/auth/session")
	app.ServeHTTP(rec, req)
	tt := httpTest{wantCode: http.StatusUnauthorized, wantData: marchallObj(t, errMissingToken)}
	checkCodeAndData(t, tt, rec)
}
