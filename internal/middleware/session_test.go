package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/hetpatel672/BudgetWise/internal/auth"
	"github.com/hetpatel672/BudgetWise/internal/keystore"
	"github.com/hetpatel672/BudgetWise/internal/services"
	"github.com/hetpatel672/BudgetWise/internal/testutil"
)

func init() {
	gin.SetMode(gin.TestMode)
}

const testSecret = "session-test-secret"

func setupSessionRouter(authSvc *auth.Service) *gin.Engine {
	r := gin.New()
	r.Use(Session(authSvc, testSecret))
	r.GET("/test", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	return r
}

func newSessionAuthService(t *testing.T) *auth.Service {
	t.Helper()
	db := testutil.SetupTestDB(t)
	t.Cleanup(func() { testutil.TeardownTestDB(t, db) })
	return auth.NewService(keystore.NewMemStore(), services.NewSettingsService(db), 5*time.Minute, false)
}

func doSessionRequest(r *gin.Engine, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/test", http.NoBody)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func parseSessionBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var result map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &result); err != nil {
		t.Fatalf("failed to parse response body: %v", err)
	}
	return result
}

func TestSessionMiddleware(t *testing.T) {
	t.Run("method_none_passes_without_token", func(t *testing.T) {
		authSvc := newSessionAuthService(t)
		router := setupSessionRouter(authSvc)

		rec := doSessionRequest(router, "")
		if rec.Code != http.StatusOK {
			t.Errorf("status = %d, want %d", rec.Code, http.StatusOK)
		}
	})

	t.Run("pin_method_requires_token", func(t *testing.T) {
		authSvc := newSessionAuthService(t)
		testutil.AssertNoError(t, authSvc.SetupPIN("1234"))
		router := setupSessionRouter(authSvc)

		rec := doSessionRequest(router, "")
		if rec.Code != http.StatusUnauthorized {
			t.Errorf("status = %d, want %d", rec.Code, http.StatusUnauthorized)
		}
	})

	t.Run("garbage_token_rejected", func(t *testing.T) {
		authSvc := newSessionAuthService(t)
		testutil.AssertNoError(t, authSvc.SetupPIN("1234"))
		router := setupSessionRouter(authSvc)

		rec := doSessionRequest(router, "not-a-jwt")
		if rec.Code != http.StatusUnauthorized {
			t.Errorf("status = %d, want %d", rec.Code, http.StatusUnauthorized)
		}
	})

	t.Run("valid_token_with_live_session_passes", func(t *testing.T) {
		authSvc := newSessionAuthService(t)
		testutil.AssertNoError(t, authSvc.SetupPIN("1234"))
		testutil.AssertNoError(t, authSvc.AuthenticateWithPIN("1234"))
		router := setupSessionRouter(authSvc)

		token, err := GenerateSessionToken(testSecret, time.Minute, auth.MethodPIN)
		testutil.AssertNoError(t, err)

		rec := doSessionRequest(router, token)
		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d, want %d, body: %s", rec.Code, http.StatusOK, rec.Body.String())
		}
		body := parseSessionBody(t, rec)
		if status, _ := body["status"].(string); status != "ok" {
			t.Errorf("expected handler to be reached, got %q", status)
		}
	})

	t.Run("valid_token_without_live_session_rejected", func(t *testing.T) {
		authSvc := newSessionAuthService(t)
		testutil.AssertNoError(t, authSvc.SetupPIN("1234"))
		router := setupSessionRouter(authSvc)

		// Token is well-formed but nobody has logged in.
		token, err := GenerateSessionToken(testSecret, time.Minute, auth.MethodPIN)
		testutil.AssertNoError(t, err)

		rec := doSessionRequest(router, token)
		if rec.Code != http.StatusUnauthorized {
			t.Errorf("status = %d, want %d", rec.Code, http.StatusUnauthorized)
		}
	})

	t.Run("token_signed_with_wrong_secret_rejected", func(t *testing.T) {
		authSvc := newSessionAuthService(t)
		testutil.AssertNoError(t, authSvc.SetupPIN("1234"))
		testutil.AssertNoError(t, authSvc.AuthenticateWithPIN("1234"))
		router := setupSessionRouter(authSvc)

		token, err := GenerateSessionToken("other-secret", time.Minute, auth.MethodPIN)
		testutil.AssertNoError(t, err)

		rec := doSessionRequest(router, token)
		if rec.Code != http.StatusUnauthorized {
			t.Errorf("status = %d, want %d", rec.Code, http.StatusUnauthorized)
		}
	})
}
