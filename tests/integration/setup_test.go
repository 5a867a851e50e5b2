package integration

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/hetpatel672/BudgetWise/internal/auth"
	"github.com/hetpatel672/BudgetWise/internal/database"
	"github.com/hetpatel672/BudgetWise/internal/handlers"
	"github.com/hetpatel672/BudgetWise/internal/keystore"
	"github.com/hetpatel672/BudgetWise/internal/logger"
	"github.com/hetpatel672/BudgetWise/internal/middleware"
	"github.com/hetpatel672/BudgetWise/internal/services"
	"github.com/hetpatel672/BudgetWise/internal/testutil"
)

const testSessionSecret = "integration-test-secret"

// testApp holds the full application stack for integration tests.
type testApp struct {
	Router *gin.Engine
	Auth   *auth.Service
}

func init() {
	gin.SetMode(gin.TestMode)
	logger.Init("test")
	handlers.RegisterValidators()
}

// setupApp wires the full stack against an isolated in-memory database,
// mirroring the production composition.
func setupApp(t *testing.T) *testApp {
	t.Helper()

	db := testutil.SetupTestDB(t)
	t.Cleanup(func() { testutil.TeardownTestDB(t, db) })
	if err := database.SeedDefaults(db); err != nil {
		t.Fatalf("failed to seed defaults: %v", err)
	}

	settingsService := services.NewSettingsService(db)
	reportService := services.NewReportService(db)
	transactionService := services.NewTransactionService(db, reportService)
	budgetService := services.NewBudgetService(db)
	categoryService := services.NewCategoryService(db)

	keys := keystore.NewMemStore()
	authService := auth.NewService(keys, settingsService, 5*time.Minute, false)
	cipher := auth.NewCipher(keys, false)

	authHandler := handlers.NewAuthHandler(authService, testSessionSecret, 5*time.Minute)
	transactionHandler := handlers.NewTransactionHandler(transactionService)
	reportHandler := handlers.NewReportHandler(reportService)
	budgetHandler := handlers.NewBudgetHandler(budgetService)
	categoryHandler := handlers.NewCategoryHandler(categoryService)
	settingsHandler := handlers.NewSettingsHandler(settingsService)
	cryptoHandler := handlers.NewCryptoHandler(cipher)

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.ErrorHandler())

	v1 := router.Group("/api/v1")

	authGroup := v1.Group("/auth")
	authGroup.GET("/status", authHandler.Status)
	authGroup.POST("/pin", authHandler.SetupPIN)
	authGroup.POST("/login", authHandler.Login)
	authGroup.POST("/logout", authHandler.Logout)
	authGroup.POST("/reset", authHandler.Reset)

	protected := v1.Group("/")
	protected.Use(middleware.Session(authService, testSessionSecret))

	protected.POST("/transactions", transactionHandler.Create)
	protected.GET("/transactions", transactionHandler.List)
	protected.GET("/transactions/:id", transactionHandler.Get)
	protected.PUT("/transactions/:id", transactionHandler.Update)
	protected.DELETE("/transactions/:id", transactionHandler.Delete)

	protected.GET("/reports/summary", reportHandler.Summary)
	protected.GET("/reports/breakdown", reportHandler.Breakdown)
	protected.GET("/reports/trends", reportHandler.Trends)

	protected.POST("/budgets", budgetHandler.Create)
	protected.GET("/budgets", budgetHandler.List)
	protected.GET("/budgets/:id", budgetHandler.Get)
	protected.PUT("/budgets/:id", budgetHandler.Update)
	protected.DELETE("/budgets/:id", budgetHandler.Delete)
	protected.GET("/budgets/:id/progress", budgetHandler.Progress)

	protected.POST("/categories", categoryHandler.Create)
	protected.GET("/categories", categoryHandler.List)
	protected.GET("/categories/:id", categoryHandler.Get)
	protected.PUT("/categories/:id", categoryHandler.Update)
	protected.DELETE("/categories/:id", categoryHandler.Delete)

	protected.GET("/settings", settingsHandler.List)
	protected.GET("/settings/:key", settingsHandler.Get)
	protected.PUT("/settings/:key", settingsHandler.Set)

	protected.POST("/crypto/encrypt", cryptoHandler.Encrypt)
	protected.POST("/crypto/decrypt", cryptoHandler.Decrypt)

	return &testApp{Router: router, Auth: authService}
}

// doRequest performs an HTTP request against the test router.
func (app *testApp) doRequest(t *testing.T, method, path string, payload interface{}, token string) *httptest.ResponseRecorder {
	t.Helper()

	var body *bytes.Buffer
	if payload != nil {
		raw, err := json.Marshal(payload)
		if err != nil {
			t.Fatalf("failed to marshal payload: %v", err)
		}
		body = bytes.NewBuffer(raw)
	} else {
		body = bytes.NewBuffer(nil)
	}

	req := httptest.NewRequest(method, path, body)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	app.Router.ServeHTTP(rec, req)
	return rec
}

// parseBody decodes a JSON response body into a generic map.
func parseBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var result map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &result); err != nil {
		t.Fatalf("failed to parse response body: %v\nbody: %s", err, rec.Body.String())
	}
	return result
}
