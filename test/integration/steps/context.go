//go:build integration

// Package steps provides step definitions for BDD integration tests.
package steps

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/cucumber/godog"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/organized-life/backend/config"
	"github.com/organized-life/backend/internal/application/adapter"
	"github.com/organized-life/backend/internal/infra/dependency"
	"github.com/organized-life/backend/internal/integration/adapters"
	"github.com/organized-life/backend/internal/integration/persistence"
	"github.com/organized-life/backend/internal/integration/persistence/model"
	"github.com/organized-life/backend/test/integration/mock"
)

const (
	testJWTSecret = "test-jwt-secret-key-for-testing-purposes"
	resendPath    = "/emails"
)

// Suite-wide fixtures. The HTTP server is started once and shared.
var (
	serverInit     sync.Once
	serverPort     int
	testDB         *mock.Db
	testClock      *mock.Time
	resendMock     *mock.ApiMock
	testConfig     *config.Config
	tokenService   adapter.TokenService
	passwordHasher adapter.PasswordService
)

type testContext struct {
	uri     string
	headers map[string]string
	client  *http.Client

	response            *response
	concurrentResponses []*response

	accessToken  string
	refreshToken string

	currentUserID        uuid.UUID
	currentCategoryID    uuid.UUID
	currentGoalID        uuid.UUID
	currentBudgetID      uuid.UUID
	currentTransactionID uuid.UUID
	categoryIDs          map[string]uuid.UUID
}

type response struct {
	status  int
	headers http.Header
	body    any
}

// InitializeTestSuite sets up resources shared by every scenario.
func InitializeTestSuite(ctx *godog.TestSuiteContext) {
	ctx.BeforeSuite(func() {
		gin.SetMode(gin.TestMode)

		testDB = mock.NewDb(map[string]any{
			"users":              &model.UserModel{},
			"refresh_tokens":     &model.RefreshTokenModel{},
			"categories":         &model.CategoryModel{},
			"transactions":       &model.TransactionModel{},
			"budgets":            &model.BudgetModel{},
			"goals":              &model.GoalModel{},
			"goal_contributions": &model.GoalContributionModel{},
		})
		testClock = mock.NewTime()

		resendMock = mock.NewApiServer()
		resendMock.Start()

		testConfig = config.Load()
		testConfig.Server.Environment = "test"
		testConfig.JWT.Secret = testJWTSecret
		testConfig.Security.BcryptCost = 4
		testConfig.Email.ResendAPIKey = "re_test_key"
		testConfig.Email.ResendBaseURL = resendMock.GetUrl() + "/"
		testConfig.Email.AppBaseURL = "http://app.test"
		testConfig.RateLimit.Enabled = true
		testConfig.RateLimit.LoginMaxAttempts = 5
		testConfig.RateLimit.APIRequestsPerSec = 1000
		testConfig.RateLimit.APIBurst = 1000

		tokenService = adapters.NewTokenService(testConfig.JWT, persistence.NewTokenRepository(testDB.DbConn))
		passwordHasher = adapters.NewPasswordService(testConfig.Security.BcryptCost)
	})

	ctx.AfterSuite(func() {
		if resendMock != nil {
			resendMock.Close()
		}
	})
}

// InitializeScenario registers all step definitions.
func InitializeScenario(ctx *godog.ScenarioContext) {
	test := &testContext{
		client: &http.Client{Timeout: 10 * time.Second},
	}

	ctx.Before(func(ctx context.Context, sc *godog.Scenario) (context.Context, error) {
		return ctx, test.before()
	})

	registerSetupSteps(ctx, test)
	registerRequestSteps(ctx, test)
	registerResponseSteps(ctx, test)
	registerStorageSteps(ctx, test)
}

func (t *testContext) before() error {
	t.headers = make(map[string]string)
	t.response = nil
	t.concurrentResponses = nil
	t.accessToken = ""
	t.refreshToken = ""
	t.currentUserID = uuid.Nil
	t.currentCategoryID = uuid.Nil
	t.currentGoalID = uuid.Nil
	t.currentBudgetID = uuid.Nil
	t.currentTransactionID = uuid.Nil
	t.categoryIDs = make(map[string]uuid.UUID)

	testClock.Reset()

	resendMock.ClearResponses(http.MethodPost, resendPath)
	resendMock.SetResponse(http.MethodPost, resendPath, http.StatusOK, map[string]any{"id": "email-test-id"})

	if err := mock.ClearRedis(mock.NewRedis()); err != nil {
		return fmt.Errorf("failed to clear redis: %w", err)
	}
	return testDB.ClearDB()
}

func (t *testContext) startServer() error {
	var startErr error

	serverInit.Do(func() {
		serverPort = findAvailablePort()

		injector, err := dependency.NewInjector(testConfig, testDB.Database, mock.NewRedis(), &dependency.Overrides{
			Clock:        testClock,
			TokenService: tokenService,
		})
		if err != nil {
			startErr = err
			return
		}

		engine := injector.Router.Setup("test")
		server := &http.Server{
			Addr:    fmt.Sprintf("127.0.0.1:%d", serverPort),
			Handler: engine,
		}

		go func() {
			_ = server.ListenAndServe()
		}()
	})
	if startErr != nil {
		return startErr
	}

	t.uri = fmt.Sprintf("http://127.0.0.1:%d", serverPort)

	// Wait for server to be ready
	for i := 0; i < 50; i++ {
		resp, err := http.Get(t.uri + "/health")
		if err == nil {
			resp.Body.Close()
			if resp.StatusCode == http.StatusOK {
				return nil
			}
		}
		time.Sleep(100 * time.Millisecond)
	}
	return fmt.Errorf("server did not become healthy on port %d", serverPort)
}

func findAvailablePort() int {
	listener, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		panic(err)
	}
	defer listener.Close()
	return listener.Addr().(*net.TCPAddr).Port
}
