// Package steps provides step definitions for BDD integration tests.
package steps

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"os"
	"reflect"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/cucumber/godog"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/rm-entrenador/backend/internal/application/adapter"
	"github.com/rm-entrenador/backend/internal/application/usecase/auth"
	"github.com/rm-entrenador/backend/internal/application/usecase/client"
	"github.com/rm-entrenador/backend/internal/application/usecase/dashboard"
	"github.com/rm-entrenador/backend/internal/application/usecase/ingest"
	"github.com/rm-entrenador/backend/internal/application/usecase/payment"
	"github.com/rm-entrenador/backend/internal/application/usecase/reminder"
	"github.com/rm-entrenador/backend/internal/domain/entity"
	"github.com/rm-entrenador/backend/internal/domain/valueobject"
	"github.com/rm-entrenador/backend/internal/infra/server/router"
	"github.com/rm-entrenador/backend/internal/integration/adapters"
	"github.com/rm-entrenador/backend/internal/integration/email"
	"github.com/rm-entrenador/backend/internal/integration/entrypoint/controller"
	"github.com/rm-entrenador/backend/internal/integration/entrypoint/middleware"
	"github.com/rm-entrenador/backend/internal/integration/persistence"
	"github.com/rm-entrenador/backend/internal/integration/persistence/model"
	"github.com/rm-entrenador/backend/test/integration/mock"
)

const (
	testJWTSecret = "test-jwt-secret-key-for-testing-purposes"
	adminUsername = "admin"
	adminPassword = "secreto-de-prueba-123"
	contactPhone  = "+54 11 5555-0000"
)

var planTiers = []string{"mensual", "trimestral", "anual"}

var (
	serverInit     sync.Once
	portInit       sync.Once
	testDB         *mock.Db
	testServerPort int
	tokenService   adapter.TokenService
)

type testContext struct {
	uri              string
	headers          map[string]string
	client           *http.Client
	response         *response
	db               *mock.Db
	accessToken      string
	currentClientID  uuid.UUID
	currentPaymentID uuid.UUID
}

type response struct {
	status int
	body   any
}

func initializePort() {
	portInit.Do(func() {
		testServerPort = findAvailablePort()
		_ = os.Setenv("ENV", "test")
	})
}

// InitializeTestSuite sets up resources before any scenarios run.
func InitializeTestSuite(ctx *godog.TestSuiteContext) {
	ctx.BeforeSuite(func() {
		gin.SetMode(gin.TestMode)
	})
}

// InitializeScenario registers all step definitions.
func InitializeScenario(ctx *godog.ScenarioContext) {
	initializePort()

	test := &testContext{
		uri:    fmt.Sprintf("http://localhost:%d", testServerPort),
		client: &http.Client{Timeout: 10 * time.Second},
		db: mock.NewDb(map[string]any{
			"clients":     &model.ClientModel{},
			"payments":    &model.PaymentModel{},
			"email_queue": &model.EmailQueueModel{},
		}),
	}

	testDB = test.db

	ctx.Before(func(ctx context.Context, sc *godog.Scenario) (context.Context, error) {
		test.before()
		return ctx, nil
	})

	// Background steps
	ctx.Given(`^the API server is running$`, test.theAPIServerIsRunning)
	ctx.Given(`^I am authenticated$`, test.iAmAuthenticated)
	ctx.Given(`^the header is empty$`, test.theHeaderIsEmpty)
	ctx.Given(`^the header contains the key "([^"]*)" with "([^"]*)"$`, test.theHeaderContainsTheKeyWith)

	// Data setup steps
	ctx.Given(`^a client exists with name "([^"]*)"$`, test.aClientExistsWithName)
	ctx.Given(`^a client exists with name "([^"]*)" and email "([^"]*)"$`, test.aClientExistsWithNameAndEmail)
	ctx.Given(`^the client has a payment of "([^"]*)" due "([^"]*)"$`, test.theClientHasAPaymentDue)
	ctx.Given(`^the client has a payment of "([^"]*)" paid "([^"]*)" due "([^"]*)"$`, test.theClientHasAPaymentPaidDue)

	// Request steps
	ctx.When(`^I send a "([^"]*)" request to "([^"]*)"$`, test.iSendARequestTo)
	ctx.When(`^I send a "([^"]*)" request to "([^"]*)" with body:$`, test.iSendARequestToWithBody)

	// Response assertion steps
	ctx.Then(`^the response status should be (\d+)$`, test.theResponseStatusShouldBe)
	ctx.Then(`^the response should be JSON$`, test.theResponseShouldBeJSON)
	ctx.Then(`^the response should contain "([^"]*)"$`, test.theResponseShouldContain)
	ctx.Then(`^the response field "([^"]*)" should be "([^"]*)"$`, test.theResponseFieldShouldBe)
	ctx.Then(`^the response field "([^"]*)" should exist$`, test.theResponseFieldShouldExist)
	ctx.Then(`^the response field "([^"]*)" should have (\d+) items$`, test.theResponseFieldShouldHaveItems)

	// Database assertion steps
	ctx.Then(`^the db should contain (\d+) objects in the "([^"]*)" table$`, test.theDbShouldContainObjectsInTheTable)
	ctx.Then(`^the db should contain (\d+) objects in "([^"]*)" with the values$`, test.theDbShouldContainObjectsInWithTheValues)
}

func findAvailablePort() int {
	listener, err := net.Listen("tcp", ":0")
	if err != nil {
		panic(err)
	}
	defer listener.Close()
	return listener.Addr().(*net.TCPAddr).Port
}

func (t *testContext) before() {
	t.headers = make(map[string]string)
	t.accessToken = ""
	t.currentClientID = uuid.Nil
	t.currentPaymentID = uuid.Nil

	if t.db != nil {
		_ = t.db.Reset()
	}
	_ = mock.ClearRedis(mock.NewRedis())
}

func (t *testContext) startServer() {
	serverInit.Do(func() {
		go func() {
			gin.SetMode(gin.TestMode)

			// Repositories
			clientRepo := persistence.NewClientRepository(testDB.DbConn)
			paymentRepo := persistence.NewPaymentRepository(testDB.DbConn)
			emailQueueRepo := persistence.NewEmailQueueRepository(testDB.DbConn)

			// Adapters and services
			tokenService = adapters.NewTokenService(testJWTSecret, 15*time.Minute)
			statsCache := adapters.NewRedisStatsCache(mock.NewRedis(), 5*time.Minute)
			emailService := email.NewService(emailQueueRepo, contactPhone)

			adminHash, err := bcrypt.GenerateFromPassword([]byte(adminPassword), bcrypt.MinCost)
			if err != nil {
				panic(err)
			}

			classifierOpts := entity.ClassifierOptions{}

			// Use cases
			loginUseCase := auth.NewLoginUseCase(tokenService, adminUsername, string(adminHash))

			listClientsUseCase := client.NewListClientsUseCase(clientRepo)
			createClientUseCase := client.NewCreateClientUseCase(clientRepo, statsCache, planTiers)
			updateClientUseCase := client.NewUpdateClientUseCase(clientRepo, statsCache, planTiers)
			deleteClientUseCase := client.NewDeleteClientUseCase(clientRepo, statsCache)

			listPaymentsUseCase := payment.NewListPaymentsUseCase(paymentRepo, clientRepo, classifierOpts)
			createPaymentUseCase := payment.NewCreatePaymentUseCase(paymentRepo, clientRepo, statsCache)
			updatePaymentUseCase := payment.NewUpdatePaymentUseCase(paymentRepo, clientRepo, statsCache)
			deletePaymentUseCase := payment.NewDeletePaymentUseCase(paymentRepo, statsCache)

			overviewUseCase := dashboard.NewGetOverviewUseCase(clientRepo, paymentRepo, statsCache, classifierOpts, planTiers)
			sendRemindersUseCase := reminder.NewSendDueRemindersUseCase(clientRepo, paymentRepo, emailService, classifierOpts)

			importClientsUseCase := ingest.NewImportClientsUseCase(clientRepo, statsCache)
			importPaymentsUseCase := ingest.NewImportPaymentsUseCase(paymentRepo, clientRepo, statsCache)

			// Controllers and middleware
			healthController := controller.NewHealthController(func() bool {
				return testDB != nil && testDB.DbConn != nil
			})
			authController := controller.NewAuthController(loginUseCase)
			clientController := controller.NewClientController(listClientsUseCase, createClientUseCase, updateClientUseCase, deleteClientUseCase)
			paymentController := controller.NewPaymentController(listPaymentsUseCase, createPaymentUseCase, updatePaymentUseCase, deletePaymentUseCase)
			dashboardController := controller.NewDashboardController(overviewUseCase)
			reminderController := controller.NewReminderController(sendRemindersUseCase)
			ingestController := controller.NewIngestController(importClientsUseCase, importPaymentsUseCase)

			loginRateLimiter := middleware.NewRateLimiter()
			authMiddleware := middleware.NewAuthMiddleware(tokenService)

			r := router.NewRouter(
				healthController,
				authController,
				clientController,
				paymentController,
				dashboardController,
				reminderController,
				ingestController,
				loginRateLimiter,
				authMiddleware,
			)
			engine := r.Setup("test")

			server := &http.Server{
				Addr:    fmt.Sprintf(":%d", testServerPort),
				Handler: engine,
			}
			_ = server.ListenAndServe()
		}()
	})

	// Wait for server to be ready
	for i := 0; i < 50; i++ {
		resp, err := http.Get(t.uri + "/health")
		if err == nil && resp.StatusCode == http.StatusOK {
			resp.Body.Close()
			return
		}
		time.Sleep(100 * time.Millisecond)
	}
}

func (t *testContext) theAPIServerIsRunning() error {
	t.startServer()
	return nil
}

func (t *testContext) iAmAuthenticated() error {
	token, err := tokenService.GenerateAccessToken(context.Background(), adminUsername)
	if err != nil {
		return fmt.Errorf("failed to generate access token: %w", err)
	}
	t.accessToken = token
	return nil
}

func (t *testContext) theHeaderIsEmpty() error {
	t.headers = make(map[string]string)
	t.accessToken = "" // Clear access token to simulate unauthenticated request
	return nil
}

func (t *testContext) theHeaderContainsTheKeyWith(key, value string) error {
	t.headers[key] = value
	return nil
}

func (t *testContext) aClientExistsWithName(name string) error {
	return t.aClientExistsWithNameAndEmail(name, "")
}

func (t *testContext) aClientExistsWithNameAndEmail(name, emailAddr string) error {
	clientID := uuid.New()
	t.currentClientID = clientID

	now := time.Now().UTC()
	clientModel := &model.ClientModel{
		ID:        clientID,
		Name:      name,
		Email:     emailAddr,
		Phone:     contactPhone,
		PlanTier:  "mensual",
		CreatedAt: now,
		UpdatedAt: now,
	}

	return t.db.DbConn.Create(clientModel).Error
}

func (t *testContext) theClientHasAPaymentDue(amount, dueDate string) error {
	return t.createPayment(amount, "", dueDate)
}

func (t *testContext) theClientHasAPaymentPaidDue(amount, payDate, dueDate string) error {
	return t.createPayment(amount, payDate, dueDate)
}

func (t *testContext) createPayment(amount, payDate, dueDate string) error {
	if t.currentClientID == uuid.Nil {
		return errors.New("no client created yet")
	}

	amt, err := decimal.NewFromString(amount)
	if err != nil {
		return fmt.Errorf("invalid amount %q: %w", amount, err)
	}

	paymentID := uuid.New()
	t.currentPaymentID = paymentID

	now := time.Now().UTC()
	paymentModel := &model.PaymentModel{
		ID:        paymentID,
		ClientID:  t.currentClientID,
		Amount:    amt,
		PayDate:   valueobject.ParseFlexibleDate(payDate),
		DueDate:   valueobject.ParseFlexibleDate(dueDate),
		PlanTier:  "mensual",
		CreatedAt: now,
		UpdatedAt: now,
	}

	return t.db.DbConn.Create(paymentModel).Error
}

func (t *testContext) iSendARequestTo(method, path string) error {
	return t.executeRequest(method, t.replacePlaceholders(path), nil)
}

func (t *testContext) iSendARequestToWithBody(method, path string, body *godog.DocString) error {
	var payload []byte
	if body != nil && body.Content != "" {
		payload = []byte(t.replacePlaceholders(body.Content))
	}
	return t.executeRequest(method, t.replacePlaceholders(path), payload)
}

func (t *testContext) replacePlaceholders(content string) string {
	content = strings.ReplaceAll(content, "{{access_token}}", t.accessToken)
	content = strings.ReplaceAll(content, "{{client_id}}", t.currentClientID.String())
	content = strings.ReplaceAll(content, "{{payment_id}}", t.currentPaymentID.String())
	return content
}

func (t *testContext) executeRequest(method, path string, payload []byte) error {
	var req *http.Request
	var err error

	url := t.uri + path

	if payload != nil {
		req, err = http.NewRequest(method, url, bytes.NewReader(payload))
	} else {
		req, err = http.NewRequest(method, url, nil)
	}
	if err != nil {
		return err
	}

	req.Header.Set("Content-Type", "application/json")

	if t.accessToken != "" {
		req.Header.Set("Authorization", "Bearer "+t.accessToken)
	}

	for key, value := range t.headers {
		req.Header.Set(key, value)
	}

	resp, err := t.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}

	t.response = &response{
		status: resp.StatusCode,
	}

	var responseBody map[string]any
	if err := json.Unmarshal(bodyBytes, &responseBody); err != nil {
		t.response.body = string(bodyBytes)
		return nil
	}
	t.response.body = responseBody

	// Capture the created resource id so later steps can reference it.
	if idStr, ok := responseBody["id"].(string); ok {
		if id, err := uuid.Parse(idStr); err == nil {
			if _, isPayment := responseBody["alumno_id"]; isPayment {
				t.currentPaymentID = id
			} else {
				t.currentClientID = id
			}
		}
	}

	return nil
}

func (t *testContext) theResponseStatusShouldBe(expectedStatus int) error {
	if t.response == nil {
		return errors.New("no response received")
	}
	if t.response.status != expectedStatus {
		return fmt.Errorf("expected status %d, got %d (body: %v)", expectedStatus, t.response.status, t.response.body)
	}
	return nil
}

func (t *testContext) theResponseShouldBeJSON() error {
	if t.response == nil {
		return errors.New("no response received")
	}
	if _, ok := t.response.body.(map[string]any); !ok {
		return fmt.Errorf("response is not JSON: %v", t.response.body)
	}
	return nil
}

func (t *testContext) theResponseShouldContain(field string) error {
	if t.response == nil {
		return errors.New("no response received")
	}

	body, ok := t.response.body.(map[string]any)
	if !ok {
		return fmt.Errorf("response is not a JSON object: %v", t.response.body)
	}

	if _, exists := body[field]; !exists {
		return fmt.Errorf("response does not contain field '%s': %v", field, body)
	}
	return nil
}

func (t *testContext) theResponseFieldShouldBe(field, expectedValue string) error {
	if t.response == nil {
		return errors.New("no response received")
	}

	value := getFieldValue(t.response.body, field)
	if value == nil {
		return fmt.Errorf("field '%s' not found in response: %v", field, t.response.body)
	}

	actualValue := fmt.Sprintf("%v", value)
	if actualValue != expectedValue {
		return fmt.Errorf("field '%s' expected '%s', got '%s'", field, expectedValue, actualValue)
	}
	return nil
}

func (t *testContext) theResponseFieldShouldExist(field string) error {
	if t.response == nil {
		return errors.New("no response received")
	}

	if getFieldValue(t.response.body, field) == nil {
		return fmt.Errorf("field '%s' not found in response: %v", field, t.response.body)
	}
	return nil
}

func (t *testContext) theResponseFieldShouldHaveItems(field string, quantity int) error {
	if t.response == nil {
		return errors.New("no response received")
	}

	value := getFieldValue(t.response.body, field)
	arr, ok := value.([]any)
	if !ok {
		return fmt.Errorf("field '%s' is not an array: %v", field, value)
	}
	if len(arr) != quantity {
		return fmt.Errorf("field '%s' expected %d items, got %d", field, quantity, len(arr))
	}
	return nil
}

func (t *testContext) theDbShouldContainObjectsInTheTable(quantity int, table string) error {
	return t.countRows(quantity, table, nil)
}

func (t *testContext) theDbShouldContainObjectsInWithTheValues(quantity int, table string, content *godog.DocString) error {
	var criteria map[string]any
	if err := json.Unmarshal([]byte(content.Content), &criteria); err != nil {
		return err
	}
	return t.countRows(quantity, table, criteria)
}

func (t *testContext) countRows(quantity int, table string, criteria map[string]any) error {
	entityModel, ok := t.db.GetModel(table)
	if !ok {
		return fmt.Errorf("table '%s' not found in models", table)
	}

	entityType := reflect.TypeOf(entityModel).Elem()
	entitySlicePtr := reflect.New(reflect.SliceOf(entityType))

	query := t.db.DbConn.Unscoped()
	for key, value := range criteria {
		if value == nil {
			query = query.Where(fmt.Sprintf("%s IS NULL", key))
			continue
		}
		query = query.Where(fmt.Sprintf("%s = ?", key), value)
	}

	result := query.Find(entitySlicePtr.Interface())
	if result.Error != nil && !errors.Is(result.Error, gorm.ErrRecordNotFound) {
		return result.Error
	}

	count := entitySlicePtr.Elem().Len()
	if count != quantity {
		return fmt.Errorf("expected %d objects in '%s' with criteria %v, got %d", quantity, table, criteria, count)
	}
	return nil
}

func getFieldValue(object any, dotSeparatedField string) any {
	if object == nil {
		return nil
	}

	var objectMap map[string]any
	switch v := object.(type) {
	case map[string]any:
		objectMap = v
	default:
		objectJSON, _ := json.Marshal(object)
		if err := json.Unmarshal(objectJSON, &objectMap); err != nil {
			return nil
		}
	}

	fields := strings.Split(dotSeparatedField, ".")
	var field any = objectMap

	for _, currentField := range fields {
		if field == nil {
			return nil
		}

		if i, err := strconv.Atoi(currentField); err == nil {
			if arr, ok := field.([]any); ok && i < len(arr) {
				field = arr[i]
			} else {
				return nil
			}
		} else {
			if m, ok := field.(map[string]any); ok {
				field = m[currentField]
			} else {
				return nil
			}
		}
	}

	return field
}
