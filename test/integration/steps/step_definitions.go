//go:build integration

package steps

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"reflect"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/cucumber/godog"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"

	"github.com/organized-life/backend/internal/domain/entity"
	"github.com/organized-life/backend/internal/integration/persistence"
)

const defaultPassword = "SecurePass123!"

var categoryPlaceholder = regexp.MustCompile(`\{\{category:([^}]+)\}\}`)

func registerSetupSteps(ctx *godog.ScenarioContext, t *testContext) {
	ctx.Given(`^the API server is running$`, t.theAPIServerIsRunning)
	ctx.Given(`^the current date is "([^"]*)"$`, t.theCurrentDateIs)

	ctx.Given(`^a user exists with email "([^"]*)" and password "([^"]*)"$`, t.aUserExistsWithEmailAndPassword)
	ctx.Given(`^I am logged in as "([^"]*)"$`, t.iAmLoggedInAs)
	ctx.Given(`^the user "([^"]*)" has goal alerts disabled$`, t.theUserHasGoalAlertsDisabled)

	ctx.Given(`^a category exists with name "([^"]*)" and type "([^"]*)"$`, t.aCategoryExistsWithNameAndType)
	ctx.Given(`^the following transactions exist:$`, t.theFollowingTransactionsExist)
	ctx.Given(`^a budget exists for category "([^"]*)" in month "([^"]*)" with limit "([^"]*)"$`, t.aBudgetExists)
	ctx.Given(`^a goal "([^"]*)" exists with target "([^"]*)" and current amount "([^"]*)"$`, t.aGoalExists)
}

func registerRequestSteps(ctx *godog.ScenarioContext, t *testContext) {
	ctx.Given(`^the header is empty$`, t.theHeaderIsEmpty)
	ctx.Given(`^the header contains the key "([^"]*)" with "([^"]*)"$`, t.theHeaderContainsTheKeyWith)

	ctx.When(`^I send a "([^"]*)" request to "([^"]*)"$`, t.iSendARequestTo)
	ctx.When(`^I send a "([^"]*)" request to "([^"]*)" with body:$`, t.iSendARequestToWithBody)
	ctx.When(`^I send (\d+) concurrent "([^"]*)" requests to "([^"]*)" with body:$`, t.iSendConcurrentRequests)
}

func registerResponseSteps(ctx *godog.ScenarioContext, t *testContext) {
	ctx.Then(`^the response status should be (\d+)$`, t.theResponseStatusShouldBe)
	ctx.Then(`^the response should be JSON$`, t.theResponseShouldBeJSON)
	ctx.Then(`^the response should contain "([^"]*)"$`, t.theResponseShouldContain)
	ctx.Then(`^the response field "([^"]*)" should be "([^"]*)"$`, t.theResponseFieldShouldBe)
	ctx.Then(`^the response field "([^"]*)" should exist$`, t.theResponseFieldShouldExist)
	ctx.Then(`^the response field "([^"]*)" should not exist$`, t.theResponseFieldShouldNotExist)
	ctx.Then(`^the response field "([^"]*)" should have (\d+) items$`, t.theResponseFieldShouldHaveItems)
	ctx.Then(`^the response header "([^"]*)" should be "([^"]*)"$`, t.theResponseHeaderShouldBe)
	ctx.Then(`^all concurrent responses should have status (\d+)$`, t.allConcurrentResponsesShouldHaveStatus)
}

func registerStorageSteps(ctx *godog.ScenarioContext, t *testContext) {
	ctx.Then(`^the db should contain (\d+) objects in the "([^"]*)" table$`, t.theDbShouldContainObjectsInTheTable)
	ctx.Then(`^the db should contain (\d+) objects in "([^"]*)" with the values$`, t.theDbShouldContainObjectsInWithTheValues)
	ctx.Then(`^an email should have been sent to "([^"]*)" with subject "([^"]*)"$`, t.anEmailShouldHaveBeenSent)
	ctx.Then(`^no email should have been sent$`, t.noEmailShouldHaveBeenSent)
}

// Setup steps

func (t *testContext) theAPIServerIsRunning() error {
	return t.startServer()
}

func (t *testContext) theCurrentDateIs(date string) error {
	day, err := time.Parse(entity.DateLayout, date)
	if err != nil {
		return fmt.Errorf("invalid date %q: %w", date, err)
	}
	testClock.SetCurrentTime(day.Add(12 * time.Hour))
	return nil
}

func (t *testContext) aUserExistsWithEmailAndPassword(email, password string) error {
	_, err := t.ensureUser(email, password)
	return err
}

func (t *testContext) ensureUser(email, password string) (*entity.User, error) {
	ctx := context.Background()
	users := persistence.NewUserRepository(testDB.DbConn)

	if user, err := users.FindByEmail(ctx, email); err == nil && user != nil {
		return user, nil
	}

	hash, err := passwordHasher.HashPassword(password)
	if err != nil {
		return nil, err
	}

	user := entity.NewUser(email, "Test User", hash, time.Now().UTC())
	if err := users.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (t *testContext) iAmLoggedInAs(email string) error {
	user, err := t.ensureUser(email, defaultPassword)
	if err != nil {
		return err
	}

	tokens, err := tokenService.GenerateTokenPair(context.Background(), user.ID, user.Email, false)
	if err != nil {
		return fmt.Errorf("failed to generate tokens: %w", err)
	}

	t.currentUserID = user.ID
	t.accessToken = tokens.AccessToken
	t.refreshToken = tokens.RefreshToken
	return nil
}

func (t *testContext) theUserHasGoalAlertsDisabled(email string) error {
	ctx := context.Background()
	users := persistence.NewUserRepository(testDB.DbConn)

	user, err := users.FindByEmail(ctx, email)
	if err != nil {
		return err
	}
	user.GoalAlerts = false
	return users.UpdatePreferences(ctx, user)
}

func (t *testContext) aCategoryExistsWithNameAndType(name, categoryType string) error {
	category := entity.NewCategory(name, entity.DefaultCategoryColor, entity.DefaultCategoryIcon, t.currentUserID, entity.CategoryType(categoryType))
	if err := persistence.NewCategoryRepository(testDB.DbConn).Create(context.Background(), category); err != nil {
		return err
	}

	t.currentCategoryID = category.ID
	t.categoryIDs[name] = category.ID
	return nil
}

func (t *testContext) theFollowingTransactionsExist(table *godog.Table) error {
	if len(table.Rows) < 2 {
		return errors.New("transaction table needs a header row and at least one row")
	}

	columns := make(map[string]int)
	for i, cell := range table.Rows[0].Cells {
		columns[cell.Value] = i
	}

	ctx := context.Background()
	categories := persistence.NewCategoryRepository(testDB.DbConn)
	transactions := persistence.NewTransactionRepository(testDB.DbConn)

	for _, row := range table.Rows[1:] {
		value := func(column string) string {
			if i, ok := columns[column]; ok {
				return row.Cells[i].Value
			}
			return ""
		}

		date, err := time.Parse(entity.DateLayout, value("date"))
		if err != nil {
			return fmt.Errorf("invalid date %q: %w", value("date"), err)
		}
		amount, err := decimal.NewFromString(value("amount"))
		if err != nil {
			return fmt.Errorf("invalid amount %q: %w", value("amount"), err)
		}

		txn := entity.NewTransaction(t.currentUserID, date, value("description"), amount, entity.TransactionType(value("type")), nil, "")

		if name := value("category"); name != "" {
			id, ok := t.categoryIDs[name]
			if !ok {
				return fmt.Errorf("category %q was not created in this scenario", name)
			}
			category, err := categories.FindByID(ctx, id)
			if err != nil {
				return err
			}
			txn.AttachCategory(category)
		}

		if err := transactions.Create(ctx, txn); err != nil {
			return err
		}
		t.currentTransactionID = txn.ID
	}

	return nil
}

func (t *testContext) aBudgetExists(categoryName, month, limit string) error {
	categoryID, ok := t.categoryIDs[categoryName]
	if !ok {
		return fmt.Errorf("category %q was not created in this scenario", categoryName)
	}
	m, err := entity.ParseMonth(month)
	if err != nil {
		return err
	}
	amount, err := decimal.NewFromString(limit)
	if err != nil {
		return err
	}

	budget := entity.NewBudgetLimit(t.currentUserID, categoryID, m, amount)
	if err := persistence.NewBudgetRepository(testDB.DbConn).Create(context.Background(), budget); err != nil {
		return err
	}
	t.currentBudgetID = budget.ID
	return nil
}

func (t *testContext) aGoalExists(name, target, current string) error {
	targetAmount, err := decimal.NewFromString(target)
	if err != nil {
		return err
	}
	currentAmount, err := decimal.NewFromString(current)
	if err != nil {
		return err
	}

	goal := entity.NewGoal(t.currentUserID, name, entity.GoalTypeSavings, targetAmount, currentAmount, nil)
	if err := persistence.NewGoalRepository(testDB.DbConn).Create(context.Background(), goal); err != nil {
		return err
	}
	t.currentGoalID = goal.ID
	return nil
}

// Request steps

func (t *testContext) theHeaderIsEmpty() error {
	t.headers = make(map[string]string)
	t.accessToken = ""
	return nil
}

func (t *testContext) theHeaderContainsTheKeyWith(key, value string) error {
	t.headers[key] = t.replacePlaceholders(value)
	return nil
}

func (t *testContext) iSendARequestTo(method, path string) error {
	resp, err := t.executeRequest(method, t.replacePlaceholders(path), nil)
	if err != nil {
		return err
	}
	t.response = resp
	return nil
}

func (t *testContext) iSendARequestToWithBody(method, path string, body *godog.DocString) error {
	var payload []byte
	if body != nil && body.Content != "" {
		payload = []byte(t.replacePlaceholders(body.Content))
	}

	resp, err := t.executeRequest(method, t.replacePlaceholders(path), payload)
	if err != nil {
		return err
	}
	t.response = resp
	return nil
}

func (t *testContext) iSendConcurrentRequests(count int, method, path string, body *godog.DocString) error {
	path = t.replacePlaceholders(path)
	payload := []byte(t.replacePlaceholders(body.Content))

	responses := make([]*response, count)
	var g errgroup.Group
	for i := 0; i < count; i++ {
		g.Go(func() error {
			resp, err := t.executeRequest(method, path, payload)
			if err != nil {
				return err
			}
			responses[i] = resp
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	t.concurrentResponses = responses
	t.response = responses[count-1]
	return nil
}

func (t *testContext) replacePlaceholders(content string) string {
	content = strings.ReplaceAll(content, "{{access_token}}", t.accessToken)
	content = strings.ReplaceAll(content, "{{refresh_token}}", t.refreshToken)
	content = strings.ReplaceAll(content, "{{category_id}}", t.currentCategoryID.String())
	content = strings.ReplaceAll(content, "{{goal_id}}", t.currentGoalID.String())
	content = strings.ReplaceAll(content, "{{budget_id}}", t.currentBudgetID.String())
	content = strings.ReplaceAll(content, "{{transaction_id}}", t.currentTransactionID.String())

	return categoryPlaceholder.ReplaceAllStringFunc(content, func(match string) string {
		name := categoryPlaceholder.FindStringSubmatch(match)[1]
		if id, ok := t.categoryIDs[name]; ok {
			return id.String()
		}
		return match
	})
}

// executeRequest performs the call and records the IDs of created resources.
// It does not touch t.response so concurrent callers stay independent.
func (t *testContext) executeRequest(method, path string, payload []byte) (*response, error) {
	var reader io.Reader
	if payload != nil {
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequest(method, t.uri+path, reader)
	if err != nil {
		return nil, err
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
		return nil, err
	}
	defer resp.Body.Close()

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	result := &response{
		status:  resp.StatusCode,
		headers: resp.Header,
	}

	var responseBody map[string]any
	if err := json.Unmarshal(bodyBytes, &responseBody); err != nil {
		result.body = string(bodyBytes)
		return result, nil
	}
	result.body = responseBody

	if method == http.MethodPost && resp.StatusCode == http.StatusCreated {
		if id, err := uuid.Parse(fmt.Sprint(responseBody["id"])); err == nil {
			t.captureCreatedID(path, id, responseBody)
		}
	}

	return result, nil
}

func (t *testContext) captureCreatedID(path string, id uuid.UUID, body map[string]any) {
	switch {
	case strings.HasPrefix(path, "/api/v1/categories"):
		t.currentCategoryID = id
		if name, ok := body["name"].(string); ok {
			t.categoryIDs[name] = id
		}
	case strings.HasPrefix(path, "/api/v1/transactions"):
		t.currentTransactionID = id
	case strings.HasPrefix(path, "/api/v1/budgets"):
		t.currentBudgetID = id
	case strings.HasPrefix(path, "/api/v1/goals") && !strings.Contains(path, "/contributions"):
		t.currentGoalID = id
	}
}

// Response steps

func (t *testContext) jsonBody() (map[string]any, error) {
	if t.response == nil {
		return nil, errors.New("no response received")
	}
	body, ok := t.response.body.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("response is not a JSON object: %v", t.response.body)
	}
	return body, nil
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
	_, err := t.jsonBody()
	return err
}

func (t *testContext) theResponseShouldContain(field string) error {
	body, err := t.jsonBody()
	if err != nil {
		return err
	}
	if _, exists := body[field]; !exists {
		return fmt.Errorf("response does not contain field '%s': %v", field, body)
	}
	return nil
}

func (t *testContext) theResponseFieldShouldBe(field, expectedValue string) error {
	body, err := t.jsonBody()
	if err != nil {
		return err
	}

	value := getFieldValue(body, field)
	if value == nil {
		return fmt.Errorf("field '%s' not found in response: %v", field, body)
	}

	actualValue := fmt.Sprintf("%v", value)
	if actualValue != t.replacePlaceholders(expectedValue) {
		return fmt.Errorf("field '%s' expected '%s', got '%s'", field, expectedValue, actualValue)
	}
	return nil
}

func (t *testContext) theResponseFieldShouldExist(field string) error {
	body, err := t.jsonBody()
	if err != nil {
		return err
	}
	if getFieldValue(body, field) == nil {
		return fmt.Errorf("field '%s' not found in response: %v", field, body)
	}
	return nil
}

func (t *testContext) theResponseFieldShouldNotExist(field string) error {
	body, err := t.jsonBody()
	if err != nil {
		return err
	}
	if value := getFieldValue(body, field); value != nil {
		return fmt.Errorf("field '%s' should be absent, got %v", field, value)
	}
	return nil
}

func (t *testContext) theResponseFieldShouldHaveItems(field string, count int) error {
	body, err := t.jsonBody()
	if err != nil {
		return err
	}

	items, ok := getFieldValue(body, field).([]any)
	if !ok {
		return fmt.Errorf("field '%s' is not an array: %v", field, body)
	}
	if len(items) != count {
		return fmt.Errorf("field '%s' expected %d items, got %d", field, count, len(items))
	}
	return nil
}

func (t *testContext) theResponseHeaderShouldBe(header, expected string) error {
	if t.response == nil {
		return errors.New("no response received")
	}
	if actual := t.response.headers.Get(header); actual != expected {
		return fmt.Errorf("header '%s' expected '%s', got '%s'", header, expected, actual)
	}
	return nil
}

func (t *testContext) allConcurrentResponsesShouldHaveStatus(expectedStatus int) error {
	if len(t.concurrentResponses) == 0 {
		return errors.New("no concurrent responses received")
	}
	for i, resp := range t.concurrentResponses {
		if resp.status != expectedStatus {
			return fmt.Errorf("request %d: expected status %d, got %d (body: %v)", i, expectedStatus, resp.status, resp.body)
		}
	}
	return nil
}

func getFieldValue(object any, dotSeparatedField string) any {
	var field any = object

	for _, currentField := range strings.Split(dotSeparatedField, ".") {
		if field == nil {
			return nil
		}

		if i, err := strconv.Atoi(currentField); err == nil {
			arr, ok := field.([]any)
			if !ok || i >= len(arr) {
				return nil
			}
			field = arr[i]
			continue
		}

		m, ok := field.(map[string]any)
		if !ok {
			return nil
		}
		field = m[currentField]
	}

	return field
}

// Storage steps

func (t *testContext) findRows(table string, criteria map[string]any) (int, error) {
	rowModel, ok := testDB.GetModel(table)
	if !ok {
		return 0, fmt.Errorf("table '%s' not found in models", table)
	}

	entitySlicePtr := reflect.New(reflect.SliceOf(reflect.TypeOf(rowModel).Elem()))

	query := testDB.DbConn.Unscoped()
	for key, value := range criteria {
		query = query.Where(fmt.Sprintf("%s = ?", key), value)
	}

	result := query.Find(entitySlicePtr.Interface())
	if result.Error != nil && !errors.Is(result.Error, gorm.ErrRecordNotFound) {
		return 0, result.Error
	}
	return entitySlicePtr.Elem().Len(), nil
}

func (t *testContext) theDbShouldContainObjectsInTheTable(quantity int, table string) error {
	count, err := t.findRows(table, nil)
	if err != nil {
		return err
	}
	if count != quantity {
		return fmt.Errorf("expected %d objects in '%s', got %d", quantity, table, count)
	}
	return nil
}

func (t *testContext) theDbShouldContainObjectsInWithTheValues(quantity int, table string, content *godog.DocString) error {
	var criteria map[string]any
	if err := json.Unmarshal([]byte(t.replacePlaceholders(content.Content)), &criteria); err != nil {
		return err
	}

	count, err := t.findRows(table, criteria)
	if err != nil {
		return err
	}
	if count != quantity {
		return fmt.Errorf("expected %d objects in '%s' with criteria %v, got %d", quantity, table, criteria, count)
	}
	return nil
}

func (t *testContext) anEmailShouldHaveBeenSent(to, subject string) error {
	if count := resendMock.RequestCount(http.MethodPost, resendPath); count != 1 {
		return fmt.Errorf("expected 1 email, got %d", count)
	}

	body := resendMock.GetRequestBody(http.MethodPost, resendPath, 0)
	if recipients := fmt.Sprint(body["to"]); recipients != fmt.Sprint([]any{to}) {
		return fmt.Errorf("email sent to %s, expected %s", recipients, to)
	}
	if actual := fmt.Sprint(body["subject"]); actual != subject {
		return fmt.Errorf("email subject '%s', expected '%s'", actual, subject)
	}

	headers := resendMock.GetRequestHeaders(http.MethodPost, resendPath, 0)
	if auth := headers["Authorization"]; auth != "Bearer "+testConfig.Email.ResendAPIKey {
		return fmt.Errorf("unexpected Authorization header %q", auth)
	}
	return nil
}

func (t *testContext) noEmailShouldHaveBeenSent() error {
	if count := resendMock.RequestCount(http.MethodPost, resendPath); count != 0 {
		return fmt.Errorf("expected no email, got %d", count)
	}
	return nil
}
