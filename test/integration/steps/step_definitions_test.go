// Package steps provides step definitions for the Godog feature tests.
package steps

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"net"
	"net/http"
	"os"
	"reflect"
	"strconv"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/cucumber/godog"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/shared-expenses/backend/config"
	"github.com/shared-expenses/backend/internal/infra/dependency"
	"github.com/shared-expenses/backend/internal/integration/adapters"
	"github.com/shared-expenses/backend/internal/integration/persistence"
	"github.com/shared-expenses/backend/internal/integration/persistence/model"
	"github.com/shared-expenses/backend/test/integration/mock"
)

const testJWTSecret = "test-jwt-secret-key-for-testing-purposes"

var tags string

func init() {
	flag.StringVar(&tags, "scenarios", "", "tags to run")
}

func TestFeatures(t *testing.T) {
	flag.Parse()

	suite := godog.TestSuite{
		ScenarioInitializer: func(s *godog.ScenarioContext) {
			InitializeScenario(s)
		},
		Options: &godog.Options{
			Format:   "pretty",
			Paths:    []string{"../features"},
			Tags:     tags,
			Strict:   true,
			TestingT: t,
		},
	}

	if suite.Run() != 0 {
		t.Fatal("non-zero status returned, failed to run feature tests")
	}
}

type testContext struct {
	uri        string
	headers    map[string]string
	client     *http.Client
	response   *response
	db         *mock.Db
	serverPort int

	accessToken  string
	refreshToken string

	currentUserID        uuid.UUID
	currentHouseholdID   uuid.UUID
	myMemberID           uuid.UUID
	otherMemberID        uuid.UUID
	currentCategoryID    uuid.UUID
	currentSubcategoryID uuid.UUID
	currentTemplateID    uuid.UUID
	currentCardID        uuid.UUID
	currentPurchaseID    uuid.UUID
	currentLineItemID    uuid.UUID
}

type response struct {
	status int
	body   any
}

var serverInit sync.Once
var testDB *mock.Db
var testServerPort int
var portInit sync.Once

func initializeEnvironment() {
	portInit.Do(func() {
		testServerPort = findAvailablePort()
		_ = os.Setenv("ENV", "test")
		_ = os.Setenv("SERVER_PORT", strconv.Itoa(testServerPort))
		_ = os.Setenv("JWT_SECRET", testJWTSecret)
		_ = os.Setenv("EMAIL_WORKER_ENABLED", "false")
		_ = os.Setenv("REPORT_CACHE_ENABLED", "true")
	})
}

func InitializeScenario(ctx *godog.ScenarioContext) {
	initializeEnvironment()

	test := &testContext{
		uri:        fmt.Sprintf("http://localhost:%d", testServerPort),
		client:     &http.Client{Timeout: 10 * time.Second},
		serverPort: testServerPort,
		db: mock.NewDb(map[string]any{
			"users":             &model.UserModel{},
			"refresh_tokens":    &model.RefreshTokenModel{},
			"households":        &model.HouseholdModel{},
			"household_members": &model.HouseholdMemberModel{},
			"categories":        &model.CategoryModel{},
			"subcategories":     &model.SubcategoryModel{},
			"expense_templates": &model.ExpenseTemplateModel{},
			"split_rules":       &model.SplitRuleModel{},
			"credit_cards":      &model.CreditCardModel{},
			"card_purchases":    &model.CardPurchaseModel{},
			"line_items":        &model.LineItemModel{},
			"allocations":       &model.AllocationModel{},
			"email_queue":       &model.EmailQueueModel{},
		}),
	}

	testDB = test.db

	ctx.Before(func(ctx context.Context, sc *godog.Scenario) (context.Context, error) {
		test.before()
		return ctx, nil
	})

	// Background steps
	ctx.Given(`^the API server is running$`, test.theAPIServerIsRunning)

	// Seed steps
	ctx.Given(`^a user exists with email "([^"]*)"$`, test.aUserExistsWithEmail)
	ctx.Given(`^a user exists with email "([^"]*)" and password "([^"]*)"$`, test.aUserExistsWithEmailAndPassword)
	ctx.Given(`^I am logged in as "([^"]*)"$`, test.iAmLoggedInAs)
	ctx.Given(`^a household "([^"]*)" exists with members "([^"]*)" and "([^"]*)"$`, test.aHouseholdExistsWithMembers)
	ctx.Given(`^a subcategory "([^"]*)" exists under category "([^"]*)"$`, test.aSubcategoryExistsUnderCategory)

	// Header steps
	ctx.Given(`^the header is empty$`, test.theHeaderIsEmpty)
	ctx.Given(`^the header contains the key "([^"]*)" with "([^"]*)"$`, test.theHeaderContainsTheKeyWith)

	// Request steps
	ctx.When(`^I send a "([^"]*)" request to "([^"]*)"$`, test.iSendARequestTo)
	ctx.When(`^I send a "([^"]*)" request to "([^"]*)" with body:$`, test.iSendARequestToWithBody)

	// Response assertion steps
	ctx.Then(`^the response status should be (\d+)$`, test.theResponseStatusShouldBe)
	ctx.Then(`^the response should be JSON$`, test.theResponseShouldBeJSON)
	ctx.Then(`^the response should contain "([^"]*)"$`, test.theResponseShouldContain)
	ctx.Then(`^the response field "([^"]*)" should be "([^"]*)"$`, test.theResponseFieldShouldBe)
	ctx.Then(`^the response field "([^"]*)" should exist$`, test.theResponseFieldShouldExist)

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
	t.refreshToken = ""
	t.currentUserID = uuid.Nil
	t.currentHouseholdID = uuid.Nil
	t.myMemberID = uuid.Nil
	t.otherMemberID = uuid.Nil
	t.currentCategoryID = uuid.Nil
	t.currentSubcategoryID = uuid.Nil
	t.currentTemplateID = uuid.Nil
	t.currentCardID = uuid.Nil
	t.currentPurchaseID = uuid.Nil
	t.currentLineItemID = uuid.Nil

	if t.db != nil {
		_ = t.db.ClearDB()
	}
	_ = mock.ClearRedis(mock.NewRedis())
}

func (t *testContext) startServer() {
	serverInit.Do(func() {
		go func() {
			gin.SetMode(gin.TestMode)

			cfg := config.Load()
			injector := dependency.NewInjector(cfg, testDB.DbConn, mock.NewRedis())
			engine := injector.Router.Setup("test")

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

func (t *testContext) aUserExistsWithEmail(email string) error {
	return t.createUser(email, "DefaultPass123!")
}

func (t *testContext) aUserExistsWithEmailAndPassword(email, password string) error {
	return t.createUser(email, password)
}

func (t *testContext) createUser(email, password string) error {
	var existing model.UserModel
	if err := t.db.DbConn.Where("email = ?", email).First(&existing).Error; err == nil {
		t.currentUserID = existing.ID
		return nil
	}

	userID := uuid.New()
	t.currentUserID = userID

	now := time.Now().UTC()
	user := &model.UserModel{
		ID:           userID,
		Email:        email,
		Name:         nameFromEmail(email),
		PasswordHash: hashPassword(password),
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	return t.db.DbConn.Create(user).Error
}

func nameFromEmail(email string) string {
	local := strings.SplitN(email, "@", 2)[0]
	if local == "" {
		return "Test User"
	}
	return strings.ToUpper(local[:1]) + local[1:]
}

func hashPassword(password string) string {
	hashedBytes, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		panic(fmt.Sprintf("failed to hash password: %v", err))
	}
	return string(hashedBytes)
}

// iAmLoggedInAs creates the user if needed and issues a real token pair
// through the token service, so the auth middleware accepts it.
func (t *testContext) iAmLoggedInAs(email string) error {
	if err := t.createUser(email, "DefaultPass123!"); err != nil {
		return err
	}

	var user model.UserModel
	if err := t.db.DbConn.Where("email = ?", email).First(&user).Error; err != nil {
		return fmt.Errorf("user not found: %w", err)
	}
	t.currentUserID = user.ID

	tokenRepo := persistence.NewTokenRepository(t.db.DbConn)
	tokenService := adapters.NewTokenService(testJWTSecret, tokenRepo)
	pair, err := tokenService.GenerateTokenPair(context.Background(), user.ID, user.Email)
	if err != nil {
		return fmt.Errorf("failed to generate tokens: %w", err)
	}

	t.accessToken = pair.AccessToken
	t.refreshToken = pair.RefreshToken
	return nil
}

// aHouseholdExistsWithMembers seeds a household with two active members.
// Member IDs are kept so later steps can reference either membership: the
// first email maps to {{my_member_id}}, the second to {{member_id}}.
func (t *testContext) aHouseholdExistsWithMembers(name, firstEmail, secondEmail string) error {
	householdID := uuid.New()
	t.currentHouseholdID = householdID

	now := time.Now().UTC()
	household := &model.HouseholdModel{
		ID:        householdID,
		Name:      name,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := t.db.DbConn.Create(household).Error; err != nil {
		return err
	}

	for i, email := range []string{firstEmail, secondEmail} {
		if err := t.createUser(email, "DefaultPass123!"); err != nil {
			return err
		}
		var user model.UserModel
		if err := t.db.DbConn.Where("email = ?", email).First(&user).Error; err != nil {
			return err
		}

		member := &model.HouseholdMemberModel{
			ID:            uuid.New(),
			HouseholdID:   householdID,
			UserID:        user.ID,
			Nickname:      user.Name,
			Active:        true,
			MonthlyIncome: decimal.Zero,
			CreatedAt:     now,
			UpdatedAt:     now,
		}
		if err := t.db.DbConn.Create(member).Error; err != nil {
			return err
		}

		if i == 0 {
			t.myMemberID = member.ID
		} else {
			t.otherMemberID = member.ID
		}
	}
	return nil
}

func (t *testContext) aSubcategoryExistsUnderCategory(subcategoryName, categoryName string) error {
	now := time.Now().UTC()

	var category model.CategoryModel
	err := t.db.DbConn.
		Where("household_id = ? AND name = ?", t.currentHouseholdID, categoryName).
		First(&category).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		category = model.CategoryModel{
			ID:          uuid.New(),
			HouseholdID: t.currentHouseholdID,
			Name:        categoryName,
			Active:      true,
			CreatedAt:   now,
			UpdatedAt:   now,
		}
		if err := t.db.DbConn.Create(&category).Error; err != nil {
			return err
		}
	} else if err != nil {
		return err
	}

	subcategory := &model.SubcategoryModel{
		ID:         uuid.New(),
		CategoryID: category.ID,
		Name:       subcategoryName,
		Active:     true,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := t.db.DbConn.Create(subcategory).Error; err != nil {
		return err
	}
	t.currentCategoryID = category.ID
	t.currentSubcategoryID = subcategory.ID
	return nil
}

func (t *testContext) theHeaderIsEmpty() error {
	t.headers = make(map[string]string)
	t.accessToken = ""
	return nil
}

func (t *testContext) theHeaderContainsTheKeyWith(key, value string) error {
	t.headers[key] = value
	return nil
}

func (t *testContext) iSendARequestTo(method, path string) error {
	path = t.replacePlaceholders(path)
	return t.executeRequest(method, path, nil)
}

func (t *testContext) iSendARequestToWithBody(method, path string, body *godog.DocString) error {
	path = t.replacePlaceholders(path)

	var payload []byte
	if body != nil && body.Content != "" {
		payload = []byte(t.replacePlaceholders(body.Content))
	}
	return t.executeRequest(method, path, payload)
}

func (t *testContext) replacePlaceholders(content string) string {
	content = strings.ReplaceAll(content, "{{access_token}}", t.accessToken)
	content = strings.ReplaceAll(content, "{{refresh_token}}", t.refreshToken)
	content = strings.ReplaceAll(content, "{{user_id}}", t.currentUserID.String())
	content = strings.ReplaceAll(content, "{{household_id}}", t.currentHouseholdID.String())
	content = strings.ReplaceAll(content, "{{my_member_id}}", t.myMemberID.String())
	content = strings.ReplaceAll(content, "{{member_id}}", t.otherMemberID.String())
	content = strings.ReplaceAll(content, "{{category_id}}", t.currentCategoryID.String())
	content = strings.ReplaceAll(content, "{{subcategory_id}}", t.currentSubcategoryID.String())
	content = strings.ReplaceAll(content, "{{template_id}}", t.currentTemplateID.String())
	content = strings.ReplaceAll(content, "{{card_id}}", t.currentCardID.String())
	content = strings.ReplaceAll(content, "{{purchase_id}}", t.currentPurchaseID.String())
	content = strings.ReplaceAll(content, "{{line_item_id}}", t.currentLineItemID.String())
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

	t.response = &response{status: resp.StatusCode}

	var responseBody map[string]any
	if err := json.Unmarshal(bodyBytes, &responseBody); err != nil {
		t.response.body = string(bodyBytes)
		return nil
	}
	t.response.body = responseBody
	t.captureIdentifiers(responseBody)
	return nil
}

// captureIdentifiers pulls resource IDs out of a response so later steps can
// reference them via placeholders. The resource type is inferred from fields
// unique to each response shape.
func (t *testContext) captureIdentifiers(body map[string]any) {
	if household, ok := body["household"].(map[string]any); ok {
		if id := parseIDField(household, "id"); id != uuid.Nil {
			t.currentHouseholdID = id
		}
	}
	if purchase, ok := body["purchase"].(map[string]any); ok {
		if id := parseIDField(purchase, "id"); id != uuid.Nil {
			t.currentPurchaseID = id
		}
	}
	if token, ok := body["access_token"].(string); ok && token != "" {
		t.accessToken = token
	}
	if token, ok := body["refresh_token"].(string); ok && token != "" {
		t.refreshToken = token
	}

	id := parseIDField(body, "id")
	if id == uuid.Nil {
		return
	}
	switch {
	case hasField(body, "policy"):
		t.currentTemplateID = id
	case hasField(body, "brand"):
		t.currentCardID = id
	case hasField(body, "billing_period"):
		t.currentLineItemID = id
	case hasField(body, "user_id") && hasField(body, "nickname"):
		t.otherMemberID = id
	}
}

func parseIDField(object map[string]any, field string) uuid.UUID {
	if raw, ok := object[field].(string); ok {
		if id, err := uuid.Parse(raw); err == nil {
			return id
		}
	}
	return uuid.Nil
}

func hasField(object map[string]any, field string) bool {
	_, ok := object[field]
	return ok
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
	expectedValue = t.replacePlaceholders(expectedValue)

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
	if value := getFieldValue(t.response.body, field); value == nil {
		return fmt.Errorf("field '%s' not found in response: %v", field, t.response.body)
	}
	return nil
}

func (t *testContext) theDbShouldContainObjectsInTheTable(quantity int, table string) error {
	entity, ok := t.db.GetModel(table)
	if !ok {
		return fmt.Errorf("table '%s' not found in models", table)
	}

	count, err := t.countRows(entity, nil)
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

	entity, ok := t.db.GetModel(table)
	if !ok {
		return fmt.Errorf("table '%s' not found in models", table)
	}

	count, err := t.countRows(entity, criteria)
	if err != nil {
		return err
	}
	if count != quantity {
		return fmt.Errorf("expected %d objects in '%s' with criteria %v, got %d", quantity, table, criteria, count)
	}
	return nil
}

func (t *testContext) countRows(entity any, criteria map[string]any) (int, error) {
	entityType := reflect.TypeOf(entity).Elem()
	entitySlice := reflect.MakeSlice(reflect.SliceOf(entityType), 0, 0)
	entitySlicePtr := reflect.New(entitySlice.Type())
	entitySlicePtr.Elem().Set(entitySlice)

	query := t.db.DbConn.Unscoped()
	for key, value := range criteria {
		query = query.Where(fmt.Sprintf("%s = ?", key), value)
	}

	result := query.Find(entitySlicePtr.Interface())
	if result.Error != nil && !errors.Is(result.Error, gorm.ErrRecordNotFound) {
		return 0, result.Error
	}
	return entitySlicePtr.Elem().Len(), nil
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
