//go:build integration

// Package steps contains the Godog step definitions for the BDD suite.
package steps

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/cucumber/godog"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"

	"github.com/cepet-deal/backend/config"
	"github.com/cepet-deal/backend/internal/application/adapter"
	"github.com/cepet-deal/backend/internal/infra/dependency"
	"github.com/cepet-deal/backend/internal/integration/adapters"
	"github.com/cepet-deal/backend/internal/integration/persistence/model"
	"github.com/cepet-deal/backend/test/integration/mock"
)

const (
	testJWTSecret = "test-jwt-secret-key-for-testing-purposes"
	serverPort    = 8099
)

var (
	serverOnce   sync.Once
	sharedDB     *mock.Db
	sharedRedis  *redis.Client
	tokenService adapter.TokenService
)

// baseURL is where the suite's HTTP server listens.
func baseURL() string {
	return fmt.Sprintf("http://localhost:%d", serverPort)
}

// startServer wires the full application against the in-memory database and
// miniredis, then serves it on a local port. It runs once per test binary.
func startServer() {
	serverOnce.Do(func() {
		sharedDB = mock.NewDb("cepet_deal", map[string]any{
			"listings":     &model.ListingModel{},
			"transactions": &model.TransactionModel{},
		})
		sharedRedis = mock.NewRedis()
		tokenService = adapters.NewTokenService(testJWTSecret)

		cfg := &config.Config{
			JWT:   config.JWTConfig{Secret: testJWTSecret, AccessTokenExpiry: 24 * time.Hour},
			Cache: config.CacheConfig{ReportTTL: time.Minute},
		}

		injector := dependency.NewInjector(cfg, sharedDB.DbConn, sharedRedis, func() bool { return true })
		engine := injector.Router.Setup("test")

		go func() {
			if err := engine.Run(fmt.Sprintf(":%d", serverPort)); err != nil {
				panic(fmt.Sprintf("test server failed: %v", err))
			}
		}()

		waitForServer()
	})
}

func waitForServer() {
	for i := 0; i < 50; i++ {
		resp, err := http.Get(baseURL() + "/health")
		if err == nil {
			resp.Body.Close()
			return
		}
		time.Sleep(100 * time.Millisecond)
	}
	panic("test server did not become ready")
}

// testContext carries per-scenario state.
type testContext struct {
	dealerID        uuid.UUID
	accessToken     string
	listingsByBrand map[string]uuid.UUID
	txnsByReceipt   map[string]uuid.UUID

	responseStatus int
	responseHeader http.Header
	responseBody   []byte
}

// InitializeTestSuite starts the shared server before any scenario runs.
func InitializeTestSuite(ctx *godog.TestSuiteContext) {
	ctx.BeforeSuite(startServer)
}

// InitializeScenario registers all step definitions and resets state between
// scenarios.
func InitializeScenario(ctx *godog.ScenarioContext) {
	tc := &testContext{}

	ctx.Before(func(c context.Context, sc *godog.Scenario) (context.Context, error) {
		startServer()
		if err := sharedDB.ClearDB(); err != nil {
			return c, fmt.Errorf("failed to clear database: %w", err)
		}
		if err := mock.ClearRedis(sharedRedis); err != nil {
			return c, fmt.Errorf("failed to clear redis: %w", err)
		}
		*tc = testContext{
			listingsByBrand: make(map[string]uuid.UUID),
			txnsByReceipt:   make(map[string]uuid.UUID),
		}
		return c, nil
	})

	ctx.Step(`^I am authenticated as dealer "([^"]*)"$`, tc.iAmAuthenticatedAsDealer)
	ctx.Step(`^I am not authenticated$`, tc.iAmNotAuthenticated)
	ctx.Step(`^the dealer has the following transactions:$`, tc.theDealerHasTransactions)
	ctx.Step(`^dealer "([^"]*)" has the following transactions:$`, tc.dealerHasTransactions)
	ctx.Step(`^I send a GET request to "([^"]*)"$`, tc.iSendAGETRequestTo)
	ctx.Step(`^I send a POST request to "([^"]*)" with body:$`, tc.iSendAPOSTRequestToWithBody)
	ctx.Step(`^the response status should be (\d+)$`, tc.theResponseStatusShouldBe)
	ctx.Step(`^the response field "([^"]*)" should be "([^"]*)"$`, tc.theResponseFieldShouldBe)
	ctx.Step(`^the response field "([^"]*)" should have (\d+) elements$`, tc.theResponseFieldShouldHaveElements)
	ctx.Step(`^the response should not have field "([^"]*)"$`, tc.theResponseShouldNotHaveField)
	ctx.Step(`^the response header "([^"]*)" should contain "([^"]*)"$`, tc.theResponseHeaderShouldContain)
	ctx.Step(`^the response body should start with "([^"]*)"$`, tc.theResponseBodyShouldStartWith)
	ctx.Step(`^the transactions table should have (\d+) rows$`, tc.theTransactionsTableShouldHaveRows)
}

// dealerUUID derives a stable dealer ID from its scenario name, so features
// can refer to dealers by name without repeating UUIDs.
func dealerUUID(name string) uuid.UUID {
	return uuid.NewSHA1(uuid.NameSpaceOID, []byte("dealer:"+name))
}

func (tc *testContext) iAmAuthenticatedAsDealer(name string) error {
	tc.dealerID = dealerUUID(name)

	token, err := tokenService.GenerateAccessToken(context.Background(), tc.dealerID, name+"@cepetdeal.id")
	if err != nil {
		return fmt.Errorf("failed to generate access token: %w", err)
	}
	tc.accessToken = token
	return nil
}

func (tc *testContext) iAmNotAuthenticated() error {
	tc.accessToken = ""
	return nil
}

func (tc *testContext) theDealerHasTransactions(table *godog.Table) error {
	if tc.dealerID == uuid.Nil {
		return fmt.Errorf("no authenticated dealer to seed transactions for")
	}
	return tc.seedTransactions(tc.dealerID, table)
}

func (tc *testContext) dealerHasTransactions(name string, table *godog.Table) error {
	return tc.seedTransactions(dealerUUID(name), table)
}

// seedTransactions inserts one transaction per table row. Expected columns:
// receipt_number, vehicle, buyer, payment_method, total_price, collected,
// profit, brand, days_ago. A listing is created per dealer+brand on demand.
func (tc *testContext) seedTransactions(dealerID uuid.UUID, table *godog.Table) error {
	if len(table.Rows) < 2 {
		return fmt.Errorf("transaction table needs a header and at least one row")
	}

	columns := make(map[string]int, len(table.Rows[0].Cells))
	for i, cell := range table.Rows[0].Cells {
		columns[cell.Value] = i
	}

	cellValue := func(row int, column string) (string, error) {
		idx, ok := columns[column]
		if !ok {
			return "", fmt.Errorf("transaction table is missing column %q", column)
		}
		return table.Rows[row].Cells[idx].Value, nil
	}

	now := time.Now().UTC()
	for i := 1; i < len(table.Rows); i++ {
		receipt, err := cellValue(i, "receipt_number")
		if err != nil {
			return err
		}
		vehicle, err := cellValue(i, "vehicle")
		if err != nil {
			return err
		}
		buyer, err := cellValue(i, "buyer")
		if err != nil {
			return err
		}
		method, err := cellValue(i, "payment_method")
		if err != nil {
			return err
		}
		totalRaw, err := cellValue(i, "total_price")
		if err != nil {
			return err
		}
		collectedRaw, err := cellValue(i, "collected")
		if err != nil {
			return err
		}
		profitRaw, err := cellValue(i, "profit")
		if err != nil {
			return err
		}
		brand, err := cellValue(i, "brand")
		if err != nil {
			return err
		}
		daysAgoRaw, err := cellValue(i, "days_ago")
		if err != nil {
			return err
		}

		totalPrice, err := decimal.NewFromString(totalRaw)
		if err != nil {
			return fmt.Errorf("invalid total_price %q: %w", totalRaw, err)
		}
		collected, err := decimal.NewFromString(collectedRaw)
		if err != nil {
			return fmt.Errorf("invalid collected %q: %w", collectedRaw, err)
		}
		profit, err := decimal.NewFromString(profitRaw)
		if err != nil {
			return fmt.Errorf("invalid profit %q: %w", profitRaw, err)
		}
		daysAgo, err := strconv.Atoi(daysAgoRaw)
		if err != nil {
			return fmt.Errorf("invalid days_ago %q: %w", daysAgoRaw, err)
		}

		listingID, err := tc.ensureListing(dealerID, brand)
		if err != nil {
			return err
		}

		createdAt := now.AddDate(0, 0, -daysAgo)
		txn := &model.TransactionModel{
			ID:               uuid.New(),
			DealerID:         dealerID,
			ListingID:        listingID,
			ReceiptNumber:    receipt,
			Vehicle:          vehicle,
			Buyer:            buyer,
			PaymentMethod:    method,
			TotalPrice:       totalPrice,
			DownPayment:      decimal.Zero,
			TandaJadi:        decimal.Zero,
			Collected:        collected,
			RemainingPayment: totalPrice.Sub(collected),
			Profit:           profit,
			CreatedAt:        createdAt,
			UpdatedAt:        createdAt,
		}
		if err := sharedDB.DbConn.Create(txn).Error; err != nil {
			return fmt.Errorf("failed to seed transaction %s: %w", receipt, err)
		}
		tc.txnsByReceipt[receipt] = txn.ID
	}
	return nil
}

func (tc *testContext) ensureListing(dealerID uuid.UUID, brand string) (uuid.UUID, error) {
	key := dealerID.String() + ":" + brand
	if id, ok := tc.listingsByBrand[key]; ok {
		return id, nil
	}

	now := time.Now().UTC()
	listing := &model.ListingModel{
		ID:        uuid.New(),
		DealerID:  dealerID,
		Brand:     brand,
		Model:     "Test Model",
		Year:      2022,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := sharedDB.DbConn.Create(listing).Error; err != nil {
		return uuid.Nil, fmt.Errorf("failed to seed listing for brand %s: %w", brand, err)
	}
	tc.listingsByBrand[key] = listing.ID
	return listing.ID, nil
}

// replacePlaceholders substitutes {{txn:RECEIPT}} markers with the seeded
// transaction IDs so features can reference rows they created.
func (tc *testContext) replacePlaceholders(input string) string {
	for receipt, id := range tc.txnsByReceipt {
		input = strings.ReplaceAll(input, "{{txn:"+receipt+"}}", id.String())
	}
	return input
}

func (tc *testContext) executeRequest(method, path string, body io.Reader) error {
	req, err := http.NewRequest(method, baseURL()+path, body)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if tc.accessToken != "" {
		req.Header.Set("Authorization", "Bearer "+tc.accessToken)
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	payload, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}

	tc.responseStatus = resp.StatusCode
	tc.responseHeader = resp.Header
	tc.responseBody = payload
	return nil
}

func (tc *testContext) iSendAGETRequestTo(path string) error {
	return tc.executeRequest(http.MethodGet, tc.replacePlaceholders(path), nil)
}

func (tc *testContext) iSendAPOSTRequestToWithBody(path string, body *godog.DocString) error {
	payload := tc.replacePlaceholders(body.Content)
	return tc.executeRequest(http.MethodPost, tc.replacePlaceholders(path), bytes.NewBufferString(payload))
}

func (tc *testContext) theResponseStatusShouldBe(expected int) error {
	if tc.responseStatus != expected {
		return fmt.Errorf("expected status %d, got %d (body: %s)", expected, tc.responseStatus, tc.responseBody)
	}
	return nil
}

func (tc *testContext) theResponseFieldShouldBe(path, expected string) error {
	value, err := getFieldValue(tc.responseBody, path)
	if err != nil {
		return err
	}
	actual := stringifyFieldValue(value)
	if actual != expected {
		return fmt.Errorf("expected field %q to be %q, got %q (body: %s)", path, expected, actual, tc.responseBody)
	}
	return nil
}

func (tc *testContext) theResponseFieldShouldHaveElements(path string, expected int) error {
	value, err := getFieldValue(tc.responseBody, path)
	if err != nil {
		return err
	}
	list, ok := value.([]any)
	if !ok {
		return fmt.Errorf("field %q is not an array (body: %s)", path, tc.responseBody)
	}
	if len(list) != expected {
		return fmt.Errorf("expected field %q to have %d elements, got %d", path, expected, len(list))
	}
	return nil
}

func (tc *testContext) theResponseShouldNotHaveField(path string) error {
	if _, err := getFieldValue(tc.responseBody, path); err == nil {
		return fmt.Errorf("expected field %q to be absent (body: %s)", path, tc.responseBody)
	}
	return nil
}

func (tc *testContext) theResponseHeaderShouldContain(name, expected string) error {
	actual := tc.responseHeader.Get(name)
	if !strings.Contains(actual, expected) {
		return fmt.Errorf("expected header %q to contain %q, got %q", name, expected, actual)
	}
	return nil
}

func (tc *testContext) theResponseBodyShouldStartWith(prefix string) error {
	if !bytes.HasPrefix(tc.responseBody, []byte(prefix)) {
		limit := len(tc.responseBody)
		if limit > 16 {
			limit = 16
		}
		return fmt.Errorf("expected body to start with %q, got %q", prefix, tc.responseBody[:limit])
	}
	return nil
}

func (tc *testContext) theTransactionsTableShouldHaveRows(expected int) error {
	var count int64
	if err := sharedDB.DbConn.Model(&model.TransactionModel{}).Count(&count).Error; err != nil {
		return fmt.Errorf("failed to count transactions: %w", err)
	}
	if count != int64(expected) {
		return fmt.Errorf("expected %d transactions, got %d", expected, count)
	}
	return nil
}
