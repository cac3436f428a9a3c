// Package e2e provides end-to-end tests for the ItemService application.
// A PostgreSQL container is started with testcontainers-go, the embedded migrations are applied,
// and the real HTTP handler runs in an httptest.Server. Each test starts from an empty items table.
package e2e

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"strconv"
	"testing"
	"time"

	"github.com/abgdnv/itemservice/internal/app"
	"github.com/abgdnv/itemservice/internal/service"
	"github.com/abgdnv/itemservice/internal/store"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
)

// skipE2ETests is the environment variable that can be set to skip E2E tests.
const skipE2ETests = "ITEM_SVC_SKIP_E2E_TESTS"

// itemURL is the base path of the item API.
const itemURL = "/api/items"

// ItemServiceE2ESuite is a test suite for end-to-end tests of the ItemService.
type ItemServiceE2ESuite struct {
	suite.Suite
	pgContainer *postgres.PostgresContainer
	dbPool      *pgxpool.Pool
	server      *httptest.Server
	httpClient  *http.Client
	logger      *slog.Logger
	ctx         context.Context
}

// SetupSuite starts PostgreSQL, applies migrations and serves the application handler.
func (s *ItemServiceE2ESuite) SetupSuite() {
	s.ctx = context.Background()
	var err error
	s.logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))

	// 1. Start a PostgreSQL container and wait until it accepts connections.
	s.pgContainer, err = postgres.Run(s.ctx,
		"postgres:17.5-alpine",
		postgres.WithDatabase("items"),
		postgres.WithUsername("user"),
		postgres.WithPassword("password"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(5*time.Minute),
		),
	)
	require.NoError(s.T(), err, "Failed to run PostgreSQL container")

	connStr, err := s.pgContainer.ConnectionString(s.ctx, "sslmode=disable")
	require.NoError(s.T(), err, "Failed to get connection string from container")

	// 2. Database migration
	require.NoError(s.T(), store.Migrate(connStr), "Failed to apply migrations")

	// 3. Connection pool
	s.dbPool, err = pgxpool.New(s.ctx, connStr)
	require.NoError(s.T(), err, "Failed to create pgx pool")
	require.NoError(s.T(), s.dbPool.Ping(s.ctx), "Failed to ping PostgreSQL")

	// 4. Application
	deps := app.SetupDependencies(store.NewPgStore(s.dbPool), nil, s.logger)
	s.server = httptest.NewServer(app.SetupHttpHandler(deps))
	s.httpClient = s.server.Client()
	s.logger.Info("E2E test server started", "url", s.server.URL)
}

// TearDownSuite cleans up resources after all tests in the suite have run.
func (s *ItemServiceE2ESuite) TearDownSuite() {
	if s.server != nil {
		s.server.Close()
	}
	if s.dbPool != nil {
		s.dbPool.Close()
	}
	if s.pgContainer != nil {
		if err := s.pgContainer.Terminate(s.ctx); err != nil {
			s.logger.Warn("Failed to terminate E2E PostgreSQL container", "error", err)
		}
	}
}

// SetupTest empties the items table before each test.
func (s *ItemServiceE2ESuite) SetupTest() {
	_, err := s.dbPool.Exec(s.ctx, "TRUNCATE TABLE items RESTART IDENTITY")
	require.NoError(s.T(), err, "Failed to truncate items table")
}

func TestItemServiceE2E(t *testing.T) {
	if os.Getenv(skipE2ETests) == "1" {
		t.Skip("Skipping E2E tests based on " + skipE2ETests + " env var")
	}
	suite.Run(t, new(ItemServiceE2ESuite))
}

// itemPayload is the request body for create and update.
type itemPayload struct {
	Name     string `json:"name"`
	Quantity int32  `json:"quantity"`
}

func (s *ItemServiceE2ESuite) TestCreateItem() {
	created, status := s.createItem(itemPayload{Name: "Teclado Mecânico", Quantity: 5})

	s.Require().Equal(http.StatusCreated, status)
	s.Require().NotZero(created.ID)
	s.Require().Equal("Teclado Mecânico", created.Name)
	s.Require().Equal(int32(5), created.Quantity)
}

func (s *ItemServiceE2ESuite) TestFindByID() {
	seeded, status := s.createItem(itemPayload{Name: "Monitor Ultrawide", Quantity: 2})
	s.Require().Equal(http.StatusCreated, status)

	testCases := []struct {
		name         string
		id           string
		expectedCode int
	}{
		{name: "existing item", id: strconv.FormatInt(seeded.ID, 10), expectedCode: http.StatusOK},
		{name: "missing item", id: "999999", expectedCode: http.StatusNotFound},
		{name: "non-integer id", id: "abc", expectedCode: http.StatusBadRequest},
	}
	for _, tc := range testCases {
		s.Run(tc.name, func() {
			body, code := s.doRequest(http.MethodGet, s.server.URL+itemURL+"/"+tc.id, nil)
			s.Require().Equal(tc.expectedCode, code)
			switch code {
			case http.StatusOK:
				s.Require().Equal(seeded, s.decodeItem(body))
			case http.StatusNotFound:
				s.Require().Empty(body)
			}
		})
	}
}

func (s *ItemServiceE2ESuite) TestFindAll() {
	items, status := s.findAll()
	s.Require().Equal(http.StatusOK, status)
	s.Require().NotNil(items)
	s.Require().Empty(items)

	_, _ = s.createItem(itemPayload{Name: "Monitor Ultrawide", Quantity: 2})
	items, status = s.findAll()
	s.Require().Equal(http.StatusOK, status)
	s.Require().Len(items, 1)
	s.Require().Equal("Monitor Ultrawide", items[0].Name)
}

func (s *ItemServiceE2ESuite) TestUpdateItem() {
	seeded, _ := s.createItem(itemPayload{Name: "Monitor Ultrawide", Quantity: 2})
	url := s.server.URL + itemURL + "/" + strconv.FormatInt(seeded.ID, 10)

	body, status := s.doRequest(http.MethodPut, url, itemPayload{Name: "Monitor Ultrawide Pro", Quantity: 10})
	s.Require().Equal(http.StatusOK, status)
	s.Require().Equal(service.ItemDto{ID: seeded.ID, Name: "Monitor Ultrawide Pro", Quantity: 10}, s.decodeItem(body))

	body, status = s.doRequest(http.MethodGet, url, nil)
	s.Require().Equal(http.StatusOK, status)
	s.Require().Equal("Monitor Ultrawide Pro", s.decodeItem(body).Name)

	body, status = s.doRequest(http.MethodPut, s.server.URL+itemURL+"/999999", itemPayload{Name: "ghost"})
	s.Require().Equal(http.StatusNotFound, status)
	s.Require().Empty(body)
	items, _ := s.findAll()
	s.Require().Len(items, 1, "update of a missing item must not create one")
}

func (s *ItemServiceE2ESuite) TestDeleteItem() {
	first, _ := s.createItem(itemPayload{Name: "A", Quantity: 1})
	_, _ = s.createItem(itemPayload{Name: "B", Quantity: 2})
	url := s.server.URL + itemURL + "/" + strconv.FormatInt(first.ID, 10)

	body, status := s.doRequest(http.MethodDelete, url, nil)
	s.Require().Equal(http.StatusNoContent, status)
	s.Require().Empty(body)

	_, status = s.doRequest(http.MethodGet, url, nil)
	s.Require().Equal(http.StatusNotFound, status)

	_, status = s.doRequest(http.MethodDelete, url, nil)
	s.Require().Equal(http.StatusNotFound, status)

	items, _ := s.findAll()
	s.Require().Len(items, 1)
}

func (s *ItemServiceE2ESuite) TestReadiness() {
	_, status := s.doRequest(http.MethodGet, s.server.URL+"/readyz", nil)
	s.Require().Equal(http.StatusOK, status)
}

func (s *ItemServiceE2ESuite) createItem(payload itemPayload) (service.ItemDto, int) {
	s.T().Helper()
	body, status := s.doRequest(http.MethodPost, s.server.URL+itemURL, payload)
	var item service.ItemDto
	if status == http.StatusCreated {
		item = s.decodeItem(body)
	}
	return item, status
}

func (s *ItemServiceE2ESuite) findAll() ([]service.ItemDto, int) {
	s.T().Helper()
	body, status := s.doRequest(http.MethodGet, s.server.URL+itemURL, nil)
	var items []service.ItemDto
	if status == http.StatusOK {
		require.NoError(s.T(), json.Unmarshal(body, &items), "Failed to decode item list")
	}
	return items, status
}

func (s *ItemServiceE2ESuite) decodeItem(body []byte) service.ItemDto {
	s.T().Helper()
	var item service.ItemDto
	require.NoError(s.T(), json.Unmarshal(body, &item), "Failed to decode item")
	return item
}

// doRequest sends a request and returns the response body and status code.
func (s *ItemServiceE2ESuite) doRequest(method, url string, payload any) ([]byte, int) {
	s.T().Helper()
	var body io.Reader
	if payload != nil {
		payloadBytes, err := json.Marshal(payload)
		require.NoError(s.T(), err)
		body = bytes.NewBuffer(payloadBytes)
	}

	req, err := http.NewRequestWithContext(s.ctx, method, url, body)
	require.NoError(s.T(), err, "Failed to create HTTP request")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := s.httpClient.Do(req)
	require.NoError(s.T(), err, "HTTP request failed")
	defer func() {
		require.NoError(s.T(), resp.Body.Close(), "Failed to close response body")
	}()

	bodyBytes, err := io.ReadAll(resp.Body)
	require.NoError(s.T(), err, "Failed to read response body")
	return bodyBytes, resp.StatusCode
}
