package app

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/alexedwards/scs/v2"
	"github.com/go-chi/chi/v5"
	"github.com/metinatakli/venue-checkout/api"
	"github.com/metinatakli/venue-checkout/internal/mocks"
	"github.com/metinatakli/venue-checkout/internal/service"
	"github.com/metinatakli/venue-checkout/internal/validator"
)

const (
	testUserID  = "user-1"
	testStaffID = "staff-1"
)

// testRepos holds the mocks behind the services of a test application.
type testRepos struct {
	tx           *mocks.MockTxManager
	catalog      *mocks.MockCatalogRepo
	seats        *mocks.MockSeatMapRepo
	sessions     *mocks.MockSessionRepo
	carts        *mocks.MockCartRepo
	bookings     *mocks.MockBookingRepo
	transactions *mocks.MockTransactionRepo
	wallets      *mocks.MockWalletRepo
	locker       *mocks.MockSeatLocker
	redis        *mocks.MockRedisClient
}

func newTestRepos() *testRepos {
	return &testRepos{
		tx:           new(mocks.MockTxManager),
		catalog:      new(mocks.MockCatalogRepo),
		seats:        new(mocks.MockSeatMapRepo),
		sessions:     new(mocks.MockSessionRepo),
		carts:        new(mocks.MockCartRepo),
		bookings:     new(mocks.MockBookingRepo),
		transactions: new(mocks.MockTransactionRepo),
		wallets:      new(mocks.MockWalletRepo),
		locker:       new(mocks.MockSeatLocker),
		redis:        new(mocks.MockRedisClient),
	}
}

func newTestApplication(repos *testRepos, opts ...func(*Application)) *Application {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	seatMapService := service.NewSeatMapService(repos.catalog, repos.seats, logger)

	app := &Application{
		config:         Config{Env: "test"},
		logger:         logger,
		redis:          repos.redis,
		validator:      validator.NewValidator(),
		sessionManager: scs.New(),
		seatMapService: seatMapService,
		sessionService: service.NewSessionService(repos.tx, repos.catalog, seatMapService, repos.seats, repos.sessions, logger),
		cartService:    service.NewCartService(repos.tx, repos.catalog, repos.carts, logger, 0),
		checkoutService: service.NewCheckoutService(
			repos.tx,
			service.CheckoutRepositories{
				Catalog:      repos.catalog,
				Seats:        repos.seats,
				Sessions:     repos.sessions,
				Carts:        repos.carts,
				Bookings:     repos.bookings,
				Transactions: repos.transactions,
				Wallets:      repos.wallets,
			},
			seatMapService,
			repos.locker,
			logger,
			service.CheckoutConfig{},
		),
		paymentService: service.NewPaymentService(
			repos.tx,
			service.PaymentRepositories{
				Catalog:      repos.catalog,
				Bookings:     repos.bookings,
				Transactions: repos.transactions,
				Wallets:      repos.wallets,
			},
			logger,
			service.CheckoutConfig{},
		),
	}

	for _, opt := range opts {
		opt(app)
	}

	return app
}

func setupTestSession(t *testing.T, app *Application, r *http.Request, userId string, permissions ...string) *http.Request {
	ctx, err := app.sessionManager.Load(r.Context(), "session")
	if err != nil {
		t.Errorf("Failed to load session: %v", err)
	}

	app.sessionManager.Put(ctx, SessionKeyUserId.String(), userId)
	if len(permissions) > 0 {
		app.sessionManager.Put(ctx, SessionKeyPermissions.String(), permissions)
	}

	return r.WithContext(ctx)
}

func withURLParams(r *http.Request, params map[string]string) *http.Request {
	rctx := chi.NewRouteContext()
	for key, value := range params {
		rctx.URLParams.Add(key, value)
	}

	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

// serveAuthenticated runs handler behind the same authentication middleware the router uses.
func serveAuthenticated(app *Application, handler http.HandlerFunc, w http.ResponseWriter, r *http.Request) {
	app.requireAuthentication(handler).ServeHTTP(w, r)
}

func executeRequest(t *testing.T, method, url string, body any) (*httptest.ResponseRecorder, *http.Request) {
	var reader io.Reader = http.NoBody

	if body != nil {
		jsonData, err := json.Marshal(body)
		if err != nil {
			t.Fatal(err)
		}
		reader = bytes.NewReader(jsonData)
	}

	r := httptest.NewRequest(method, url, reader)
	r.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	return w, r
}

func checkErrorResponse(t *testing.T, w *httptest.ResponseRecorder, tt struct {
	wantStatus     int
	wantErrMessage string
}) {
	if tt.wantStatus >= 200 && tt.wantStatus < 300 {
		return
	}

	switch tt.wantStatus {
	case http.StatusUnprocessableEntity:
		var validationResp api.ValidationErrorResponse
		if err := json.NewDecoder(w.Body).Decode(&validationResp); err != nil {
			t.Fatalf("Failed to decode validation error response: %v", err)
		}

		errorSet := make(map[string]bool)
		for _, vErr := range validationResp.ValidationErrors {
			errorSet[vErr.Issue] = true
		}

		if !errorSet[tt.wantErrMessage] {
			t.Errorf("Expected validation error message '%s' not found in response", tt.wantErrMessage)
		}

	default:
		var errorResp api.ErrorResponse
		if err := json.NewDecoder(w.Body).Decode(&errorResp); err != nil {
			t.Fatalf("Failed to decode error response: %v", err)
		}

		if tt.wantErrMessage != "" && errorResp.Message != tt.wantErrMessage {
			t.Errorf("Error message = %v, want %v", errorResp.Message, tt.wantErrMessage)
		}
	}
}

func ptr[T any](v T) *T {
	return &v
}
