package integration_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/metinatakli/venue-checkout/internal/app"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

var keysToIgnore = map[string]struct{}{
	"timestamp": {},
	"requestId": {},
	"createdAt": {},
}

// decimalComparer compares amounts by value, so 80 and 80.00 are equal.
var decimalComparer = cmp.Comparer(func(a, b decimal.Decimal) bool {
	return a.Equal(b)
})

func prepareRequest(method, path string, body io.Reader, headers map[string]string, cookies []http.Cookie) (*http.Request, error) {
	req := httptest.NewRequest(method, path, body)

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	for k, v := range headers {
		req.Header.Set(k, v)
	}

	for i := range cookies {
		req.AddCookie(&cookies[i])
	}

	return req, nil
}

func compareResponse(t *testing.T, body io.Reader, expectedResponse string) {
	var actual map[string]any
	require.NoError(t, json.NewDecoder(body).Decode(&actual))

	cleanMap(actual)

	var expected map[string]any
	require.NoError(t, json.Unmarshal([]byte(expectedResponse), &expected))

	// ignore indetermistic fields while comparing
	opts := cmpopts.IgnoreMapEntries(func(k string, _ any) bool {
		_, ok := keysToIgnore[k]
		return ok
	})

	if diff := cmp.Diff(expected, actual, opts); diff != "" {
		t.Errorf("response mismatch (-want +got):\n%s", diff)
	}
}

func cleanMap(m map[string]any) {
	for k := range m {
		if _, ok := keysToIgnore[k]; ok {
			delete(m, k)
			continue
		}
		if nested, ok := m[k].(map[string]any); ok {
			cleanMap(nested)
		}
	}
}

func decodeBody[T any](t testing.TB, res *http.Response) T {
	t.Helper()

	var v T
	require.NoError(t, json.NewDecoder(res.Body).Decode(&v))

	return v
}

func executeSQLFile(t testing.TB, db *pgxpool.Pool, path string) {
	t.Helper()

	script, err := os.ReadFile(path)
	require.NoError(t, err, "failed to read %s", path)

	_, err = db.Exec(context.Background(), string(script))
	require.NoError(t, err, "failed to execute %s", path)
}

// resetState empties every table, reseeds the venue and drops all redis keys, sessions included.
func resetState(t testing.TB, testApp *TestApp) {
	t.Helper()

	executeSQLFile(t, testApp.DB, "testdata/reset.sql")
	executeSQLFile(t, testApp.DB, "testdata/venue_up.sql")

	require.NoError(t, testApp.RedisClient.FlushDB(context.Background()).Err())
}

// authenticatedUserCookies stores a session for userID in redis and returns the cookie that
// carries it.
func (a *TestApp) authenticatedUserCookies(t testing.TB, userID string, permissions ...string) []http.Cookie {
	t.Helper()

	ctx, err := a.Sessions.Load(context.Background(), "")
	require.NoError(t, err)

	a.Sessions.Put(ctx, app.SessionKeyUserId.String(), userID)
	if len(permissions) > 0 {
		a.Sessions.Put(ctx, app.SessionKeyPermissions.String(), permissions)
	}

	token, _, err := a.Sessions.Commit(ctx)
	require.NoError(t, err)

	return []http.Cookie{{Name: app.SessionCookieName, Value: token}}
}
