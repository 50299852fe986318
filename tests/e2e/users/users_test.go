package users

import (
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/require"

	"github.com/nkiryanov/exertrack/internal/testutil"
	"github.com/nkiryanov/exertrack/tests/e2e"
)

const UsersURL = "/api/users"

func Test_Users(t *testing.T) {
	t.Parallel()

	pg := testutil.StartPostgresContainer(t)
	t.Cleanup(pg.Terminate)

	type userResponse struct {
		Username string `json:"username"`
		ID       string `json:"id"`
	}

	t.Run("created user appears in listing", func(t *testing.T) {
		e2e.ServeWithTx(pg.Pool, t, func(_ pgx.Tx, srvURL string, _ e2e.Services) {
			resp, err := http.Post(srvURL+UsersURL, "application/json", strings.NewReader(`{"username": "e2e-user"}`))
			require.NoError(t, err, "failed to send request")
			body, err := io.ReadAll(resp.Body)
			require.NoError(t, err, "failed to read response body")
			defer resp.Body.Close() // nolint:errcheck

			var created userResponse
			require.NoError(t, json.Unmarshal(body, &created))
			require.Equal(t, "e2e-user", created.Username)
			require.NotEmpty(t, created.ID)

			resp, err = http.Get(srvURL + UsersURL)
			require.NoError(t, err, "failed to send request")
			body, err = io.ReadAll(resp.Body)
			require.NoError(t, err, "failed to read response body")
			defer resp.Body.Close() // nolint:errcheck

			var listed []userResponse
			require.NoError(t, json.Unmarshal(body, &listed))
			require.Equal(t, []userResponse{created}, listed)
		})
	})

	t.Run("empty store listing fails", func(t *testing.T) {
		e2e.ServeWithTx(pg.Pool, t, func(_ pgx.Tx, srvURL string, _ e2e.Services) {
			resp, err := http.Get(srvURL + UsersURL)
			require.NoError(t, err, "failed to send request")
			body, err := io.ReadAll(resp.Body)
			require.NoError(t, err, "failed to read response body")
			defer resp.Body.Close() // nolint:errcheck

			require.Equal(t, http.StatusOK, resp.StatusCode, "error envelope keeps status 200")
			require.JSONEq(t, `{"error": "Failed to retrieve users list"}`, string(body))
		})
	})
}
