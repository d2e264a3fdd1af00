package sheets

import (
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/oauth2"
)

func TestCallbackRouter(t *testing.T) {
	tests := []struct {
		wantErr  error
		name     string
		query    string
		wantCode string
		status   int
	}{
		{name: "valid", query: "?state=s1&code=abc", wantCode: "abc", status: http.StatusOK},
		{name: "state mismatch", query: "?state=other&code=abc", wantErr: ErrStateMismatch, status: http.StatusBadRequest},
		{name: "missing code", query: "?state=s1", status: http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			results := make(chan callbackResult, 1)
			router := callbackRouter("s1", results)

			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/callback"+tt.query, nil))
			assert.Equal(t, tt.status, rec.Code)

			res := <-results
			if tt.status == http.StatusOK {
				require.NoError(t, res.err)
				assert.Equal(t, tt.wantCode, res.code)
				return
			}
			require.Error(t, res.err)
			if tt.wantErr != nil {
				assert.ErrorIs(t, res.err, tt.wantErr)
			}
		})
	}
}

func TestCallbackRouter_DropsExtraCallbacks(t *testing.T) {
	results := make(chan callbackResult, 1)
	router := callbackRouter("s1", results)

	for range 2 {
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/callback?state=s1&code=abc", nil))
		assert.Equal(t, http.StatusOK, rec.Code)
	}
	assert.Len(t, results, 1)
}

func TestTokenRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "token.json")
	token := &oauth2.Token{
		AccessToken:  "access",
		RefreshToken: "refresh",
		TokenType:    "Bearer",
		Expiry:       time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC),
	}

	require.NoError(t, saveToken(path, token))

	loaded, err := LoadToken(path)
	require.NoError(t, err)
	assert.Equal(t, token.RefreshToken, loaded.RefreshToken)
	assert.True(t, token.Expiry.Equal(loaded.Expiry))
}

func TestLoadToken_Missing(t *testing.T) {
	_, err := LoadToken(filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)
}
