package application

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/go-user-auth-api/internal/infrastructure/memory"
	"github.com/oksasatya/go-user-auth-api/pkg/helpers"
)

func newESService(t *testing.T, status int, body string) *Service {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Elastic-Product", "Elasticsearch")
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)

	es, err := helpers.NewESClient([]string{srv.URL}, "", "")
	require.NoError(t, err)
	return NewService(memory.NewUserRepository(), memory.NewTokenRepository(), helpers.NewJWTManager("test-secret", time.Hour), nil, nil, es, "users")
}

func TestSearchUsers_ReturnsHits(t *testing.T) {
	s := newESService(t, http.StatusOK, `{"hits":{"hits":[{"_source":{"email":"a@example.com","name":"A"}}]}}`)

	res, err := s.SearchUsers(context.Background(), "a", 10)
	require.NoError(t, err)
	require.Len(t, res, 1)
	assert.Equal(t, "a@example.com", res[0]["email"])
}

func TestSearchUsers_ErrorStatus(t *testing.T) {
	for _, status := range []int{http.StatusNotFound, http.StatusInternalServerError} {
		s := newESService(t, status, `{"error":{"type":"index_not_found_exception"},"status":404}`)

		res, err := s.SearchUsers(context.Background(), "a", 10)
		assert.Error(t, err, "status %d", status)
		assert.Nil(t, res)
	}
}
