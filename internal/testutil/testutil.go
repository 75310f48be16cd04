// Package testutil builds fully wired servers for tests.
package testutil

import (
	"context"
	"fmt"
	"os"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/deppfellow/blog-api/internal/config"
	"github.com/deppfellow/blog-api/internal/server"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

// DatabaseURLEnv points tests at a real PostgreSQL instead of in-memory SQLite.
const DatabaseURLEnv = "BLOG_TEST_DATABASE_URL"

var dbCounter atomic.Int64

// NewTestConfig returns defaults pointing at a fresh database for this test.
//
// Without DatabaseURLEnv every call gets its own named in-memory SQLite
// database, shared by the pool's single connection.
func NewTestConfig(t *testing.T) *config.Config {
	t.Helper()

	cfg := config.DefaultConfig()
	cfg.Primary.Env = "test"
	cfg.Observability.Environment = "test"
	cfg.Observability.HealthChecks.Enabled = true

	if url := os.Getenv(DatabaseURLEnv); url != "" {
		cfg.Database.URL = url
		return cfg
	}

	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	cfg.Database.URL = fmt.Sprintf("file:%s_%d?mode=memory&cache=shared", name, dbCounter.Add(1))
	cfg.Database.MaxOpenConns = 1
	cfg.Database.MaxIdleConns = 1
	cfg.Database.ConnMaxLifetime = 0
	cfg.Database.ConnMaxIdleTime = 0

	return cfg
}

// NewTestServer opens the store, ensures the schema, and closes everything
// when the test ends. PostgreSQL tables are truncated first.
func NewTestServer(t *testing.T) *server.Server {
	t.Helper()

	cfg := NewTestConfig(t)
	logger := zerolog.New(zerolog.NewTestWriter(t)).Level(zerolog.InfoLevel)

	s, err := server.New(cfg, &logger, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.DB.Close() })

	if s.DB.Dialect.Name == "postgres" {
		_, err := s.DB.Pool.ExecContext(context.Background(), "TRUNCATE posts, users RESTART IDENTITY CASCADE")
		require.NoError(t, err)
	}

	return s
}
