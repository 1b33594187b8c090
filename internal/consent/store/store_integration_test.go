//go:build integration

package store

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"

	"cookieconsent/internal/consent/models"
	"cookieconsent/pkg/testutil/containers"
)

type PostgresStoreSuite struct {
	suite.Suite
	postgres *containers.PostgresContainer
	store    *SQLStore
}

func TestPostgresStoreSuite(t *testing.T) {
	suite.Run(t, new(PostgresStoreSuite))
}

func (s *PostgresStoreSuite) SetupSuite() {
	s.postgres = containers.GetManager().GetPostgres(s.T())
	s.store = NewSQLStore(s.postgres.DB, DialectPostgres)
}

func (s *PostgresStoreSuite) SetupTest() {
	s.Require().NoError(s.postgres.TruncateTables(context.Background(), "cookie_consent_items"))
}

func (s *PostgresStoreSuite) TestBackendContract() {
	exerciseBackend(s.T(), s.store)
}

func (s *PostgresStoreSuite) TestMigrateIsIdempotent() {
	s.Require().NoError(s.store.Migrate(context.Background()))
}

type RedisStoreSuite struct {
	suite.Suite
	redis *containers.RedisContainer
}

func TestRedisStoreSuite(t *testing.T) {
	suite.Run(t, new(RedisStoreSuite))
}

func (s *RedisStoreSuite) SetupSuite() {
	s.redis = containers.GetManager().GetRedis(s.T())
}

func (s *RedisStoreSuite) SetupTest() {
	s.Require().NoError(s.redis.FlushAll(context.Background()))
}

func (s *RedisStoreSuite) TestBackendContract() {
	exerciseBackend(s.T(), NewRedisStore(s.redis.Client, 0))
}

func (s *RedisStoreSuite) TestWritesRefreshNamespaceTTL() {
	ctx := context.Background()
	backend := NewRedisStore(s.redis.Client, time.Hour)
	ns := Namespace(uuid.NewString())

	s.Require().NoError(backend.Set(ctx, ns, models.KeyConsent, "{}"))

	ttl, err := s.redis.Client.TTL(ctx, ns).Result()
	s.Require().NoError(err)
	s.Greater(ttl, 59*time.Minute)
	s.LessOrEqual(ttl, time.Hour)
}

func (s *RedisStoreSuite) TestZeroTTLPersists() {
	ctx := context.Background()
	backend := NewRedisStore(s.redis.Client, 0)
	ns := Namespace(uuid.NewString())

	s.Require().NoError(backend.Set(ctx, ns, models.KeyConsent, "{}"))

	ttl, err := s.redis.Client.TTL(ctx, ns).Result()
	s.Require().NoError(err)
	s.Equal(time.Duration(-1), ttl)
}
