package postgres

import (
	"testing"

	"storefront/config"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

func TestConstraintHelpers(t *testing.T) {
	assert.True(t, isUniqueConstraintViolation(errors.Wrap(gorm.ErrDuplicatedKey, "create")))
	assert.True(t, isUniqueConstraintViolation(errors.New(`duplicate key value violates unique constraint "idx_users_email" (SQLSTATE 23505)`)))
	assert.False(t, isUniqueConstraintViolation(errors.New("connection refused")))

	assert.True(t, isForeignKeyConstraintViolation(gorm.ErrForeignKeyViolated))
	assert.False(t, isForeignKeyConstraintViolation(errors.New("timeout")))

	assert.True(t, isNotNullConstraintViolation(errors.New(`null value in column "name" violates not-null constraint (SQLSTATE 23502)`)))
	assert.False(t, isNotNullConstraintViolation(errors.New("timeout")))
}

func TestBuildDSN(t *testing.T) {
	cfg := &config.PostgresConfig{Database: "storefront"}
	conn := config.ConnectionConfig{Host: "db", Port: "5432", UserName: "app", Password: "pw"}

	dsn := buildDSN(cfg, conn)
	assert.Equal(t, "host=db port=5432 user=app password=pw dbname=storefront sslmode=disable TimeZone=UTC", dsn)

	cfg.SSLMode = "require"
	assert.Contains(t, buildDSN(cfg, conn), "sslmode=require")
}
