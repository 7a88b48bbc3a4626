package database

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var errRefused = errors.New("connection refused")

type refusingDriver struct{}

func (refusingDriver) Open(string) (driver.Conn, error) {
	return nil, errRefused
}

func init() {
	sql.Register("refusing", refusingDriver{})
}

func TestConnect_ClosesFailedHandles(t *testing.T) {
	var opened []*sql.DB
	open := func() (*sql.DB, error) {
		db, err := sql.Open("refusing", "")
		if err == nil {
			opened = append(opened, db)
		}
		return db, err
	}

	db, err := connect(open, "db.internal", 3, 0, slog.New(slog.NewTextHandler(io.Discard, nil)))
	require.Error(t, err)
	assert.Nil(t, db)
	assert.ErrorIs(t, err, errRefused)

	require.Len(t, opened, 3)
	for _, handle := range opened {
		assert.EqualError(t, handle.PingContext(context.Background()), "sql: database is closed")
	}
}

func TestConfig_DSN(t *testing.T) {
	cfg := Config{Host: "db", Port: "5432", User: "app", Password: "secret", DBName: "cowork"}
	assert.Equal(t, "postgres://app:secret@db:5432/cowork?sslmode=disable", cfg.DSN())

	cfg.SSLMode = "require"
	assert.Equal(t, "postgres://app:secret@db:5432/cowork?sslmode=require", cfg.DSN())
}
