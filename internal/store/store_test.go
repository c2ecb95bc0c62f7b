package store

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"padaria/internal/config"
	"padaria/internal/domain"
)

func TestOpen_SQLite(t *testing.T) {
	cfg := config.Config{StoreDriver: config.StoreSQLite, DBConnString: "file:store_open?mode=memory&cache=shared"}

	h, err := Open(context.Background(), cfg, zerolog.Nop())
	require.NoError(t, err)
	t.Cleanup(h.Close)

	assert.Nil(t, h.Pool)
	require.NoError(t, h.Products.Ping(context.Background()))

	p, err := h.Products.Create(context.Background(), domain.NewProduct{Nome: "Pão", Preco: 1})
	require.NoError(t, err)
	assert.NotZero(t, p.ID)
}

func TestOpen_UnknownDriver(t *testing.T) {
	_, err := Open(context.Background(), config.Config{StoreDriver: "mongo"}, zerolog.Nop())
	assert.ErrorContains(t, err, "mongo")
}

func TestSQLiteDSN(t *testing.T) {
	assert.Equal(t, defaultSQLiteDSN, sqliteDSN(""))
	assert.Equal(t, defaultSQLiteDSN, sqliteDSN("postgres://u:p@localhost/db"))
	assert.Equal(t, "dev.db", sqliteDSN("dev.db"))
}
