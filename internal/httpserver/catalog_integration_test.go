package httpserver

import (
	"encoding/json"
	"net/http"
	"strings"
	"testing"

	"padaria/internal/domain"
	productrepo "padaria/internal/repository/product"
	productsvc "padaria/internal/service/product"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newSQLiteRouter(t *testing.T) *gin.Engine {
	t.Helper()
	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	db, err := productrepo.OpenSQLite("file:"+name+"?mode=memory&cache=shared", nil)
	require.NoError(t, err)
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	svc := productsvc.New(productrepo.NewSQLite(db, nil), nil, nil, logDiscard())
	return newTestRouter(t, svc)
}

func listProducts(t *testing.T, router http.Handler) []domain.Product {
	t.Helper()
	rec := doRequest(router, http.MethodGet, "/api/produtos", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var resp listResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Equal(t, len(resp.Data), resp.Total)
	return resp.Data
}

func TestCatalog_CreateThenListNewestFirst(t *testing.T) {
	router := newSQLiteRouter(t)

	rec := doRequest(router, http.MethodPost, "/api/produtos", `{"nome":"Broa","preco":3}`)
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = doRequest(router, http.MethodPost, "/api/produtos", `{"nome":" Pão ","preco":5.5,"descricao":"  "}`)
	require.Equal(t, http.StatusCreated, rec.Code)
	var created createResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	assert.Positive(t, created.Data.ID)
	assert.Equal(t, "Pão", created.Data.Nome)
	assert.Equal(t, 5.5, created.Data.Preco)
	assert.Nil(t, created.Data.Descricao)
	assert.False(t, created.Data.CreatedAt.IsZero())

	list := listProducts(t, router)
	require.Len(t, list, 2)
	assert.Equal(t, created.Data.ID, list[0].ID)

	assert.Equal(t, list, listProducts(t, router))
}

func TestCatalog_RejectedCreateLeavesStoreUntouched(t *testing.T) {
	router := newSQLiteRouter(t)

	for _, body := range []string{`{"nome":"Pão","preco":0}`, `{"nome":"Pão","preco":-1}`, `{"preco":2}`} {
		rec := doRequest(router, http.MethodPost, "/api/produtos", body)
		require.Equal(t, http.StatusBadRequest, rec.Code, body)
	}

	assert.Empty(t, listProducts(t, router))
}

func TestCatalog_DeleteMissingIs404(t *testing.T) {
	router := newSQLiteRouter(t)
	require.Equal(t, http.StatusCreated, doRequest(router, http.MethodPost, "/api/produtos", `{"nome":"Pão","preco":1}`).Code)

	rec := doRequest(router, http.MethodDelete, "/api/produtos/999999", "")

	require.Equal(t, http.StatusNotFound, rec.Code)
	assert.Len(t, listProducts(t, router), 1)
}

func TestCatalog_DeleteRemovesExactlyThatRecord(t *testing.T) {
	router := newSQLiteRouter(t)

	var ids []int64
	for _, body := range []string{`{"nome":"Sonho","preco":6}`, `{"nome":"Rosca","preco":12.9}`} {
		rec := doRequest(router, http.MethodPost, "/api/produtos", body)
		require.Equal(t, http.StatusCreated, rec.Code)
		var created createResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
		ids = append(ids, created.Data.ID)
	}

	rec := doRequest(router, http.MethodDelete, "/api/produtos/"+jsonInt(ids[0]), "")
	require.Equal(t, http.StatusOK, rec.Code)
	var resp deleteResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "Sonho", resp.Nome)

	list := listProducts(t, router)
	require.Len(t, list, 1)
	assert.Equal(t, ids[1], list[0].ID)

	rec = doRequest(router, http.MethodDelete, "/api/produtos/"+jsonInt(ids[0]), "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func jsonInt(v int64) string {
	raw, _ := json.Marshal(v)
	return string(raw)
}
