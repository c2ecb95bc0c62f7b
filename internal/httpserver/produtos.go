package httpserver

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"padaria/internal/domain"
	"padaria/internal/logging"
	productsvc "padaria/internal/service/product"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

type productHandler struct {
	svc    ProductService
	logger zerolog.Logger
	now    func() time.Time
}

func (h *productHandler) test(c *gin.Context) {
	c.JSON(http.StatusOK, healthResponse{
		Success:   true,
		Message:   msgHealthy,
		Timestamp: h.now().UTC().Format(isoMillis),
	})
}

func (h *productHandler) list(c *gin.Context) {
	ctx := c.Request.Context()
	log := logging.WithContext(ctx, h.logger)

	products, err := h.svc.List(ctx)
	if err != nil {
		h.writeError(c, log, err)
		return
	}
	if products == nil {
		products = []domain.Product{}
	}
	log.Info().Int("total", len(products)).Msg("produtos encontrados")
	c.JSON(http.StatusOK, listResponse{Success: true, Data: products, Total: len(products)})
}

func (h *productHandler) create(c *gin.Context) {
	ctx := c.Request.Context()
	log := logging.WithContext(ctx, h.logger)

	in, err := decodeCreate(c)
	if err != nil {
		log.Error().Err(err).Msg("decode create body")
		internalError(c, err)
		return
	}
	log.Info().Str("nome", in.Nome).RawJSON("preco", rawOrNull(in.Preco)).Msg("cadastrando produto")

	created, err := h.svc.Create(ctx, in)
	if err != nil {
		h.writeError(c, log, err)
		return
	}
	log.Info().Int64("id", created.ID).Str("nome", created.Nome).Msg("produto cadastrado")
	c.JSON(http.StatusCreated, createResponse{Success: true, Message: msgCreated, Data: *created})
}

func (h *productHandler) delete(c *gin.Context) {
	ctx := c.Request.Context()
	log := logging.WithContext(ctx, h.logger)

	id, err := productsvc.ParseID(c.Param("id"))
	if err != nil {
		h.writeError(c, log, err)
		return
	}
	log.Info().Int64("id", id).Msg("excluindo produto")

	nome, err := h.svc.Delete(ctx, id)
	if err != nil {
		h.writeError(c, log, err)
		return
	}
	message := "Produto \"" + nome + "\" excluído com sucesso!"
	log.Info().Int64("id", id).Str("nome", nome).Msg("produto excluído")
	c.JSON(http.StatusOK, deleteResponse{Success: true, Message: message, Nome: nome})
}

// writeError maps the three failure tiers onto status codes. Store failures
// are reported as 400 to stay wire compatible with existing clients.
func (h *productHandler) writeError(c *gin.Context, log zerolog.Logger, err error) {
	var (
		vErr     *productsvc.ValidationError
		storeErr *productsvc.StoreError
	)
	switch {
	case errors.As(err, &vErr):
		log.Warn().Str("reason", vErr.Message).Msg("requisição rejeitada")
		fail(c, http.StatusBadRequest, vErr.Message, nil)
	case errors.Is(err, domain.ErrNotFound):
		fail(c, http.StatusNotFound, msgNotFound, nil)
	case errors.As(err, &storeErr):
		log.Error().Err(storeErr.Err).Msg(storeErr.Message)
		fail(c, http.StatusBadRequest, storeErr.Message, storeErr.Err)
	default:
		log.Error().Err(err).Msg("erro interno")
		internalError(c, err)
	}
}

// decodeCreate reads the JSON body. An empty body is an empty candidate, so it
// fails validation rather than decoding.
func decodeCreate(c *gin.Context) (productsvc.CreateInput, error) {
	var in productsvc.CreateInput
	body, err := c.GetRawData()
	if err != nil {
		return in, fmt.Errorf("read body: %w", err)
	}
	if len(bytes.TrimSpace(body)) == 0 {
		return in, nil
	}
	if err := json.Unmarshal(body, &in); err != nil {
		return in, err
	}
	return in, nil
}

func rawOrNull(raw json.RawMessage) []byte {
	if len(bytes.TrimSpace(raw)) == 0 {
		return []byte("null")
	}
	return raw
}
