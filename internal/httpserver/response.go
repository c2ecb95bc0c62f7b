package httpserver

import (
	"net/http"

	"padaria/internal/domain"

	"github.com/gin-gonic/gin"
)

const (
	msgHealthy       = "API funcionando perfeitamente!"
	msgCreated       = "Produto cadastrado com sucesso!"
	msgNotFound      = "Produto não encontrado"
	msgRouteNotFound = "Rota não encontrada"
	msgInternal      = "Erro interno do servidor"
)

// isoMillis matches the timestamp layout browsers produce with toISOString.
const isoMillis = "2006-01-02T15:04:05.000Z07:00"

type healthResponse struct {
	Success   bool   `json:"success"`
	Message   string `json:"message"`
	Timestamp string `json:"timestamp"`
}

type listResponse struct {
	Success bool             `json:"success"`
	Data    []domain.Product `json:"data"`
	Total   int              `json:"total"`
}

type createResponse struct {
	Success bool           `json:"success"`
	Message string         `json:"message"`
	Data    domain.Product `json:"data"`
}

type deleteResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Nome    string `json:"nome"`
}

type errorResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Error   string `json:"error,omitempty"`
}

type routeNotFoundResponse struct {
	Success         bool     `json:"success"`
	Message         string   `json:"message"`
	AvailableRoutes []string `json:"availableRoutes"`
}

func fail(c *gin.Context, status int, message string, err error) {
	resp := errorResponse{Success: false, Message: message}
	if err != nil {
		resp.Error = err.Error()
	}
	c.AbortWithStatusJSON(status, resp)
}

func internalError(c *gin.Context, err error) {
	fail(c, http.StatusInternalServerError, msgInternal, err)
}

func notFoundHandler(c *gin.Context) {
	c.JSON(http.StatusNotFound, routeNotFoundResponse{
		Success:         false,
		Message:         msgRouteNotFound,
		AvailableRoutes: AvailableRoutes,
	})
}
