package http

import (
	"net/http"
	"strconv"

	"github.com/aq2208/gstore-api/internal/catalog"
	"github.com/aq2208/gstore-api/internal/usecase"
	"github.com/gin-gonic/gin"
)

const relatedLimit = 4

type CatalogHandler struct {
	store usecase.CartStore
}

func NewCatalogHandler(st usecase.CartStore) *CatalogHandler {
	return &CatalogHandler{store: st}
}

// GET /v1/products?category=&q=
func (h *CatalogHandler) ListProducts(c *gin.Context) {
	products := h.store.State().Products
	c.JSON(http.StatusOK, gin.H{
		"products":   catalog.Filter(products, c.Query("category"), c.Query("q")),
		"categories": catalog.Categories(products),
	})
}

// GET /v1/products/:id
func (h *CatalogHandler) GetProduct(c *gin.Context) {
	products := h.store.State().Products
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	p, ok := catalog.Find(products, id)
	if err != nil || !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "product not found", "link": "/v1/products"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"product": p,
		"related": catalog.Related(products, p, relatedLimit),
	})
}
