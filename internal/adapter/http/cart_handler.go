package http

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/aq2208/gstore-api/internal/catalog"
	"github.com/aq2208/gstore-api/internal/coupon"
	"github.com/aq2208/gstore-api/internal/logging"
	"github.com/aq2208/gstore-api/internal/pricing"
	"github.com/aq2208/gstore-api/internal/store"
	"github.com/aq2208/gstore-api/internal/usecase"
	"github.com/gin-gonic/gin"
)

type CartHandler struct {
	store usecase.CartStore
	calc  pricing.Calculator
}

func NewCartHandler(st usecase.CartStore, calc pricing.Calculator) *CartHandler {
	return &CartHandler{store: st, calc: calc}
}

type addItemReq struct {
	ProductID int64 `json:"productId" binding:"required"`
	Quantity  int   `json:"quantity"`
}

type updateItemReq struct {
	Quantity *int `json:"quantity" binding:"required"`
}

type couponReq struct {
	Code string `json:"code" binding:"required"`
}

// GET /v1/cart
func (h *CartHandler) GetCart(c *gin.Context) {
	c.JSON(http.StatusOK, newCartView(h.store.State(), h.calc))
}

// POST /v1/cart/items
func (h *CartHandler) AddItem(c *gin.Context) {
	var req addItemReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "bad_request"})
		return
	}
	if req.Quantity < 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": store.ErrInvalidQuantity.Error()})
		return
	}
	p, ok := catalog.Find(h.store.State().Products, req.ProductID)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "product not found", "link": "/v1/products"})
		return
	}

	ctx := c.Request.Context()
	st, err := h.store.Dispatch(ctx, store.AddToCart{Product: p})
	if err == nil && req.Quantity > 1 {
		if it, found := st.Item(p.ID); found {
			st, err = h.store.Dispatch(ctx, store.UpdateQuantity{ID: p.ID, Quantity: it.Quantity + req.Quantity - 1})
		}
	}
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, newCartView(st, h.calc))
}

// PATCH /v1/cart/items/:id
func (h *CartHandler) UpdateItem(c *gin.Context) {
	id, ok := itemID(c)
	if !ok {
		return
	}
	var req updateItemReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "bad_request"})
		return
	}
	// quantity below one never reaches the store; removal is explicit
	if *req.Quantity < 1 {
		c.JSON(http.StatusBadRequest, gin.H{"error": store.ErrInvalidQuantity.Error()})
		return
	}
	if _, found := h.store.State().Item(id); !found {
		c.JSON(http.StatusNotFound, gin.H{"error": "item not in cart"})
		return
	}
	st, err := h.store.Dispatch(c.Request.Context(), store.UpdateQuantity{ID: id, Quantity: *req.Quantity})
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, newCartView(st, h.calc))
}

// DELETE /v1/cart/items/:id
func (h *CartHandler) RemoveItem(c *gin.Context) {
	id, ok := itemID(c)
	if !ok {
		return
	}
	h.dispatch(c, store.RemoveFromCart{ID: id})
}

// DELETE /v1/cart
func (h *CartHandler) Clear(c *gin.Context) {
	h.dispatch(c, store.ClearCart{})
}

// POST /v1/cart/coupon
func (h *CartHandler) ApplyCoupon(c *gin.Context) {
	var req couponReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "bad_request"})
		return
	}
	h.dispatch(c, store.ApplyCoupon{Code: req.Code})
}

// DELETE /v1/cart/coupon
func (h *CartHandler) RemoveCoupon(c *gin.Context) {
	h.dispatch(c, store.RemoveCoupon{})
}

func (h *CartHandler) dispatch(c *gin.Context, a store.Action) {
	st, err := h.store.Dispatch(c.Request.Context(), a)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, newCartView(st, h.calc))
}

func (h *CartHandler) fail(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	msg := err.Error()
	switch {
	case errors.Is(err, coupon.ErrInvalidCoupon):
		status, msg = http.StatusUnprocessableEntity, "invalid coupon"
	case errors.Is(err, store.ErrInvalidQuantity), errors.Is(err, store.ErrInvalidCart):
		status = http.StatusBadRequest
	default:
		logging.From(c).Error("cart dispatch", "err", err)
	}
	c.JSON(status, gin.H{"error": msg})
}

func itemID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "bad_request"})
		return 0, false
	}
	return id, true
}
