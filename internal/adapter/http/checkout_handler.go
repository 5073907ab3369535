package http

import (
	"context"
	"errors"
	"net/http"
	"time"

	domain "github.com/aq2208/gstore-api/internal/entity"
	"github.com/aq2208/gstore-api/internal/logging"
	"github.com/aq2208/gstore-api/internal/receipt"
	"github.com/aq2208/gstore-api/internal/usecase"
	"github.com/gin-gonic/gin"
)

const (
	headerIdempotencyKey = "X-Idempotency-Key"
	receiptPath          = "/v1/receipt"
	productsPath         = "/v1/products"
)

type CheckoutHandler struct {
	checkout *usecase.Checkout
	handoff  *usecase.Handoff
	timeout  time.Duration
}

func NewCheckoutHandler(uc *usecase.Checkout, handoff *usecase.Handoff, timeout time.Duration) *CheckoutHandler {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &CheckoutHandler{checkout: uc, handoff: handoff, timeout: timeout}
}

// Payment fields are accepted for form parity and dropped; nothing is charged.
type checkoutReq struct {
	Customer domain.Customer `json:"customerInfo" binding:"required"`
	Payment  struct {
		CardNumber string `json:"cardNumber"`
		Expiry     string `json:"expiry"`
		CVV        string `json:"cvv"`
	} `json:"payment"`
}

// POST /v1/checkout
func (h *CheckoutHandler) Checkout(c *gin.Context) {
	var req checkoutReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "bad_request"})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), h.timeout)
	defer cancel()

	out, err := h.checkout.Execute(ctx, usecase.CheckoutInput{
		Customer:       req.Customer,
		IdempotencyKey: c.GetHeader(headerIdempotencyKey),
	})
	if err != nil {
		status := http.StatusInternalServerError
		switch {
		case errors.Is(err, usecase.ErrInvalidCustomer):
			status = http.StatusBadRequest
		case errors.Is(err, usecase.ErrEmptyCart), errors.Is(err, usecase.ErrDuplicate):
			status = http.StatusConflict
		case errors.Is(err, context.DeadlineExceeded), errors.Is(err, context.Canceled):
			status = http.StatusServiceUnavailable
		default:
			logging.From(c).Error("checkout", "err", err)
		}
		c.JSON(status, gin.H{"error": err.Error()})
		return
	}

	status := http.StatusCreated
	if out.Replayed {
		status = http.StatusOK
	}
	c.Header("Location", receiptPath)
	c.JSON(status, newReceiptView(out.Receipt))
}

// GET /v1/receipt. Without a completed checkout there is nothing to show, so
// the client is sent back to the product list.
func (h *CheckoutHandler) Receipt(c *gin.Context) {
	r := h.handoff.Current()
	if r == nil {
		c.Redirect(http.StatusSeeOther, productsPath)
		return
	}
	if c.Query("format") == "text" {
		c.String(http.StatusOK, receipt.Format(r))
		return
	}
	c.JSON(http.StatusOK, newReceiptView(r))
}
