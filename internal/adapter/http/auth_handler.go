package http

import (
	"errors"
	"net/http"

	"github.com/aq2208/gstore-api/internal/adapter/http/middleware"
	domain "github.com/aq2208/gstore-api/internal/entity"
	"github.com/aq2208/gstore-api/internal/logging"
	"github.com/aq2208/gstore-api/internal/security"
	"github.com/aq2208/gstore-api/internal/usecase"
	"github.com/gin-gonic/gin"
)

const wishlistSize = 3

type AuthHandler struct {
	auth   *usecase.Auth
	tokens *security.Tokens
	store  usecase.CartStore
}

func NewAuthHandler(auth *usecase.Auth, tokens *security.Tokens, st usecase.CartStore) *AuthHandler {
	return &AuthHandler{auth: auth, tokens: tokens, store: st}
}

type loginReq struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type registerReq struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// POST /v1/auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req loginReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "bad_request"})
		return
	}
	u, err := h.auth.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		h.fail(c, err)
		return
	}
	h.session(c, u)
}

// POST /v1/auth/register
func (h *AuthHandler) Register(c *gin.Context) {
	var req registerReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "bad_request"})
		return
	}
	u, err := h.auth.Register(c.Request.Context(), req.Name, req.Email, req.Password)
	if err != nil {
		h.fail(c, err)
		return
	}
	h.session(c, u)
}

// POST /v1/auth/logout
func (h *AuthHandler) Logout(c *gin.Context) {
	if err := h.auth.Logout(c.Request.Context()); err != nil {
		h.fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// GET /v1/profile (behind Authz.Require)
func (h *AuthHandler) Profile(c *gin.Context) {
	u, ok, err := h.auth.Current(c.Request.Context())
	if err != nil {
		h.fail(c, err)
		return
	}
	if !ok {
		// token outlived the stored session; fall back to its claims
		claims, _ := middleware.ClaimsFrom(c)
		if claims == nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "not signed in"})
			return
		}
		u = domain.User{Email: claims.Email, Name: claims.Name}
	}

	products := h.store.State().Products
	wishlist := products[:min(wishlistSize, len(products))]
	c.JSON(http.StatusOK, gin.H{"user": u, "wishlist": wishlist})
}

func (h *AuthHandler) session(c *gin.Context, u domain.User) {
	token, err := h.tokens.Issue(u.ID, u.Email, u.Name)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"user":         u,
		"access_token": token,
		"token_type":   "Bearer",
		"expires_in":   int(h.tokens.TTL().Seconds()),
	})
}

func (h *AuthHandler) fail(c *gin.Context, err error) {
	switch {
	case errors.Is(err, usecase.ErrInvalidCredentials):
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
	case errors.Is(err, usecase.ErrMissingFields):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		logging.From(c).Error("auth", "err", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "server_error"})
	}
}
