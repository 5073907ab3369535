package logging

import (
	"context"
	"log/slog"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestParseLevel(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, ParseLevel("DEBUG"))
	assert.Equal(t, slog.LevelWarn, ParseLevel("warning"))
	assert.Equal(t, slog.LevelError, ParseLevel("error"))
	assert.Equal(t, slog.LevelInfo, ParseLevel(""))
}

func TestFromCtx_FallsBackToBase(t *testing.T) {
	assert.NotNil(t, FromCtx(context.Background()))

	l := Discard()
	assert.Same(t, l, FromCtx(WithCtx(context.Background(), l)))
}

func TestGinContextLogger(t *testing.T) {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())

	assert.NotNil(t, From(c))
	l := Discard()
	With(c, l)
	assert.Same(t, l, From(c))
}
