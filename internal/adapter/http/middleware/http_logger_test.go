package middleware

import (
	"bytes"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRedactJSON(t *testing.T) {
	out := redactJSON([]byte(`{"email":"a@b.c","password":"123456","payment":{"cvv":"999"}}`))
	assert.JSONEq(t, `{"email":"a@b.c","password":"***redacted***","payment":{"cvv":"***redacted***"}}`, string(out))

	assert.Equal(t, "plain", string(redactJSON([]byte("plain"))))
}

func TestLogging_HandlerSeesOriginalBody(t *testing.T) {
	gin.SetMode(gin.TestMode)
	var logs bytes.Buffer
	r := gin.New()
	r.Use(Logging(slog.New(slog.NewJSONHandler(&logs, nil))))

	var seen string
	r.POST("/login", func(c *gin.Context) {
		b, _ := io.ReadAll(c.Request.Body)
		seen = string(b)
		c.Status(http.StatusNoContent)
	})

	big := strings.Repeat("x", reqBodyLimit*2)
	body := `{"password":"123456","pad":"` + big + `"}`
	req := httptest.NewRequest(http.MethodPost, "/login", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, body, seen)
	assert.NotEmpty(t, w.Header().Get(HeaderRequestID))
	assert.Contains(t, logs.String(), "...truncated...")
}
