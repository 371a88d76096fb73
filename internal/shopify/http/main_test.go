package http

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/goleak"

	authDomain "github.com/allisson/deliverydash/internal/auth/domain"
	authHTTP "github.com/allisson/deliverydash/internal/auth/http"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	goleak.VerifyTestMain(m)
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

var testClaims = &authDomain.Claims{
	Username: "Shop-Owner",
	IssuedAt: time.Date(2024, 12, 20, 10, 0, 0, 0, time.UTC),
	Nonce:    "n",
}

// createTestContext creates a gin test context carrying body as JSON. Authenticated
// requests carry testClaims.
func createTestContext(
	method, path string,
	body interface{},
	authenticated bool,
) (*gin.Context, *httptest.ResponseRecorder) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	var bodyReader io.Reader
	if body != nil {
		bodyBytes, _ := json.Marshal(body)
		bodyReader = bytes.NewReader(bodyBytes)
	}

	req := httptest.NewRequest(method, path, bodyReader)
	req.Header.Set("Content-Type", "application/json")
	if authenticated {
		req = req.WithContext(authHTTP.WithClaims(req.Context(), testClaims))
	}
	c.Request = req

	return c, w
}
