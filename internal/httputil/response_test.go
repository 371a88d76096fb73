package httputil

import (
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	apperrors "github.com/allisson/deliverydash/internal/errors"
)

func newTestContext() (*gin.Context, *httptest.ResponseRecorder) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/api/test", nil)
	return c, w
}

func TestMakeJSONResponse(t *testing.T) {
	tests := []struct {
		name         string
		body         interface{}
		statusCode   int
		expectedBody string
	}{
		{
			name:         "success response",
			body:         map[string]any{"success": true},
			statusCode:   http.StatusOK,
			expectedBody: `{"success":true}`,
		},
		{
			name:         "error response",
			body:         ErrorResponse{Success: false, Error: "Internal server error"},
			statusCode:   http.StatusInternalServerError,
			expectedBody: `{"success":false,"error":"Internal server error"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			MakeJSONResponse(w, tt.statusCode, tt.body)

			assert.Equal(t, tt.statusCode, w.Code)
			assert.Equal(t, "application/json", w.Header().Get("Content-Type"))
			assert.JSONEq(t, tt.expectedBody, w.Body.String())
		})
	}
}

func TestSuccessGin(t *testing.T) {
	c, w := newTestContext()

	SuccessGin(c, http.StatusOK, gin.H{"token": "abc", "user": gin.H{"username": "admin"}})

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"success":true,"token":"abc","user":{"username":"admin"}}`, w.Body.String())
}

func TestHandleErrorGin(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	tests := []struct {
		name         string
		err          error
		expectedCode int
		expectedBody string
	}{
		{
			name:         "public unauthorized message",
			err:          apperrors.Public(apperrors.ErrUnauthorized, "No token provided"),
			expectedCode: http.StatusUnauthorized,
			expectedBody: `{"success":false,"error":"No token provided"}`,
		},
		{
			name:         "plain invalid input",
			err:          apperrors.Wrap(apperrors.ErrInvalidInput, "bad field"),
			expectedCode: http.StatusBadRequest,
			expectedBody: `{"success":false,"error":"Invalid request"}`,
		},
		{
			name:         "not found",
			err:          apperrors.Public(apperrors.ErrNotFound, "Shopify settings not configured"),
			expectedCode: http.StatusNotFound,
			expectedBody: `{"success":false,"error":"Shopify settings not configured"}`,
		},
		{
			name:         "upstream",
			err:          apperrors.Wrap(apperrors.ErrUpstream, "widget worker returned 500"),
			expectedCode: http.StatusBadGateway,
			expectedBody: `{"success":false,"error":"Upstream service failed"}`,
		},
		{
			name:         "unknown error hides details",
			err:          errors.New("database exploded"),
			expectedCode: http.StatusInternalServerError,
			expectedBody: `{"success":false,"error":"Internal server error"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, w := newTestContext()

			HandleErrorGin(c, tt.err, logger)

			assert.Equal(t, tt.expectedCode, w.Code)
			assert.JSONEq(t, tt.expectedBody, w.Body.String())
		})
	}

	t.Run("nil error writes nothing", func(t *testing.T) {
		c, w := newTestContext()
		HandleErrorGin(c, nil, logger)
		assert.Equal(t, 0, w.Body.Len())
	})
}

func TestHandleValidationErrorGin(t *testing.T) {
	c, w := newTestContext()

	HandleValidationErrorGin(c, errors.New("username: the length must be at least 3."), nil)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.JSONEq(t, `{"success":false,"error":"username: the length must be at least 3."}`, w.Body.String())
}

func TestHandleBadRequestGin(t *testing.T) {
	c, w := newTestContext()

	HandleBadRequestGin(c, errors.New("unexpected EOF"), nil)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.JSONEq(t, `{"success":false,"error":"Invalid JSON body"}`, w.Body.String())
}

type bindRequest struct {
	Name string `json:"name"`
}

func (r *bindRequest) Validate() error {
	if r.Name == "" {
		return errors.New("name: cannot be blank.")
	}
	return nil
}

func TestBindJSON(t *testing.T) {
	newContext := func(body string) (*gin.Context, *httptest.ResponseRecorder) {
		c, w := newTestContext()
		c.Request = httptest.NewRequest(http.MethodPost, "/api/test", strings.NewReader(body))
		c.Request.Header.Set("Content-Type", "application/json")
		return c, w
	}

	t.Run("valid body", func(t *testing.T) {
		c, w := newContext(`{"name":"slot"}`)
		var req bindRequest
		assert.True(t, BindJSON(c, &req, nil))
		assert.Equal(t, "slot", req.Name)
		assert.Equal(t, 0, w.Body.Len())
	})

	t.Run("malformed body", func(t *testing.T) {
		c, w := newContext(`{`)
		assert.False(t, BindJSON(c, &bindRequest{}, nil))
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.JSONEq(t, `{"success":false,"error":"Invalid JSON body"}`, w.Body.String())
	})

	t.Run("validation failure", func(t *testing.T) {
		c, w := newContext(`{}`)
		assert.False(t, BindJSON(c, &bindRequest{}, nil))
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.JSONEq(t, `{"success":false,"error":"name: cannot be blank."}`, w.Body.String())
	})
}
