package http

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	authDomain "github.com/allisson/deliverydash/internal/auth/domain"
	httpMocks "github.com/allisson/deliverydash/internal/auth/http/mocks"
)

func newProtectedRouter(uc *httpMocks.MockAuthUseCase) *gin.Engine {
	router := gin.New()
	router.Use(BearerAuthMiddleware(uc, discardLogger()))
	router.GET("/protected", func(c *gin.Context) {
		claims, ok := GetClaims(c.Request.Context())
		if !ok {
			c.Status(http.StatusTeapot)
			return
		}
		c.JSON(http.StatusOK, gin.H{"username": claims.Username})
	})
	return router
}

func TestBearerAuthMiddleware(t *testing.T) {
	t.Run("Success_ValidToken", func(t *testing.T) {
		uc := &httpMocks.MockAuthUseCase{}
		uc.On("Authenticate", mock.Anything, "dG9rZW4=").
			Return(&authDomain.Claims{Username: "admin"}, nil).
			Once()

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		req.Header.Set("Authorization", "Bearer dG9rZW4=")
		newProtectedRouter(uc).ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"username":"admin"}`, w.Body.String())
		uc.AssertExpectations(t)
	})

	t.Run("Success_LowercasePrefix", func(t *testing.T) {
		uc := &httpMocks.MockAuthUseCase{}
		uc.On("Authenticate", mock.Anything, "abc").Return(&authDomain.Claims{Username: "bob"}, nil).Once()

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		req.Header.Set("Authorization", "bearer abc")
		newProtectedRouter(uc).ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("Error_MissingHeader", func(t *testing.T) {
		uc := &httpMocks.MockAuthUseCase{}

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		newProtectedRouter(uc).ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.JSONEq(t, `{"success":false,"error":"No token provided"}`, w.Body.String())
		uc.AssertNotCalled(t, "Authenticate", mock.Anything, mock.Anything)
	})

	t.Run("Error_MalformedHeader", func(t *testing.T) {
		uc := &httpMocks.MockAuthUseCase{}

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		req.Header.Set("Authorization", "Token abc")
		newProtectedRouter(uc).ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.JSONEq(t, `{"success":false,"error":"Invalid token"}`, w.Body.String())
	})

	t.Run("Error_ExpiredToken", func(t *testing.T) {
		uc := &httpMocks.MockAuthUseCase{}
		uc.On("Authenticate", mock.Anything, "old").Return(nil, authDomain.ErrTokenExpired).Once()

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		req.Header.Set("Authorization", "Bearer old")
		newProtectedRouter(uc).ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.JSONEq(t, `{"success":false,"error":"Invalid token"}`, w.Body.String())
	})
}
