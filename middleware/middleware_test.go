package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"emjay/utils"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func protectedRouter(mw ...gin.HandlerFunc) *gin.Engine {
	r := gin.New()
	handlers := append(mw, func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"subject": c.GetString(ContextSubject), "role": c.GetString(ContextRole)})
	})
	r.GET("/p", handlers...)
	return r
}

func get(r http.Handler, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/p", nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func Test_JWTAuthMiddleware(t *testing.T) {
	admin, err := utils.GenerateToken("acc-1", utils.RoleAdmin, time.Hour)
	require.NoError(t, err)
	customer, err := utils.GenerateToken("cust-1", utils.RoleCustomer, time.Hour)
	require.NoError(t, err)
	expired, err := utils.GenerateToken("acc-1", utils.RoleAdmin, -time.Hour)
	require.NoError(t, err)

	r := protectedRouter(JWTAuthAccountMiddleware())

	w := get(r, admin)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"subject":"acc-1"`)

	assert.Equal(t, http.StatusForbidden, get(r, customer).Code)
	assert.Equal(t, http.StatusUnauthorized, get(r, expired).Code)
	assert.Equal(t, http.StatusUnauthorized, get(r, "").Code)
	assert.Equal(t, http.StatusUnauthorized, get(r, "not-a-jwt").Code)
}

func Test_RequireRole(t *testing.T) {
	supervisor, err := utils.GenerateToken("acc-2", utils.RoleSupervisor, time.Hour)
	require.NoError(t, err)

	r := protectedRouter(JWTAuthAccountMiddleware(), RequireRole(utils.RoleAdmin))
	assert.Equal(t, http.StatusForbidden, get(r, supervisor).Code)
}

func Test_RateLimit(t *testing.T) {
	r := protectedRouter(rateLimit(newRateLimiterStore(2)))

	send := func(ip string) int {
		req := httptest.NewRequest(http.MethodGet, "/p", nil)
		req.Header.Set("X-Forwarded-For", ip+", 10.0.0.1")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		return w.Code
	}

	assert.Equal(t, http.StatusOK, send("1.1.1.1"))
	assert.Equal(t, http.StatusOK, send("1.1.1.1"))
	assert.Equal(t, http.StatusTooManyRequests, send("1.1.1.1"))
	assert.Equal(t, http.StatusOK, send("2.2.2.2"))
}
