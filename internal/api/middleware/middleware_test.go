package middleware

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/contesthub/contest-api/internal/pkg/jwthelper"
)

const signingKey = "test-signing-key"

func newRouter(handlers ...gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	handlers = append(handlers, func(ctx *gin.Context) {
		ctx.JSON(http.StatusOK, gin.H{"userID": ctx.GetUint(ContextUserID)})
	})
	r.GET("/", handlers...)

	return r
}

func TestVerifyJWT(t *testing.T) {
	r := newRouter(NewAuthenticator(signingKey).VerifyJWT())

	valid, err := jwthelper.GenerateToken([]byte(signingKey), 7, "test")
	require.NoError(t, err)
	foreign, err := jwthelper.GenerateToken([]byte("another-key"), 7, "test")
	require.NoError(t, err)

	tests := []struct {
		name       string
		header     string
		wantStatus int
		wantBody   string
	}{
		{name: "valid token", header: "Bearer " + valid, wantStatus: http.StatusOK, wantBody: `{"userID":7}`},
		{name: "missing header", wantStatus: http.StatusUnauthorized},
		{name: "not bearer", header: "Basic abc", wantStatus: http.StatusUnauthorized},
		{name: "wrong key", header: "Bearer " + foreign, wantStatus: http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			require.Equal(t, tt.wantStatus, w.Code)
			if tt.wantBody != "" {
				assert.JSONEq(t, tt.wantBody, w.Body.String())
			} else {
				assert.Contains(t, w.Body.String(), `"code":"010"`)
			}
		})
	}
}

func TestRateLimit(t *testing.T) {
	r := newRouter(RateLimit(NewIPRateLimiter(0.001, 2)))

	codes := make([]int, 0, 3)
	for range 3 {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.RemoteAddr = "10.0.0.1:5000"
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		codes = append(codes, w.Code)
	}
	assert.Equal(t, []int{http.StatusOK, http.StatusOK, http.StatusTooManyRequests}, codes)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = "10.0.0.2:5000"
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code, "other clients keep their own bucket")
}

func TestIPRateLimiter_PrunesIdleClients(t *testing.T) {
	l := NewIPRateLimiter(1, 1)
	start := l.now()
	l.now = func() time.Time { return start }
	for i := range cleanupThreshold + 1 {
		l.Limiter(fmt.Sprintf("10.0.%d.%d", i/256, i%256))
	}

	l.now = func() time.Time { return start.Add(maxIdleAge + time.Second) }
	l.Limiter("192.168.0.1")

	assert.Len(t, l.clients, 1)
}

func TestConfigCORS(t *testing.T) {
	r := newRouter(ConfigCORS([]string{"https://contests.example.com"}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Origin", "https://contests.example.com")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, "https://contests.example.com", w.Header().Get("Access-Control-Allow-Origin"))

	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Origin", "https://evil.example.com")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusForbidden, w.Code)
}
