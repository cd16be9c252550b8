package middlewares_test

import (
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/digiadi/digiadi-backend/middlewares"
)

func setupLimitedRouter(rate int) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	rl := middlewares.NewRateLimiter(rate, 60)
	r.Use(rl.RateLimit())
	r.GET("/", func(c *gin.Context) {
		c.Status(http.StatusOK)
	})
	return r
}

func TestRateLimitRejectsOverLimit(t *testing.T) {
	r := setupLimitedRouter(3)

	for i := 0; i < 3; i++ {
		w := httptest.NewRecorder()
		req, _ := http.NewRequest("GET", "/", nil)
		r.ServeHTTP(w, req)
		assert.Equal(t, http.StatusOK, w.Code)
	}

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/", nil)
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
}

// Handlers must run outside the limiter's lock: concurrent in-flight requests
// would deadlock-serialize otherwise. All goroutines block on a gate inside
// the handler; if any of them held the limiter mutex there, the others could
// never enter and release the gate.
func TestRateLimitDoesNotSerializeHandlers(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	rl := middlewares.NewRateLimiter(10, 60)
	r.Use(rl.RateLimit())

	const inFlight = 4
	var gate sync.WaitGroup
	gate.Add(inFlight)
	r.GET("/", func(c *gin.Context) {
		gate.Done()
		gate.Wait()
		c.Status(http.StatusOK)
	})

	var wg sync.WaitGroup
	results := make([]int, inFlight)
	for i := 0; i < inFlight; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			w := httptest.NewRecorder()
			req, _ := http.NewRequest("GET", "/", nil)
			r.ServeHTTP(w, req)
			results[i] = w.Code
		}(i)
	}
	wg.Wait()

	for _, code := range results {
		assert.Equal(t, http.StatusOK, code)
	}
}
