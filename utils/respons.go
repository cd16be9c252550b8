package utils

import (
	"errors"

	"github.com/gin-gonic/gin"
)

// ErrServerError is the only message a client ever sees for a 500; the real
// cause goes to the error log.
var ErrServerError = errors.New("server error")

func RespondError(c *gin.Context, code int, err error) {
	c.JSON(code, gin.H{"error": err.Error()})
}

// RespondInternal logs the cause and returns a generic 500 body.
func RespondInternal(c *gin.Context, err error) {
	if ErrorLogger != nil {
		ErrorLogger.Printf("%s %s: %v", c.Request.Method, c.Request.URL.Path, err)
	}
	c.JSON(500, gin.H{"error": ErrServerError.Error()})
}
