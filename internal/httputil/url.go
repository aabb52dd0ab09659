package httputil

import "github.com/gin-gonic/gin"

// ContextURL is the key of the API base URL in the gin context.
const ContextURL = "apiURL"

// BaseURL returns the API base URL of the request.
func BaseURL(c *gin.Context) string {
	return c.GetString(ContextURL)
}
