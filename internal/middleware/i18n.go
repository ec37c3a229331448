// internal/middleware/i18n.go
package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
)

// Language picks the response language from the Accept-Language
// header. Only the primary subtag matters; anything unknown falls
// back to English.
func Language() gin.HandlerFunc {
	return func(c *gin.Context) {
		lang := "en"
		header := c.GetHeader("Accept-Language")
		if header != "" {
			primary := strings.TrimSpace(strings.Split(header, ",")[0])
			if i := strings.IndexAny(primary, "-;"); i > 0 {
				primary = primary[:i]
			}
			switch strings.ToLower(primary) {
			case "ru":
				lang = "ru"
			case "en":
				lang = "en"
			}
		}
		c.Set("lang", lang)
		c.Next()
	}
}
