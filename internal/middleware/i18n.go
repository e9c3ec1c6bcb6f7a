// internal/middleware/i18n.go
package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/javajoker/storefront/internal/i18n"
)

func I18nMiddleware(defaultLang string) gin.HandlerFunc {
	return func(c *gin.Context) {
		lang := defaultLang

		// Handle cases like "zh-TW,zh;q=0.9,en;q=0.8"
		if header := c.GetHeader("Accept-Language"); header != "" {
			firstLang := strings.TrimSpace(strings.Split(strings.Split(header, ",")[0], ";")[0])
			// Convert common language codes
			switch firstLang {
			case "zh-TW", "zh-Hant", "zh_TW":
				firstLang = "zh_TW"
			case "en-US", "en-GB":
				firstLang = "en"
			}
			if i18n.Supports(firstLang) {
				lang = firstLang
			}
		}

		c.Set("lang", lang)
		c.Next()
	}
}
