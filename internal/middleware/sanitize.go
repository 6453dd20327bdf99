package middleware

import (
	"bytes"
	"encoding/json"
	"html"
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/sarrafhq/sarraf-backend/internal/apperrors"
	"github.com/sarrafhq/sarraf-backend/internal/dto"
)

// Sanitize HTML-escapes every string leaf of the query parameters and, for
// JSON requests, of the body. Escaped values round-trip through storage
// unchanged so stored content never renders as markup.
func Sanitize() gin.HandlerFunc {
	return func(c *gin.Context) {
		query := c.Request.URL.Query()
		changed := false
		for key, values := range query {
			for i, v := range values {
				if escaped := html.EscapeString(v); escaped != v {
					values[i] = escaped
					changed = true
				}
			}
			query[key] = values
		}
		if changed {
			c.Request.URL.RawQuery = query.Encode()
		}

		if c.Request.Body != nil && isJSONRequest(c) {
			body, err := io.ReadAll(c.Request.Body)
			if err != nil {
				c.AbortWithStatusJSON(http.StatusBadRequest, dto.Error("failed to read request body", apperrors.CodeValidation))
				return
			}
			if len(bytes.TrimSpace(body)) > 0 {
				// UseNumber keeps numeric literals as json.Number so decimal
				// values re-marshal verbatim instead of through float64.
				decoder := json.NewDecoder(bytes.NewReader(body))
				decoder.UseNumber()
				var payload interface{}
				if err := decoder.Decode(&payload); err != nil || decoder.More() {
					c.AbortWithStatusJSON(http.StatusBadRequest, dto.Error("request body is not valid JSON", apperrors.CodeValidation))
					return
				}
				// SetEscapeHTML(false) keeps the &lt;/&gt;/&amp; entities
				// produced by escapeStrings as literal bytes instead of
				// re-escaping their ampersands to &.
				var sanitized bytes.Buffer
				encoder := json.NewEncoder(&sanitized)
				encoder.SetEscapeHTML(false)
				if err := encoder.Encode(escapeStrings(payload)); err != nil {
					c.AbortWithStatusJSON(http.StatusBadRequest, dto.Error("failed to sanitize request body", apperrors.CodeValidation))
					return
				}
				body = bytes.TrimRight(sanitized.Bytes(), "\n")
			}
			c.Request.Body = io.NopCloser(bytes.NewReader(body))
			c.Request.ContentLength = int64(len(body))
		}

		c.Next()
	}
}

func isJSONRequest(c *gin.Context) bool {
	contentType := c.GetHeader("Content-Type")
	return strings.Contains(contentType, "application/json")
}

// escapeStrings walks a decoded JSON value and escapes every string leaf.
func escapeStrings(v interface{}) interface{} {
	switch val := v.(type) {
	case string:
		return html.EscapeString(val)
	case map[string]interface{}:
		for k, item := range val {
			val[k] = escapeStrings(item)
		}
		return val
	case []interface{}:
		for i, item := range val {
			val[i] = escapeStrings(item)
		}
		return val
	default:
		return v
	}
}
