package logger

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"

	"caligold/pkg/correlation"

	"github.com/gin-gonic/gin"
)

const maxBody = 8 * 1024 // 8KB

func limit(b []byte) []byte {
	if len(b) > maxBody {
		return b[:maxBody]
	}
	return b
}

type responseBodyWriter struct {
	gin.ResponseWriter
	body *bytes.Buffer
}

func (r *responseBodyWriter) Write(b []byte) (int, error) {
	r.body.Write(b)
	return r.ResponseWriter.Write(b)
}

// CorrelationMiddleware extracts X-Correlation-ID from request header or generates a new one.
// It stores the ID in the request context and adds it to the response header.
func CorrelationMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		corrID := c.GetHeader(correlation.HeaderName)
		if corrID == "" {
			corrID = correlation.NewID()
		}

		ctx := correlation.WithID(c.Request.Context(), corrID)
		c.Request = c.Request.WithContext(ctx)

		c.Header(correlation.HeaderName, corrID)

		c.Next()
	}
}

// GinBodyLogger logs every request with method, path, status and bounded
// request/response bodies.
func (l *Logger) GinBodyLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		var requestBody []byte
		if c.Request.Body != nil {
			requestBody, _ = io.ReadAll(c.Request.Body)
			c.Request.Body = io.NopCloser(bytes.NewBuffer(requestBody))
		}

		responseBuffer := &bytes.Buffer{}
		writer := &responseBodyWriter{
			body:           responseBuffer,
			ResponseWriter: c.Writer,
		}
		c.Writer = writer

		c.Next()

		attrs := []slog.Attr{
			slog.String("method", c.Request.Method),
			slog.String("path", c.Request.URL.Path),
			slog.String("query", c.Request.URL.RawQuery),
			slog.Int("status", c.Writer.Status()),
			maybeJSON("request_body", limit(requestBody)),
			maybeJSON("response_body", limit(responseBuffer.Bytes())),
		}

		l.slog.LogAttrs(c.Request.Context(), slog.LevelInfo, "HTTP Request", attrs...)
	}
}

// maybeJSON keeps valid JSON bodies as raw JSON in the log record and falls
// back to a plain string otherwise.
func maybeJSON(key string, b []byte) slog.Attr {
	bb := bytes.TrimSpace(b)
	if len(bb) == 0 {
		return slog.Attr{Key: key, Value: slog.AnyValue(nil)}
	}
	if json.Valid(bb) {
		return slog.Attr{Key: key, Value: slog.AnyValue(json.RawMessage(bb))}
	}
	return slog.String(key, string(bb))
}
