package middleware

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/gocomet/rides-api/internal/api/dto"
	apperrors "github.com/gocomet/rides-api/pkg/errors"
	"github.com/gocomet/rides-api/pkg/logger"
)

const (
	IdempotencyHeader = "Idempotency-Key"
	replayedHeader    = "Idempotent-Replayed"
	maxIdempotencyKey = 255
)

// IdempotencyStore persists the first response sent for a key. Reserve marks
// a key as in flight so that overlapping requests cannot both run.
type IdempotencyStore interface {
	Load(ctx context.Context, key string) ([]byte, bool, error)
	Save(ctx context.Context, key string, data []byte) error
	Reserve(ctx context.Context, key string) (bool, error)
	Release(ctx context.Context, key string) error
}

// cachedResponse stores the response for idempotent requests.
type cachedResponse struct {
	RequestHash string          `json:"request_hash"`
	StatusCode  int             `json:"status_code"`
	ContentType string          `json:"content_type"`
	Body        json.RawMessage `json:"body"`
}

// responseWriter wraps gin.ResponseWriter to capture the response.
type responseWriter struct {
	gin.ResponseWriter
	body *bytes.Buffer
}

func (w *responseWriter) Write(b []byte) (int, error) {
	w.body.Write(b)
	return w.ResponseWriter.Write(b)
}

// IdempotencyMiddleware replays the stored response when a POST carries an
// Idempotency-Key that was already answered. A key that is still being
// processed gets 409, and a key sent with a different body gets 422.
// Store failures degrade to normal processing. Responses that recorded an
// error on the context are not stored, so a retry after a server error runs
// again.
func IdempotencyMiddleware(store IdempotencyStore, log *logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Method != http.MethodPost {
			c.Next()
			return
		}

		key := c.GetHeader(IdempotencyHeader)
		if key == "" || len(key) > maxIdempotencyKey {
			c.Next()
			return
		}

		body, err := io.ReadAll(c.Request.Body)
		if err != nil {
			abortWithError(c, apperrors.Validation("Invalid request payload", err))
			return
		}
		c.Request.Body = io.NopCloser(bytes.NewReader(body))
		hash := requestHash(body)

		ctx := c.Request.Context()

		if replay(c, store, key, hash, log) {
			return
		}

		reserved, err := store.Reserve(ctx, key)
		if err != nil {
			log.Warn("Idempotency reservation failed", logger.Err(err), logger.String("request_id", RequestID(c)))
			c.Next()
			return
		}
		if !reserved {
			abortWithError(c, apperrors.InProgress())
			return
		}
		defer func() {
			if err := store.Release(context.WithoutCancel(ctx), key); err != nil {
				log.Warn("Idempotency release failed", logger.Err(err), logger.String("request_id", RequestID(c)))
			}
		}()

		// the holder before us may have saved its response and released
		// between our lookup and our reservation
		if replay(c, store, key, hash, log) {
			return
		}

		w := &responseWriter{
			ResponseWriter: c.Writer,
			body:           &bytes.Buffer{},
		}
		c.Writer = w

		c.Next()

		if len(c.Errors) > 0 || c.Writer.Status() >= http.StatusInternalServerError {
			return
		}

		payload, err := json.Marshal(cachedResponse{
			RequestHash: hash,
			StatusCode:  c.Writer.Status(),
			ContentType: c.Writer.Header().Get("Content-Type"),
			Body:        w.body.Bytes(),
		})
		if err != nil {
			return
		}
		if err := store.Save(context.WithoutCancel(ctx), key, payload); err != nil {
			log.Warn("Idempotency save failed", logger.Err(err), logger.String("request_id", RequestID(c)))
		}
	}
}

// replay answers from the stored response for key. It reports whether the
// request was handled.
func replay(c *gin.Context, store IdempotencyStore, key, hash string, log *logger.Logger) bool {
	data, found, err := store.Load(c.Request.Context(), key)
	if err != nil {
		log.Warn("Idempotency lookup failed", logger.Err(err), logger.String("request_id", RequestID(c)))
		return false
	}
	if !found {
		return false
	}

	var cached cachedResponse
	if err := json.Unmarshal(data, &cached); err != nil {
		log.Warn("Discarding unreadable idempotency entry", logger.String("request_id", RequestID(c)))
		return false
	}
	if cached.RequestHash != hash {
		abortWithError(c, apperrors.KeyReused())
		return true
	}

	c.Header(replayedHeader, "true")
	c.Data(cached.StatusCode, cached.ContentType, cached.Body)
	c.Abort()
	return true
}

func requestHash(body []byte) string {
	sum := sha256.Sum256(body)
	return hex.EncodeToString(sum[:])
}

func abortWithError(c *gin.Context, err *apperrors.AppError) {
	c.AbortWithStatusJSON(err.Status, dto.ErrorResponse{
		ErrorCode: err.Code,
		Message:   err.Message,
	})
}
