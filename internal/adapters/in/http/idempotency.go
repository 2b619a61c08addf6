package http

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"
)

const (
	IdempotencyKeyHeader      = "Idempotency-Key"
	IdempotentReplayedHeader  = "Idempotent-Replayed"
	idempotencyProcessingMark = "processing"
)

// StoredResponse is what a completed request leaves behind for its replays.
type StoredResponse struct {
	Status      int    `json:"status"`
	ContentType string `json:"content_type"`
	Body        []byte `json:"body"`
}

// IdempotencyStore keeps one entry per key. Load reports found=false for an
// unknown key and a nil response while the first request is still running.
type IdempotencyStore interface {
	Reserve(ctx context.Context, key string, ttl time.Duration) (bool, error)
	Load(ctx context.Context, key string) (resp *StoredResponse, found bool, err error)
	Save(ctx context.Context, key string, resp StoredResponse, ttl time.Duration) error
	Release(ctx context.Context, key string) error
}

type RedisIdempotencyStore struct {
	client *redis.Client
}

func NewRedisIdempotencyStore(client *redis.Client) *RedisIdempotencyStore {
	return &RedisIdempotencyStore{client: client}
}

func (s *RedisIdempotencyStore) Reserve(ctx context.Context, key string, ttl time.Duration) (bool, error) {
	return s.client.SetNX(ctx, key, idempotencyProcessingMark, ttl).Result()
}

func (s *RedisIdempotencyStore) Load(ctx context.Context, key string) (*StoredResponse, bool, error) {
	val, err := s.client.Get(ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	if val == idempotencyProcessingMark {
		return nil, true, nil
	}

	var resp StoredResponse
	if err := json.Unmarshal([]byte(val), &resp); err != nil {
		return nil, false, fmt.Errorf("decode stored response: %w", err)
	}
	return &resp, true, nil
}

func (s *RedisIdempotencyStore) Save(ctx context.Context, key string, resp StoredResponse, ttl time.Duration) error {
	data, err := json.Marshal(resp)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, key, data, ttl).Err()
}

func (s *RedisIdempotencyStore) Release(ctx context.Context, key string) error {
	return s.client.Del(ctx, key).Err()
}

// IdempotencyConfig tunes how long keys are locked and remembered.
type IdempotencyConfig struct {
	LockTTL   time.Duration
	ResultTTL time.Duration
}

// Idempotency replays the stored response of a POST that carries an
// Idempotency-Key already seen for the same actor. A concurrent duplicate gets
// 409. Server errors are not remembered so the client may retry. When the store
// is unreachable the request runs without protection.
func Idempotency(store IdempotencyStore, cfg IdempotencyConfig, logger *slog.Logger) echo.MiddlewareFunc {
	if cfg.LockTTL <= 0 {
		cfg.LockTTL = 30 * time.Second
	}
	if cfg.ResultTTL <= 0 {
		cfg.ResultTTL = 24 * time.Hour
	}
	logger = logger.With("component", "idempotency")

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			req := c.Request()
			header := req.Header.Get(IdempotencyKeyHeader)
			if req.Method != http.MethodPost || header == "" {
				return next(c)
			}

			ctx := req.Context()
			key := fmt.Sprintf("idempotency:%s:%s:%s", actorFrom(c).ID(), req.URL.Path, header)

			stored, found, err := store.Load(ctx, key)
			if err != nil {
				logger.WarnContext(ctx, "idempotency store unavailable", "error", err)
				return next(c)
			}
			if found && stored != nil {
				c.Response().Header().Set(IdempotentReplayedHeader, "true")
				return c.Blob(stored.Status, stored.ContentType, stored.Body)
			}
			if found {
				return inProgress(c)
			}

			acquired, err := store.Reserve(ctx, key, cfg.LockTTL)
			if err != nil {
				logger.WarnContext(ctx, "idempotency store unavailable", "error", err)
				return next(c)
			}
			if !acquired {
				return inProgress(c)
			}

			rec := &recordingWriter{ResponseWriter: c.Response().Writer}
			c.Response().Writer = rec
			handlerErr := next(c)

			status := c.Response().Status
			if handlerErr != nil || status >= http.StatusInternalServerError {
				if err := store.Release(ctx, key); err != nil {
					logger.WarnContext(ctx, "failed to release idempotency key", "error", err)
				}
				return handlerErr
			}

			resp := StoredResponse{
				Status:      status,
				ContentType: c.Response().Header().Get(echo.HeaderContentType),
				Body:        rec.body.Bytes(),
			}
			if err := store.Save(ctx, key, resp, cfg.ResultTTL); err != nil {
				logger.WarnContext(ctx, "failed to store idempotent response", "error", err)
			}
			return nil
		}
	}
}

func inProgress(c echo.Context) error {
	return c.JSON(http.StatusConflict, ErrorResponse{
		Code:    http.StatusConflict,
		Kind:    "request_in_progress",
		Message: "a request with this idempotency key is still being processed",
	})
}

type recordingWriter struct {
	http.ResponseWriter
	body bytes.Buffer
}

func (w *recordingWriter) Write(b []byte) (int, error) {
	w.body.Write(b)
	return w.ResponseWriter.Write(b)
}
