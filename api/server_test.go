package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

const sampleUpdate = `{
	"update_id": 1001,
	"message": {
		"message_id": 5,
		"date": 1700000000,
		"from": {"id": 42, "is_bot": false, "first_name": "Ada", "username": "ada"},
		"chat": {"id": 42, "type": "private"},
		"text": "/start"
	}
}`

func post(t *testing.T, s *Server, body string, headers map[string]string) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()

	req := httptest.NewRequest(http.MethodPost, "/api/webhook", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)

	var payload map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &payload))
	return rec, payload
}

func TestWebhook_DeliversUpdate(t *testing.T) {
	var got []tgbotapi.Update
	s := NewServer(Config{}, func(ctx context.Context, update tgbotapi.Update) error {
		got = append(got, update)
		return nil
	})

	rec, payload := post(t, s, sampleUpdate, nil)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, true, payload["ok"])
	require.Len(t, got, 1)
	assert.Equal(t, 1001, got[0].UpdateID)
	assert.Equal(t, "/start", got[0].Message.Text)
	assert.Equal(t, int64(42), got[0].Message.From.ID)
}

func TestWebhook_MalformedJSON(t *testing.T) {
	called := false
	s := NewServer(Config{}, func(ctx context.Context, update tgbotapi.Update) error {
		called = true
		return nil
	})

	rec, payload := post(t, s, `{"update_id": `, nil)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, false, payload["ok"])
	assert.NotEmpty(t, payload["error"])
	assert.False(t, called)
}

func TestWebhook_HandlerFailure(t *testing.T) {
	s := NewServer(Config{}, func(ctx context.Context, update tgbotapi.Update) error {
		return errors.New("database unavailable")
	})

	rec, payload := post(t, s, sampleUpdate, nil)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, false, payload["ok"])
}

func TestWebhook_Secret(t *testing.T) {
	calls := 0
	s := NewServer(Config{Secret: "s3cret"}, func(ctx context.Context, update tgbotapi.Update) error {
		calls++
		return nil
	})

	rec, _ := post(t, s, sampleUpdate, nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec, _ = post(t, s, sampleUpdate, map[string]string{SecretHeader: "wrong"})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec, _ = post(t, s, sampleUpdate, map[string]string{SecretHeader: "s3cret"})
	assert.Equal(t, http.StatusOK, rec.Code)

	assert.Equal(t, 1, calls)
}

func TestWebhook_RateLimited(t *testing.T) {
	s := NewServer(Config{RatePerSec: 1, Burst: 2}, func(ctx context.Context, update tgbotapi.Update) error {
		return nil
	})

	codes := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		rec, _ := post(t, s, sampleUpdate, nil)
		codes = append(codes, rec.Code)
	}

	assert.Equal(t, []int{http.StatusOK, http.StatusOK, http.StatusTooManyRequests}, codes)
}

func TestHealthz(t *testing.T) {
	s := NewServer(Config{}, func(ctx context.Context, update tgbotapi.Update) error { return nil })

	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"ok":true}`, rec.Body.String())
}
