/*
handlers_test.go - Webhook contract tests

Tests for:
- Single-user authorization (ignored status, no store access, no reply)
- Normal command flow end to end
- The outermost recovery boundary (error status, still HTTP 200)
*/
package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/khatawala/khatabot/bot"
	"github.com/khatawala/khatabot/ledger"
	"github.com/khatawala/khatabot/ledger/store"
	"github.com/khatawala/khatabot/telegram"
)

const authorizedID int64 = 42

// =============================================================================
// TEST SETUP
// =============================================================================

func newTestHandler(t *testing.T, rowStore ledger.RowStore) (*Handler, *telegram.Recorder) {
	t.Helper()

	svc := ledger.NewService(rowStore)
	svc.Now = func() time.Time {
		return time.Date(2026, time.January, 20, 10, 30, 0, 0, time.UTC)
	}
	recorder := &telegram.Recorder{}
	h := NewHandler(rowStore, bot.New(svc), recorder, authorizedID, nil)
	return h, recorder
}

func postUpdate(t *testing.T, h *Handler, userID, chatID int64, text string) WebhookAck {
	t.Helper()

	body := fmt.Sprintf(`{"message":{"text":%q,"chat":{"id":%d},"from":{"id":%d}}}`, text, chatID, userID)
	req := httptest.NewRequest(http.MethodPost, "/telegram/webhook", strings.NewReader(body))
	w := httptest.NewRecorder()
	h.TelegramWebhook(w, req)

	require.Equal(t, http.StatusOK, w.Code, "webhook must always acknowledge with 200")

	var ack WebhookAck
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &ack))
	return ack
}

// =============================================================================
// AUTHORIZATION
// =============================================================================

func TestWebhook_UnauthorizedSenderIgnored(t *testing.T) {
	mem := store.NewMemory()
	h, recorder := newTestHandler(t, mem)

	ack := postUpdate(t, h, 999, 1, "132 500")

	assert.Equal(t, "ignored", ack.Status)
	assert.Empty(t, recorder.Sent, "no reply to strangers")
	assert.Equal(t, 0, mem.Len(), "no store access for strangers")
}

func TestWebhook_MalformedPayloadIgnored(t *testing.T) {
	h, recorder := newTestHandler(t, store.NewMemory())

	req := httptest.NewRequest(http.MethodPost, "/telegram/webhook", strings.NewReader("not json"))
	w := httptest.NewRecorder()
	h.TelegramWebhook(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"ignored"`)
	assert.Empty(t, recorder.Sent)
}

// =============================================================================
// COMMAND FLOW
// =============================================================================

func TestWebhook_SaveCommandFlow(t *testing.T) {
	mem := store.NewMemory()
	h, recorder := newTestHandler(t, mem)

	ack := postUpdate(t, h, authorizedID, 7, "132 500")

	assert.Equal(t, "ok", ack.Status)
	assert.Equal(t, 1, mem.Len())
	require.Len(t, recorder.Sent, 1)
	assert.Equal(t, int64(7), recorder.Sent[0].ChatID)
	assert.Contains(t, recorder.Sent[0].Text, "✅ Saved successfully")
}

func TestWebhook_ValidationErrorIsOrdinaryReply(t *testing.T) {
	mem := store.NewMemory()
	h, recorder := newTestHandler(t, mem)

	ack := postUpdate(t, h, authorizedID, 7, "132 0")

	assert.Equal(t, "ok", ack.Status, "a bad command is not a server error")
	require.Len(t, recorder.Sent, 1)
	assert.Contains(t, recorder.Sent[0].Text, "Amount must be a number greater than 0")
	assert.Equal(t, 0, mem.Len())
}

func TestWebhook_SendFailureSwallowed(t *testing.T) {
	mem := store.NewMemory()
	h, recorder := newTestHandler(t, mem)
	recorder.Err = fmt.Errorf("telegram is down")

	ack := postUpdate(t, h, authorizedID, 7, "132 500")

	assert.Equal(t, "ok", ack.Status, "delivery failure does not fail the command")
	assert.Equal(t, 1, mem.Len(), "the row was still stored")
}

// =============================================================================
// RECOVERY BOUNDARY
// =============================================================================

func TestWebhook_PanicAnswersErrorStatus(t *testing.T) {
	h, recorder := newTestHandler(t, panickyStore{})

	ack := postUpdate(t, h, authorizedID, 7, "show 132")

	assert.Equal(t, "error", ack.Status)
	require.Len(t, recorder.Sent, 1, "best-effort apology reply")
	assert.Contains(t, recorder.Sent[0].Text, "Server error occurred")
}

// panickyStore blows up on read, standing in for a bug anywhere below the
// recovery boundary.
type panickyStore struct{}

func (panickyStore) ReadAll(context.Context) ([]ledger.Row, error) {
	panic("corrupted table state")
}
func (panickyStore) ReadAllRaw(context.Context) ([][]string, error) {
	panic("corrupted table state")
}
func (panickyStore) Append(context.Context, ledger.Row) error { panic("corrupted table state") }
func (panickyStore) ReplaceAll(context.Context, [][]string) error { panic("corrupted table state") }

// =============================================================================
// READ ENDPOINTS
// =============================================================================

func TestHealthCheck(t *testing.T) {
	h, _ := newTestHandler(t, store.NewMemory())

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	w := httptest.NewRecorder()
	h.HealthCheck(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	var resp HealthResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "online", resp.Status)
	assert.Equal(t, serviceName, resp.Service)
}

func TestSheetStatus_Connected(t *testing.T) {
	mem := store.NewMemory()
	h, _ := newTestHandler(t, mem)

	for i := 0; i < 5; i++ {
		postUpdate(t, h, authorizedID, 7, fmt.Sprintf("%d 100", i+1))
	}

	req := httptest.NewRequest(http.MethodGet, "/sheet-status", nil)
	w := httptest.NewRecorder()
	h.SheetStatus(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	var resp SheetStatusResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "connected", resp.Status)
	assert.Equal(t, 5, resp.TotalRecords)
	assert.Equal(t, ledger.Header(), resp.Columns)
	assert.Len(t, resp.SampleData, 3, "sample is capped at three rows")
}

func TestSheetStatus_StoreError(t *testing.T) {
	h, _ := newTestHandler(t, failingReadStore{})

	req := httptest.NewRequest(http.MethodGet, "/sheet-status", nil)
	w := httptest.NewRecorder()
	h.SheetStatus(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	var resp SheetStatusResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "error", resp.Status)
	assert.NotEmpty(t, resp.Message)
}

type failingReadStore struct{}

func (failingReadStore) ReadAll(context.Context) ([]ledger.Row, error) {
	return nil, fmt.Errorf("sheet unreachable")
}
func (failingReadStore) ReadAllRaw(context.Context) ([][]string, error) {
	return nil, fmt.Errorf("sheet unreachable")
}
func (failingReadStore) Append(context.Context, ledger.Row) error {
	return fmt.Errorf("sheet unreachable")
}
func (failingReadStore) ReplaceAll(context.Context, [][]string) error {
	return fmt.Errorf("sheet unreachable")
}
