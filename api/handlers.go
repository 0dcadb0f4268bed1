/*
handlers.go - HTTP handlers for the webhook and read endpoints

PURPOSE:
  The thin I/O shell around the bot executor. Handles HTTP
  request/response, JSON serialization, the single-user authorization
  check, and outbound reply delivery.

ENDPOINTS:
  POST /telegram/webhook   Process one Telegram update
  GET  /                   Liveness probe
  GET  /sheet-status       Row-store connectivity + sample (debugging)

WEBHOOK CONTRACT:
  Every delivery is acknowledged with HTTP 200 so Telegram never retries.
  - Sender is not the authorized user -> {"status":"ignored"}, no reply,
    no store access.
  - Command processed (including validation errors, which are ordinary
    replies) -> {"status":"ok"}.
  - Anything panics -> recovered here, appended to the persistent error
    log, best-effort generic reply, {"status":"error"}.

REPLY DELIVERY:
  Best effort. A failed send is logged and swallowed; the command's store
  effects stand either way.

SEE ALSO:
  - dto.go: Request/response data structures
  - server.go: Router setup and middleware
  - bot package: command execution
*/
package api

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"runtime/debug"
	"time"

	"github.com/khatawala/khatabot/bot"
	"github.com/khatawala/khatabot/ledger"
	"github.com/khatawala/khatabot/telegram"
)

const serviceName = "Telegram Finance Bot"

// msgServerError is the reply for failures the bot could not handle itself.
const msgServerError = "❌ Server error occurred. Please try again."

// handleTimeout bounds the processing of one webhook delivery.
const handleTimeout = 15 * time.Second

// =============================================================================
// HANDLER CONTEXT
// =============================================================================

// Handler holds all dependencies for HTTP handlers.
type Handler struct {
	Store            ledger.RowStore
	Bot              *bot.Executor
	Messenger        telegram.Messenger
	AuthorizedUserID int64
	ErrLog           *ErrorLog
}

// NewHandler creates a handler. errLog may be nil to log errors to stderr
// only.
func NewHandler(store ledger.RowStore, executor *bot.Executor, messenger telegram.Messenger, authorizedUserID int64, errLog *ErrorLog) *Handler {
	return &Handler{
		Store:            store,
		Bot:              executor,
		Messenger:        messenger,
		AuthorizedUserID: authorizedUserID,
		ErrLog:           errLog,
	}
}

// =============================================================================
// WEBHOOK
// =============================================================================

// TelegramWebhook processes one update.
func (h *Handler) TelegramWebhook(w http.ResponseWriter, r *http.Request) {
	ack := h.processUpdate(r)
	writeJSON(w, http.StatusOK, ack)
}

// processUpdate runs the whole command flow under the outermost recovery
// boundary. It always returns an acknowledgment; a panic anywhere inside
// becomes a persistent error record plus a best-effort apology reply.
func (h *Handler) processUpdate(r *http.Request) (ack WebhookAck) {
	var chatID int64

	defer func() {
		if rec := recover(); rec != nil {
			h.ErrLog.Record(fmt.Sprintf("webhook failure: %v\n%s", rec, debug.Stack()))
			if chatID != 0 {
				h.reply(context.Background(), chatID, msgServerError)
			}
			ack = WebhookAck{Status: "error"}
		}
	}()

	var update Update
	if err := json.NewDecoder(r.Body).Decode(&update); err != nil {
		// Not a payload this bot understands; treat like any other
		// stranger knocking.
		return WebhookAck{Status: "ignored"}
	}

	msg := update.Message
	if msg == nil || msg.From == nil || msg.From.ID != h.AuthorizedUserID {
		return WebhookAck{Status: "ignored"}
	}
	chatID = msg.Chat.ID

	ctx, cancel := context.WithTimeout(r.Context(), handleTimeout)
	defer cancel()

	reply := h.Bot.Handle(ctx, msg.Text)
	h.reply(ctx, chatID, reply)
	return WebhookAck{Status: "ok"}
}

// reply delivers a message best-effort: failures are logged, never
// propagated and never retried.
func (h *Handler) reply(ctx context.Context, chatID int64, text string) {
	if err := h.Messenger.Send(ctx, chatID, text); err != nil {
		log.Printf("send to chat %d failed: %v", chatID, err)
	}
}

// =============================================================================
// READ ENDPOINTS
// =============================================================================

// HealthCheck is the liveness probe.
func (h *Handler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, HealthResponse{
		Status:    "online",
		Service:   serviceName,
		Timestamp: time.Now().Format(time.RFC3339),
	})
}

// SheetStatus reports row-store connectivity and up to three sample rows.
func (h *Handler) SheetStatus(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), handleTimeout)
	defer cancel()

	rows, err := h.Store.ReadAll(ctx)
	if err != nil {
		writeJSON(w, http.StatusOK, SheetStatusResponse{
			Status:  "error",
			Message: err.Error(),
		})
		return
	}

	sample := make([]RowDTO, 0, 3)
	for _, row := range rows {
		if len(sample) == 3 {
			break
		}
		dto := RowDTO{
			CustomerID: row.CustomerID,
			Amount:     row.Amount,
			Date:       row.EntryDate,
		}
		if !row.RecordedAt.IsZero() {
			dto.RecordedAt = row.RecordedAt.Format(ledger.RecordedAtLayout)
		}
		sample = append(sample, dto)
	}

	writeJSON(w, http.StatusOK, SheetStatusResponse{
		Status:       "connected",
		TotalRecords: len(rows),
		Columns:      ledger.Header(),
		SampleData:   sample,
	})
}

// =============================================================================
// RESPONSE HELPERS
// =============================================================================

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}
