/*
dto.go - Wire types for the webhook and read endpoints

PURPOSE:
  Defines the JSON structures for inbound Telegram updates and this
  service's responses. These types decouple the handlers from the raw
  payload shape; only the fields the bot reads are declared.

VALIDATION:
  Validation is done in handlers, not in DTOs. DTOs are pure data
  carriers.

SEE ALSO:
  - handlers.go: Uses these types
*/
package api

// =============================================================================
// INBOUND - Telegram update payload (relevant subset)
// =============================================================================

// Update is one webhook delivery from Telegram.
type Update struct {
	Message *IncomingMessage `json:"message"`
}

// IncomingMessage is the message part of an update.
type IncomingMessage struct {
	Text string `json:"text"`
	Chat Chat   `json:"chat"`
	From *User  `json:"from"`
}

type Chat struct {
	ID int64 `json:"id"`
}

type User struct {
	ID int64 `json:"id"`
}

// =============================================================================
// OUTBOUND - Responses
// =============================================================================

// WebhookAck is the acknowledgment returned for every webhook delivery.
// Always HTTP 200: a non-2xx answer would make Telegram retry the same
// update in a storm. Status distinguishes outcomes for observability:
// "ok", "ignored" (unauthorized sender), "error" (unhandled failure).
type WebhookAck struct {
	Status string `json:"status"`
}

// HealthResponse is the liveness probe body.
type HealthResponse struct {
	Status    string `json:"status"`
	Service   string `json:"service"`
	Timestamp string `json:"timestamp"`
}

// SheetStatusResponse reports row-store connectivity and a content sample.
type SheetStatusResponse struct {
	Status       string   `json:"status"`
	TotalRecords int      `json:"total_records,omitempty"`
	Columns      []string `json:"columns,omitempty"`
	SampleData   []RowDTO `json:"sample_data,omitempty"`
	Message      string   `json:"message,omitempty"`
}

// RowDTO is one ledger row in debug responses.
type RowDTO struct {
	CustomerID string `json:"customer_id"`
	Amount     int64  `json:"amount"`
	Date       string `json:"date"`
	RecordedAt string `json:"recorded_at,omitempty"`
}
