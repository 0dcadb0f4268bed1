/*
Package bot executes parsed chat commands against the ledger and renders
the reply.

PURPOSE:
  The interpreter back half. Handle takes one line of text and always
  returns the reply to send: a confirmation, a summary report, or a
  specific error message. It never returns an error - every branch
  catches its own failure, logs the cause, and answers the user with
  something actionable. Store details never leak into replies.

FLOW:
  text -> command.Parse -> ledger.Service -> rendered reply

SEE ALSO:
  - command/parser.go: classification and validation
  - render.go: reply formatting
  - api package: webhook plumbing around Handle
*/
package bot

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/khatawala/khatabot/command"
	"github.com/khatawala/khatabot/ledger"
)

// Executor runs commands against the ledger service.
type Executor struct {
	Ledger *ledger.Service

	// Now supplies the default entry date for two-token saves.
	// Overridable in tests.
	Now func() time.Time
}

// New creates an Executor on top of the given ledger service.
func New(svc *ledger.Service) *Executor {
	return &Executor{Ledger: svc, Now: time.Now}
}

// Handle processes one message and returns the reply text.
func (e *Executor) Handle(ctx context.Context, text string) string {
	cmd, err := command.Parse(text, e.Now())
	if err != nil {
		var verr *command.ValidationError
		if errors.As(err, &verr) {
			return verr.Message
		}
		log.Printf("parse %q: %v", text, err)
		return msgServerError
	}

	switch cmd.Intent {
	case command.IntentHelp:
		return helpText
	case command.IntentShow:
		return e.show(ctx, cmd)
	case command.IntentDeleteAll:
		return e.deleteAll(ctx, cmd)
	case command.IntentDeleteOne:
		return e.deleteOne(ctx, cmd)
	case command.IntentSave:
		return e.save(ctx, cmd)
	default:
		return helpText
	}
}

func (e *Executor) show(ctx context.Context, cmd command.Command) string {
	summary, err := e.Ledger.Summary(ctx, cmd.CustomerID)
	switch {
	case err == nil:
		return renderSummary(summary)
	case ledger.IsNotFound(err):
		return fmt.Sprintf("❌ No records found for customer %s", cmd.CustomerID)
	default:
		log.Printf("show %s: %v", cmd.CustomerID, err)
		return "❌ Error retrieving records. Please try again."
	}
}

func (e *Executor) deleteAll(ctx context.Context, cmd command.Command) string {
	deleted, err := e.Ledger.DeleteAll(ctx, cmd.CustomerID)
	switch {
	case err == nil:
		return fmt.Sprintf("🗑️ Deleted %d records for customer %s", deleted, cmd.CustomerID)
	case errors.Is(err, ledger.ErrEmptySheet):
		return "❌ No records found in sheet"
	default:
		log.Printf("delete all %s: %v", cmd.CustomerID, err)
		return "❌ Error deleting records. Please try again."
	}
}

func (e *Executor) deleteOne(ctx context.Context, cmd command.Command) string {
	err := e.Ledger.DeleteOne(ctx, cmd.CustomerID, cmd.AmountText, cmd.EntryDate)
	switch {
	case err == nil:
		return "✅ Entry deleted successfully"
	case errors.Is(err, ledger.ErrEmptySheet):
		return "❌ No records found in sheet"
	case ledger.IsNotFound(err):
		return "❌ No matching entry found"
	default:
		log.Printf("delete %s %s %s: %v", cmd.CustomerID, cmd.AmountText, cmd.EntryDate, err)
		return "❌ Error deleting entry. Please try again."
	}
}

func (e *Executor) save(ctx context.Context, cmd command.Command) string {
	row, err := e.Ledger.Save(ctx, cmd.CustomerID, cmd.Amount, cmd.EntryDate)
	if err != nil {
		log.Printf("save %s %d %s: %v", cmd.CustomerID, cmd.Amount, cmd.EntryDate, err)
		return "❌ Error saving entry. Please try again."
	}
	return fmt.Sprintf("✅ Saved successfully\nCustomer: %s\nAmount: ₹%d\nDate: %s",
		row.CustomerID, row.Amount, row.EntryDate)
}
