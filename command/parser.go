/*
Package command classifies one line of chat text into a ledger operation.

PURPOSE:
  The interpreter front half: turn free-form text into a validated
  Command, or a ValidationError whose message is the exact reply the user
  should see. It never touches the store.

DISPATCH:
  Rules are an explicit ordered list of (match, parse) pairs, evaluated
  top to bottom; the first match wins. Order is a contract, not an
  accident: "delete all " overlaps the generic "delete " prefix and must
  be tried first. The final save rule matches everything left.

COMMAND LANGUAGE:
  help | /help | /start | commands          -> Help
  show <id>                                 -> Show
  delete all <id>                           -> DeleteAll
  delete <id> <amount> <date>               -> DeleteOne (exactly 4 tokens)
  <id> <amount> [<DD-MM-YYYY>]              -> Save (2 or 3 tokens)
  anything else                             -> Unknown + usage hint

  Matching is case-insensitive on the whole line. Show and DeleteAll
  extract the ID from the lowercased line; Save and DeleteOne take tokens
  from the original text.

VALIDATION ORDER (Save):
  Cheap structural checks first (token count, empty ID), then semantic
  parsing (numeric amount, calendar-valid date). The first failure wins,
  so replies are specific and nothing reaches the store on any failure.

SEE ALSO:
  - bot package: executes Commands against the ledger
*/
package command

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

// dateLayout is the day-month-year entry date form, e.g. "15-01-2026".
const dateLayout = "02-01-2006"

// =============================================================================
// INTENTS AND COMMANDS
// =============================================================================

// Intent identifies the operation a message asks for.
type Intent string

const (
	IntentHelp      Intent = "help"
	IntentShow      Intent = "show"
	IntentDeleteAll Intent = "delete_all"
	IntentDeleteOne Intent = "delete_one"
	IntentSave      Intent = "save"
	IntentUnknown   Intent = "unknown"
)

// Command is a fully validated operation ready to execute.
type Command struct {
	Intent     Intent
	CustomerID string
	Amount     int64  // Save only; validated > 0
	AmountText string // DeleteOne only; matched against the store as-is
	EntryDate  string // dateLayout; defaulted to today for 2-token Save
}

// ValidationError carries the user-facing reply for a malformed command.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

func invalid(msg string) (Command, error) {
	return Command{}, &ValidationError{Message: msg}
}

// =============================================================================
// DISPATCH RULES - Ordered; first match wins
// =============================================================================

type rule struct {
	match func(lower string) bool
	parse func(text, lower string, now time.Time) (Command, error)
}

var rules = []rule{
	{matchHelp, parseHelp},
	{matchPrefix("show"), parseShow},
	{matchPrefix("delete all "), parseDeleteAll}, // before the generic delete rule
	{matchPrefix("delete "), parseDeleteOne},
	{func(string) bool { return true }, parseSave},
}

func matchHelp(lower string) bool {
	switch lower {
	case "help", "/help", "/start", "commands":
		return true
	}
	return false
}

func matchPrefix(prefix string) func(string) bool {
	return func(lower string) bool { return strings.HasPrefix(lower, prefix) }
}

// Parse classifies one line of input. now supplies the default entry date
// for two-token saves. On a validation failure the returned error is a
// *ValidationError whose Message is the reply to send.
func Parse(text string, now time.Time) (Command, error) {
	text = strings.TrimSpace(text)
	lower := strings.ToLower(text)

	for _, r := range rules {
		if r.match(lower) {
			return r.parse(text, lower, now)
		}
	}
	return Command{Intent: IntentUnknown}, nil // unreachable: save rule matches all
}

// =============================================================================
// PARSERS
// =============================================================================

func parseHelp(_, _ string, _ time.Time) (Command, error) {
	return Command{Intent: IntentHelp}, nil
}

func parseShow(_, lower string, _ time.Time) (Command, error) {
	id := strings.TrimSpace(strings.TrimPrefix(lower, "show"))
	if id == "" {
		return invalid("❌ Please provide a Customer ID\nExample: `show 132`")
	}
	return Command{Intent: IntentShow, CustomerID: id}, nil
}

func parseDeleteAll(_, lower string, _ time.Time) (Command, error) {
	id := strings.TrimSpace(strings.TrimPrefix(lower, "delete all"))
	if id == "" {
		return invalid("❌ Please provide a Customer ID\nExample: `delete all 132`")
	}
	return Command{Intent: IntentDeleteAll, CustomerID: id}, nil
}

func parseDeleteOne(text, _ string, _ time.Time) (Command, error) {
	parts := strings.Fields(text)
	if len(parts) != 4 {
		return invalid("❌ Invalid format\n\n" +
			"*Usage:*\n" +
			"`delete <CustomerID> <Amount> <DD-MM-YYYY>`\n\n" +
			"*Example:*\n" +
			"`delete 132 200 15-01-2026`")
	}
	// Amount and date are matched against stored cells as raw strings;
	// they are deliberately not parsed here.
	return Command{
		Intent:     IntentDeleteOne,
		CustomerID: parts[1],
		AmountText: parts[2],
		EntryDate:  parts[3],
	}, nil
}

var (
	amountPattern = regexp.MustCompile(`^[0-9]+$`)
	datePattern   = regexp.MustCompile(`^[0-9]{2}-[0-9]{2}-[0-9]{4}$`)
)

func parseSave(text, _ string, now time.Time) (Command, error) {
	parts := strings.Fields(text)

	var id, amountText, date string
	switch len(parts) {
	case 2:
		id, amountText = parts[0], parts[1]
		date = now.Format(dateLayout)
	case 3:
		id, amountText, date = parts[0], parts[1], parts[2]
	default:
		// Includes the bare-number case: a single numeric token is one
		// token short of a save, not a malformed one.
		return invalid("❌ Invalid format\n\n" +
			"*Usage:*\n" +
			"`<CustomerID> <Amount>`\n" +
			"or\n" +
			"`<CustomerID> <Amount> <DD-MM-YYYY>`\n\n" +
			"*Examples:*\n" +
			"`132 200`\n" +
			"`132 200 15-01-2026`")
	}

	id = strings.TrimSpace(id)
	if id == "" {
		return invalid("❌ Please provide a Customer ID")
	}

	if !amountPattern.MatchString(amountText) {
		return invalid("❌ Amount must be a number greater than 0")
	}
	amount, err := strconv.ParseInt(amountText, 10, 64)
	if err != nil || amount <= 0 {
		return invalid("❌ Amount must be a number greater than 0")
	}

	if !datePattern.MatchString(date) {
		return invalid("❌ Invalid date format (use DD-MM-YYYY)")
	}
	if _, err := time.Parse(dateLayout, date); err != nil {
		// Shape is right but the calendar disagrees, e.g. 31-02-2026.
		return invalid("❌ Invalid date format (use DD-MM-YYYY)")
	}

	return Command{
		Intent:     IntentSave,
		CustomerID: id,
		Amount:     amount,
		EntryDate:  date,
	}, nil
}
