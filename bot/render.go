/*
render.go - Reply formatting

Renders the help text and the customer summary report in Telegram
Markdown. Rupee amounts in totals are grouped with plain western
thousands separators, e.g. ₹150,000.
*/
package bot

import (
	"fmt"
	"strings"

	"github.com/khatawala/khatabot/ledger"
)

const msgServerError = "❌ Server error occurred. Please try again."

const helpText = "💰 *Finance Bot Commands*\n\n" +
	"📥 *Save Data:*\n" +
	"`<CustomerID> <Amount>` - Save with today's date\n" +
	"`<CustomerID> <Amount> <DD-MM-YYYY>` - Save with specific date\n\n" +
	"📤 *Show Records:*\n" +
	"`show <CustomerID>` - View customer summary\n\n" +
	"🗑️ *Delete Records:*\n" +
	"`delete <CustomerID> <Amount> <DD-MM-YYYY>` - Delete specific entry\n" +
	"`delete all <CustomerID>` - Delete all records for customer\n\n" +
	"*Examples:*\n" +
	"`132 500`\n" +
	"`132 300 15-01-2026`\n" +
	"`show 132`\n" +
	"`delete 132 300 15-01-2026`\n" +
	"`delete all 132`"

// renderSummary formats one customer's reconciled balance as the Show
// reply: totals first, then the numbered payment history.
func renderSummary(s ledger.CustomerSummary) string {
	var b strings.Builder

	fmt.Fprintf(&b, "📄 *Customer ID:* %s\n\n", s.CustomerID)
	fmt.Fprintf(&b, "💰 *Total Given:* ₹%s\n", groupDigits(s.TotalGiven))
	fmt.Fprintf(&b, "💵 *Total Paid:* ₹%s\n", groupDigits(s.TotalPaid))
	fmt.Fprintf(&b, "📉 *Balance:* ₹%s\n\n", groupDigits(s.Balance))

	if len(s.Payments) == 0 {
		b.WriteString("No payments yet.")
		return b.String()
	}

	b.WriteString("🧾 *Payment History:*\n")
	for i, p := range s.Payments {
		date := p.EntryDate
		if date == "" {
			date = "Unknown"
		}
		fmt.Fprintf(&b, "%d) %s - ₹%d\n", i+1, date, p.Amount)
	}
	return strings.TrimRight(b.String(), "\n")
}

// groupDigits renders n with comma thousands separators, e.g. -1234567
// becomes "-1,234,567".
func groupDigits(n int64) string {
	s := fmt.Sprintf("%d", n)
	neg := strings.HasPrefix(s, "-")
	if neg {
		s = s[1:]
	}

	var parts []string
	for len(s) > 3 {
		parts = append([]string{s[len(s)-3:]}, parts...)
		s = s[:len(s)-3]
	}
	parts = append([]string{s}, parts...)

	out := strings.Join(parts, ",")
	if neg {
		out = "-" + out
	}
	return out
}
