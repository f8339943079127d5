package core

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var amountPrinter = message.NewPrinter(language.English)

// FormatAmount renders an invoice total as a dollar figure with thousands
// grouping, e.g. 12345 -> "$12,345". Totals are treated as whole units.
func FormatAmount(total int64) string {
	if total < 0 {
		return amountPrinter.Sprintf("-$%d", -total)
	}
	return amountPrinter.Sprintf("$%d", total)
}
