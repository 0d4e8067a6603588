// Package csvmap converts raw CSV exports into canonical records: it
// normalizes locale-ambiguous amounts and dates, resolves header aliases,
// and maps rows field by field according to a per-upload-type registry.
package csvmap

import (
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

// europeanAmount matches amounts like "24.200,00" where the dot is a
// thousands separator and the comma the decimal mark.
var europeanAmount = regexp.MustCompile(`^-?\d+\.\d{3},\d+$`)

// amountJunk strips currency symbols, quotes and whitespace before parsing.
var amountJunk = strings.NewReplacer(
	"€", "", "$", "", "£", "", "¥", "",
	`"`, "", "'", "", " ", "", " ", "",
)

// ParseAmount converts a raw amount cell into a decimal value. It accepts
// US format ("24,200.00"), European format ("24.200,00"), currency symbols,
// surrounding quotes and parenthesized negatives ("(500.00)" -> -500.00).
// An empty or unparseable cell resolves to zero rather than an error: a
// single bad cell must never fail a batch.
//
// Known limitation: the format heuristic only treats strings shaped like
// "1.234,56" as European, so a bare "1,234" is read as US-format 1234.
// This ambiguity is inherited from the source exports and deliberately not
// second-guessed.
func ParseAmount(raw string) decimal.Decimal {
	cleaned := amountJunk.Replace(strings.TrimSpace(raw))
	if cleaned == "" {
		return decimal.Zero
	}

	if strings.HasPrefix(cleaned, "(") && strings.HasSuffix(cleaned, ")") {
		cleaned = "-" + cleaned[1:len(cleaned)-1]
	}

	if europeanAmount.MatchString(cleaned) {
		cleaned = strings.ReplaceAll(cleaned, ".", "")
		cleaned = strings.Replace(cleaned, ",", ".", 1)
	} else {
		cleaned = strings.ReplaceAll(cleaned, ",", "")
	}

	d, err := decimal.NewFromString(cleaned)
	if err != nil {
		return decimal.Zero
	}
	return d
}
