package domain

import "strings"

// AccountCategory is the P&L classification of a ledger account. It is
// derived once at ingestion time from the account code and stored on the
// journal line, so aggregations never repeat string matching.
type AccountCategory string

const (
	AccountRevenue     AccountCategory = "revenue"
	AccountDirectCosts AccountCategory = "direct_costs"
	AccountOpEx        AccountCategory = "operating_expenses"
	AccountOther       AccountCategory = "other"
)

// Account-code prefixes follow the group's chart of accounts: 4xxx revenue,
// 6xxx cost of sales, 7xxx operating expenses. This is a fixed convention of
// the source exports, not configurable.
const (
	revenuePrefix    = "4"
	directCostPrefix = "6"
	opexPrefix       = "7"
)

// CategorizeAccount maps a ledger account code to its P&L category.
func CategorizeAccount(ledgerAccount string) AccountCategory {
	code := strings.TrimSpace(ledgerAccount)
	switch {
	case strings.HasPrefix(code, revenuePrefix):
		return AccountRevenue
	case strings.HasPrefix(code, directCostPrefix):
		return AccountDirectCosts
	case strings.HasPrefix(code, opexPrefix):
		return AccountOpEx
	default:
		return AccountOther
	}
}
