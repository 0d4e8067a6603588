package domain

import "github.com/shopspring/decimal"

// IntercompanyTransaction pairs the two sides of a transaction between group
// entities. It is derived by grouping journal lines that share a match ID,
// never uploaded directly. EliminationLevel names the lowest common ancestor
// organization under which the elimination is recognized; it is empty when
// the two entities share no ancestor, in which case the transaction stays
// unconsolidated and is not eliminated.
type IntercompanyTransaction struct {
	Period           string
	FromEntity       string
	ToEntity         string
	Amount           decimal.Decimal
	Currency         string
	MatchID          string
	Eliminated       bool
	EliminationLevel string
	// SourceJournalLineIDs keeps traceability back to the paired ledger lines.
	SourceJournalLineIDs []string
}
