package usecase

import (
	"context"
	"encoding/json"
	"sort"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/groupledger/groupledger/internal/domain"
	"github.com/groupledger/groupledger/internal/infrastructure/metrics"
)

// consolidationCacheTTL bounds how stale a cached group result may be.
const consolidationCacheTTL = 10 * time.Minute

// ConsolidationUseCase produces group-level financials for a period:
// per-entity P&L aggregation, intercompany revenue elimination and minority
// interest.
type ConsolidationUseCase struct {
	journalRepo JournalRepository
	orgRepo     OrganizationRepository
	cache       Cache
	metrics     *metrics.Metrics
	logger      zerolog.Logger
}

// NewConsolidationUseCase creates a new ConsolidationUseCase.
func NewConsolidationUseCase(journalRepo JournalRepository, orgRepo OrganizationRepository, cache Cache, m *metrics.Metrics, logger zerolog.Logger) *ConsolidationUseCase {
	return &ConsolidationUseCase{
		journalRepo: journalRepo,
		orgRepo:     orgRepo,
		cache:       cache,
		metrics:     m,
		logger:      logger,
	}
}

// Consolidate computes group financials for a period. Results are cached;
// a fresh upload invalidates through InvalidatePeriod.
func (uc *ConsolidationUseCase) Consolidate(ctx context.Context, period string) (*domain.ConsolidatedFinancials, error) {
	cacheKey := "consolidation:" + period
	if data, err := uc.cache.Get(ctx, cacheKey); err == nil && data != nil {
		var cached domain.ConsolidatedFinancials
		if err := json.Unmarshal(data, &cached); err == nil {
			return &cached, nil
		}
	}

	entities, err := uc.journalRepo.SummarizeByEntity(ctx, period)
	if err != nil {
		return nil, err
	}
	if len(entities) == 0 {
		return nil, domain.ErrNoFinancialData
	}

	icLines, err := uc.journalRepo.ListIntercompany(ctx, period)
	if err != nil {
		return nil, err
	}

	orgs, err := uc.orgRepo.List(ctx, false)
	if err != nil {
		return nil, err
	}

	transactions := BuildIntercompanyTransactions(period, icLines, orgs)
	result := ConsolidateFinancials(period, entities, orgs, transactions)
	uc.metrics.ConsolidationsComputed.Inc()

	if data, err := json.Marshal(result); err == nil {
		if err := uc.cache.Set(ctx, cacheKey, data, consolidationCacheTTL); err != nil {
			uc.logger.Warn().Err(err).Str("period", period).Msg("consolidation cache write failed")
		}
	}
	return result, nil
}

// InvalidatePeriod drops the cached consolidation for a period.
func (uc *ConsolidationUseCase) InvalidatePeriod(ctx context.Context, period string) error {
	return uc.cache.Delete(ctx, "consolidation:"+period)
}

// Periods lists the reporting periods with journal data, newest first.
func (uc *ConsolidationUseCase) Periods(ctx context.Context) ([]string, error) {
	return uc.journalRepo.Periods(ctx)
}

// BuildIntercompanyTransactions pairs journal lines that share a match ID
// into intercompany transactions. The transaction amount is the revenue
// recognized on the receiving side; lines without revenue contribute a zero
// amount and no elimination. The elimination level is the lowest common
// ancestor of the two entities' ownership chains; entities with no common
// ancestor stay unconsolidated.
func BuildIntercompanyTransactions(period string, lines []*domain.JournalLine, orgs []*domain.Organization) []domain.IntercompanyTransaction {
	byName := make(map[string]*domain.Organization, len(orgs))
	byID := make(map[string]*domain.Organization, len(orgs))
	for _, o := range orgs {
		byName[NameKey(o.Name)] = o
		byID[o.ID] = o
	}

	groups := map[string][]*domain.JournalLine{}
	for _, l := range lines {
		if l.IntercompanyMatchID == "" {
			continue
		}
		groups[l.IntercompanyMatchID] = append(groups[l.IntercompanyMatchID], l)
	}

	matchIDs := make([]string, 0, len(groups))
	for id := range groups {
		matchIDs = append(matchIDs, id)
	}
	sort.Strings(matchIDs)

	transactions := make([]domain.IntercompanyTransaction, 0, len(groups))
	for _, matchID := range matchIDs {
		group := groups[matchID]

		txn := domain.IntercompanyTransaction{
			Period:  period,
			MatchID: matchID,
		}
		for _, l := range group {
			if txn.FromEntity == "" && l.InitiatingCompany != "" {
				txn.FromEntity = l.InitiatingCompany
			}
			if txn.Currency == "" {
				txn.Currency = l.Currency
			}
			if l.AccountCategory == domain.AccountRevenue {
				txn.Amount = txn.Amount.Add(l.CreditAmount.Sub(l.DebitAmount))
			}
			txn.SourceJournalLineIDs = append(txn.SourceJournalLineIDs, l.ID)
		}
		for _, l := range group {
			if l.EntityName != txn.FromEntity {
				txn.ToEntity = l.EntityName
				break
			}
		}

		if level, ok := lowestCommonAncestor(txn.FromEntity, txn.ToEntity, byName, byID); ok && txn.Amount.IsPositive() {
			txn.EliminationLevel = level
			txn.Eliminated = true
		}
		transactions = append(transactions, txn)
	}
	return transactions
}

// lowestCommonAncestor resolves both entity names and walks their parent
// chains for the first shared organization. The second return is false when
// either entity is unknown or the chains never meet.
func lowestCommonAncestor(fromName, toName string, byName map[string]*domain.Organization, byID map[string]*domain.Organization) (string, bool) {
	from, ok := byName[NameKey(fromName)]
	if !ok {
		return "", false
	}
	to, ok := byName[NameKey(toName)]
	if !ok {
		return "", false
	}

	fromChain := domain.ParentChain(from, byID)
	inFromChain := make(map[string]struct{}, len(fromChain))
	for _, id := range fromChain {
		inFromChain[id] = struct{}{}
	}
	for _, id := range domain.ParentChain(to, byID) {
		if _, shared := inFromChain[id]; shared {
			if ancestor, ok := byID[id]; ok {
				return ancestor.Name, true
			}
			return "", false
		}
	}
	return "", false
}

// ConsolidateFinancials folds per-entity P&L figures into the group result.
// Eliminations reduce revenue only; costs keep both legs. Minority interest
// is each non-wholly-owned entity's EBITDA times the outside stake of its
// immediate parent, without compounding through the chain.
func ConsolidateFinancials(period string, entities []*domain.EntityFinancials, orgs []*domain.Organization, transactions []domain.IntercompanyTransaction) *domain.ConsolidatedFinancials {
	byName := make(map[string]*domain.Organization, len(orgs))
	for _, o := range orgs {
		byName[NameKey(o.Name)] = o
	}

	result := &domain.ConsolidatedFinancials{Period: period}
	hundred := decimal.NewFromInt(100)

	for _, e := range entities {
		e.GrossMargin = e.Revenue.Sub(e.DirectCosts)
		e.EBITDA = e.GrossMargin.Sub(e.OperatingExpenses)

		result.RevenueBeforeEliminations = result.RevenueBeforeEliminations.Add(e.Revenue)
		result.DirectCosts = result.DirectCosts.Add(e.DirectCosts)
		result.OperatingExpenses = result.OperatingExpenses.Add(e.OperatingExpenses)
		result.ByEntity = append(result.ByEntity, *e)

		if org, ok := byName[NameKey(e.EntityName)]; ok && !org.IsWhollyOwned() {
			share := org.MinorityShare().Div(hundred)
			result.MinorityInterest = result.MinorityInterest.Add(e.EBITDA.Mul(share))
		}
	}

	for _, txn := range transactions {
		if !txn.Eliminated {
			continue
		}
		result.IntercompanyEliminations = result.IntercompanyEliminations.Add(txn.Amount)
		result.Eliminations = append(result.Eliminations, domain.Elimination{
			FromEntity:           txn.FromEntity,
			ToEntity:             txn.ToEntity,
			Amount:               txn.Amount,
			MatchID:              txn.MatchID,
			Level:                txn.EliminationLevel,
			SourceJournalLineIDs: txn.SourceJournalLineIDs,
		})
	}

	result.Revenue = result.RevenueBeforeEliminations.Sub(result.IntercompanyEliminations)
	result.GrossMargin = result.Revenue.Sub(result.DirectCosts)
	result.EBITDA = result.GrossMargin.Sub(result.OperatingExpenses)
	if result.Revenue.IsPositive() {
		result.GrossMarginPct = result.GrossMargin.Div(result.Revenue).Mul(hundred)
		result.EBITDAPct = result.EBITDA.Div(result.Revenue).Mul(hundred)
	}
	result.NetIncome = result.EBITDA.Sub(result.MinorityInterest)
	return result
}
