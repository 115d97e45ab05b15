package services

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/lgu-treasury/rpt_ledger_app/internal/apperrors"
	"github.com/lgu-treasury/rpt_ledger_app/internal/core/domain"
	portsrepo "github.com/lgu-treasury/rpt_ledger_app/internal/core/ports/repositories"
	portssvc "github.com/lgu-treasury/rpt_ledger_app/internal/core/ports/services"
	"github.com/lgu-treasury/rpt_ledger_app/internal/middleware"
	"github.com/lgu-treasury/rpt_ledger_app/internal/utils/taxrules"
	"github.com/shopspring/decimal"
)

var (
	ErrNoDueKeys        = errors.New("posting run requires at least one due key")
	ErrTaxpayerRequired = errors.New("taxpayer ID is required")
)

// systemUserID is the user recorded on rows generated by the engine.
const systemUserID = "SYSTEM"

// postingService is the posting engine. It rebuilds the derived PEN/DED rows
// of the ledger from open assessment rows for an as-of date.
//
// Runs are serialized behind runMu so two recomputes never interleave their
// delete-then-insert windows. Posting IDs are allocated max+1 by the
// repository under its allocation lock.
type postingService struct {
	ledgerRepo  portsrepo.LedgerRepositoryWithTx
	rateRepo    portsrepo.RateRepository
	journalRepo portsrepo.JournalRepository
	municipalID int

	runMu sync.Mutex
}

// NewPostingService creates the posting engine.
func NewPostingService(ledgerRepo portsrepo.LedgerRepositoryWithTx, rateRepo portsrepo.RateRepository, journalRepo portsrepo.JournalRepository, municipalID int) portssvc.PostingSvcFacade {
	return &postingService{
		ledgerRepo:  ledgerRepo,
		rateRepo:    rateRepo,
		journalRepo: journalRepo,
		municipalID: municipalID,
	}
}

var _ portssvc.PostingSvcFacade = (*postingService)(nil)

// PostPenalties recomputes the derived rows for every due key in one batch
// transaction. When the batch fails, the whole input set is retried through
// the per-record path and the failures are collected; a partial result is a
// normal outcome, not an error.
func (s *postingService) PostPenalties(ctx context.Context, dueKeys []domain.DueKey, asOf domain.YearMonth) (domain.PostingRunResult, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if len(dueKeys) == 0 {
		return domain.PostingRunResult{}, apperrors.NewValidationError(ErrNoDueKeys.Error())
	}

	s.runMu.Lock()
	defer s.runMu.Unlock()

	// Rates are loaded once per run, outside the transaction; they are
	// read-mostly reference data.
	penaltyRate, discounts, err := s.loadRates(ctx, asOf)
	if err != nil {
		return domain.PostingRunResult{}, err
	}

	result := domain.PostingRunResult{Total: len(dueKeys), Errors: []domain.RecordError{}}

	logger.Info("Starting posting run",
		slog.Int("record_count", len(dueKeys)),
		slog.String("as_of", asOf.String()),
	)

	staged, err := s.processBatch(ctx, dueKeys, asOf, penaltyRate, discounts)
	if err == nil {
		result.Processed = len(dueKeys)
		logger.Info("Posting run completed", slog.Int("processed", result.Processed), slog.Int("staged_rows", staged))
		return result, nil
	}

	logger.Error("Batch posting failed, falling back to per-record processing", slog.String("error", err.Error()))

	for _, key := range dueKeys {
		if err := s.processSingle(ctx, key, asOf, penaltyRate, discounts); err != nil {
			logger.Error("Failed to process due key",
				slog.Int64("taxtrans_id", key.TaxTransactionID),
				slog.Int("tax_year", key.TaxYear),
				slog.String("error", err.Error()),
			)
			result.Errors = append(result.Errors, domain.RecordError{Record: key, Error: err.Error()})
			continue
		}
		result.Processed++
	}

	logger.Info("Posting run completed with fallback",
		slog.Int("processed", result.Processed),
		slog.Int("errors", len(result.Errors)),
	)
	return result, nil
}

// processBatch runs the full recompute for all due keys inside one
// transaction: delete stale derived rows, fetch base rows and credit sums in
// bulk, compute, then chunk-insert. A failure anywhere rolls the run back.
func (s *postingService) processBatch(ctx context.Context, dueKeys []domain.DueKey, asOf domain.YearMonth, penaltyRate decimal.Decimal, discounts domain.DiscountRateTable) (int, error) {
	tx, err := s.ledgerRepo.Begin(ctx)
	if err != nil {
		return 0, err
	}
	defer s.ledgerRepo.Rollback(ctx, tx)

	taxTransIDs := make([]int64, 0, len(dueKeys))
	propIDs := make([]int64, 0, len(dueKeys))
	years := make([]int, 0, len(dueKeys))
	seenTrans := map[int64]struct{}{}
	seenProps := map[int64]struct{}{}
	seenYears := map[int]struct{}{}
	for _, k := range dueKeys {
		if _, ok := seenTrans[k.TaxTransactionID]; !ok {
			seenTrans[k.TaxTransactionID] = struct{}{}
			taxTransIDs = append(taxTransIDs, k.TaxTransactionID)
		}
		if _, ok := seenProps[k.PropertyID]; !ok {
			seenProps[k.PropertyID] = struct{}{}
			propIDs = append(propIDs, k.PropertyID)
		}
		if _, ok := seenYears[k.TaxYear]; !ok {
			seenYears[k.TaxYear] = struct{}{}
			years = append(years, k.TaxYear)
		}
	}

	if _, err := s.ledgerRepo.DeleteOpenDerived(ctx, tx, taxTransIDs); err != nil {
		return 0, err
	}

	groups, err := s.ledgerRepo.FindOpenBaseEntries(ctx, tx, taxTransIDs)
	if err != nil {
		return 0, err
	}

	credits, err := s.ledgerRepo.SumOpenCredits(ctx, tx, propIDs, years)
	if err != nil {
		return 0, err
	}

	nextID, err := s.ledgerRepo.NextPostingID(ctx, tx)
	if err != nil {
		return 0, err
	}

	staged := make([]domain.AccountEntry, 0, len(dueKeys))
	for _, key := range dueKeys {
		for _, base := range groups[key.DueGroup()] {
			entry, ok := s.deriveEntry(base, asOf, credits, penaltyRate, discounts)
			if !ok {
				continue
			}
			entry.PostingID = nextID
			nextID++
			staged = append(staged, entry)
		}
	}

	if err := s.ledgerRepo.BulkInsertEntries(ctx, tx, staged); err != nil {
		return 0, err
	}

	if err := s.ledgerRepo.Commit(ctx, tx); err != nil {
		return 0, err
	}
	return len(staged), nil
}

// processSingle recomputes one due key in its own transaction. This is the
// fallback path; it mirrors the batch semantics exactly.
func (s *postingService) processSingle(ctx context.Context, key domain.DueKey, asOf domain.YearMonth, penaltyRate decimal.Decimal, discounts domain.DiscountRateTable) error {
	tx, err := s.ledgerRepo.Begin(ctx)
	if err != nil {
		return err
	}
	defer s.ledgerRepo.Rollback(ctx, tx)

	ids := []int64{key.TaxTransactionID}
	if _, err := s.ledgerRepo.DeleteOpenDerived(ctx, tx, ids); err != nil {
		return err
	}

	groups, err := s.ledgerRepo.FindOpenBaseEntries(ctx, tx, ids)
	if err != nil {
		return err
	}

	credits, err := s.ledgerRepo.SumOpenCredits(ctx, tx, []int64{key.PropertyID}, []int{key.TaxYear})
	if err != nil {
		return err
	}

	nextID, err := s.ledgerRepo.NextPostingID(ctx, tx)
	if err != nil {
		return err
	}

	staged := []domain.AccountEntry{}
	for _, base := range groups[key.DueGroup()] {
		entry, ok := s.deriveEntry(base, asOf, credits, penaltyRate, discounts)
		if !ok {
			continue
		}
		entry.PostingID = nextID
		nextID++
		staged = append(staged, entry)
	}

	if err := s.ledgerRepo.BulkInsertEntries(ctx, tx, staged); err != nil {
		return err
	}

	return s.ledgerRepo.Commit(ctx, tx)
}

// deriveEntry classifies one base row and computes its penalty or discount.
// It returns false when the row produces nothing: unknown period, no event
// for the date, or a non-positive amount.
func (s *postingService) deriveEntry(base domain.AccountEntry, asOf domain.YearMonth, credits map[domain.CreditKey]decimal.Decimal, penaltyRate decimal.Decimal, discounts domain.DiscountRateTable) (domain.AccountEntry, bool) {
	event := taxrules.Classify(asOf, base.TaxYear, base.TaxPeriod)
	kind, ok := event.Kind()
	if !ok {
		return domain.AccountEntry{}, false
	}

	creditKey := domain.CreditKey{PropertyID: base.PropertyID, TaxYear: base.TaxYear, TaxPeriod: base.TaxPeriod}
	baseAmount := base.DebitAmount.Add(credits[creditKey])

	amount := taxrules.Amount(event, asOf, base.TaxYear, base.TaxPeriod, baseAmount, penaltyRate, discounts)
	if !amount.IsPositive() {
		return domain.AccountEntry{}, false
	}

	refID := base.PostingID
	return domain.AccountEntry{
		TaxpayerID:       base.TaxpayerID,
		PropertyID:       base.PropertyID,
		TaxYear:          base.TaxYear,
		TaxPeriod:        base.TaxPeriod,
		TaxTransactionID: base.TaxTransactionID,
		JournalID:        base.JournalID,
		EventKind:        kind,
		DebitAmount:      amount,
		CreditAmount:     decimal.Zero,
		Earmark:          domain.EarmarkOpen,
		RefPostingID:     &refID,
		ValueDate:        asOf.Date(),
		TransactionDate:  time.Now().UTC(),
		UserID:           systemUserID,
		MunicipalID:      s.municipalID,
	}, true
}

// ComputePenaltyDiscount recomputes the derived rows of one taxpayer in one
// transaction and reports how many rows were deleted and inserted.
func (s *postingService) ComputePenaltyDiscount(ctx context.Context, taxpayerID string, asOf domain.YearMonth) (domain.RecomputeResult, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if taxpayerID == "" {
		return domain.RecomputeResult{}, apperrors.NewValidationError(ErrTaxpayerRequired.Error())
	}

	s.runMu.Lock()
	defer s.runMu.Unlock()

	penaltyRate, discounts, err := s.loadRates(ctx, asOf)
	if err != nil {
		return domain.RecomputeResult{}, err
	}

	tx, err := s.ledgerRepo.Begin(ctx)
	if err != nil {
		return domain.RecomputeResult{}, err
	}
	defer s.ledgerRepo.Rollback(ctx, tx)

	deleted, err := s.ledgerRepo.DeleteOpenDerivedByTaxpayer(ctx, tx, taxpayerID)
	if err != nil {
		return domain.RecomputeResult{}, err
	}

	bases, err := s.ledgerRepo.FindOpenBaseEntriesByTaxpayer(ctx, tx, taxpayerID)
	if err != nil {
		return domain.RecomputeResult{}, err
	}

	propIDs := make([]int64, 0, len(bases))
	years := make([]int, 0, len(bases))
	seenProps := map[int64]struct{}{}
	seenYears := map[int]struct{}{}
	for _, b := range bases {
		if _, ok := seenProps[b.PropertyID]; !ok {
			seenProps[b.PropertyID] = struct{}{}
			propIDs = append(propIDs, b.PropertyID)
		}
		if _, ok := seenYears[b.TaxYear]; !ok {
			seenYears[b.TaxYear] = struct{}{}
			years = append(years, b.TaxYear)
		}
	}

	credits, err := s.ledgerRepo.SumOpenCredits(ctx, tx, propIDs, years)
	if err != nil {
		return domain.RecomputeResult{}, err
	}

	nextID, err := s.ledgerRepo.NextPostingID(ctx, tx)
	if err != nil {
		return domain.RecomputeResult{}, err
	}

	staged := []domain.AccountEntry{}
	for _, base := range bases {
		entry, ok := s.deriveEntry(base, asOf, credits, penaltyRate, discounts)
		if !ok {
			continue
		}
		entry.PostingID = nextID
		nextID++
		staged = append(staged, entry)
	}

	if err := s.ledgerRepo.BulkInsertEntries(ctx, tx, staged); err != nil {
		return domain.RecomputeResult{}, err
	}

	if err := s.ledgerRepo.Commit(ctx, tx); err != nil {
		return domain.RecomputeResult{}, err
	}

	logger.Info("Recompute completed",
		slog.String("taxpayer_id", taxpayerID),
		slog.Int64("deleted", deleted),
		slog.Int("inserted", len(staged)),
	)
	return domain.RecomputeResult{Deleted: deleted, Inserted: len(staged)}, nil
}

// InitializeTaxpayerDebit seeds missing ASS ledger rows from the posting
// journal. Existing open assessment rows are left untouched so the operation
// can be re-run safely.
func (s *postingService) InitializeTaxpayerDebit(ctx context.Context, taxpayerID string) (int, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if taxpayerID == "" {
		return 0, apperrors.NewValidationError(ErrTaxpayerRequired.Error())
	}

	dues, err := s.journalRepo.FindBillableDues(ctx, taxpayerID)
	if err != nil {
		return 0, err
	}

	now := time.Now().UTC()
	seeded := 0
	for _, due := range dues {
		exists, err := s.ledgerRepo.AssessmentEntryExists(ctx, taxpayerID, due.PropertyID, due.TaxYear, due.JournalID)
		if err != nil {
			return seeded, err
		}
		if exists {
			continue
		}

		entry := domain.AccountEntry{
			TaxpayerID:       taxpayerID,
			PropertyID:       due.PropertyID,
			TaxYear:          due.TaxYear,
			TaxPeriod:        domain.PeriodAnnual,
			TaxTransactionID: due.TaxTransactionID,
			JournalID:        due.JournalID,
			EventKind:        domain.Assessment,
			DebitAmount:      due.RPTDue.Add(due.SEFDue).Round(2),
			CreditAmount:     decimal.Zero,
			Earmark:          domain.EarmarkOpen,
			ValueDate:        now,
			TransactionDate:  now,
			UserID:           systemUserID,
			MunicipalID:      s.municipalID,
		}
		if _, err := s.ledgerRepo.InsertEntry(ctx, entry); err != nil {
			return seeded, err
		}
		seeded++
	}

	logger.Info("Taxpayer debit initialized",
		slog.String("taxpayer_id", taxpayerID),
		slog.Int("journal_rows", len(dues)),
		slog.Int("seeded", seeded),
	)
	return len(dues), nil
}

// loadRates fetches the penalty rate and the discount table for the as-of year.
func (s *postingService) loadRates(ctx context.Context, asOf domain.YearMonth) (decimal.Decimal, domain.DiscountRateTable, error) {
	penaltyRate, err := s.rateRepo.PenaltyRate(ctx)
	if err != nil {
		return decimal.Zero, domain.DiscountRateTable{}, err
	}
	discounts, err := s.rateRepo.DiscountRates(ctx, asOf.Year)
	if err != nil {
		return decimal.Zero, domain.DiscountRateTable{}, err
	}
	return penaltyRate, discounts, nil
}
