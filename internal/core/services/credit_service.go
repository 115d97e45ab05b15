package services

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/lgu-treasury/rpt_ledger_app/internal/apperrors"
	"github.com/lgu-treasury/rpt_ledger_app/internal/core/domain"
	portsrepo "github.com/lgu-treasury/rpt_ledger_app/internal/core/ports/repositories"
	portssvc "github.com/lgu-treasury/rpt_ledger_app/internal/core/ports/services"
	"github.com/lgu-treasury/rpt_ledger_app/internal/middleware"
	"github.com/shopspring/decimal"
)

var ErrNonPositiveCredit = errors.New("credit amount must be positive")

type creditService struct {
	ledgerRepo  portsrepo.LedgerRepositoryWithTx
	municipalID int
}

// NewCreditService creates the credit service.
func NewCreditService(ledgerRepo portsrepo.LedgerRepositoryWithTx, municipalID int) portssvc.CreditSvcFacade {
	return &creditService{ledgerRepo: ledgerRepo, municipalID: municipalID}
}

var _ portssvc.CreditSvcFacade = (*creditService)(nil)

// AddTaxCredit records one TCR row carrying the nominal credit amount. The
// storage layer applies the doubled-amount convention on the way in.
func (s *creditService) AddTaxCredit(ctx context.Context, taxpayerID string, propertyID int64, taxYear int, taxPeriod domain.TaxPeriod, journalID int64, amount decimal.Decimal) (*domain.AccountEntry, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if taxpayerID == "" {
		return nil, apperrors.NewValidationError(ErrTaxpayerRequired.Error())
	}
	if !amount.IsPositive() {
		return nil, apperrors.NewValidationError(ErrNonPositiveCredit.Error())
	}

	now := time.Now().UTC()
	entry := domain.AccountEntry{
		TaxpayerID:      taxpayerID,
		PropertyID:      propertyID,
		TaxYear:         taxYear,
		TaxPeriod:       taxPeriod,
		JournalID:       journalID,
		EventKind:       domain.Credit,
		DebitAmount:     amount.Round(2),
		CreditAmount:    decimal.Zero,
		Earmark:         domain.EarmarkOpen,
		ValueDate:       now,
		TransactionDate: now,
		UserID:          systemUserID,
		MunicipalID:     s.municipalID,
	}

	stored, err := s.ledgerRepo.InsertEntry(ctx, entry)
	if err != nil {
		logger.Error("Failed to add tax credit", slog.String("taxpayer_id", taxpayerID), slog.String("error", err.Error()))
		return nil, err
	}

	logger.Info("Tax credit recorded",
		slog.String("taxpayer_id", taxpayerID),
		slog.Int64("posting_id", stored.PostingID),
		slog.String("amount", stored.DebitAmount.String()),
	)
	return stored, nil
}

// RemoveCredits deletes the open TCR/TDF rows of a taxpayer.
func (s *creditService) RemoveCredits(ctx context.Context, taxpayerID string) (int64, error) {
	if taxpayerID == "" {
		return 0, apperrors.NewValidationError(ErrTaxpayerRequired.Error())
	}
	return s.ledgerRepo.DeleteOpenCreditsByTaxpayer(ctx, taxpayerID)
}

// RemoveCreditForDue deletes the open TCR rows of one due.
func (s *creditService) RemoveCreditForDue(ctx context.Context, taxpayerID string, propertyID int64, taxYear int, taxPeriod domain.TaxPeriod, journalID int64) (int64, error) {
	if taxpayerID == "" {
		return 0, apperrors.NewValidationError(ErrTaxpayerRequired.Error())
	}
	return s.ledgerRepo.DeleteOpenCreditForDue(ctx, taxpayerID, propertyID, taxYear, taxPeriod, journalID)
}

// RemovePenaltyDiscount deletes the open PEN/DED rows of a taxpayer without
// recomputing them.
func (s *creditService) RemovePenaltyDiscount(ctx context.Context, taxpayerID string) (int64, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if taxpayerID == "" {
		return 0, apperrors.NewValidationError(ErrTaxpayerRequired.Error())
	}

	tx, err := s.ledgerRepo.Begin(ctx)
	if err != nil {
		return 0, err
	}
	defer s.ledgerRepo.Rollback(ctx, tx)

	deleted, err := s.ledgerRepo.DeleteOpenDerivedByTaxpayer(ctx, tx, taxpayerID)
	if err != nil {
		return 0, err
	}

	if err := s.ledgerRepo.Commit(ctx, tx); err != nil {
		return 0, err
	}

	logger.Info("Penalty and discount rows removed",
		slog.String("taxpayer_id", taxpayerID),
		slog.Int64("deleted", deleted),
	)
	return deleted, nil
}
