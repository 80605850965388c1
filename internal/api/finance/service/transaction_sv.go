package financeService

import (
	"FinTrackGolang/internal/api/finance"
	financeRepository "FinTrackGolang/internal/api/finance/repository"
	"FinTrackGolang/internal/entity"
	contextPkg "FinTrackGolang/pkg/context"
	"FinTrackGolang/pkg/nlp"
	"encoding/json"
	"time"

	"github.com/jmoiron/sqlx/types"
	"github.com/sirupsen/logrus"
	"golang.org/x/net/context"
)

func (s *financeService) CreateTransaction(ctx context.Context, userID string, req finance.CreateTransactionRequest) (entity.Transaction, error) {
	requestID := contextPkg.GetRequestID(ctx)

	repo, err := s.financeRepository.NewClient(false)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to create new client")
		return entity.Transaction{}, err
	}

	record := s.parser.ParseTransaction(ctx, req.RawText)

	amount, err := resolveAmount(record, req)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"raw_text":   req.RawText,
		}).Warn("No amount parsed and no fallback provided")
		return entity.Transaction{}, err
	}

	categoryID, err := s.resolveCategory(ctx, repo, userID, record, req)
	if err != nil {
		return entity.Transaction{}, err
	}

	metadata, err := json.Marshal(record)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to marshal parsed record")
		return entity.Transaction{}, err
	}

	ULID, err := s.utils.NewULIDFromTimestamp(time.Now())
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to generate ULID")
		return entity.Transaction{}, err
	}

	transaction := entity.Transaction{
		ID:         ULID,
		UserID:     userID,
		CategoryID: categoryID,
		Amount:     amount,
		RawText:    req.RawText,
		Metadata:   types.JSONText(metadata),
		Timestamp:  resolveTimestamp(record),
	}

	if err := transaction.Validate(); err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Warn("Invalid transaction data")
		return entity.Transaction{}, err
	}

	if err := repo.Transactions.CreateTransaction(ctx, transaction); err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to create transaction")
		return entity.Transaction{}, err
	}

	return transaction, nil
}

// resolveAmount prefers the parsed amount over the caller-supplied fallback.
// When neither is usable the transaction is rejected.
func resolveAmount(record nlp.TransactionRecord, req finance.CreateTransactionRequest) (float64, error) {
	if record.Amount != nil && *record.Amount > 0 {
		return *record.Amount, nil
	}
	if req.Amount > 0 {
		return req.Amount, nil
	}
	return 0, finance.ErrAmountRequired
}

// resolveCategory picks, in order: the parsed category name (get-or-create),
// the caller-supplied category id, and finally the "Outros" default.
func (s *financeService) resolveCategory(ctx context.Context, repo financeRepository.Client, userID string, record nlp.TransactionRecord, req finance.CreateTransactionRequest) (*string, error) {
	requestID := contextPkg.GetRequestID(ctx)

	categoryType := string(entity.CategoryTypeExpense)
	if record.Type != nil && entity.IsValidCategoryType(*record.Type) {
		categoryType = *record.Type
	}

	if record.Category != nil && *record.Category != "" {
		category, err := s.getOrCreateCategory(ctx, repo, userID, *record.Category, categoryType)
		if err != nil {
			return nil, err
		}
		return &category.ID, nil
	}

	if req.CategoryID != "" {
		category, err := repo.Categories.GetCategoryByID(ctx, userID, req.CategoryID)
		if err != nil {
			s.log.WithFields(logrus.Fields{
				"request_id":  requestID,
				"category_id": req.CategoryID,
			}).Warn("Fallback category not found")
			return nil, err
		}
		return &category.ID, nil
	}

	category, err := s.getOrCreateCategory(ctx, repo, userID, entity.DefaultCategoryName, categoryType)
	if err != nil {
		return nil, err
	}
	return &category.ID, nil
}

// resolveTimestamp uses the parsed date at midnight UTC when present and
// well formed, otherwise the current time.
func resolveTimestamp(record nlp.TransactionRecord) time.Time {
	if record.Date != nil {
		if parsed, err := time.Parse("2006-01-02", *record.Date); err == nil {
			return parsed
		}
	}
	return time.Now()
}

func (s *financeService) GetTransactionByID(ctx context.Context, userID string, id string) (entity.Transaction, error) {
	requestID := contextPkg.GetRequestID(ctx)

	repo, err := s.financeRepository.NewClient(false)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to create new client")
		return entity.Transaction{}, err
	}

	return repo.Transactions.GetTransactionByID(ctx, userID, id)
}

func (s *financeService) GetTransactionsByUserID(ctx context.Context, userID string) ([]entity.Transaction, error) {
	requestID := contextPkg.GetRequestID(ctx)

	repo, err := s.financeRepository.NewClient(false)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to create new client")
		return nil, err
	}

	return repo.Transactions.GetTransactionsByUserID(ctx, userID)
}

func (s *financeService) DeleteTransaction(ctx context.Context, userID string, id string) error {
	requestID := contextPkg.GetRequestID(ctx)

	repo, err := s.financeRepository.NewClient(false)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to create new client")
		return err
	}

	return repo.Transactions.DeleteTransaction(ctx, userID, id)
}
