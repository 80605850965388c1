package financeRepository

import (
	"FinTrackGolang/internal/api/finance"
	"FinTrackGolang/internal/entity"
	contextPkg "FinTrackGolang/pkg/context"
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/jmoiron/sqlx/types"
	"github.com/sirupsen/logrus"
)

type TransactionDB struct {
	ID         sql.NullString  `db:"id"`
	UserID     sql.NullString  `db:"user_id"`
	CategoryID sql.NullString  `db:"category_id"`
	Amount     sql.NullFloat64 `db:"amount"`
	RawText    sql.NullString  `db:"raw_text"`
	Metadata   types.JSONText  `db:"metadata"`
	Timestamp  time.Time       `db:"timestamp"`
}

func (r *transactionRepository) CreateTransaction(c context.Context, transaction entity.Transaction) error {
	requestID := contextPkg.GetRequestID(c)
	argsKV := map[string]interface{}{
		"id":          transaction.ID,
		"user_id":     transaction.UserID,
		"category_id": transaction.CategoryID,
		"amount":      transaction.Amount,
		"raw_text":    transaction.RawText,
		"metadata":    transaction.Metadata,
		"timestamp":   transaction.Timestamp,
	}

	query, args, err := sqlx.Named(queryCreateTransaction, argsKV)
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("CreateTransaction named query preparation err")
		return err
	}
	query = r.q.Rebind(query)

	_, err = r.q.ExecContext(c, query, args...)
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Database error when creating transaction")
		return err
	}

	return nil
}

func (r *transactionRepository) GetTransactionByID(c context.Context, userID string, id string) (entity.Transaction, error) {
	requestID := contextPkg.GetRequestID(c)
	var transaction TransactionDB

	argsKV := map[string]interface{}{
		"id":      id,
		"user_id": userID,
	}

	query, args, err := sqlx.Named(queryGetTransactionByID, argsKV)
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("GetTransactionByID named query preparation err")
		return entity.Transaction{}, err
	}
	query = r.q.Rebind(query)

	if err := r.q.QueryRowxContext(c, query, args...).StructScan(&transaction); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return entity.Transaction{}, finance.ErrTransactionNotFound
		}
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("GetTransactionByID execution err")
		return entity.Transaction{}, err
	}

	return r.makeTransaction(transaction), nil
}

func (r *transactionRepository) GetTransactionsByUserID(c context.Context, userID string) ([]entity.Transaction, error) {
	requestID := contextPkg.GetRequestID(c)
	var transactions []TransactionDB

	argsKV := map[string]interface{}{
		"user_id": userID,
	}

	query, args, err := sqlx.Named(queryGetTransactionsByUserID, argsKV)
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("GetTransactionsByUserID named query preparation err")
		return nil, err
	}
	query = r.q.Rebind(query)

	if err := r.q.SelectContext(c, &transactions, query, args...); err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("GetTransactionsByUserID execution err")
		return nil, err
	}

	result := make([]entity.Transaction, 0, len(transactions))
	for _, transaction := range transactions {
		result = append(result, r.makeTransaction(transaction))
	}

	return result, nil
}

func (r *transactionRepository) DeleteTransaction(c context.Context, userID string, id string) error {
	requestID := contextPkg.GetRequestID(c)
	argsKV := map[string]interface{}{
		"id":      id,
		"user_id": userID,
	}

	query, args, err := sqlx.Named(queryDeleteTransaction, argsKV)
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("DeleteTransaction named query preparation err")
		return err
	}
	query = r.q.Rebind(query)

	result, err := r.q.ExecContext(c, query, args...)
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("DeleteTransaction execution err")
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return finance.ErrTransactionNotFound
	}

	return nil
}

func (r *transactionRepository) GetCategoryTotalsSince(c context.Context, userID string, since time.Time) ([]CategoryTotal, error) {
	requestID := contextPkg.GetRequestID(c)
	var totals []CategoryTotal

	argsKV := map[string]interface{}{
		"user_id": userID,
		"since":   since,
	}

	query, args, err := sqlx.Named(queryGetCategoryTotalsSince, argsKV)
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("GetCategoryTotalsSince named query preparation err")
		return nil, err
	}
	query = r.q.Rebind(query)

	if err := r.q.SelectContext(c, &totals, query, args...); err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("GetCategoryTotalsSince execution err")
		return nil, err
	}

	return totals, nil
}

func (r *transactionRepository) makeTransaction(transaction TransactionDB) entity.Transaction {
	var categoryID *string
	if transaction.CategoryID.Valid {
		id := transaction.CategoryID.String
		categoryID = &id
	}

	metadata := transaction.Metadata
	if metadata == nil {
		metadata = types.JSONText("{}")
	}

	return entity.Transaction{
		ID:         transaction.ID.String,
		UserID:     transaction.UserID.String,
		CategoryID: categoryID,
		Amount:     transaction.Amount.Float64,
		RawText:    transaction.RawText.String,
		Metadata:   metadata,
		Timestamp:  transaction.Timestamp,
	}
}
