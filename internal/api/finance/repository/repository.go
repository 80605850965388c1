package financeRepository

import (
	"FinTrackGolang/internal/entity"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/sirupsen/logrus"
	"golang.org/x/net/context"
)

type SQLExecutor interface {
	sqlx.ExtContext
	SelectContext(ctx context.Context, dest interface{}, query string, args ...interface{}) error
	QueryRowxContext(ctx context.Context, query string, args ...interface{}) *sqlx.Row
	Rebind(query string) string
}

func New(db *sqlx.DB, log *logrus.Logger) Repository {
	return &repository{
		DB:  db,
		log: log,
	}
}

type repository struct {
	DB  *sqlx.DB
	log *logrus.Logger
}

type Repository interface {
	NewClient(tx bool) (Client, error)
}

func (r *repository) NewClient(tx bool) (Client, error) {
	var sqlExecutor SQLExecutor
	var commitFunc, rollbackFunc func() error

	sqlExecutor = r.DB

	if tx {
		txx, err := r.DB.Beginx()
		if err != nil {
			return Client{}, err
		}

		sqlExecutor = txx
		commitFunc = txx.Commit
		rollbackFunc = txx.Rollback
	} else {
		commitFunc = func() error { return nil }
		rollbackFunc = func() error { return nil }
	}

	return Client{
		Categories:   &categoryRepository{q: sqlExecutor, log: r.log},
		Transactions: &transactionRepository{q: sqlExecutor, log: r.log},
		Goals:        &goalRepository{q: sqlExecutor, log: r.log},
		Commit:       commitFunc,
		Rollback:     rollbackFunc,
	}, nil
}

type Client struct {
	Categories interface {
		CreateCategory(ctx context.Context, category entity.Category) error
		GetCategoryByID(ctx context.Context, userID string, id string) (entity.Category, error)
		GetCategoryByNameAndType(ctx context.Context, userID string, name string, categoryType string) (entity.Category, error)
		GetCategoriesByUserID(ctx context.Context, userID string) ([]entity.Category, error)
		UpdateCategory(ctx context.Context, category entity.Category) error
		DeleteCategory(ctx context.Context, userID string, id string) error
	}

	Transactions interface {
		CreateTransaction(ctx context.Context, transaction entity.Transaction) error
		GetTransactionByID(ctx context.Context, userID string, id string) (entity.Transaction, error)
		GetTransactionsByUserID(ctx context.Context, userID string) ([]entity.Transaction, error)
		DeleteTransaction(ctx context.Context, userID string, id string) error
		GetCategoryTotalsSince(ctx context.Context, userID string, since time.Time) ([]CategoryTotal, error)
	}

	Goals interface {
		CreateGoal(ctx context.Context, goal entity.Goal) error
		GetGoalByID(ctx context.Context, userID string, id string) (entity.Goal, error)
		GetGoalsByUserID(ctx context.Context, userID string) ([]entity.Goal, error)
		UpdateGoal(ctx context.Context, goal entity.Goal) error
		DeleteGoal(ctx context.Context, userID string, id string) error
	}

	Commit   func() error
	Rollback func() error
}

type categoryRepository struct {
	q   SQLExecutor
	log *logrus.Logger
}

type transactionRepository struct {
	q   SQLExecutor
	log *logrus.Logger
}

type goalRepository struct {
	q   SQLExecutor
	log *logrus.Logger
}

// CategoryTotal is one row of the 30-day aggregate report. Transactions
// whose category was deleted fall into "Sem categoria".
type CategoryTotal struct {
	Name  string  `db:"name"`
	Type  string  `db:"type"`
	Total float64 `db:"total"`
	Count int     `db:"count"`
}
