package analysisRepository

import (
	"FinTrackGolang/internal/entity"

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
		Insights:     &insightRepository{q: sqlExecutor, log: r.log},
		ChatMessages: &chatRepository{q: sqlExecutor, log: r.log},
		Commit:       commitFunc,
		Rollback:     rollbackFunc,
	}, nil
}

type Client struct {
	Insights interface {
		CreateInsight(ctx context.Context, insight entity.Insight) error
		GetInsightByID(ctx context.Context, userID string, id string) (entity.Insight, error)
		GetInsightsByUserID(ctx context.Context, userID string) ([]entity.Insight, error)
		DeleteInsight(ctx context.Context, userID string, id string) error
	}

	ChatMessages interface {
		CreateChatMessage(ctx context.Context, message entity.ChatMessage) error
		GetChatMessagesByUserID(ctx context.Context, userID string) ([]entity.ChatMessage, error)
		DeleteChatMessagesByUserID(ctx context.Context, userID string) error
	}

	Commit   func() error
	Rollback func() error
}

type insightRepository struct {
	q   SQLExecutor
	log *logrus.Logger
}

type chatRepository struct {
	q   SQLExecutor
	log *logrus.Logger
}
