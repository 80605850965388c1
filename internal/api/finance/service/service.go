package financeService

import (
	"FinTrackGolang/internal/api/finance"
	financeRepository "FinTrackGolang/internal/api/finance/repository"
	"FinTrackGolang/internal/entity"
	"FinTrackGolang/pkg/nlp"
	"FinTrackGolang/pkg/s3"
	"FinTrackGolang/pkg/utils"

	"github.com/sirupsen/logrus"
	"golang.org/x/net/context"
)

type IFinanceService interface {
	CreateCategory(ctx context.Context, userID string, req finance.CreateCategoryRequest) (entity.Category, error)
	GetCategoryByID(ctx context.Context, userID string, id string) (entity.Category, error)
	GetCategoriesByUserID(ctx context.Context, userID string) ([]entity.Category, error)
	UpdateCategory(ctx context.Context, userID string, id string, req finance.UpdateCategoryRequest) error
	DeleteCategory(ctx context.Context, userID string, id string) error

	CreateTransaction(ctx context.Context, userID string, req finance.CreateTransactionRequest) (entity.Transaction, error)
	GetTransactionByID(ctx context.Context, userID string, id string) (entity.Transaction, error)
	GetTransactionsByUserID(ctx context.Context, userID string) ([]entity.Transaction, error)
	DeleteTransaction(ctx context.Context, userID string, id string) error

	CreateGoal(ctx context.Context, userID string, req finance.CreateGoalRequest) (entity.Goal, error)
	GetGoalByID(ctx context.Context, userID string, id string) (entity.Goal, error)
	GetGoalsByUserID(ctx context.Context, userID string) ([]entity.Goal, error)
	UpdateGoal(ctx context.Context, userID string, id string, req finance.UpdateGoalRequest) error
	DeleteGoal(ctx context.Context, userID string, id string) error

	GetMonthlyReport(ctx context.Context, userID string) (finance.ReportResponse, error)
	ExportTransactions(ctx context.Context, userID string, format string) (finance.ExportResponse, error)
}

type financeService struct {
	log               *logrus.Logger
	financeRepository financeRepository.Repository
	parser            nlp.ITextParser
	s3                s3.ItfS3
	utils             utils.IUtils
}

func NewFinanceService(log *logrus.Logger, fr financeRepository.Repository, parser nlp.ITextParser, s3 s3.ItfS3, utils utils.IUtils) IFinanceService {
	return &financeService{
		log:               log,
		financeRepository: fr,
		parser:            parser,
		s3:                s3,
		utils:             utils,
	}
}
