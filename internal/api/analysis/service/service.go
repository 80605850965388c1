package analysisService

import (
	"FinTrackGolang/internal/api/analysis"
	analysisRepository "FinTrackGolang/internal/api/analysis/repository"
	financeRepository "FinTrackGolang/internal/api/finance/repository"
	"FinTrackGolang/internal/entity"
	"FinTrackGolang/pkg/nlp"
	"FinTrackGolang/pkg/utils"

	"github.com/sirupsen/logrus"
	"golang.org/x/net/context"
)

type IAnalysisService interface {
	GenerateInsight(ctx context.Context, userID string, req analysis.GenerateInsightRequest) (entity.Insight, error)
	GetInsightByID(ctx context.Context, userID string, id string) (entity.Insight, error)
	GetInsightsByUserID(ctx context.Context, userID string) ([]entity.Insight, error)
	DeleteInsight(ctx context.Context, userID string, id string) error

	Chat(ctx context.Context, userID string, req analysis.ChatRequest) (entity.ChatMessage, entity.ChatMessage, error)
	GetChatHistory(ctx context.Context, userID string) ([]entity.ChatMessage, error)
	ClearChatHistory(ctx context.Context, userID string) error
}

type analysisService struct {
	log                *logrus.Logger
	analysisRepository analysisRepository.Repository
	financeRepository  financeRepository.Repository
	parser             nlp.ITextParser
	utils              utils.IUtils
}

func NewAnalysisService(
	log *logrus.Logger,
	ar analysisRepository.Repository,
	fr financeRepository.Repository,
	parser nlp.ITextParser,
	utils utils.IUtils,
) IAnalysisService {
	return &analysisService{
		log:                log,
		analysisRepository: ar,
		financeRepository:  fr,
		parser:             parser,
		utils:              utils,
	}
}
