package analysisService

import (
	"FinTrackGolang/internal/api/analysis"
	"FinTrackGolang/internal/entity"
	contextPkg "FinTrackGolang/pkg/context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/jmoiron/sqlx/types"
	"github.com/sirupsen/logrus"
	"golang.org/x/net/context"
)

const snapshotPeriodDays = 30

func (s *analysisService) GenerateInsight(ctx context.Context, userID string, req analysis.GenerateInsightRequest) (entity.Insight, error) {
	requestID := contextPkg.GetRequestID(ctx)

	if !entity.IsValidInsightType(req.Type) {
		return entity.Insight{}, analysis.ErrInvalidInsightType
	}

	repo, err := s.analysisRepository.NewClient(false)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to create new client")
		return entity.Insight{}, err
	}

	snapshot, err := s.buildFinancialSnapshot(ctx, userID)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to build financial snapshot")
		return entity.Insight{}, err
	}

	// The record always carries usable content: valid JSON when the model
	// cooperated, the raw reply otherwise. Both get persisted.
	record := s.parser.GenerateInsight(ctx, req.Type, snapshot)

	data, err := json.Marshal(record.Data)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to marshal insight data")
		return entity.Insight{}, err
	}

	ULID, err := s.utils.NewULIDFromTimestamp(time.Now())
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to generate ULID")
		return entity.Insight{}, err
	}

	insight := entity.Insight{
		ID:        ULID,
		UserID:    userID,
		Type:      req.Type,
		Content:   record.Content,
		Data:      types.JSONText(data),
		CreatedAt: time.Now(),
	}

	if err := repo.Insights.CreateInsight(ctx, insight); err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to create insight")
		return entity.Insight{}, err
	}

	return insight, nil
}

// buildFinancialSnapshot renders the last 30 days of activity and all active
// goals as plain text for the model prompt.
func (s *analysisService) buildFinancialSnapshot(ctx context.Context, userID string) (string, error) {
	repo, err := s.financeRepository.NewClient(false)
	if err != nil {
		return "", err
	}

	since := time.Now().AddDate(0, 0, -snapshotPeriodDays)

	totals, err := repo.Transactions.GetCategoryTotalsSince(ctx, userID, since)
	if err != nil {
		return "", err
	}

	goals, err := repo.Goals.GetGoalsByUserID(ctx, userID)
	if err != nil {
		return "", err
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Resumo dos ultimos %d dias:\n", snapshotPeriodDays))

	if len(totals) == 0 {
		sb.WriteString("Nenhuma transacao registrada no periodo.\n")
	}
	for _, total := range totals {
		sb.WriteString(fmt.Sprintf("- %s (%s): R$ %.2f em %d transacoes\n",
			total.Name, total.Type, total.Total, total.Count))
	}

	if len(goals) > 0 {
		sb.WriteString("\nMetas ativas:\n")
		for _, goal := range goals {
			sb.WriteString(fmt.Sprintf("- %s: R$ %.2f ate %s (%s)\n",
				goal.Name, goal.TargetAmount, goal.EndDate.Format("2006-01-02"), goal.Frequency))
		}
	}

	return sb.String(), nil
}

func (s *analysisService) GetInsightByID(ctx context.Context, userID string, id string) (entity.Insight, error) {
	requestID := contextPkg.GetRequestID(ctx)

	repo, err := s.analysisRepository.NewClient(false)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to create new client")
		return entity.Insight{}, err
	}

	return repo.Insights.GetInsightByID(ctx, userID, id)
}

func (s *analysisService) GetInsightsByUserID(ctx context.Context, userID string) ([]entity.Insight, error) {
	requestID := contextPkg.GetRequestID(ctx)

	repo, err := s.analysisRepository.NewClient(false)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to create new client")
		return nil, err
	}

	return repo.Insights.GetInsightsByUserID(ctx, userID)
}

func (s *analysisService) DeleteInsight(ctx context.Context, userID string, id string) error {
	requestID := contextPkg.GetRequestID(ctx)

	repo, err := s.analysisRepository.NewClient(false)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to create new client")
		return err
	}

	return repo.Insights.DeleteInsight(ctx, userID, id)
}
