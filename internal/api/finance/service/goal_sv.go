package financeService

import (
	"FinTrackGolang/internal/api/finance"
	"FinTrackGolang/internal/entity"
	contextPkg "FinTrackGolang/pkg/context"
	"FinTrackGolang/pkg/nlp"
	"encoding/json"
	"time"

	"github.com/jmoiron/sqlx/types"
	"github.com/sirupsen/logrus"
	"golang.org/x/net/context"
)

func (s *financeService) CreateGoal(ctx context.Context, userID string, req finance.CreateGoalRequest) (entity.Goal, error) {
	requestID := contextPkg.GetRequestID(ctx)

	repo, err := s.financeRepository.NewClient(false)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to create new client")
		return entity.Goal{}, err
	}

	record := s.parser.ParseGoal(ctx, req.RawText)

	metadata, err := json.Marshal(record)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to marshal parsed record")
		return entity.Goal{}, err
	}

	ULID, err := s.utils.NewULIDFromTimestamp(time.Now())
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to generate ULID")
		return entity.Goal{}, err
	}

	goal := entity.Goal{
		ID:           ULID,
		UserID:       userID,
		Name:         resolveGoalName(record, req),
		TargetAmount: resolveGoalTarget(record, req),
		StartDate:    resolveGoalDate(record.StartDate, req.StartDate),
		EndDate:      resolveGoalDate(record.EndDate, req.EndDate),
		Frequency:    resolveGoalFrequency(record, req),
		Metadata:     types.JSONText(metadata),
		CreatedAt:    time.Now(),
		UpdatedAt:    time.Now(),
	}

	if err := goal.Validate(); err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Warn("Goal incomplete after parsing and fallbacks")
		return entity.Goal{}, err
	}

	if err := repo.Goals.CreateGoal(ctx, goal); err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to create goal")
		return entity.Goal{}, err
	}

	return goal, nil
}

// Each goal field resolves independently: the parsed value wins, the
// caller-supplied value fills the gap.

func resolveGoalName(record nlp.GoalRecord, req finance.CreateGoalRequest) string {
	if record.Name != nil && *record.Name != "" {
		return *record.Name
	}
	return req.Name
}

func resolveGoalTarget(record nlp.GoalRecord, req finance.CreateGoalRequest) float64 {
	if record.TargetAmount != nil && *record.TargetAmount > 0 {
		return *record.TargetAmount
	}
	return req.TargetAmount
}

func resolveGoalDate(parsed *string, fallback string) time.Time {
	if parsed != nil {
		if date, err := time.Parse("2006-01-02", *parsed); err == nil {
			return date
		}
	}
	if fallback != "" {
		if date, err := time.Parse("2006-01-02", fallback); err == nil {
			return date
		}
	}
	return time.Time{}
}

func resolveGoalFrequency(record nlp.GoalRecord, req finance.CreateGoalRequest) string {
	if record.Frequency != nil && entity.IsValidGoalFrequency(*record.Frequency) {
		return *record.Frequency
	}
	return req.Frequency
}

func (s *financeService) GetGoalByID(ctx context.Context, userID string, id string) (entity.Goal, error) {
	requestID := contextPkg.GetRequestID(ctx)

	repo, err := s.financeRepository.NewClient(false)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to create new client")
		return entity.Goal{}, err
	}

	return repo.Goals.GetGoalByID(ctx, userID, id)
}

func (s *financeService) GetGoalsByUserID(ctx context.Context, userID string) ([]entity.Goal, error) {
	requestID := contextPkg.GetRequestID(ctx)

	repo, err := s.financeRepository.NewClient(false)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to create new client")
		return nil, err
	}

	return repo.Goals.GetGoalsByUserID(ctx, userID)
}

func (s *financeService) UpdateGoal(ctx context.Context, userID string, id string, req finance.UpdateGoalRequest) error {
	requestID := contextPkg.GetRequestID(ctx)

	repo, err := s.financeRepository.NewClient(false)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to create new client")
		return err
	}

	goal, err := repo.Goals.GetGoalByID(ctx, userID, id)
	if err != nil {
		return err
	}

	startDate, err := time.Parse("2006-01-02", req.StartDate)
	if err != nil {
		return finance.ErrGoalStartDateRequired
	}
	endDate, err := time.Parse("2006-01-02", req.EndDate)
	if err != nil {
		return finance.ErrGoalEndDateRequired
	}

	goal.Name = req.Name
	goal.TargetAmount = req.TargetAmount
	goal.StartDate = startDate
	goal.EndDate = endDate
	goal.Frequency = req.Frequency
	goal.UpdatedAt = time.Now()

	if err := goal.Validate(); err != nil {
		return err
	}

	if err := repo.Goals.UpdateGoal(ctx, goal); err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to update goal")
		return err
	}

	return nil
}

func (s *financeService) DeleteGoal(ctx context.Context, userID string, id string) error {
	requestID := contextPkg.GetRequestID(ctx)

	repo, err := s.financeRepository.NewClient(false)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to create new client")
		return err
	}

	return repo.Goals.DeleteGoal(ctx, userID, id)
}
