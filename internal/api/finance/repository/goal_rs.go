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

type GoalDB struct {
	ID           sql.NullString  `db:"id"`
	UserID       sql.NullString  `db:"user_id"`
	Name         sql.NullString  `db:"name"`
	TargetAmount sql.NullFloat64 `db:"target_amount"`
	StartDate    time.Time       `db:"start_date"`
	EndDate      time.Time       `db:"end_date"`
	Frequency    sql.NullString  `db:"frequency"`
	Metadata     types.JSONText  `db:"metadata"`
	CreatedAt    time.Time       `db:"created_at"`
	UpdatedAt    time.Time       `db:"updated_at"`
}

func (r *goalRepository) CreateGoal(c context.Context, goal entity.Goal) error {
	requestID := contextPkg.GetRequestID(c)
	argsKV := map[string]interface{}{
		"id":            goal.ID,
		"user_id":       goal.UserID,
		"name":          goal.Name,
		"target_amount": goal.TargetAmount,
		"start_date":    goal.StartDate,
		"end_date":      goal.EndDate,
		"frequency":     goal.Frequency,
		"metadata":      goal.Metadata,
		"created_at":    time.Now(),
		"updated_at":    time.Now(),
	}

	query, args, err := sqlx.Named(queryCreateGoal, argsKV)
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("CreateGoal named query preparation err")
		return err
	}
	query = r.q.Rebind(query)

	_, err = r.q.ExecContext(c, query, args...)
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Database error when creating goal")
		return err
	}

	return nil
}

func (r *goalRepository) GetGoalByID(c context.Context, userID string, id string) (entity.Goal, error) {
	requestID := contextPkg.GetRequestID(c)
	var goal GoalDB

	argsKV := map[string]interface{}{
		"id":      id,
		"user_id": userID,
	}

	query, args, err := sqlx.Named(queryGetGoalByID, argsKV)
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("GetGoalByID named query preparation err")
		return entity.Goal{}, err
	}
	query = r.q.Rebind(query)

	if err := r.q.QueryRowxContext(c, query, args...).StructScan(&goal); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return entity.Goal{}, finance.ErrGoalNotFound
		}
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("GetGoalByID execution err")
		return entity.Goal{}, err
	}

	return r.makeGoal(goal), nil
}

func (r *goalRepository) GetGoalsByUserID(c context.Context, userID string) ([]entity.Goal, error) {
	requestID := contextPkg.GetRequestID(c)
	var goals []GoalDB

	argsKV := map[string]interface{}{
		"user_id": userID,
	}

	query, args, err := sqlx.Named(queryGetGoalsByUserID, argsKV)
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("GetGoalsByUserID named query preparation err")
		return nil, err
	}
	query = r.q.Rebind(query)

	if err := r.q.SelectContext(c, &goals, query, args...); err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("GetGoalsByUserID execution err")
		return nil, err
	}

	result := make([]entity.Goal, 0, len(goals))
	for _, goal := range goals {
		result = append(result, r.makeGoal(goal))
	}

	return result, nil
}

func (r *goalRepository) UpdateGoal(c context.Context, goal entity.Goal) error {
	requestID := contextPkg.GetRequestID(c)
	argsKV := map[string]interface{}{
		"id":            goal.ID,
		"user_id":       goal.UserID,
		"name":          goal.Name,
		"target_amount": goal.TargetAmount,
		"start_date":    goal.StartDate,
		"end_date":      goal.EndDate,
		"frequency":     goal.Frequency,
		"updated_at":    time.Now(),
	}

	query, args, err := sqlx.Named(queryUpdateGoal, argsKV)
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("UpdateGoal named query preparation err")
		return err
	}
	query = r.q.Rebind(query)

	result, err := r.q.ExecContext(c, query, args...)
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("UpdateGoal execution err")
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return finance.ErrGoalNotFound
	}

	return nil
}

func (r *goalRepository) DeleteGoal(c context.Context, userID string, id string) error {
	requestID := contextPkg.GetRequestID(c)
	argsKV := map[string]interface{}{
		"id":      id,
		"user_id": userID,
	}

	query, args, err := sqlx.Named(queryDeleteGoal, argsKV)
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("DeleteGoal named query preparation err")
		return err
	}
	query = r.q.Rebind(query)

	result, err := r.q.ExecContext(c, query, args...)
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("DeleteGoal execution err")
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return finance.ErrGoalNotFound
	}

	return nil
}

func (r *goalRepository) makeGoal(goal GoalDB) entity.Goal {
	metadata := goal.Metadata
	if metadata == nil {
		metadata = types.JSONText("{}")
	}

	return entity.Goal{
		ID:           goal.ID.String,
		UserID:       goal.UserID.String,
		Name:         goal.Name.String,
		TargetAmount: goal.TargetAmount.Float64,
		StartDate:    goal.StartDate,
		EndDate:      goal.EndDate,
		Frequency:    goal.Frequency.String,
		Metadata:     metadata,
		CreatedAt:    goal.CreatedAt,
		UpdatedAt:    goal.UpdatedAt,
	}
}
