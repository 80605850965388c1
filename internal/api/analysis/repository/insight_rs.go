package analysisRepository

import (
	"FinTrackGolang/internal/api/analysis"
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

type InsightDB struct {
	ID        sql.NullString `db:"id"`
	UserID    sql.NullString `db:"user_id"`
	Type      sql.NullString `db:"type"`
	Content   sql.NullString `db:"content"`
	Data      types.JSONText `db:"data"`
	CreatedAt time.Time      `db:"created_at"`
}

func (r *insightRepository) CreateInsight(c context.Context, insight entity.Insight) error {
	requestID := contextPkg.GetRequestID(c)
	argsKV := map[string]interface{}{
		"id":         insight.ID,
		"user_id":    insight.UserID,
		"type":       insight.Type,
		"content":    insight.Content,
		"data":       insight.Data,
		"created_at": insight.CreatedAt,
	}

	query, args, err := sqlx.Named(queryCreateInsight, argsKV)
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("CreateInsight named query preparation err")
		return err
	}
	query = r.q.Rebind(query)

	_, err = r.q.ExecContext(c, query, args...)
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Database error when creating insight")
		return err
	}

	return nil
}

func (r *insightRepository) GetInsightByID(c context.Context, userID string, id string) (entity.Insight, error) {
	requestID := contextPkg.GetRequestID(c)
	var insight InsightDB

	argsKV := map[string]interface{}{
		"id":      id,
		"user_id": userID,
	}

	query, args, err := sqlx.Named(queryGetInsightByID, argsKV)
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("GetInsightByID named query preparation err")
		return entity.Insight{}, err
	}
	query = r.q.Rebind(query)

	if err := r.q.QueryRowxContext(c, query, args...).StructScan(&insight); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return entity.Insight{}, analysis.ErrInsightNotFound
		}
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("GetInsightByID execution err")
		return entity.Insight{}, err
	}

	return r.makeInsight(insight), nil
}

func (r *insightRepository) GetInsightsByUserID(c context.Context, userID string) ([]entity.Insight, error) {
	requestID := contextPkg.GetRequestID(c)
	var insights []InsightDB

	argsKV := map[string]interface{}{
		"user_id": userID,
	}

	query, args, err := sqlx.Named(queryGetInsightsByUserID, argsKV)
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("GetInsightsByUserID named query preparation err")
		return nil, err
	}
	query = r.q.Rebind(query)

	if err := r.q.SelectContext(c, &insights, query, args...); err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("GetInsightsByUserID execution err")
		return nil, err
	}

	result := make([]entity.Insight, 0, len(insights))
	for _, insight := range insights {
		result = append(result, r.makeInsight(insight))
	}

	return result, nil
}

func (r *insightRepository) DeleteInsight(c context.Context, userID string, id string) error {
	requestID := contextPkg.GetRequestID(c)
	argsKV := map[string]interface{}{
		"id":      id,
		"user_id": userID,
	}

	query, args, err := sqlx.Named(queryDeleteInsight, argsKV)
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("DeleteInsight named query preparation err")
		return err
	}
	query = r.q.Rebind(query)

	result, err := r.q.ExecContext(c, query, args...)
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("DeleteInsight execution err")
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return analysis.ErrInsightNotFound
	}

	return nil
}

func (r *insightRepository) makeInsight(insight InsightDB) entity.Insight {
	data := insight.Data
	if data == nil {
		data = types.JSONText("{}")
	}

	return entity.Insight{
		ID:        insight.ID.String,
		UserID:    insight.UserID.String,
		Type:      insight.Type.String,
		Content:   insight.Content.String,
		Data:      data,
		CreatedAt: insight.CreatedAt,
	}
}
