package analysisRepository

import (
	"FinTrackGolang/internal/entity"
	contextPkg "FinTrackGolang/pkg/context"
	"context"
	"database/sql"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/jmoiron/sqlx/types"
	"github.com/sirupsen/logrus"
)

type ChatMessageDB struct {
	ID        sql.NullString `db:"id"`
	UserID    sql.NullString `db:"user_id"`
	Role      sql.NullString `db:"role"`
	Content   sql.NullString `db:"content"`
	Metadata  types.JSONText `db:"metadata"`
	Timestamp time.Time      `db:"timestamp"`
}

func (r *chatRepository) CreateChatMessage(c context.Context, message entity.ChatMessage) error {
	requestID := contextPkg.GetRequestID(c)
	argsKV := map[string]interface{}{
		"id":        message.ID,
		"user_id":   message.UserID,
		"role":      message.Role,
		"content":   message.Content,
		"metadata":  message.Metadata,
		"timestamp": message.Timestamp,
	}

	query, args, err := sqlx.Named(queryCreateChatMessage, argsKV)
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("CreateChatMessage named query preparation err")
		return err
	}
	query = r.q.Rebind(query)

	_, err = r.q.ExecContext(c, query, args...)
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Database error when creating chat message")
		return err
	}

	return nil
}

func (r *chatRepository) GetChatMessagesByUserID(c context.Context, userID string) ([]entity.ChatMessage, error) {
	requestID := contextPkg.GetRequestID(c)
	var messages []ChatMessageDB

	argsKV := map[string]interface{}{
		"user_id": userID,
	}

	query, args, err := sqlx.Named(queryGetChatMessagesByUserID, argsKV)
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("GetChatMessagesByUserID named query preparation err")
		return nil, err
	}
	query = r.q.Rebind(query)

	if err := r.q.SelectContext(c, &messages, query, args...); err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("GetChatMessagesByUserID execution err")
		return nil, err
	}

	result := make([]entity.ChatMessage, 0, len(messages))
	for _, message := range messages {
		result = append(result, r.makeChatMessage(message))
	}

	return result, nil
}

func (r *chatRepository) DeleteChatMessagesByUserID(c context.Context, userID string) error {
	requestID := contextPkg.GetRequestID(c)
	argsKV := map[string]interface{}{
		"user_id": userID,
	}

	query, args, err := sqlx.Named(queryDeleteChatMessagesByUserID, argsKV)
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("DeleteChatMessagesByUserID named query preparation err")
		return err
	}
	query = r.q.Rebind(query)

	_, err = r.q.ExecContext(c, query, args...)
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("DeleteChatMessagesByUserID execution err")
		return err
	}

	return nil
}

func (r *chatRepository) makeChatMessage(message ChatMessageDB) entity.ChatMessage {
	metadata := message.Metadata
	if metadata == nil {
		metadata = types.JSONText("{}")
	}

	return entity.ChatMessage{
		ID:        message.ID.String,
		UserID:    message.UserID.String,
		Role:      message.Role.String,
		Content:   message.Content.String,
		Metadata:  metadata,
		Timestamp: message.Timestamp,
	}
}
