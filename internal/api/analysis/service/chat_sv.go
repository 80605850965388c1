package analysisService

import (
	"FinTrackGolang/internal/api/analysis"
	"FinTrackGolang/internal/entity"
	contextPkg "FinTrackGolang/pkg/context"
	"FinTrackGolang/pkg/gemini"
	"errors"
	"time"

	"github.com/jmoiron/sqlx/types"
	"github.com/sirupsen/logrus"
	"golang.org/x/net/context"
)

// Chat persists the user message before calling the agent, so a gateway
// failure never loses what the user typed.
func (s *analysisService) Chat(ctx context.Context, userID string, req analysis.ChatRequest) (entity.ChatMessage, entity.ChatMessage, error) {
	requestID := contextPkg.GetRequestID(ctx)

	repo, err := s.analysisRepository.NewClient(false)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to create new client")
		return entity.ChatMessage{}, entity.ChatMessage{}, err
	}

	userULID, err := s.utils.NewULIDFromTimestamp(time.Now())
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to generate ULID")
		return entity.ChatMessage{}, entity.ChatMessage{}, err
	}

	userMessage := entity.ChatMessage{
		ID:        userULID,
		UserID:    userID,
		Role:      string(entity.ChatRoleUser),
		Content:   req.Message,
		Metadata:  types.JSONText("{}"),
		Timestamp: time.Now(),
	}

	if err := repo.ChatMessages.CreateChatMessage(ctx, userMessage); err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to persist user message")
		return entity.ChatMessage{}, entity.ChatMessage{}, err
	}

	reply, err := s.parser.Chat(ctx, req.Message)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Chat agent call failed")

		if errors.Is(err, gemini.ErrNotConfigured) {
			return userMessage, entity.ChatMessage{}, analysis.ErrChatNotConfigured
		}
		return userMessage, entity.ChatMessage{}, analysis.ErrChatUnavailable
	}

	agentULID, err := s.utils.NewULIDFromTimestamp(time.Now())
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to generate ULID")
		return userMessage, entity.ChatMessage{}, err
	}

	agentMessage := entity.ChatMessage{
		ID:        agentULID,
		UserID:    userID,
		Role:      string(entity.ChatRoleAgent),
		Content:   reply,
		Metadata:  types.JSONText("{}"),
		Timestamp: time.Now(),
	}

	if err := repo.ChatMessages.CreateChatMessage(ctx, agentMessage); err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to persist agent message")
		return userMessage, entity.ChatMessage{}, err
	}

	return userMessage, agentMessage, nil
}

func (s *analysisService) GetChatHistory(ctx context.Context, userID string) ([]entity.ChatMessage, error) {
	requestID := contextPkg.GetRequestID(ctx)

	repo, err := s.analysisRepository.NewClient(false)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to create new client")
		return nil, err
	}

	return repo.ChatMessages.GetChatMessagesByUserID(ctx, userID)
}

func (s *analysisService) ClearChatHistory(ctx context.Context, userID string) error {
	requestID := contextPkg.GetRequestID(ctx)

	repo, err := s.analysisRepository.NewClient(false)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to create new client")
		return err
	}

	return repo.ChatMessages.DeleteChatMessagesByUserID(ctx, userID)
}
