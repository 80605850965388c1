package analysis

import "github.com/jmoiron/sqlx/types"

type GenerateInsightRequest struct {
	Type string `json:"type" validate:"required,oneof=summary forecast anomaly"`
}

type InsightResponse struct {
	ID        string         `json:"id"`
	Type      string         `json:"type"`
	Content   string         `json:"content"`
	Data      types.JSONText `json:"data"`
	CreatedAt string         `json:"created_at"`
}

type ChatRequest struct {
	Message string `json:"message" validate:"required,min=1,max=2000"`
}

type ChatMessageResponse struct {
	ID        string `json:"id"`
	Role      string `json:"role"`
	Content   string `json:"content"`
	Timestamp string `json:"timestamp"`
}

type ChatExchangeResponse struct {
	UserMessage  ChatMessageResponse `json:"user_message"`
	AgentMessage ChatMessageResponse `json:"agent_message"`
}

type ChatHistoryResponse struct {
	Messages []ChatMessageResponse `json:"messages"`
	Total    int                   `json:"total"`
}
