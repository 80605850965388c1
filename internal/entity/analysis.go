package entity

import (
	"time"

	"github.com/jmoiron/sqlx/types"
)

type InsightType string

const (
	InsightTypeSummary  InsightType = "summary"
	InsightTypeForecast InsightType = "forecast"
	InsightTypeAnomaly  InsightType = "anomaly"
)

func IsValidInsightType(insightType string) bool {
	switch InsightType(insightType) {
	case InsightTypeSummary, InsightTypeForecast, InsightTypeAnomaly:
		return true
	default:
		return false
	}
}

// Insight is always persisted, even degraded to raw model prose. Insights
// are never silently dropped.
type Insight struct {
	ID        string         `json:"id"`
	UserID    string         `json:"user_id"`
	Type      string         `json:"type"`
	Content   string         `json:"content"`
	Data      types.JSONText `json:"data"`
	CreatedAt time.Time      `json:"created_at"`
}

type ChatRole string

const (
	ChatRoleUser  ChatRole = "user"
	ChatRoleAgent ChatRole = "agent"
)

type ChatMessage struct {
	ID        string         `json:"id"`
	UserID    string         `json:"user_id"`
	Role      string         `json:"role"`
	Content   string         `json:"content"`
	Metadata  types.JSONText `json:"metadata"`
	Timestamp time.Time      `json:"timestamp"`
}
