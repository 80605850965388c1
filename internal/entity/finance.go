package entity

import (
	"FinTrackGolang/internal/api/finance"
	"time"

	"github.com/jmoiron/sqlx/types"
)

type CategoryType string

const (
	CategoryTypeExpense CategoryType = "expense"
	CategoryTypeIncome  CategoryType = "income"
)

// DefaultCategoryName is assigned when the parser could not infer a
// category from the raw text.
const DefaultCategoryName = "Outros"

func IsValidCategoryType(categoryType string) bool {
	switch CategoryType(categoryType) {
	case CategoryTypeExpense, CategoryTypeIncome:
		return true
	default:
		return false
	}
}

// Category is unique per (user, name, type) and created lazily by
// transaction ingestion when the parser names a category that does not
// exist yet.
type Category struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	Name      string    `json:"name"`
	Type      string    `json:"type"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (c *Category) Validate() error {
	if c.Name == "" {
		return finance.ErrInvalidCategoryName
	}
	if !IsValidCategoryType(c.Type) {
		return finance.ErrInvalidCategoryType
	}
	return nil
}

// Transaction keeps the full parsed record in Metadata verbatim, even for
// fields that lost to caller-supplied values. Metadata reflects what the
// model said, not what was persisted.
type Transaction struct {
	ID         string         `json:"id"`
	UserID     string         `json:"user_id"`
	CategoryID *string        `json:"category_id"`
	Amount     float64        `json:"amount"`
	RawText    string         `json:"raw_text"`
	Metadata   types.JSONText `json:"metadata"`
	Timestamp  time.Time      `json:"timestamp"`
}

func (t *Transaction) Validate() error {
	if t.Amount <= 0 {
		return finance.ErrInvalidAmount
	}
	return nil
}

type GoalFrequency string

const (
	GoalFrequencyOneTime GoalFrequency = "one-time"
	GoalFrequencyMonthly GoalFrequency = "monthly"
	GoalFrequencyYearly  GoalFrequency = "yearly"
)

func IsValidGoalFrequency(frequency string) bool {
	switch GoalFrequency(frequency) {
	case GoalFrequencyOneTime, GoalFrequencyMonthly, GoalFrequencyYearly:
		return true
	default:
		return false
	}
}

type Goal struct {
	ID           string         `json:"id"`
	UserID       string         `json:"user_id"`
	Name         string         `json:"name"`
	TargetAmount float64        `json:"target_amount"`
	StartDate    time.Time      `json:"start_date"`
	EndDate      time.Time      `json:"end_date"`
	Frequency    string         `json:"frequency"`
	Metadata     types.JSONText `json:"metadata"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
}

func (g *Goal) Validate() error {
	if g.Name == "" {
		return finance.ErrGoalNameRequired
	}
	if g.TargetAmount <= 0 {
		return finance.ErrGoalTargetRequired
	}
	if g.StartDate.IsZero() {
		return finance.ErrGoalStartDateRequired
	}
	if g.EndDate.IsZero() {
		return finance.ErrGoalEndDateRequired
	}
	if !IsValidGoalFrequency(g.Frequency) {
		return finance.ErrGoalFrequencyRequired
	}
	return nil
}
