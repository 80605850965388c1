package finance

import "github.com/jmoiron/sqlx/types"

type CreateCategoryRequest struct {
	Name string `json:"name" validate:"required,min=1,max=50"`
	Type string `json:"type" validate:"required,oneof=expense income"`
}

type UpdateCategoryRequest struct {
	Name string `json:"name" validate:"required,min=1,max=50"`
	Type string `json:"type" validate:"required,oneof=expense income"`
}

type CategoryResponse struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Type string `json:"type"`
}

// CreateTransactionRequest: RawText is the primary signal; Amount and
// CategoryID are fallbacks used only when the parser leaves the matching
// field unset.
type CreateTransactionRequest struct {
	RawText    string  `json:"raw_text" validate:"required"`
	Amount     float64 `json:"amount" validate:"omitempty,gt=0"`
	CategoryID string  `json:"category_id"`
}

type TransactionResponse struct {
	ID         string         `json:"id"`
	CategoryID *string        `json:"category_id"`
	Amount     float64        `json:"amount"`
	RawText    string         `json:"raw_text"`
	Metadata   types.JSONText `json:"metadata"`
	Timestamp  string         `json:"timestamp"`
}

type TransactionListResponse struct {
	Transactions []TransactionResponse `json:"transactions"`
	Total        int                   `json:"total"`
}

type CreateGoalRequest struct {
	RawText      string  `json:"raw_text" validate:"required"`
	Name         string  `json:"name"`
	TargetAmount float64 `json:"target_amount" validate:"omitempty,gt=0"`
	StartDate    string  `json:"start_date" validate:"omitempty,datetime=2006-01-02"`
	EndDate      string  `json:"end_date" validate:"omitempty,datetime=2006-01-02"`
	Frequency    string  `json:"frequency" validate:"omitempty,oneof=one-time monthly yearly"`
}

type UpdateGoalRequest struct {
	Name         string  `json:"name" validate:"required,min=1,max=100"`
	TargetAmount float64 `json:"target_amount" validate:"required,gt=0"`
	StartDate    string  `json:"start_date" validate:"required,datetime=2006-01-02"`
	EndDate      string  `json:"end_date" validate:"required,datetime=2006-01-02"`
	Frequency    string  `json:"frequency" validate:"required,oneof=one-time monthly yearly"`
}

type GoalResponse struct {
	ID           string         `json:"id"`
	Name         string         `json:"name"`
	TargetAmount float64        `json:"target_amount"`
	StartDate    string         `json:"start_date"`
	EndDate      string         `json:"end_date"`
	Frequency    string         `json:"frequency"`
	Metadata     types.JSONText `json:"metadata"`
	CreatedAt    string         `json:"created_at"`
}

type CategoryBreakdown struct {
	Name  string  `json:"name"`
	Type  string  `json:"type"`
	Total float64 `json:"total"`
	Count int     `json:"count"`
}

type ReportResponse struct {
	PeriodStart  string              `json:"period_start"`
	PeriodEnd    string              `json:"period_end"`
	TotalIncome  float64             `json:"total_income"`
	TotalExpense float64             `json:"total_expense"`
	Balance      float64             `json:"balance"`
	Categories   []CategoryBreakdown `json:"categories"`
}

type ExportResponse struct {
	Format string `json:"format"`
	URL    string `json:"url"`
}
