package nlp

import "context"

// TransactionRecord is the structured form extracted from free text such as
// "gastei 15 reais na padaria". Pointer fields with no omitempty: every key
// is always marshalled, explicitly null when the model did not provide it,
// so downstream "parsed value, else caller value" resolution is uniform.
type TransactionRecord struct {
	Amount   *float64 `json:"amount"`
	Date     *string  `json:"date"`
	Category *string  `json:"category"`
	Location *string  `json:"location"`
	Type     *string  `json:"type"`
}

// GoalRecord is the structured form of a savings goal description,
// e.g. "quero poupar 1000 até dezembro guardando todo mês".
type GoalRecord struct {
	TargetAmount *float64 `json:"target_amount"`
	StartDate    *string  `json:"start_date"`
	EndDate      *string  `json:"end_date"`
	Frequency    *string  `json:"frequency"`
	Name         *string  `json:"name"`
}

// InsightRecord is a narrative analysis of the user's finances. Content is
// never nulled out: when the model reply is not valid JSON the raw text is
// kept as Content, because an insight's value is its prose.
type InsightRecord struct {
	Content string                 `json:"content"`
	Data    map[string]interface{} `json:"data"`
}

// ITextParser turns free text into domain records via the Gemini gateway.
// ParseTransaction, ParseGoal and GenerateInsight never fail: on a missing
// credential, a gateway error or a malformed reply they return the default
// record, indistinguishable from "not configured" on purpose. Chat is the
// exception and propagates errors since no agent reply can be synthesized
// locally.
type ITextParser interface {
	ParseTransaction(ctx context.Context, rawText string) TransactionRecord
	ParseGoal(ctx context.Context, rawText string) GoalRecord
	GenerateInsight(ctx context.Context, insightType string, snapshot string) InsightRecord
	Chat(ctx context.Context, message string) (string, error)
}

// EmptyTransactionRecord is the all-unset fallback.
func EmptyTransactionRecord() TransactionRecord {
	return TransactionRecord{}
}

// EmptyGoalRecord is the all-unset fallback.
func EmptyGoalRecord() GoalRecord {
	return GoalRecord{}
}

// EmptyInsightRecord is the degraded insight: empty prose, empty data.
func EmptyInsightRecord() InsightRecord {
	return InsightRecord{Content: "", Data: map[string]interface{}{}}
}
