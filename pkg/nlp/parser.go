package nlp

import (
	"FinTrackGolang/pkg/gemini"
	"context"
	"encoding/json"
	"fmt"

	"github.com/sirupsen/logrus"
)

type textParser struct {
	log     *logrus.Logger
	gateway gemini.IGemini
}

func New(log *logrus.Logger, gateway gemini.IGemini) ITextParser {
	return &textParser{
		log:     log,
		gateway: gateway,
	}
}

func (p *textParser) ParseTransaction(ctx context.Context, rawText string) TransactionRecord {
	if !p.gateway.Configured() {
		return EmptyTransactionRecord()
	}

	reply, err := p.gateway.Generate(ctx, transactionSystemInstruction,
		fmt.Sprintf("Texto: %q", rawText), parseMaxOutputTokens, parseTemperature)
	if err != nil {
		p.log.WithFields(logrus.Fields{
			"error": err.Error(),
		}).Warn("Transaction parsing degraded to empty record")
		return EmptyTransactionRecord()
	}

	var record TransactionRecord
	if err := json.Unmarshal([]byte(reply), &record); err != nil {
		p.log.WithFields(logrus.Fields{
			"error": err.Error(),
			"reply": reply,
		}).Warn("Transaction reply is not valid JSON")
		return EmptyTransactionRecord()
	}

	return record
}

func (p *textParser) ParseGoal(ctx context.Context, rawText string) GoalRecord {
	if !p.gateway.Configured() {
		return EmptyGoalRecord()
	}

	reply, err := p.gateway.Generate(ctx, goalSystemInstruction,
		fmt.Sprintf("Meta: %q", rawText), parseMaxOutputTokens, parseTemperature)
	if err != nil {
		p.log.WithFields(logrus.Fields{
			"error": err.Error(),
		}).Warn("Goal parsing degraded to empty record")
		return EmptyGoalRecord()
	}

	var record GoalRecord
	if err := json.Unmarshal([]byte(reply), &record); err != nil {
		p.log.WithFields(logrus.Fields{
			"error": err.Error(),
			"reply": reply,
		}).Warn("Goal reply is not valid JSON")
		return EmptyGoalRecord()
	}

	return record
}

// GenerateInsight asks for JSON with "content" and "data" keys. A reply that
// is not valid JSON is still an insight: the raw text becomes Content.
func (p *textParser) GenerateInsight(ctx context.Context, insightType string, snapshot string) InsightRecord {
	if !p.gateway.Configured() {
		return EmptyInsightRecord()
	}

	prompt := fmt.Sprintf(
		"Tipo de insight: %s\n\n%s\n\nGere um JSON com chaves 'content' (string) e 'data' (objeto com valores).",
		insightType, snapshot)

	reply, err := p.gateway.Generate(ctx, insightSystemInstruction, prompt,
		insightMaxOutputTokens, insightTemperature)
	if err != nil {
		p.log.WithFields(logrus.Fields{
			"error": err.Error(),
		}).Warn("Insight generation degraded to empty record")
		return EmptyInsightRecord()
	}

	var record InsightRecord
	if err := json.Unmarshal([]byte(reply), &record); err != nil {
		return InsightRecord{Content: reply, Data: map[string]interface{}{}}
	}
	if record.Data == nil {
		record.Data = map[string]interface{}{}
	}

	return record
}

func (p *textParser) Chat(ctx context.Context, message string) (string, error) {
	return p.gateway.Generate(ctx, chatSystemInstruction, message,
		chatMaxOutputTokens, chatTemperature)
}
