package nlp

import (
	"FinTrackGolang/pkg/gemini"
	"context"
	"errors"
	"io"
	"reflect"
	"testing"

	"github.com/sirupsen/logrus"
)

// fakeGateway is a deterministic stand-in for the Gemini client.
type fakeGateway struct {
	configured bool
	reply      string
	err        error
	calls      int
}

func (f *fakeGateway) Configured() bool { return f.configured }

func (f *fakeGateway) Generate(_ context.Context, _, _ string, _ int32, _ float32) (string, error) {
	f.calls++
	if !f.configured {
		return "", gemini.ErrNotConfigured
	}
	if f.err != nil {
		return "", f.err
	}
	return f.reply, nil
}

func newTestParser(gw gemini.IGemini) ITextParser {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return New(log, gw)
}

func TestParseTransaction_NotConfigured(t *testing.T) {
	gw := &fakeGateway{configured: false}
	parser := newTestParser(gw)

	record := parser.ParseTransaction(context.Background(), "gastei 15 reais na padaria")

	if !reflect.DeepEqual(record, TransactionRecord{}) {
		t.Errorf("expected all-unset record, got %+v", record)
	}
	if gw.calls != 0 {
		t.Errorf("gateway must not be called without a credential, got %d calls", gw.calls)
	}
}

func TestParseTransaction_GatewayError(t *testing.T) {
	gw := &fakeGateway{configured: true, err: errors.New("upstream unavailable")}
	parser := newTestParser(gw)

	record := parser.ParseTransaction(context.Background(), "gastei 15 reais na padaria")

	if !reflect.DeepEqual(record, TransactionRecord{}) {
		t.Errorf("expected all-unset record on gateway failure, got %+v", record)
	}
}

func TestParseTransaction_MalformedJSON(t *testing.T) {
	gw := &fakeGateway{configured: true, reply: "claro! aqui está: {amount: 23"}
	parser := newTestParser(gw)

	record := parser.ParseTransaction(context.Background(), "gastei 23.5 na padaria")

	if record.Amount != nil || record.Date != nil || record.Category != nil ||
		record.Location != nil || record.Type != nil {
		t.Errorf("expected all-unset record on malformed JSON, got %+v", record)
	}
}

func TestParseTransaction_FullReply(t *testing.T) {
	gw := &fakeGateway{
		configured: true,
		reply:      `{"amount":23.5,"date":"2025-05-17","category":"Padaria","location":"Padaria Central","type":"expense"}`,
	}
	parser := newTestParser(gw)

	record := parser.ParseTransaction(context.Background(), "gastei 23.5 na padaria")

	if record.Amount == nil || *record.Amount != 23.5 {
		t.Fatalf("amount = %v, want 23.5", record.Amount)
	}
	if record.Date == nil || *record.Date != "2025-05-17" {
		t.Errorf("date = %v, want 2025-05-17", record.Date)
	}
	if record.Category == nil || *record.Category != "Padaria" {
		t.Errorf("category = %v, want Padaria", record.Category)
	}
	if record.Location == nil || *record.Location != "Padaria Central" {
		t.Errorf("location = %v, want Padaria Central", record.Location)
	}
	if record.Type == nil || *record.Type != "expense" {
		t.Errorf("type = %v, want expense", record.Type)
	}
}

func TestParseTransaction_PartialReplyAndUnknownKeys(t *testing.T) {
	gw := &fakeGateway{
		configured: true,
		reply:      `{"amount":10,"confidence":0.9,"notes":"ignored"}`,
	}
	parser := newTestParser(gw)

	record := parser.ParseTransaction(context.Background(), "10 reais")

	if record.Amount == nil || *record.Amount != 10 {
		t.Fatalf("amount = %v, want 10", record.Amount)
	}
	if record.Category != nil || record.Type != nil || record.Date != nil || record.Location != nil {
		t.Errorf("missing keys must remain unset, got %+v", record)
	}
}

func TestParseTransaction_Idempotent(t *testing.T) {
	gw := &fakeGateway{
		configured: true,
		reply:      `{"amount":50,"type":"income"}`,
	}
	parser := newTestParser(gw)

	first := parser.ParseTransaction(context.Background(), "recebi 50")
	second := parser.ParseTransaction(context.Background(), "recebi 50")

	if !reflect.DeepEqual(first, second) {
		t.Errorf("identical input with a deterministic gateway must yield identical records: %+v vs %+v", first, second)
	}
}

func TestParseGoal_MalformedJSON(t *testing.T) {
	gw := &fakeGateway{configured: true, reply: "meta registrada"}
	parser := newTestParser(gw)

	record := parser.ParseGoal(context.Background(), "quero poupar 1000 até dezembro")

	if !reflect.DeepEqual(record, GoalRecord{}) {
		t.Errorf("expected all-unset goal record, got %+v", record)
	}
}

func TestParseGoal_FullReply(t *testing.T) {
	gw := &fakeGateway{
		configured: true,
		reply:      `{"target_amount":1000,"start_date":"2025-01-01","end_date":"2025-12-31","frequency":"monthly","name":"Poupança"}`,
	}
	parser := newTestParser(gw)

	record := parser.ParseGoal(context.Background(), "quero poupar 1000 até dezembro todo mês")

	if record.TargetAmount == nil || *record.TargetAmount != 1000 {
		t.Fatalf("target_amount = %v, want 1000", record.TargetAmount)
	}
	if record.Frequency == nil || *record.Frequency != "monthly" {
		t.Errorf("frequency = %v, want monthly", record.Frequency)
	}
	if record.Name == nil || *record.Name != "Poupança" {
		t.Errorf("name = %v, want Poupança", record.Name)
	}
}

func TestGenerateInsight_PreservesRawTextOnDecodeFailure(t *testing.T) {
	raw := "Seus gastos com alimentação subiram 20% neste mês."
	gw := &fakeGateway{configured: true, reply: raw}
	parser := newTestParser(gw)

	record := parser.GenerateInsight(context.Background(), "summary", "{}")

	if record.Content != raw {
		t.Errorf("content = %q, want the raw reply preserved", record.Content)
	}
	if record.Data == nil || len(record.Data) != 0 {
		t.Errorf("data = %v, want empty map", record.Data)
	}
}

func TestGenerateInsight_ValidReply(t *testing.T) {
	gw := &fakeGateway{
		configured: true,
		reply:      `{"content":"Gastos estáveis.","data":{"total":120.5}}`,
	}
	parser := newTestParser(gw)

	record := parser.GenerateInsight(context.Background(), "summary", "{}")

	if record.Content != "Gastos estáveis." {
		t.Errorf("content = %q", record.Content)
	}
	if record.Data["total"] != 120.5 {
		t.Errorf("data[total] = %v, want 120.5", record.Data["total"])
	}
}

func TestGenerateInsight_NotConfigured(t *testing.T) {
	gw := &fakeGateway{configured: false}
	parser := newTestParser(gw)

	record := parser.GenerateInsight(context.Background(), "forecast", "{}")

	if record.Content != "" || len(record.Data) != 0 {
		t.Errorf("expected degraded empty insight, got %+v", record)
	}
}

func TestChat_PropagatesGatewayError(t *testing.T) {
	gatewayErr := errors.New("remote failure")
	gw := &fakeGateway{configured: true, err: gatewayErr}
	parser := newTestParser(gw)

	_, err := parser.Chat(context.Background(), "Oi")
	if !errors.Is(err, gatewayErr) {
		t.Errorf("chat must surface gateway failures, got %v", err)
	}
}

func TestChat_PropagatesNotConfigured(t *testing.T) {
	gw := &fakeGateway{configured: false}
	parser := newTestParser(gw)

	_, err := parser.Chat(context.Background(), "Oi")
	if !errors.Is(err, gemini.ErrNotConfigured) {
		t.Errorf("expected ErrNotConfigured, got %v", err)
	}
}
