package analysisService

import (
	"FinTrackGolang/internal/api/analysis"
	analysisRepository "FinTrackGolang/internal/api/analysis/repository"
	"FinTrackGolang/internal/api/finance"
	financeRepository "FinTrackGolang/internal/api/finance/repository"
	"FinTrackGolang/internal/entity"
	"FinTrackGolang/pkg/gemini"
	"FinTrackGolang/pkg/nlp"
	"FinTrackGolang/pkg/utils"
	"encoding/json"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/net/context"
)

func testLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

type fakeParser struct {
	insight   nlp.InsightRecord
	chatReply string
	chatErr   error
	snapshots []string
	chatCalls int
}

func (p *fakeParser) ParseTransaction(ctx context.Context, rawText string) nlp.TransactionRecord {
	return nlp.EmptyTransactionRecord()
}

func (p *fakeParser) ParseGoal(ctx context.Context, rawText string) nlp.GoalRecord {
	return nlp.EmptyGoalRecord()
}

func (p *fakeParser) GenerateInsight(ctx context.Context, insightType string, snapshot string) nlp.InsightRecord {
	p.snapshots = append(p.snapshots, snapshot)
	return p.insight
}

func (p *fakeParser) Chat(ctx context.Context, message string) (string, error) {
	p.chatCalls++
	return p.chatReply, p.chatErr
}

type memInsights struct {
	insights []entity.Insight
}

func (m *memInsights) CreateInsight(ctx context.Context, insight entity.Insight) error {
	m.insights = append(m.insights, insight)
	return nil
}

func (m *memInsights) GetInsightByID(ctx context.Context, userID string, id string) (entity.Insight, error) {
	for _, insight := range m.insights {
		if insight.ID == id && insight.UserID == userID {
			return insight, nil
		}
	}
	return entity.Insight{}, analysis.ErrInsightNotFound
}

func (m *memInsights) GetInsightsByUserID(ctx context.Context, userID string) ([]entity.Insight, error) {
	var result []entity.Insight
	for _, insight := range m.insights {
		if insight.UserID == userID {
			result = append(result, insight)
		}
	}
	return result, nil
}

func (m *memInsights) DeleteInsight(ctx context.Context, userID string, id string) error {
	for i, insight := range m.insights {
		if insight.ID == id && insight.UserID == userID {
			m.insights = append(m.insights[:i], m.insights[i+1:]...)
			return nil
		}
	}
	return analysis.ErrInsightNotFound
}

type memChatMessages struct {
	messages []entity.ChatMessage
}

func (m *memChatMessages) CreateChatMessage(ctx context.Context, message entity.ChatMessage) error {
	m.messages = append(m.messages, message)
	return nil
}

func (m *memChatMessages) GetChatMessagesByUserID(ctx context.Context, userID string) ([]entity.ChatMessage, error) {
	var result []entity.ChatMessage
	for _, message := range m.messages {
		if message.UserID == userID {
			result = append(result, message)
		}
	}
	return result, nil
}

func (m *memChatMessages) DeleteChatMessagesByUserID(ctx context.Context, userID string) error {
	var kept []entity.ChatMessage
	for _, message := range m.messages {
		if message.UserID != userID {
			kept = append(kept, message)
		}
	}
	m.messages = kept
	return nil
}

type fakeAnalysisRepository struct {
	insights *memInsights
	chat     *memChatMessages
}

func newFakeAnalysisRepository() *fakeAnalysisRepository {
	return &fakeAnalysisRepository{
		insights: &memInsights{},
		chat:     &memChatMessages{},
	}
}

func (r *fakeAnalysisRepository) NewClient(tx bool) (analysisRepository.Client, error) {
	return analysisRepository.Client{
		Insights:     r.insights,
		ChatMessages: r.chat,
	}, nil
}

type stubTransactions struct {
	totals []financeRepository.CategoryTotal
}

func (s *stubTransactions) CreateTransaction(ctx context.Context, transaction entity.Transaction) error {
	return nil
}

func (s *stubTransactions) GetTransactionByID(ctx context.Context, userID string, id string) (entity.Transaction, error) {
	return entity.Transaction{}, finance.ErrTransactionNotFound
}

func (s *stubTransactions) GetTransactionsByUserID(ctx context.Context, userID string) ([]entity.Transaction, error) {
	return nil, nil
}

func (s *stubTransactions) DeleteTransaction(ctx context.Context, userID string, id string) error {
	return nil
}

func (s *stubTransactions) GetCategoryTotalsSince(ctx context.Context, userID string, since time.Time) ([]financeRepository.CategoryTotal, error) {
	return s.totals, nil
}

type stubGoals struct {
	goals []entity.Goal
}

func (s *stubGoals) CreateGoal(ctx context.Context, goal entity.Goal) error { return nil }

func (s *stubGoals) GetGoalByID(ctx context.Context, userID string, id string) (entity.Goal, error) {
	return entity.Goal{}, finance.ErrGoalNotFound
}

func (s *stubGoals) GetGoalsByUserID(ctx context.Context, userID string) ([]entity.Goal, error) {
	return s.goals, nil
}

func (s *stubGoals) UpdateGoal(ctx context.Context, goal entity.Goal) error { return nil }

func (s *stubGoals) DeleteGoal(ctx context.Context, userID string, id string) error { return nil }

type stubFinanceRepository struct {
	transactions *stubTransactions
	goals        *stubGoals
}

func newStubFinanceRepository() *stubFinanceRepository {
	return &stubFinanceRepository{
		transactions: &stubTransactions{},
		goals:        &stubGoals{},
	}
}

func (r *stubFinanceRepository) NewClient(tx bool) (financeRepository.Client, error) {
	return financeRepository.Client{
		Transactions: r.transactions,
		Goals:        r.goals,
	}, nil
}

func newTestService(parser nlp.ITextParser, ar *fakeAnalysisRepository, fr *stubFinanceRepository) IAnalysisService {
	return NewAnalysisService(testLogger(), ar, fr, parser, utils.New())
}

func TestGenerateInsight_ValidRecord(t *testing.T) {
	ar := newFakeAnalysisRepository()
	fr := newStubFinanceRepository()
	fr.transactions.totals = []financeRepository.CategoryTotal{
		{Name: "Mercado", Type: "expense", Total: 300, Count: 5},
	}

	parser := &fakeParser{insight: nlp.InsightRecord{
		Content: "Voce gastou R$ 300 no mercado.",
		Data:    map[string]interface{}{"total_expense": 300.0},
	}}
	svc := newTestService(parser, ar, fr)

	insight, err := svc.GenerateInsight(context.Background(), "user-1", analysis.GenerateInsightRequest{Type: "summary"})
	if err != nil {
		t.Fatalf("GenerateInsight: %v", err)
	}

	if insight.Type != "summary" {
		t.Errorf("type = %q, want summary", insight.Type)
	}
	if insight.Content != "Voce gastou R$ 300 no mercado." {
		t.Errorf("content = %q", insight.Content)
	}

	var data map[string]interface{}
	if err := json.Unmarshal(insight.Data, &data); err != nil {
		t.Fatalf("data unmarshal: %v", err)
	}
	if data["total_expense"] != 300.0 {
		t.Errorf("data = %v", data)
	}

	if len(ar.insights.insights) != 1 {
		t.Fatalf("insights persisted = %d, want 1", len(ar.insights.insights))
	}
	if len(parser.snapshots) != 1 || !strings.Contains(parser.snapshots[0], "Mercado") {
		t.Errorf("snapshot = %v, want category totals included", parser.snapshots)
	}
}

func TestGenerateInsight_RawContentStillPersisted(t *testing.T) {
	ar := newFakeAnalysisRepository()
	fr := newStubFinanceRepository()

	rawReply := "Aqui vai um resumo em texto livre, sem JSON."
	parser := &fakeParser{insight: nlp.InsightRecord{
		Content: rawReply,
		Data:    map[string]interface{}{},
	}}
	svc := newTestService(parser, ar, fr)

	insight, err := svc.GenerateInsight(context.Background(), "user-1", analysis.GenerateInsightRequest{Type: "forecast"})
	if err != nil {
		t.Fatalf("GenerateInsight: %v", err)
	}

	if insight.Content != rawReply {
		t.Errorf("content = %q, want raw reply preserved", insight.Content)
	}
	if len(ar.insights.insights) != 1 {
		t.Error("insight with raw content was not persisted")
	}
}

func TestGenerateInsight_InvalidType(t *testing.T) {
	ar := newFakeAnalysisRepository()
	fr := newStubFinanceRepository()
	parser := &fakeParser{}
	svc := newTestService(parser, ar, fr)

	_, err := svc.GenerateInsight(context.Background(), "user-1", analysis.GenerateInsightRequest{Type: "horoscope"})
	if !errors.Is(err, analysis.ErrInvalidInsightType) {
		t.Fatalf("err = %v, want ErrInvalidInsightType", err)
	}
	if len(parser.snapshots) != 0 {
		t.Error("model called despite invalid insight type")
	}
}

func TestChat_RoundTripPersistsBothMessages(t *testing.T) {
	ar := newFakeAnalysisRepository()
	parser := &fakeParser{chatReply: "Seu maior gasto foi mercado."}
	svc := newTestService(parser, ar, newStubFinanceRepository())

	userMsg, agentMsg, err := svc.Chat(context.Background(), "user-1", analysis.ChatRequest{Message: "onde gastei mais?"})
	if err != nil {
		t.Fatalf("Chat: %v", err)
	}

	if userMsg.Role != string(entity.ChatRoleUser) || userMsg.Content != "onde gastei mais?" {
		t.Errorf("user message = %+v", userMsg)
	}
	if agentMsg.Role != string(entity.ChatRoleAgent) || agentMsg.Content != "Seu maior gasto foi mercado." {
		t.Errorf("agent message = %+v", agentMsg)
	}
	if len(ar.chat.messages) != 2 {
		t.Errorf("persisted messages = %d, want 2", len(ar.chat.messages))
	}
}

func TestChat_GatewayErrorKeepsUserMessage(t *testing.T) {
	ar := newFakeAnalysisRepository()
	parser := &fakeParser{chatErr: errors.New("upstream 500")}
	svc := newTestService(parser, ar, newStubFinanceRepository())

	userMsg, _, err := svc.Chat(context.Background(), "user-1", analysis.ChatRequest{Message: "oi"})
	if !errors.Is(err, analysis.ErrChatUnavailable) {
		t.Fatalf("err = %v, want ErrChatUnavailable", err)
	}

	if userMsg.Content != "oi" {
		t.Errorf("user message = %+v, want returned even on failure", userMsg)
	}
	if len(ar.chat.messages) != 1 {
		t.Fatalf("persisted messages = %d, want the user message kept", len(ar.chat.messages))
	}
	if ar.chat.messages[0].Role != string(entity.ChatRoleUser) {
		t.Errorf("persisted role = %s, want user", ar.chat.messages[0].Role)
	}
}

func TestChat_NotConfigured(t *testing.T) {
	ar := newFakeAnalysisRepository()
	parser := &fakeParser{chatErr: gemini.ErrNotConfigured}
	svc := newTestService(parser, ar, newStubFinanceRepository())

	_, _, err := svc.Chat(context.Background(), "user-1", analysis.ChatRequest{Message: "oi"})
	if !errors.Is(err, analysis.ErrChatNotConfigured) {
		t.Fatalf("err = %v, want ErrChatNotConfigured", err)
	}
	if len(ar.chat.messages) != 1 {
		t.Error("user message should be durable even when the agent is not configured")
	}
}

func TestClearChatHistory(t *testing.T) {
	ar := newFakeAnalysisRepository()
	ar.chat.messages = []entity.ChatMessage{
		{ID: "1", UserID: "user-1", Role: "user", Content: "a"},
		{ID: "2", UserID: "user-2", Role: "user", Content: "b"},
	}
	svc := newTestService(&fakeParser{}, ar, newStubFinanceRepository())

	if err := svc.ClearChatHistory(context.Background(), "user-1"); err != nil {
		t.Fatalf("ClearChatHistory: %v", err)
	}

	history, err := svc.GetChatHistory(context.Background(), "user-2")
	if err != nil {
		t.Fatalf("GetChatHistory: %v", err)
	}
	if len(history) != 1 {
		t.Errorf("other user's history = %d messages, want 1", len(history))
	}
}
