package financeService

import (
	"FinTrackGolang/internal/api/finance"
	financeRepository "FinTrackGolang/internal/api/finance/repository"
	"FinTrackGolang/internal/entity"
	"FinTrackGolang/pkg/nlp"
	"FinTrackGolang/pkg/utils"
	"encoding/json"
	"errors"
	"io"
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
	transaction nlp.TransactionRecord
	goal        nlp.GoalRecord
}

func (p *fakeParser) ParseTransaction(ctx context.Context, rawText string) nlp.TransactionRecord {
	return p.transaction
}

func (p *fakeParser) ParseGoal(ctx context.Context, rawText string) nlp.GoalRecord {
	return p.goal
}

func (p *fakeParser) GenerateInsight(ctx context.Context, insightType string, snapshot string) nlp.InsightRecord {
	return nlp.EmptyInsightRecord()
}

func (p *fakeParser) Chat(ctx context.Context, message string) (string, error) {
	return "", nil
}

type memCategories struct {
	categories   map[string]entity.Category
	conflictOnce bool
}

func newMemCategories() *memCategories {
	return &memCategories{categories: make(map[string]entity.Category)}
}

func (m *memCategories) CreateCategory(ctx context.Context, category entity.Category) error {
	if m.conflictOnce {
		m.conflictOnce = false
		return finance.ErrCategoryExists
	}
	for _, existing := range m.categories {
		if existing.UserID == category.UserID && existing.Name == category.Name && existing.Type == category.Type {
			return finance.ErrCategoryExists
		}
	}
	m.categories[category.ID] = category
	return nil
}

func (m *memCategories) GetCategoryByID(ctx context.Context, userID string, id string) (entity.Category, error) {
	category, ok := m.categories[id]
	if !ok || category.UserID != userID {
		return entity.Category{}, finance.ErrCategoryNotFound
	}
	return category, nil
}

func (m *memCategories) GetCategoryByNameAndType(ctx context.Context, userID string, name string, categoryType string) (entity.Category, error) {
	for _, category := range m.categories {
		if category.UserID == userID && category.Name == name && category.Type == categoryType {
			return category, nil
		}
	}
	return entity.Category{}, finance.ErrCategoryNotFound
}

func (m *memCategories) GetCategoriesByUserID(ctx context.Context, userID string) ([]entity.Category, error) {
	var result []entity.Category
	for _, category := range m.categories {
		if category.UserID == userID {
			result = append(result, category)
		}
	}
	return result, nil
}

func (m *memCategories) UpdateCategory(ctx context.Context, category entity.Category) error {
	if _, ok := m.categories[category.ID]; !ok {
		return finance.ErrCategoryNotFound
	}
	m.categories[category.ID] = category
	return nil
}

func (m *memCategories) DeleteCategory(ctx context.Context, userID string, id string) error {
	if _, ok := m.categories[id]; !ok {
		return finance.ErrCategoryNotFound
	}
	delete(m.categories, id)
	return nil
}

type memTransactions struct {
	transactions []entity.Transaction
	totals       []financeRepository.CategoryTotal
}

func (m *memTransactions) CreateTransaction(ctx context.Context, transaction entity.Transaction) error {
	m.transactions = append(m.transactions, transaction)
	return nil
}

func (m *memTransactions) GetTransactionByID(ctx context.Context, userID string, id string) (entity.Transaction, error) {
	for _, transaction := range m.transactions {
		if transaction.ID == id && transaction.UserID == userID {
			return transaction, nil
		}
	}
	return entity.Transaction{}, finance.ErrTransactionNotFound
}

func (m *memTransactions) GetTransactionsByUserID(ctx context.Context, userID string) ([]entity.Transaction, error) {
	var result []entity.Transaction
	for _, transaction := range m.transactions {
		if transaction.UserID == userID {
			result = append(result, transaction)
		}
	}
	return result, nil
}

func (m *memTransactions) DeleteTransaction(ctx context.Context, userID string, id string) error {
	for i, transaction := range m.transactions {
		if transaction.ID == id && transaction.UserID == userID {
			m.transactions = append(m.transactions[:i], m.transactions[i+1:]...)
			return nil
		}
	}
	return finance.ErrTransactionNotFound
}

func (m *memTransactions) GetCategoryTotalsSince(ctx context.Context, userID string, since time.Time) ([]financeRepository.CategoryTotal, error) {
	return m.totals, nil
}

type memGoals struct {
	goals map[string]entity.Goal
}

func newMemGoals() *memGoals {
	return &memGoals{goals: make(map[string]entity.Goal)}
}

func (m *memGoals) CreateGoal(ctx context.Context, goal entity.Goal) error {
	m.goals[goal.ID] = goal
	return nil
}

func (m *memGoals) GetGoalByID(ctx context.Context, userID string, id string) (entity.Goal, error) {
	goal, ok := m.goals[id]
	if !ok || goal.UserID != userID {
		return entity.Goal{}, finance.ErrGoalNotFound
	}
	return goal, nil
}

func (m *memGoals) GetGoalsByUserID(ctx context.Context, userID string) ([]entity.Goal, error) {
	var result []entity.Goal
	for _, goal := range m.goals {
		if goal.UserID == userID {
			result = append(result, goal)
		}
	}
	return result, nil
}

func (m *memGoals) UpdateGoal(ctx context.Context, goal entity.Goal) error {
	if _, ok := m.goals[goal.ID]; !ok {
		return finance.ErrGoalNotFound
	}
	m.goals[goal.ID] = goal
	return nil
}

func (m *memGoals) DeleteGoal(ctx context.Context, userID string, id string) error {
	if _, ok := m.goals[id]; !ok {
		return finance.ErrGoalNotFound
	}
	delete(m.goals, id)
	return nil
}

type fakeRepository struct {
	categories   *memCategories
	transactions *memTransactions
	goals        *memGoals
}

func newFakeRepository() *fakeRepository {
	return &fakeRepository{
		categories:   newMemCategories(),
		transactions: &memTransactions{},
		goals:        newMemGoals(),
	}
}

func (r *fakeRepository) NewClient(tx bool) (financeRepository.Client, error) {
	return financeRepository.Client{
		Categories:   r.categories,
		Transactions: r.transactions,
		Goals:        r.goals,
	}, nil
}

type fakeS3 struct {
	uploads int
}

func (s *fakeS3) UploadBytes(fileName string, data []byte, contentType string) (string, error) {
	s.uploads++
	return "https://bucket.s3.amazonaws.com/" + fileName, nil
}

func (s *fakeS3) PresignUrl(fileUrl string) (string, error) {
	return fileUrl + "?signed", nil
}

func (s *fakeS3) DeleteFile(fileName string) error {
	return nil
}

func newTestService(parser nlp.ITextParser, repo *fakeRepository) IFinanceService {
	return NewFinanceService(testLogger(), repo, parser, &fakeS3{}, utils.New())
}

func floatPtr(v float64) *float64 { return &v }
func strPtr(v string) *string     { return &v }

func TestCreateTransaction_ParsedAmountWinsOverFallback(t *testing.T) {
	repo := newFakeRepository()
	parser := &fakeParser{transaction: nlp.TransactionRecord{
		Amount:   floatPtr(23.5),
		Date:     strPtr("2025-05-17"),
		Category: strPtr("Padaria"),
		Type:     strPtr("expense"),
	}}
	svc := newTestService(parser, repo)

	transaction, err := svc.CreateTransaction(context.Background(), "user-1", finance.CreateTransactionRequest{
		RawText: "gastei 23,50 na padaria ontem",
		Amount:  10,
	})
	if err != nil {
		t.Fatalf("CreateTransaction: %v", err)
	}

	if transaction.Amount != 23.5 {
		t.Errorf("amount = %v, want parsed 23.5", transaction.Amount)
	}
	if transaction.Timestamp.Format("2006-01-02") != "2025-05-17" {
		t.Errorf("timestamp = %v, want parsed date", transaction.Timestamp)
	}
	if transaction.CategoryID == nil {
		t.Fatal("expected category to be resolved")
	}

	category, err := repo.categories.GetCategoryByID(context.Background(), "user-1", *transaction.CategoryID)
	if err != nil {
		t.Fatalf("resolved category not persisted: %v", err)
	}
	if category.Name != "Padaria" || category.Type != "expense" {
		t.Errorf("category = %s/%s, want Padaria/expense", category.Name, category.Type)
	}
}

func TestCreateTransaction_FallbackAmountUsedWhenUnparsed(t *testing.T) {
	repo := newFakeRepository()
	parser := &fakeParser{transaction: nlp.EmptyTransactionRecord()}
	svc := newTestService(parser, repo)

	transaction, err := svc.CreateTransaction(context.Background(), "user-1", finance.CreateTransactionRequest{
		RawText: "compras",
		Amount:  42,
	})
	if err != nil {
		t.Fatalf("CreateTransaction: %v", err)
	}
	if transaction.Amount != 42 {
		t.Errorf("amount = %v, want fallback 42", transaction.Amount)
	}
}

func TestCreateTransaction_NoAmountAnywhere(t *testing.T) {
	repo := newFakeRepository()
	parser := &fakeParser{transaction: nlp.EmptyTransactionRecord()}
	svc := newTestService(parser, repo)

	_, err := svc.CreateTransaction(context.Background(), "user-1", finance.CreateTransactionRequest{
		RawText: "compras",
	})
	if !errors.Is(err, finance.ErrAmountRequired) {
		t.Fatalf("err = %v, want ErrAmountRequired", err)
	}
	if len(repo.transactions.transactions) != 0 {
		t.Error("transaction persisted despite missing amount")
	}
}

func TestCreateTransaction_DefaultsToOutros(t *testing.T) {
	repo := newFakeRepository()
	parser := &fakeParser{transaction: nlp.TransactionRecord{Amount: floatPtr(10)}}
	svc := newTestService(parser, repo)

	transaction, err := svc.CreateTransaction(context.Background(), "user-1", finance.CreateTransactionRequest{
		RawText: "dez reais",
	})
	if err != nil {
		t.Fatalf("CreateTransaction: %v", err)
	}

	category, err := repo.categories.GetCategoryByID(context.Background(), "user-1", *transaction.CategoryID)
	if err != nil {
		t.Fatalf("default category not persisted: %v", err)
	}
	if category.Name != entity.DefaultCategoryName {
		t.Errorf("category = %s, want %s", category.Name, entity.DefaultCategoryName)
	}
}

func TestCreateTransaction_FallbackCategoryID(t *testing.T) {
	repo := newFakeRepository()
	existing := entity.Category{ID: "cat-1", UserID: "user-1", Name: "Mercado", Type: "expense"}
	repo.categories.categories[existing.ID] = existing

	parser := &fakeParser{transaction: nlp.TransactionRecord{Amount: floatPtr(10)}}
	svc := newTestService(parser, repo)

	transaction, err := svc.CreateTransaction(context.Background(), "user-1", finance.CreateTransactionRequest{
		RawText:    "dez reais",
		CategoryID: "cat-1",
	})
	if err != nil {
		t.Fatalf("CreateTransaction: %v", err)
	}
	if transaction.CategoryID == nil || *transaction.CategoryID != "cat-1" {
		t.Errorf("category id = %v, want cat-1", transaction.CategoryID)
	}
}

func TestCreateTransaction_ParsedCategoryWinsOverFallbackID(t *testing.T) {
	repo := newFakeRepository()
	existing := entity.Category{ID: "cat-1", UserID: "user-1", Name: "Mercado", Type: "expense"}
	repo.categories.categories[existing.ID] = existing

	parser := &fakeParser{transaction: nlp.TransactionRecord{
		Amount:   floatPtr(10),
		Category: strPtr("Transporte"),
		Type:     strPtr("expense"),
	}}
	svc := newTestService(parser, repo)

	transaction, err := svc.CreateTransaction(context.Background(), "user-1", finance.CreateTransactionRequest{
		RawText:    "uber",
		CategoryID: "cat-1",
	})
	if err != nil {
		t.Fatalf("CreateTransaction: %v", err)
	}

	category, err := repo.categories.GetCategoryByID(context.Background(), "user-1", *transaction.CategoryID)
	if err != nil {
		t.Fatalf("category lookup: %v", err)
	}
	if category.Name != "Transporte" {
		t.Errorf("category = %s, want parsed Transporte", category.Name)
	}
}

func TestCreateTransaction_CategoryCreationRaceRefetches(t *testing.T) {
	repo := newFakeRepository()
	winner := entity.Category{ID: "cat-race", UserID: "user-1", Name: "Padaria", Type: "expense"}
	repo.categories.categories[winner.ID] = winner
	// Simulate the race where the lookup misses but the insert conflicts.
	repo.categories.conflictOnce = true

	parser := &fakeParser{transaction: nlp.TransactionRecord{
		Amount:   floatPtr(5),
		Category: strPtr("Padaria"),
		Type:     strPtr("expense"),
	}}
	svc := newTestService(parser, repo)

	transaction, err := svc.CreateTransaction(context.Background(), "user-1", finance.CreateTransactionRequest{
		RawText: "pao",
	})
	if err != nil {
		t.Fatalf("CreateTransaction: %v", err)
	}
	if transaction.CategoryID == nil || *transaction.CategoryID != "cat-race" {
		t.Errorf("category id = %v, want existing cat-race", transaction.CategoryID)
	}
}

func TestCreateTransaction_MetadataKeepsParsedRecordVerbatim(t *testing.T) {
	repo := newFakeRepository()
	parser := &fakeParser{transaction: nlp.TransactionRecord{
		Amount:   floatPtr(23.5),
		Location: strPtr("Padaria Central"),
	}}
	svc := newTestService(parser, repo)

	transaction, err := svc.CreateTransaction(context.Background(), "user-1", finance.CreateTransactionRequest{
		RawText: "gastei 23,50 na padaria",
		Amount:  99,
	})
	if err != nil {
		t.Fatalf("CreateTransaction: %v", err)
	}

	var stored nlp.TransactionRecord
	if err := json.Unmarshal(transaction.Metadata, &stored); err != nil {
		t.Fatalf("metadata unmarshal: %v", err)
	}
	if stored.Amount == nil || *stored.Amount != 23.5 {
		t.Errorf("metadata amount = %v, want 23.5", stored.Amount)
	}
	if stored.Category != nil {
		t.Errorf("metadata category = %v, want null", *stored.Category)
	}
	if stored.Location == nil || *stored.Location != "Padaria Central" {
		t.Errorf("metadata location = %v, want Padaria Central", stored.Location)
	}
}

func TestCreateGoal_PerFieldResolution(t *testing.T) {
	repo := newFakeRepository()
	parser := &fakeParser{goal: nlp.GoalRecord{
		Name:         strPtr("Viagem"),
		TargetAmount: nil,
		StartDate:    strPtr("2025-01-01"),
		EndDate:      nil,
		Frequency:    strPtr("monthly"),
	}}
	svc := newTestService(parser, repo)

	goal, err := svc.CreateGoal(context.Background(), "user-1", finance.CreateGoalRequest{
		RawText:      "quero juntar para uma viagem",
		Name:         "Economia",
		TargetAmount: 5000,
		StartDate:    "2025-02-01",
		EndDate:      "2025-12-31",
		Frequency:    "yearly",
	})
	if err != nil {
		t.Fatalf("CreateGoal: %v", err)
	}

	if goal.Name != "Viagem" {
		t.Errorf("name = %s, want parsed Viagem", goal.Name)
	}
	if goal.TargetAmount != 5000 {
		t.Errorf("target = %v, want fallback 5000", goal.TargetAmount)
	}
	if goal.StartDate.Format("2006-01-02") != "2025-01-01" {
		t.Errorf("start date = %v, want parsed 2025-01-01", goal.StartDate)
	}
	if goal.EndDate.Format("2006-01-02") != "2025-12-31" {
		t.Errorf("end date = %v, want fallback 2025-12-31", goal.EndDate)
	}
	if goal.Frequency != "monthly" {
		t.Errorf("frequency = %s, want parsed monthly", goal.Frequency)
	}
}

func TestCreateGoal_MissingFieldRejected(t *testing.T) {
	repo := newFakeRepository()
	parser := &fakeParser{goal: nlp.EmptyGoalRecord()}
	svc := newTestService(parser, repo)

	_, err := svc.CreateGoal(context.Background(), "user-1", finance.CreateGoalRequest{
		RawText:      "meta",
		Name:         "Economia",
		TargetAmount: 5000,
		StartDate:    "2025-02-01",
		Frequency:    "monthly",
	})
	if !errors.Is(err, finance.ErrGoalEndDateRequired) {
		t.Fatalf("err = %v, want ErrGoalEndDateRequired", err)
	}
	if len(repo.goals.goals) != 0 {
		t.Error("goal persisted despite missing end date")
	}
}

func TestCreateGoal_InvalidParsedDateTreatedAsUnset(t *testing.T) {
	repo := newFakeRepository()
	parser := &fakeParser{goal: nlp.GoalRecord{
		Name:         strPtr("Reserva"),
		TargetAmount: floatPtr(1000),
		StartDate:    strPtr("mes que vem"),
		EndDate:      strPtr("2025-12-31"),
		Frequency:    strPtr("one-time"),
	}}
	svc := newTestService(parser, repo)

	goal, err := svc.CreateGoal(context.Background(), "user-1", finance.CreateGoalRequest{
		RawText:   "reserva de emergencia",
		StartDate: "2025-06-01",
	})
	if err != nil {
		t.Fatalf("CreateGoal: %v", err)
	}
	if goal.StartDate.Format("2006-01-02") != "2025-06-01" {
		t.Errorf("start date = %v, want fallback 2025-06-01", goal.StartDate)
	}
}

func TestGetMonthlyReport_Totals(t *testing.T) {
	repo := newFakeRepository()
	repo.transactions.totals = []financeRepository.CategoryTotal{
		{Name: "Salario", Type: "income", Total: 3000, Count: 1},
		{Name: "Mercado", Type: "expense", Total: 450.5, Count: 7},
		{Name: "Sem categoria", Type: "expense", Total: 50, Count: 2},
	}
	svc := newTestService(&fakeParser{}, repo)

	report, err := svc.GetMonthlyReport(context.Background(), "user-1")
	if err != nil {
		t.Fatalf("GetMonthlyReport: %v", err)
	}

	if report.TotalIncome != 3000 {
		t.Errorf("income = %v, want 3000", report.TotalIncome)
	}
	if report.TotalExpense != 500.5 {
		t.Errorf("expense = %v, want 500.5", report.TotalExpense)
	}
	if report.Balance != 2499.5 {
		t.Errorf("balance = %v, want 2499.5", report.Balance)
	}
	if len(report.Categories) != 3 {
		t.Errorf("categories = %d, want 3", len(report.Categories))
	}
}

func TestExportTransactions_InvalidFormat(t *testing.T) {
	repo := newFakeRepository()
	svc := newTestService(&fakeParser{}, repo)

	_, err := svc.ExportTransactions(context.Background(), "user-1", "xlsx")
	if !errors.Is(err, finance.ErrInvalidExportFormat) {
		t.Fatalf("err = %v, want ErrInvalidExportFormat", err)
	}
}

func TestExportTransactions_CSV(t *testing.T) {
	repo := newFakeRepository()
	categoryID := "cat-1"
	repo.categories.categories[categoryID] = entity.Category{ID: categoryID, UserID: "user-1", Name: "Mercado", Type: "expense"}
	repo.transactions.transactions = []entity.Transaction{
		{ID: "tx-1", UserID: "user-1", CategoryID: &categoryID, Amount: 99.9, RawText: "compras", Timestamp: time.Now()},
	}

	s3Client := &fakeS3{}
	svc := NewFinanceService(testLogger(), repo, &fakeParser{}, s3Client, utils.New())

	result, err := svc.ExportTransactions(context.Background(), "user-1", "csv")
	if err != nil {
		t.Fatalf("ExportTransactions: %v", err)
	}
	if result.Format != "csv" {
		t.Errorf("format = %s, want csv", result.Format)
	}
	if result.URL == "" {
		t.Error("expected a presigned url")
	}
	if s3Client.uploads != 1 {
		t.Errorf("uploads = %d, want 1", s3Client.uploads)
	}
}

func TestUpdateGoal_NotFound(t *testing.T) {
	repo := newFakeRepository()
	svc := newTestService(&fakeParser{}, repo)

	err := svc.UpdateGoal(context.Background(), "user-1", "missing", finance.UpdateGoalRequest{
		Name:         "Meta",
		TargetAmount: 100,
		StartDate:    "2025-01-01",
		EndDate:      "2025-02-01",
		Frequency:    "monthly",
	})
	if !errors.Is(err, finance.ErrGoalNotFound) {
		t.Fatalf("err = %v, want ErrGoalNotFound", err)
	}
}
