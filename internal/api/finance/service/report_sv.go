package financeService

import (
	"FinTrackGolang/internal/api/finance"
	"FinTrackGolang/internal/entity"
	contextPkg "FinTrackGolang/pkg/context"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/net/context"
)

const reportPeriodDays = 30

func (s *financeService) GetMonthlyReport(ctx context.Context, userID string) (finance.ReportResponse, error) {
	requestID := contextPkg.GetRequestID(ctx)

	repo, err := s.financeRepository.NewClient(false)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to create new client")
		return finance.ReportResponse{}, err
	}

	now := time.Now()
	since := now.AddDate(0, 0, -reportPeriodDays)

	totals, err := repo.Transactions.GetCategoryTotalsSince(ctx, userID, since)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to aggregate category totals")
		return finance.ReportResponse{}, err
	}

	report := finance.ReportResponse{
		PeriodStart: since.Format("2006-01-02"),
		PeriodEnd:   now.Format("2006-01-02"),
		Categories:  make([]finance.CategoryBreakdown, 0, len(totals)),
	}

	for _, total := range totals {
		if total.Type == string(entity.CategoryTypeIncome) {
			report.TotalIncome += total.Total
		} else {
			report.TotalExpense += total.Total
		}

		report.Categories = append(report.Categories, finance.CategoryBreakdown{
			Name:  total.Name,
			Type:  total.Type,
			Total: total.Total,
			Count: total.Count,
		})
	}

	report.Balance = report.TotalIncome - report.TotalExpense

	return report, nil
}
