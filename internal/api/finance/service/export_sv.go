package financeService

import (
	"FinTrackGolang/internal/api/finance"
	"FinTrackGolang/internal/entity"
	contextPkg "FinTrackGolang/pkg/context"
	"FinTrackGolang/pkg/export"
	"fmt"

	"github.com/sirupsen/logrus"
	"golang.org/x/net/context"
)

func (s *financeService) ExportTransactions(ctx context.Context, userID string, format string) (finance.ExportResponse, error) {
	requestID := contextPkg.GetRequestID(ctx)

	if !export.IsValidFormat(format) {
		return finance.ExportResponse{}, finance.ErrInvalidExportFormat
	}

	repo, err := s.financeRepository.NewClient(false)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to create new client")
		return finance.ExportResponse{}, err
	}

	transactions, err := repo.Transactions.GetTransactionsByUserID(ctx, userID)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to fetch transactions for export")
		return finance.ExportResponse{}, err
	}

	categories, err := repo.Categories.GetCategoriesByUserID(ctx, userID)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to fetch categories for export")
		return finance.ExportResponse{}, err
	}

	rows := buildExportRows(transactions, categories)

	var data []byte
	var contentType string

	switch format {
	case export.FormatCSV:
		data, err = export.BuildCSV(rows)
		contentType = "text/csv"
	case export.FormatPDF:
		data, err = export.BuildPDF(rows)
		contentType = "application/pdf"
	}
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to build export file")
		return finance.ExportResponse{}, err
	}

	fileName := fmt.Sprintf("transactions-%s.%s", userID, format)
	location, err := s.s3.UploadBytes(fileName, data, contentType)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to upload export file")
		return finance.ExportResponse{}, finance.ErrExportUploadFailed
	}

	url, err := s.s3.PresignUrl(location)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to presign export file")
		return finance.ExportResponse{}, finance.ErrExportUploadFailed
	}

	return finance.ExportResponse{
		Format: format,
		URL:    url,
	}, nil
}

func buildExportRows(transactions []entity.Transaction, categories []entity.Category) []export.TransactionRow {
	type categoryInfo struct {
		name         string
		categoryType string
	}

	byID := make(map[string]categoryInfo, len(categories))
	for _, category := range categories {
		byID[category.ID] = categoryInfo{name: category.Name, categoryType: category.Type}
	}

	rows := make([]export.TransactionRow, 0, len(transactions))
	for _, transaction := range transactions {
		info := categoryInfo{name: "Sem categoria", categoryType: string(entity.CategoryTypeExpense)}
		if transaction.CategoryID != nil {
			if found, ok := byID[*transaction.CategoryID]; ok {
				info = found
			}
		}

		rows = append(rows, export.TransactionRow{
			Date:     transaction.Timestamp.Format("2006-01-02"),
			Category: info.name,
			Type:     info.categoryType,
			Amount:   transaction.Amount,
			RawText:  transaction.RawText,
		})
	}

	return rows
}
