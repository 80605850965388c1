package finance

import (
	"FinTrackGolang/pkg/response"
	"net/http"
)

var (
	ErrCategoryNotFound      = response.NewError(http.StatusNotFound, "category not found")
	ErrCategoryExists        = response.NewError(http.StatusConflict, "category already exists")
	ErrInvalidCategoryName   = response.NewError(http.StatusBadRequest, "invalid category name")
	ErrInvalidCategoryType   = response.NewError(http.StatusBadRequest, "invalid category type")
	ErrTransactionNotFound   = response.NewError(http.StatusNotFound, "transaction not found")
	ErrInvalidAmount         = response.NewError(http.StatusBadRequest, "invalid transaction amount")
	ErrAmountRequired        = response.NewError(http.StatusBadRequest, "amount is required when it cannot be parsed from the text")
	ErrGoalNotFound          = response.NewError(http.StatusNotFound, "goal not found")
	ErrGoalNameRequired      = response.NewError(http.StatusBadRequest, "goal name is required")
	ErrGoalTargetRequired    = response.NewError(http.StatusBadRequest, "goal target amount is required")
	ErrGoalStartDateRequired = response.NewError(http.StatusBadRequest, "goal start date is required")
	ErrGoalEndDateRequired   = response.NewError(http.StatusBadRequest, "goal end date is required")
	ErrGoalFrequencyRequired = response.NewError(http.StatusBadRequest, "goal frequency is required")
	ErrInvalidExportFormat   = response.NewError(http.StatusBadRequest, "export format must be csv or pdf")
	ErrExportUploadFailed    = response.NewError(http.StatusInternalServerError, "failed to upload export file")
)
