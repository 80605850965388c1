package analysis

import (
	"FinTrackGolang/pkg/response"
	"net/http"
)

var (
	ErrInsightNotFound    = response.NewError(http.StatusNotFound, "insight not found")
	ErrInvalidInsightType = response.NewError(http.StatusBadRequest, "insight type must be summary, forecast or anomaly")
	ErrChatUnavailable    = response.NewError(http.StatusBadGateway, "chat agent is unavailable")
	ErrChatNotConfigured  = response.NewError(http.StatusServiceUnavailable, "chat agent is not configured")
)
