package domain

import (
	"errors"
)

var (
	MessageSuccessExportData = "data exported successfully"
	MessageSuccessResetData  = "all data has been reset"

	MessageFailedExportData = "failed to export data"
	MessageFailedResetData  = "failed to reset data"

	ErrExportUploadFailed = errors.New("failed to upload export")
)

type (
	ExportUploadResponse struct {
		ObjectKey string `json:"object_key"`
		URL       string `json:"url"`
	}
)
