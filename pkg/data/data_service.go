package data

import (
	"Smart-Shelf-Backend/domain"
	"Smart-Shelf-Backend/internal/utils/storage"
	"Smart-Shelf-Backend/pkg/store"
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2/log"
)

const exportContentType = "application/json"

type (
	DataService interface {
		Export(ctx context.Context) ([]byte, error)
		ExportToS3(ctx context.Context) (domain.ExportUploadResponse, error)
		Reset(ctx context.Context) error
	}

	dataService struct {
		store *store.Store
		s3    storage.AwsS3
		now   func() time.Time
	}
)

// NewDataService exposes export and reset. A nil s3 disables uploads.
func NewDataService(st *store.Store, s3 storage.AwsS3, now func() time.Time) DataService {
	if now == nil {
		now = time.Now
	}
	return &dataService{
		store: st,
		s3:    s3,
		now:   now,
	}
}

func ExportFileName(now time.Time) string {
	return fmt.Sprintf("smart-shelf-export-%s.json", now.UTC().Format("20060102-150405"))
}

func (s *dataService) Export(ctx context.Context) ([]byte, error) {
	return s.store.Export()
}

func (s *dataService) ExportToS3(ctx context.Context) (domain.ExportUploadResponse, error) {
	if s.s3 == nil {
		return domain.ExportUploadResponse{}, domain.ErrFeatureDisabled
	}

	payload, err := s.store.Export()
	if err != nil {
		return domain.ExportUploadResponse{}, err
	}

	key := "exports/" + ExportFileName(s.now())
	objectKey, err := s.s3.UploadBytes(ctx, key, exportContentType, payload)
	if err != nil {
		return domain.ExportUploadResponse{}, fmt.Errorf("%w: %w", domain.ErrExportUploadFailed, err)
	}

	return domain.ExportUploadResponse{
		ObjectKey: objectKey,
		URL:       s.s3.GetPublicLinkKey(objectKey),
	}, nil
}

func (s *dataService) Reset(ctx context.Context) error {
	if err := s.store.Reset(ctx); err != nil {
		if !errors.Is(err, domain.ErrPersistFailed) {
			return err
		}
		log.Warnf("reset store: %v", err)
	}
	log.Info("store reset to initial state")
	return nil
}
