package settings

import (
	"Smart-Shelf-Backend/domain"
	"Smart-Shelf-Backend/entities"
	"Smart-Shelf-Backend/internal/utils"
	"Smart-Shelf-Backend/pkg/store"
	"context"
	"errors"

	"github.com/gofiber/fiber/v2/log"
)

type (
	SettingsService interface {
		GetSettings(ctx context.Context) (entities.UserSettings, error)
		UpdateSettings(ctx context.Context, req domain.UpdateSettingsRequest) (entities.UserSettings, error)
		CompleteSetup(ctx context.Context) (entities.UserSettings, error)
	}

	settingsService struct {
		store *store.Store
	}
)

func NewSettingsService(st *store.Store) SettingsService {
	return &settingsService{store: st}
}

func (s *settingsService) GetSettings(ctx context.Context) (entities.UserSettings, error) {
	return s.store.Settings(), nil
}

func validTime(v *string) bool {
	return v == nil || utils.IsTimeOfDay(*v)
}

func (s *settingsService) UpdateSettings(ctx context.Context, req domain.UpdateSettingsRequest) (entities.UserSettings, error) {
	if !validTime(req.ReminderTime) || !validTime(req.QuietHoursStart) || !validTime(req.QuietHoursEnd) {
		return entities.UserSettings{}, domain.ErrInvalidTimeOfDay
	}

	patch := store.SettingsPatch{
		SetupComplete:   req.SetupComplete,
		ReminderTime:    req.ReminderTime,
		QuietHoursStart: req.QuietHoursStart,
		QuietHoursEnd:   req.QuietHoursEnd,
	}
	if req.NotificationStyle != nil {
		style := domain.NotificationStyle(*req.NotificationStyle)
		if !style.Valid() {
			return entities.UserSettings{}, domain.ErrInvalidNotificationStyle
		}
		patch.NotificationStyle = &style
	}

	return s.apply(ctx, patch)
}

func (s *settingsService) CompleteSetup(ctx context.Context) (entities.UserSettings, error) {
	done := true
	return s.apply(ctx, store.SettingsPatch{SetupComplete: &done})
}

func (s *settingsService) apply(ctx context.Context, patch store.SettingsPatch) (entities.UserSettings, error) {
	updated, err := s.store.UpdateSettings(ctx, patch)
	if err != nil {
		if !errors.Is(err, domain.ErrPersistFailed) {
			return entities.UserSettings{}, err
		}
		log.Warnf("update settings: %v", err)
	}
	return updated, nil
}
