package store

import (
	"Smart-Shelf-Backend/domain"
	"Smart-Shelf-Backend/entities"
	"time"
)

// ItemPatch carries the fields to merge into a shelf item; nil fields are left alone.
type ItemPatch struct {
	Name          *string
	Category      *domain.Category
	Storage       *domain.StorageLocation
	AddedDate     *time.Time
	ExpiryDate    *time.Time
	Status        *domain.ItemStatus
	DiscardReason *string
}

func (p ItemPatch) Empty() bool {
	return p.Name == nil && p.Category == nil && p.Storage == nil && p.AddedDate == nil &&
		p.ExpiryDate == nil && p.Status == nil && p.DiscardReason == nil
}

func (p ItemPatch) apply(item *entities.ShelfItem) {
	if p.Name != nil {
		item.Name = *p.Name
	}
	if p.Category != nil {
		item.Category = *p.Category
	}
	if p.Storage != nil {
		item.Storage = *p.Storage
	}
	if p.AddedDate != nil {
		item.AddedDate = *p.AddedDate
	}
	if p.ExpiryDate != nil {
		item.ExpiryDate = *p.ExpiryDate
	}
	if p.Status != nil {
		item.Status = *p.Status
	}
	if p.DiscardReason != nil {
		item.DiscardReason = *p.DiscardReason
	}
}

// SettingsPatch carries the settings fields to merge; nil fields are left alone.
type SettingsPatch struct {
	SetupComplete     *bool
	ReminderTime      *string
	QuietHoursStart   *string
	QuietHoursEnd     *string
	NotificationStyle *domain.NotificationStyle
}

func (p SettingsPatch) apply(s *entities.UserSettings) {
	if p.SetupComplete != nil {
		s.SetupComplete = *p.SetupComplete
	}
	if p.ReminderTime != nil {
		s.ReminderTime = *p.ReminderTime
	}
	if p.QuietHoursStart != nil {
		s.QuietHoursStart = *p.QuietHoursStart
	}
	if p.QuietHoursEnd != nil {
		s.QuietHoursEnd = *p.QuietHoursEnd
	}
	if p.NotificationStyle != nil {
		s.NotificationStyle = *p.NotificationStyle
	}
}
