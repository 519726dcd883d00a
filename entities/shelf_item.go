package entities

import (
	"Smart-Shelf-Backend/domain"
	"time"
)

type ShelfItem struct {
	ID            string                 `json:"id"`
	Name          string                 `json:"name"`
	Category      domain.Category        `json:"category"`
	Storage       domain.StorageLocation `json:"storage"`
	AddedDate     time.Time              `json:"addedDate"`
	ExpiryDate    time.Time              `json:"expiryDate"`
	DiscardReason string                 `json:"discardReason,omitempty"`
	Status        domain.ItemStatus      `json:"status"`
}

func (i ShelfItem) IsActive() bool {
	return i.Status == domain.StatusActive
}

type UserSettings struct {
	SetupComplete     bool                     `json:"setupComplete"`
	ReminderTime      string                   `json:"reminderTime"`
	QuietHoursStart   string                   `json:"quietHoursStart"`
	QuietHoursEnd     string                   `json:"quietHoursEnd"`
	NotificationStyle domain.NotificationStyle `json:"notificationStyle"`
}

func DefaultSettings() UserSettings {
	return UserSettings{
		SetupComplete:     false,
		ReminderTime:      "18:00",
		QuietHoursStart:   "22:00",
		QuietHoursEnd:     "08:00",
		NotificationStyle: domain.NotificationDigest,
	}
}
