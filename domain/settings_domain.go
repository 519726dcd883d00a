package domain

import (
	"errors"
)

type NotificationStyle string

const (
	NotificationDigest NotificationStyle = "digest"
	NotificationAll    NotificationStyle = "all"
)

func (n NotificationStyle) Valid() bool {
	switch n {
	case NotificationDigest, NotificationAll:
		return true
	default:
		return false
	}
}

var (
	MessageSuccessGetSettings    = "settings retrieved successfully"
	MessageSuccessUpdateSettings = "settings updated successfully"
	MessageSuccessCompleteSetup  = "setup completed"

	MessageFailedGetSettings    = "failed to retrieve settings"
	MessageFailedUpdateSettings = "failed to update settings"
	MessageFailedCompleteSetup  = "failed to complete setup"

	ErrInvalidTimeOfDay         = errors.New("time of day must be formatted as HH:MM")
	ErrInvalidNotificationStyle = errors.New("notification style must be digest or all")
)

type (
	UpdateSettingsRequest struct {
		SetupComplete     *bool   `json:"setupComplete"`
		ReminderTime      *string `json:"reminderTime" validate:"omitempty,timeofday"`
		QuietHoursStart   *string `json:"quietHoursStart" validate:"omitempty,timeofday"`
		QuietHoursEnd     *string `json:"quietHoursEnd" validate:"omitempty,timeofday"`
		NotificationStyle *string `json:"notificationStyle" validate:"omitempty,oneof=digest all"`
	}
)
