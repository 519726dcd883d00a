package domain

import (
	"errors"
)

var (
	MessageSuccessGetDigest  = "digest retrieved successfully"
	MessageSuccessSendDigest = "digest sent successfully"

	MessageFailedGetDigest  = "failed to retrieve digest"
	MessageFailedSendDigest = "failed to send digest"

	ErrQuietHours    = errors.New("notifications are muted during quiet hours")
	ErrNothingToSend = errors.New("no items need attention")
	ErrNoRecipient   = errors.New("digest recipient is not configured")
)

type (
	DigestResponse struct {
		Headline          string              `json:"headline"`
		TotalActionNeeded int                 `json:"total_action_needed"`
		Urgent            []ShelfItemResponse `json:"urgent"`
		Soon              []ShelfItemResponse `json:"soon"`
	}

	SendDigestResponse struct {
		Style     NotificationStyle `json:"style"`
		Sent      int               `json:"sent"`
		Recipient string            `json:"recipient"`
	}
)
