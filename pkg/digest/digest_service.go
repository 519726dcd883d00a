// Package digest builds the daily "use it or lose it" summary and mails it.
package digest

import (
	"Smart-Shelf-Backend/domain"
	"Smart-Shelf-Backend/entities"
	"Smart-Shelf-Backend/internal/utils/mailing"
	"Smart-Shelf-Backend/pkg/shelf"
	"Smart-Shelf-Backend/pkg/store"
	"Smart-Shelf-Backend/pkg/urgency"
	"context"
	"fmt"
	"html"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2/log"
)

type (
	DigestService interface {
		GetDigest(ctx context.Context) (domain.DigestResponse, error)
		SendDigest(ctx context.Context) (domain.SendDigestResponse, error)
	}

	digestService struct {
		store     *store.Store
		mailer    mailing.Mailer
		recipient string
		now       func() time.Time
	}
)

// NewDigestService wires the digest to a mailer. A nil mailer disables sending.
func NewDigestService(st *store.Store, mailer mailing.Mailer, recipient string, now func() time.Time) DigestService {
	if now == nil {
		now = time.Now
	}
	return &digestService{
		store:     st,
		mailer:    mailer,
		recipient: recipient,
		now:       now,
	}
}

func Headline(total int) string {
	if total > 0 {
		return fmt.Sprintf("%d items need attention.", total)
	}
	return "You're all caught up!"
}

// Build collects the urgent and soon active items as seen at now.
func Build(items []entities.ShelfItem, now time.Time) domain.DigestResponse {
	groups := urgency.Group(items, now)
	res := domain.DigestResponse{
		TotalActionNeeded: groups.ActionNeeded(),
		Urgent:            make([]domain.ShelfItemResponse, 0, len(groups.Urgent)),
		Soon:              make([]domain.ShelfItemResponse, 0, len(groups.Soon)),
	}
	for _, item := range groups.Urgent {
		res.Urgent = append(res.Urgent, shelf.ToResponse(item, now))
	}
	for _, item := range groups.Soon {
		res.Soon = append(res.Soon, shelf.ToResponse(item, now))
	}
	res.Headline = Headline(res.TotalActionNeeded)
	return res
}

func minutesOfDay(hhmm string) (int, bool) {
	t, err := time.Parse(domain.TimeOfDayLayout, hhmm)
	if err != nil {
		return 0, false
	}
	return t.Hour()*60 + t.Minute(), true
}

// InQuietHours reports whether now falls in [start, end). The window wraps
// midnight when start is later than end; equal bounds mean no quiet hours.
func InQuietHours(now time.Time, start, end string) bool {
	from, ok := minutesOfDay(start)
	if !ok {
		return false
	}
	to, ok := minutesOfDay(end)
	if !ok || from == to {
		return false
	}

	cur := now.Hour()*60 + now.Minute()
	if from < to {
		return cur >= from && cur < to
	}
	return cur >= from || cur < to
}

func (s *digestService) GetDigest(ctx context.Context) (domain.DigestResponse, error) {
	return Build(s.store.Items(), s.now()), nil
}

func (s *digestService) SendDigest(ctx context.Context) (domain.SendDigestResponse, error) {
	if s.mailer == nil {
		return domain.SendDigestResponse{}, domain.ErrFeatureDisabled
	}
	if s.recipient == "" {
		return domain.SendDigestResponse{}, domain.ErrNoRecipient
	}

	now := s.now()
	settings := s.store.Settings()
	if InQuietHours(now, settings.QuietHoursStart, settings.QuietHoursEnd) {
		return domain.SendDigestResponse{}, domain.ErrQuietHours
	}

	digest := Build(s.store.Items(), now)
	if digest.TotalActionNeeded == 0 {
		return domain.SendDigestResponse{}, domain.ErrNothingToSend
	}

	res := domain.SendDigestResponse{
		Style:     settings.NotificationStyle,
		Recipient: s.recipient,
	}

	// "digest" is the summary alone; "all" adds one alert per urgent item.
	switch settings.NotificationStyle {
	case domain.NotificationDigest, domain.NotificationAll:
	default:
		return res, domain.ErrInvalidNotificationStyle
	}

	if err := s.mailer.SendMail(s.recipient, "Today's Smart Shelf: "+digest.Headline, digestBody(digest)); err != nil {
		return res, fmt.Errorf("send digest: %w", err)
	}
	res.Sent = 1

	if settings.NotificationStyle == domain.NotificationAll {
		for _, item := range digest.Urgent {
			if err := s.mailer.SendMail(s.recipient, itemSubject(item), itemBody(item)); err != nil {
				return res, fmt.Errorf("send alert for %s: %w", item.Name, err)
			}
			res.Sent++
		}
	}

	log.Infof("sent %d %s notification(s) to %s", res.Sent, res.Style, s.recipient)
	return res, nil
}

func itemSubject(item domain.ShelfItemResponse) string {
	if item.Label == nil {
		return item.Name
	}
	return fmt.Sprintf("%s: %s", item.Name, item.Label.Text)
}

func itemLine(item domain.ShelfItemResponse) string {
	line := "<li><strong>" + html.EscapeString(item.Name) + "</strong> (" + html.EscapeString(string(item.Storage)) + ")"
	if item.Label != nil {
		line += " - " + html.EscapeString(item.Label.Text)
	}
	return line + "</li>"
}

func itemBody(item domain.ShelfItemResponse) string {
	return "<ul>" + itemLine(item) + "</ul>"
}

func digestBody(d domain.DigestResponse) string {
	var b strings.Builder
	b.WriteString("<h2>" + html.EscapeString(d.Headline) + "</h2>")
	section := func(title string, items []domain.ShelfItemResponse) {
		if len(items) == 0 {
			return
		}
		b.WriteString("<h3>" + title + "</h3><ul>")
		for _, item := range items {
			b.WriteString(itemLine(item))
		}
		b.WriteString("</ul>")
	}
	section("Use today", d.Urgent)
	section("Plan next", d.Soon)
	return b.String()
}
