// Package urgency classifies how close an item is to its expiry.
//
// All day arithmetic happens on calendar days in the location of the
// reference time, so a day that is 23 or 25 hours long across a DST switch
// still counts as one day.
package urgency

import (
	"Smart-Shelf-Backend/domain"
	"fmt"
	"time"
)

const (
	urgentWithinDays = 1
	soonWithinDays   = 3
)

// Classify maps an expiry instant to an urgency tier relative to now.
func Classify(expiry, now time.Time) domain.Urgency {
	days := WholeDays(expiry, now)
	if expiry.Before(now) || SameDay(expiry, now) || days <= urgentWithinDays {
		return domain.UrgencyUrgent
	}
	if days <= soonWithinDays {
		return domain.UrgencySoon
	}
	return domain.UrgencySafe
}

// WholeDays returns the number of full days from now until expiry, negative
// when expiry is in the past. A trailing partial day is not counted.
func WholeDays(expiry, now time.Time) int {
	expiry = expiry.In(now.Location())

	sign := compareLocal(expiry, now)
	if sign == 0 {
		return 0
	}

	diff := CalendarDays(expiry, now)
	if diff < 0 {
		diff = -diff
	}

	// step back over the whole calendar days and see whether the last one was full
	shifted := expiry.AddDate(0, 0, -sign*diff)
	if compareLocal(shifted, now) == -sign {
		diff--
	}
	return sign * diff
}

// CalendarDays counts day boundaries between the dates of a and b, ignoring
// the time of day.
func CalendarDays(a, b time.Time) int {
	a = a.In(b.Location())
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	da := time.Date(ay, am, ad, 0, 0, 0, 0, time.UTC)
	db := time.Date(by, bm, bd, 0, 0, 0, 0, time.UTC)
	return int(da.Sub(db).Hours() / 24)
}

// SameDay reports whether a falls on the same calendar day as b in b's location.
func SameDay(a, b time.Time) bool {
	return CalendarDays(a, b) == 0
}

// HoursLeft is the number of whole hours until expiry, never negative.
func HoursLeft(expiry, now time.Time) int {
	hours := int(expiry.Sub(now).Hours())
	if hours < 0 {
		return 0
	}
	return hours
}

// Describe renders the human status line shown next to an item.
func Describe(expiry, now time.Time) domain.StatusLabel {
	days := WholeDays(expiry, now)

	if expiry.Before(now) && !SameDay(expiry, now) {
		ago := -days
		return domain.StatusLabel{
			Text:    fmt.Sprintf("Expired %d %s ago", ago, plural(ago, "day", "days")),
			Variant: "destructive",
		}
	}

	switch {
	case SameDay(expiry, now):
		return domain.StatusLabel{Text: "Urgent: expires today", Variant: "destructive"}
	case days <= urgentWithinDays:
		return domain.StatusLabel{Text: "Urgent: expires in 1 day", Variant: "destructive"}
	case days <= soonWithinDays:
		return domain.StatusLabel{Text: fmt.Sprintf("Use soon: %d days left", days), Variant: "accent"}
	default:
		return domain.StatusLabel{Text: fmt.Sprintf("Good for %d days", days), Variant: "secondary"}
	}
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}

// compareLocal orders two instants by their wall clock fields in a's location.
func compareLocal(a, b time.Time) int {
	b = b.In(a.Location())
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	la := time.Date(ay, am, ad, a.Hour(), a.Minute(), a.Second(), a.Nanosecond(), time.UTC)
	lb := time.Date(by, bm, bd, b.Hour(), b.Minute(), b.Second(), b.Nanosecond(), time.UTC)
	switch {
	case la.Before(lb):
		return -1
	case la.After(lb):
		return 1
	default:
		return 0
	}
}
