package urgency

import (
	"Smart-Shelf-Backend/domain"
	"Smart-Shelf-Backend/entities"
	"time"
)

type Groups struct {
	Urgent []entities.ShelfItem
	Soon   []entities.ShelfItem
	Safe   []entities.ShelfItem
}

func (g Groups) ActionNeeded() int {
	return len(g.Urgent) + len(g.Soon)
}

func (g Groups) Total() int {
	return len(g.Urgent) + len(g.Soon) + len(g.Safe)
}

// Group splits the active items into urgency tiers, preserving input order.
// Consumed and discarded items are dropped.
func Group(items []entities.ShelfItem, now time.Time) Groups {
	var g Groups
	for _, item := range items {
		if !item.IsActive() {
			continue
		}
		switch Classify(item.ExpiryDate, now) {
		case domain.UrgencyUrgent:
			g.Urgent = append(g.Urgent, item)
		case domain.UrgencySoon:
			g.Soon = append(g.Soon, item)
		case domain.UrgencySafe:
			g.Safe = append(g.Safe, item)
		}
	}
	return g
}
