package shelf

import (
	"Smart-Shelf-Backend/domain"
	"Smart-Shelf-Backend/entities"
	"Smart-Shelf-Backend/pkg/store"
	"Smart-Shelf-Backend/pkg/urgency"
	"context"
	"errors"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2/log"
)

const recentItemsLimit = 4

type (
	ShelfService interface {
		AddShelfItem(ctx context.Context, req domain.AddShelfItemRequest) (domain.ShelfItemResponse, error)
		UpdateShelfItem(ctx context.Context, id string, req domain.UpdateShelfItemRequest) (domain.ShelfItemResponse, error)
		RemoveShelfItem(ctx context.Context, id string) error
		GetShelfItems(ctx context.Context, status string) ([]domain.ShelfItemResponse, error)
		GetShelfItemByID(ctx context.Context, id string) (domain.ShelfItemResponse, error)
		ConsumeShelfItem(ctx context.Context, id string) (domain.ShelfItemResponse, error)
		DiscardShelfItem(ctx context.Context, id string, reason string) (domain.ShelfItemResponse, error)
		FreezeShelfItem(ctx context.Context, id string) (domain.ShelfItemResponse, error)
		GetDashboard(ctx context.Context) (domain.DashboardResponse, error)
		GetAddItemHints(ctx context.Context) (domain.AddItemHintsResponse, error)
	}

	shelfService struct {
		store *store.Store
		now   func() time.Time
	}
)

func NewShelfService(st *store.Store, now func() time.Time) ShelfService {
	if now == nil {
		now = time.Now
	}
	return &shelfService{
		store: st,
		now:   now,
	}
}

// QuickPicks are the one-tap suggestions on the add-item form.
var QuickPicks = []domain.QuickPick{
	{Name: "Milk", Category: domain.CategoryDairy},
	{Name: "Eggs", Category: domain.CategoryDairy},
	{Name: "Bread", Category: domain.CategoryBakery},
	{Name: "Chicken", Category: domain.CategoryMeatSeafood},
	{Name: "Rice"},
	{Name: "Apples", Category: domain.CategoryProduce},
	{Name: "Leftovers"},
}

func init() {
	for i := range QuickPicks {
		if QuickPicks[i].Category != "" {
			QuickPicks[i].ShelfLifeDays = QuickPicks[i].Category.DefaultShelfLifeDays()
		}
	}
}

// ToResponse renders an item as seen at now. Urgency and label are only
// filled in for active items.
func ToResponse(item entities.ShelfItem, now time.Time) domain.ShelfItemResponse {
	res := domain.ShelfItemResponse{
		ID:            item.ID,
		Name:          item.Name,
		Category:      item.Category,
		Storage:       item.Storage,
		AddedDate:     item.AddedDate,
		ExpiryDate:    item.ExpiryDate,
		Status:        item.Status,
		DiscardReason: item.DiscardReason,
		DaysLeft:      urgency.WholeDays(item.ExpiryDate, now),
	}
	if item.IsActive() {
		label := urgency.Describe(item.ExpiryDate, now)
		res.Urgency = urgency.Classify(item.ExpiryDate, now)
		res.Label = &label
	}
	return res
}

func toResponses(items []entities.ShelfItem, now time.Time) []domain.ShelfItemResponse {
	res := make([]domain.ShelfItemResponse, 0, len(items))
	for _, item := range items {
		res = append(res, ToResponse(item, now))
	}
	return res
}

// warnPersist logs a failed flush and swallows it; the store already holds the change.
func warnPersist(op string, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, domain.ErrPersistFailed) {
		log.Warnf("%s: %v", op, err)
		return nil
	}
	return err
}

func (s *shelfService) parseDate(value string) (time.Time, error) {
	return time.ParseInLocation(domain.DateLayout, value, s.now().Location())
}

func (s *shelfService) AddShelfItem(ctx context.Context, req domain.AddShelfItemRequest) (domain.ShelfItemResponse, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return domain.ShelfItemResponse{}, domain.ErrInvalidItemName
	}
	category := domain.Category(req.Category)
	if !category.Valid() {
		return domain.ShelfItemResponse{}, domain.ErrInvalidCategory
	}
	storage := domain.StorageLocation(req.Storage)
	if !storage.Valid() {
		return domain.ShelfItemResponse{}, domain.ErrInvalidStorage
	}

	now := s.now()
	added := now
	if req.AddedDate != "" {
		parsed, err := s.parseDate(req.AddedDate)
		if err != nil {
			return domain.ShelfItemResponse{}, domain.ErrInvalidAddedDate
		}
		added = parsed
	}

	days := req.ShelfLifeDays
	if days == 0 {
		days = category.DefaultShelfLifeDays()
	}
	if days < 1 {
		return domain.ShelfItemResponse{}, domain.ErrInvalidShelfLife
	}

	item, err := s.store.AddItem(ctx, entities.ShelfItem{
		Name:       name,
		Category:   category,
		Storage:    storage,
		AddedDate:  added,
		ExpiryDate: added.AddDate(0, 0, days),
		Status:     domain.StatusActive,
	})
	if err := warnPersist("add shelf item", err); err != nil {
		return domain.ShelfItemResponse{}, err
	}

	return ToResponse(item, now), nil
}

func (s *shelfService) UpdateShelfItem(ctx context.Context, id string, req domain.UpdateShelfItemRequest) (domain.ShelfItemResponse, error) {
	if _, ok := s.store.Item(id); !ok {
		return domain.ShelfItemResponse{}, domain.ErrShelfItemNotFound
	}

	var patch store.ItemPatch
	if req.Name != "" {
		name := strings.TrimSpace(req.Name)
		if name == "" {
			return domain.ShelfItemResponse{}, domain.ErrInvalidItemName
		}
		patch.Name = &name
	}
	if req.Category != "" {
		category := domain.Category(req.Category)
		if !category.Valid() {
			return domain.ShelfItemResponse{}, domain.ErrInvalidCategory
		}
		patch.Category = &category
	}
	if req.Storage != "" {
		storage := domain.StorageLocation(req.Storage)
		if !storage.Valid() {
			return domain.ShelfItemResponse{}, domain.ErrInvalidStorage
		}
		patch.Storage = &storage
	}
	if req.AddedDate != "" {
		added, err := s.parseDate(req.AddedDate)
		if err != nil {
			return domain.ShelfItemResponse{}, domain.ErrInvalidAddedDate
		}
		patch.AddedDate = &added
	}
	if req.ExpiryDate != "" {
		expiry, err := s.parseDate(req.ExpiryDate)
		if err != nil {
			return domain.ShelfItemResponse{}, domain.ErrInvalidExpiryDate
		}
		patch.ExpiryDate = &expiry
	}

	if !patch.Empty() {
		if err := warnPersist("update shelf item", s.store.UpdateItem(ctx, id, patch)); err != nil {
			return domain.ShelfItemResponse{}, err
		}
	}
	return s.GetShelfItemByID(ctx, id)
}

func (s *shelfService) RemoveShelfItem(ctx context.Context, id string) error {
	if _, ok := s.store.Item(id); !ok {
		return domain.ErrShelfItemNotFound
	}
	return warnPersist("remove shelf item", s.store.RemoveItem(ctx, id))
}

// GetShelfItems lists items in store order. An empty status or "all" lists everything.
func (s *shelfService) GetShelfItems(ctx context.Context, status string) ([]domain.ShelfItemResponse, error) {
	items := s.store.Items()
	if status == "" || status == "all" {
		return toResponses(items, s.now()), nil
	}

	want := domain.ItemStatus(status)
	if !want.Valid() {
		return nil, domain.ErrInvalidStatus
	}
	filtered := make([]entities.ShelfItem, 0, len(items))
	for _, item := range items {
		if item.Status == want {
			filtered = append(filtered, item)
		}
	}
	return toResponses(filtered, s.now()), nil
}

func (s *shelfService) GetShelfItemByID(ctx context.Context, id string) (domain.ShelfItemResponse, error) {
	item, ok := s.store.Item(id)
	if !ok {
		return domain.ShelfItemResponse{}, domain.ErrShelfItemNotFound
	}
	return ToResponse(item, s.now()), nil
}

// transition reports the outcome of a guarded store change. A failed flush
// is only logged; the store already holds the change.
func (s *shelfService) transition(op string, item entities.ShelfItem, err error) (domain.ShelfItemResponse, error) {
	if err := warnPersist(op, err); err != nil {
		return domain.ShelfItemResponse{}, err
	}
	return ToResponse(item, s.now()), nil
}

func (s *shelfService) ConsumeShelfItem(ctx context.Context, id string) (domain.ShelfItemResponse, error) {
	item, err := s.store.ConsumeActive(ctx, id)
	return s.transition("consume shelf item", item, err)
}

func (s *shelfService) DiscardShelfItem(ctx context.Context, id string, reason string) (domain.ShelfItemResponse, error) {
	item, err := s.store.DiscardActive(ctx, id, strings.TrimSpace(reason))
	return s.transition("discard shelf item", item, err)
}

func (s *shelfService) FreezeShelfItem(ctx context.Context, id string) (domain.ShelfItemResponse, error) {
	item, err := s.store.FreezeActive(ctx, id)
	return s.transition("freeze shelf item", item, err)
}

func (s *shelfService) GetDashboard(ctx context.Context) (domain.DashboardResponse, error) {
	now := s.now()
	groups := urgency.Group(s.store.Items(), now)
	return domain.DashboardResponse{
		Urgent:      toResponses(groups.Urgent, now),
		Soon:        toResponses(groups.Soon, now),
		Safe:        toResponses(groups.Safe, now),
		ActiveCount: groups.Total(),
	}, nil
}

func (s *shelfService) GetAddItemHints(ctx context.Context) (domain.AddItemHintsResponse, error) {
	lives := make(map[domain.Category]int, len(domain.Categories))
	for _, c := range domain.Categories {
		lives[c] = c.DefaultShelfLifeDays()
	}

	return domain.AddItemHintsResponse{
		Categories:       domain.Categories,
		StorageLocations: domain.StorageLocations,
		DefaultLives:     lives,
		QuickPicks:       QuickPicks,
		RecentItems:      RecentNames(s.store.Items(), recentItemsLimit),
		DiscardReasons:   domain.DiscardReasons,
	}, nil
}

// RecentNames returns up to limit distinct item names, newest first.
// Names are compared case-insensitively; the first spelling wins.
func RecentNames(items []entities.ShelfItem, limit int) []string {
	seen := make(map[string]struct{}, limit)
	names := make([]string, 0, limit)
	for _, item := range items {
		if len(names) == limit {
			break
		}
		key := strings.ToLower(strings.TrimSpace(item.Name))
		if key == "" {
			continue
		}
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		names = append(names, item.Name)
	}
	return names
}
