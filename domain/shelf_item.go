package domain

import (
	"errors"
	"time"
)

type (
	Category        string
	StorageLocation string
	ItemStatus      string
	Urgency         string
)

const (
	CategoryDairy       Category = "Dairy"
	CategoryMeatSeafood Category = "Meat/Seafood"
	CategoryProduce     Category = "Produce"
	CategoryBakery      Category = "Bakery"
	CategoryPantry      Category = "Pantry"
	CategoryFrozen      Category = "Frozen"
	CategoryLeftovers   Category = "Leftovers"
	CategoryDrinks      Category = "Drinks"
	CategorySnacks      Category = "Snacks"
	CategoryOther       Category = "Other"

	StorageFridge  StorageLocation = "Fridge"
	StoragePantry  StorageLocation = "Pantry"
	StorageFreezer StorageLocation = "Freezer"

	StatusActive    ItemStatus = "active"
	StatusConsumed  ItemStatus = "consumed"
	StatusDiscarded ItemStatus = "discarded"

	UrgencyUrgent Urgency = "urgent"
	UrgencySoon   Urgency = "soon"
	UrgencySafe   Urgency = "safe"

	// FreezeExtensionMonths is added to the current expiry on every freeze.
	FreezeExtensionMonths = 3
)

var (
	Categories = []Category{
		CategoryDairy, CategoryMeatSeafood, CategoryProduce, CategoryBakery, CategoryPantry,
		CategoryFrozen, CategoryLeftovers, CategoryDrinks, CategorySnacks, CategoryOther,
	}
	StorageLocations = []StorageLocation{StorageFridge, StoragePantry, StorageFreezer}
	DiscardReasons   = []string{"Spoiled", "Forgot", "Cooked too much", "Didn't like it", "Other"}
)

func (c Category) Valid() bool {
	switch c {
	case CategoryDairy, CategoryMeatSeafood, CategoryProduce, CategoryBakery, CategoryPantry,
		CategoryFrozen, CategoryLeftovers, CategoryDrinks, CategorySnacks, CategoryOther:
		return true
	default:
		return false
	}
}

// DefaultShelfLifeDays is the number of days between acquisition and expiry
// assumed for a category when the user does not supply one.
func (c Category) DefaultShelfLifeDays() int {
	switch c {
	case CategoryDairy:
		return 7
	case CategoryMeatSeafood:
		return 3
	case CategoryProduce:
		return 5
	case CategoryBakery:
		return 4
	case CategoryPantry:
		return 30
	case CategoryFrozen:
		return 90
	case CategoryLeftovers:
		return 3
	case CategoryDrinks:
		return 10
	case CategorySnacks:
		return 14
	case CategoryOther:
		return 7
	default:
		return 7
	}
}

func (s StorageLocation) Valid() bool {
	switch s {
	case StorageFridge, StoragePantry, StorageFreezer:
		return true
	default:
		return false
	}
}

func (s ItemStatus) Valid() bool {
	switch s {
	case StatusActive, StatusConsumed, StatusDiscarded:
		return true
	default:
		return false
	}
}

// Terminal reports whether no further lifecycle transition is allowed.
func (s ItemStatus) Terminal() bool {
	switch s {
	case StatusConsumed, StatusDiscarded:
		return true
	case StatusActive:
		return false
	default:
		return false
	}
}

func (u Urgency) Valid() bool {
	switch u {
	case UrgencyUrgent, UrgencySoon, UrgencySafe:
		return true
	default:
		return false
	}
}

var (
	MessageSuccessAddShelfItem     = "shelf item added successfully"
	MessageSuccessUpdateShelfItem  = "shelf item updated successfully"
	MessageSuccessDeleteShelfItem  = "shelf item deleted successfully"
	MessageSuccessGetShelfItems    = "shelf items retrieved successfully"
	MessageSuccessGetShelfItem     = "shelf item retrieved successfully"
	MessageSuccessConsumeShelfItem = "shelf item marked as consumed"
	MessageSuccessDiscardShelfItem = "shelf item marked as discarded"
	MessageSuccessFreezeShelfItem  = "shelf item moved to the freezer"
	MessageSuccessGetDashboard     = "dashboard retrieved successfully"
	MessageSuccessGetAddItemHints  = "add item hints retrieved successfully"

	MessageFailedAddShelfItem     = "failed to add shelf item"
	MessageFailedUpdateShelfItem  = "failed to update shelf item"
	MessageFailedDeleteShelfItem  = "failed to delete shelf item"
	MessageFailedGetShelfItems    = "failed to retrieve shelf items"
	MessageFailedGetShelfItem     = "failed to retrieve shelf item"
	MessageFailedConsumeShelfItem = "failed to mark shelf item as consumed"
	MessageFailedDiscardShelfItem = "failed to mark shelf item as discarded"
	MessageFailedFreezeShelfItem  = "failed to move shelf item to the freezer"
	MessageFailedGetDashboard     = "failed to retrieve dashboard"

	ErrShelfItemNotFound  = errors.New("shelf item not found")
	ErrShelfItemNotActive = errors.New("shelf item is no longer active")
	ErrInvalidItemName    = errors.New("item name must not be blank")
	ErrInvalidAddedDate   = errors.New("invalid added date")
	ErrInvalidExpiryDate  = errors.New("invalid expiry date")
	ErrInvalidShelfLife   = errors.New("shelf life must be at least one day")
	ErrInvalidCategory    = errors.New("invalid category")
	ErrInvalidStorage     = errors.New("invalid storage location")
	ErrInvalidStatus      = errors.New("invalid item status")
)

type (
	AddShelfItemRequest struct {
		Name          string `json:"name" validate:"required"`
		Category      string `json:"category" validate:"required"`
		Storage       string `json:"storage" validate:"required"`
		AddedDate     string `json:"added_date" validate:"omitempty,datetime=2006-01-02"`
		ShelfLifeDays int    `json:"shelf_life_days" validate:"omitempty,min=1"`
	}

	UpdateShelfItemRequest struct {
		Name       string `json:"name" validate:"omitempty"`
		Category   string `json:"category" validate:"omitempty"`
		Storage    string `json:"storage" validate:"omitempty"`
		AddedDate  string `json:"added_date" validate:"omitempty,datetime=2006-01-02"`
		ExpiryDate string `json:"expiry_date" validate:"omitempty,datetime=2006-01-02"`
	}

	DiscardShelfItemRequest struct {
		Reason string `json:"reason" validate:"omitempty,max=200"`
	}

	ShelfItemResponse struct {
		ID            string          `json:"id"`
		Name          string          `json:"name"`
		Category      Category        `json:"category"`
		Storage       StorageLocation `json:"storage"`
		AddedDate     time.Time       `json:"added_date"`
		ExpiryDate    time.Time       `json:"expiry_date"`
		Status        ItemStatus      `json:"status"`
		DiscardReason string          `json:"discard_reason,omitempty"`
		Urgency       Urgency         `json:"urgency,omitempty"`
		DaysLeft      int             `json:"days_left"`
		Label         *StatusLabel    `json:"label,omitempty"`
	}

	StatusLabel struct {
		Text    string `json:"text"`
		Variant string `json:"variant"`
	}

	DashboardResponse struct {
		Urgent      []ShelfItemResponse `json:"urgent"`
		Soon        []ShelfItemResponse `json:"soon"`
		Safe        []ShelfItemResponse `json:"safe"`
		ActiveCount int                 `json:"active_count"`
	}

	QuickPick struct {
		Name          string   `json:"name"`
		Category      Category `json:"category,omitempty"`
		ShelfLifeDays int      `json:"shelf_life_days,omitempty"`
	}

	AddItemHintsResponse struct {
		Categories       []Category        `json:"categories"`
		StorageLocations []StorageLocation `json:"storage_locations"`
		DefaultLives     map[Category]int  `json:"default_shelf_lives"`
		QuickPicks       []QuickPick       `json:"quick_picks"`
		RecentItems      []string          `json:"recent_items"`
		DiscardReasons   []string          `json:"discard_reasons"`
	}
)
