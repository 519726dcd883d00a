package entities

import (
	"time"
)

type Timestamp struct {
	CreatedAt time.Time `gorm:"type:timestamp with time zone" json:"created_at"`
	UpdatedAt time.Time `gorm:"type:timestamp with time zone" json:"updated_at"`
}

// StoreRecord holds the whole serialized shelf state under one fixed name.
type StoreRecord struct {
	Name    string `gorm:"primaryKey;type:varchar(128)" json:"name"`
	Payload string `gorm:"type:text;not null" json:"payload"`

	Timestamp
}

func (StoreRecord) TableName() string {
	return "store_records"
}
