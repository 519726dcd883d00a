package store

import (
	"Smart-Shelf-Backend/entities"
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// PostgresPersister keeps the record as one row of the store_records table.
type PostgresPersister struct {
	db   *gorm.DB
	name string
}

func NewPostgresPersister(db *gorm.DB, name string) *PostgresPersister {
	return &PostgresPersister{db: db, name: name}
}

func (p *PostgresPersister) Load(ctx context.Context) ([]byte, error) {
	var rec entities.StoreRecord
	if err := p.db.WithContext(ctx).Where("name = ?", p.name).First(&rec).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return []byte(rec.Payload), nil
}

func (p *PostgresPersister) Save(ctx context.Context, data []byte) error {
	now := time.Now()
	rec := entities.StoreRecord{
		Name:    p.name,
		Payload: string(data),
		Timestamp: entities.Timestamp{
			CreatedAt: now,
			UpdatedAt: now,
		},
	}
	return p.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "name"}},
		DoUpdates: clause.AssignmentColumns([]string{"payload", "updated_at"}),
	}).Create(&rec).Error
}
