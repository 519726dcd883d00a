package config

import (
	migration "Smart-Shelf-Backend/cmd/database/migrate"
	"Smart-Shelf-Backend/internal/utils"
	"Smart-Shelf-Backend/pkg/store"
	"context"
	"fmt"

	"github.com/gofiber/fiber/v2/log"
)

// NewPersister opens the backend named by STORE_DRIVER. The returned func
// releases whatever connection or lock the backend holds.
func NewPersister(ctx context.Context) (store.Persister, func() error, error) {
	switch driver := utils.GetConfig("STORE_DRIVER"); driver {
	case "", "file":
		p := store.NewFilePersister(utils.GetConfig("STORE_PATH"))
		return p, p.Close, nil
	case "postgres":
		db, err := ConnectDB()
		if err != nil {
			return nil, nil, err
		}
		if err := migration.Migrate(db); err != nil {
			return nil, nil, err
		}
		sqlDB, err := db.DB()
		if err != nil {
			return nil, nil, err
		}
		return store.NewPostgresPersister(db, utils.GetConfig("STORE_NAME")), sqlDB.Close, nil
	case "redis":
		client, err := ConnectRedis(ctx)
		if err != nil {
			return nil, nil, err
		}
		return store.NewRedisPersister(client, utils.GetConfig("STORE_NAME")), client.Close, nil
	default:
		return nil, nil, fmt.Errorf("unknown STORE_DRIVER %q", driver)
	}
}

// OpenStore loads the persisted store and, for the file backend with
// STORE_WATCH enabled, follows external edits of the store file.
func OpenStore(ctx context.Context) (*store.Store, func() error, error) {
	persister, closeFn, err := NewPersister(ctx)
	if err != nil {
		return nil, nil, err
	}

	st := store.NewStore(persister, store.WithSeedItems(utils.GetBoolConfig("SEED_DEMO_ITEMS")))
	if err := st.Load(ctx); err != nil {
		_ = closeFn()
		return nil, nil, err
	}

	st.Subscribe(func(s store.State) {
		log.Debugf("store changed: %d items", len(s.Items))
	})

	if fp, ok := persister.(*store.FilePersister); ok && utils.GetBoolConfig("STORE_WATCH") {
		err := fp.Watch(ctx, func(data []byte) {
			changed, err := st.ApplyExternal(data)
			if err != nil {
				log.Warnf("ignoring external store edit: %v", err)
				return
			}
			if changed {
				log.Infof("reloaded store from %s", fp.Path())
			}
		}, func(err error) {
			log.Warnf("store watcher: %v", err)
		})
		if err != nil {
			log.Warnf("store watch disabled: %v", err)
		}
	}

	return st, closeFn, nil
}
