// Package postgres implements the subscription store on top of GORM.
// Every predicate is passed as a bound parameter.
package postgres

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/Conte777/MinaAlerts/internal/domain/subscription/deps"
	"github.com/Conte777/MinaAlerts/internal/domain/subscription/entities"
)

const identityAndKey = "telegram_id = ? AND telegram_name = ? AND telegram_first = ? AND public_key = ?"

const identityOnly = "telegram_id = ? AND telegram_name = ? AND telegram_first = ?"

// Repository stores subscriptions in the blocks and transactions tables
type Repository struct {
	db      *gorm.DB
	timeout time.Duration
}

// NewRepository creates a repository. A positive timeout bounds every call.
func NewRepository(db *gorm.DB, timeout time.Duration) *Repository {
	return &Repository{db: db, timeout: timeout}
}

var _ deps.SubscriptionStore = (*Repository)(nil)

func (r *Repository) session(ctx context.Context) (*gorm.DB, context.CancelFunc) {
	if r.timeout <= 0 {
		return r.db.WithContext(ctx), func() {}
	}
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	return r.db.WithContext(ctx), cancel
}

func (r *Repository) Insert(ctx context.Context, category entities.Category, identity entities.Identity, publicKey string) (uint, error) {
	db, cancel := r.session(ctx)
	defer cancel()

	row := entities.Subscription{
		TelegramID:    identity.TelegramID,
		TelegramName:  identity.TelegramName,
		TelegramFirst: identity.TelegramFirst,
		PublicKey:     publicKey,
	}

	if err := db.Table(category.Table()).Create(&row).Error; err != nil {
		return 0, classify(err)
	}

	return row.ID, nil
}

func (r *Repository) Find(ctx context.Context, category entities.Category, identity entities.Identity, publicKey string) ([]uint, error) {
	db, cancel := r.session(ctx)
	defer cancel()

	var ids []uint
	err := db.Table(category.Table()).
		Where(identityAndKey, identity.TelegramID, identity.TelegramName, identity.TelegramFirst, publicKey).
		Order("id").
		Pluck("id", &ids).Error
	if err != nil {
		return nil, classify(err)
	}

	return ids, nil
}

func (r *Repository) IDs(ctx context.Context, category entities.Category, identity entities.Identity) ([]uint, error) {
	db, cancel := r.session(ctx)
	defer cancel()

	var ids []uint
	err := db.Table(category.Table()).
		Where(identityOnly, identity.TelegramID, identity.TelegramName, identity.TelegramFirst).
		Order("id").
		Pluck("id", &ids).Error
	if err != nil {
		return nil, classify(err)
	}

	return ids, nil
}

func (r *Repository) List(ctx context.Context, category entities.Category, identity entities.Identity) ([]entities.Subscription, error) {
	db, cancel := r.session(ctx)
	defer cancel()

	var rows []entities.Subscription
	err := db.Table(category.Table()).
		Where(identityOnly, identity.TelegramID, identity.TelegramName, identity.TelegramFirst).
		Order("created_at, id").
		Find(&rows).Error
	if err != nil {
		return nil, classify(err)
	}

	for i := range rows {
		rows[i].Category = category
	}

	return rows, nil
}

func (r *Repository) Delete(ctx context.Context, category entities.Category, ids []uint) error {
	if len(ids) == 0 {
		return nil
	}

	db, cancel := r.session(ctx)
	defer cancel()

	err := db.Table(category.Table()).
		Where("id IN ?", ids).
		Delete(&entities.Subscription{}).Error
	if err != nil {
		return classify(err)
	}

	return nil
}

// Atomic serializes all work on one identity with a transaction-scoped
// advisory lock keyed by the Telegram user id.
func (r *Repository) Atomic(ctx context.Context, identity entities.Identity, fn func(store deps.SubscriptionStore) error) error {
	db, cancel := r.session(ctx)
	defer cancel()

	err := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec("SELECT pg_advisory_xact_lock(?)", identity.TelegramID).Error; err != nil {
			return classify(err)
		}
		return fn(&Repository{db: tx})
	})

	return classify(err)
}

func (r *Repository) Ping(ctx context.Context) error {
	sqlDB, err := r.db.DB()
	if err != nil {
		return classify(err)
	}

	ctx, cancel := context.WithTimeout(ctx, r.pingTimeout())
	defer cancel()

	return classify(sqlDB.PingContext(ctx))
}

func (r *Repository) pingTimeout() time.Duration {
	if r.timeout > 0 {
		return r.timeout
	}
	return 5 * time.Second
}
