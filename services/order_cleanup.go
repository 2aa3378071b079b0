package services

import (
	"context"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/storecraft/admin-api/logger"
	"github.com/storecraft/admin-api/models"
)

// OrderCleanupService removes stale unpaid orders. Checkout deletes its own
// order when session creation fails, but orders abandoned at the provider's
// payment page (or lost to a crash between the insert and the session call)
// would otherwise accumulate forever as permanently-unpaid rows.
type OrderCleanupService struct {
	db  *gorm.DB
	ttl time.Duration
}

// NewOrderCleanupService creates a sweeper that treats unpaid orders older
// than ttl as abandoned.
func NewOrderCleanupService(db *gorm.DB, ttl time.Duration) *OrderCleanupService {
	return &OrderCleanupService{db: db, ttl: ttl}
}

// PurgeStaleOrders deletes unpaid orders created before the TTL cutoff,
// along with their items, and returns how many orders were removed.
// Paid orders are never touched.
func (s *OrderCleanupService) PurgeStaleOrders() (int64, error) {
	cutoff := time.Now().Add(-s.ttl).Unix()

	var ids []string
	if err := s.db.Model(&models.Order{}).
		Where("is_paid = ? AND created_at < ?", false, cutoff).
		Pluck("id", &ids).Error; err != nil {
		return 0, err
	}
	if len(ids) == 0 {
		return 0, nil
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("order_id IN ?", ids).Delete(&models.OrderItem{}).Error; err != nil {
			return err
		}
		return tx.Where("id IN ?", ids).Delete(&models.Order{}).Error
	})
	if err != nil {
		return 0, err
	}

	return int64(len(ids)), nil
}

// Run sweeps on the given interval until the context is cancelled.
func (s *OrderCleanupService) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			purged, err := s.PurgeStaleOrders()
			if err != nil {
				logger.L().Error("Stale order sweep failed", zap.Error(err))
				continue
			}
			if purged > 0 {
				logger.L().Info("Purged stale unpaid orders", zap.Int64("count", purged))
			}
		}
	}
}
