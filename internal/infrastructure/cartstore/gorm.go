package cartstore

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/raamdecor/storefront/internal/domain/cart"
)

// cartSnapshotRow is the relational shape of a persisted cart. One row per
// cart id; the snapshot envelope is stored opaque, so schema evolution of
// the line-item shape never needs a column migration.
type cartSnapshotRow struct {
	CartID    string `gorm:"primaryKey;size:64"`
	Snapshot  []byte `gorm:"type:blob;not null"`
	UpdatedAt time.Time
}

// TableName overrides the GORM default
func (cartSnapshotRow) TableName() string {
	return "cart_snapshots"
}

// GormStore implements cart.Store on a relational database via GORM.
// Used when cart state must survive restarts without a Redis deployment.
type GormStore struct {
	db        *gorm.DB
	retention time.Duration
	logger    *zap.Logger
	now       func() time.Time
}

// NewGormStore creates a database-backed cart store and migrates its table
func NewGormStore(db *gorm.DB, retention time.Duration, logger *zap.Logger) (*GormStore, error) {
	if retention <= 0 {
		retention = cart.DefaultRetention
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if err := db.AutoMigrate(&cartSnapshotRow{}); err != nil {
		return nil, fmt.Errorf("failed to migrate cart snapshot table: %w", err)
	}
	return &GormStore{
		db:        db,
		retention: retention,
		logger:    logger,
		now:       time.Now,
	}, nil
}

// Load returns the cart for the id, or nil if absent or discarded
func (s *GormStore) Load(ctx context.Context, cartID string) (*cart.Cart, error) {
	var row cartSnapshotRow
	err := s.db.WithContext(ctx).First(&row, "cart_id = ?", cartID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load cart %s: %w", cartID, err)
	}

	c, reason := cart.DecodeSnapshot(row.Snapshot, s.now(), s.retention)
	if reason != cart.DiscardNone {
		s.logger.Info("discarding stored cart",
			zap.String("cart_id", cartID),
			zap.String("reason", string(reason)))
		if err := s.Delete(ctx, cartID); err != nil {
			s.logger.Warn("failed to delete discarded cart",
				zap.String("cart_id", cartID), zap.Error(err))
		}
		return nil, nil
	}
	return c, nil
}

// Save persists a full snapshot of the cart, inserting or replacing the row
func (s *GormStore) Save(ctx context.Context, cartID string, c *cart.Cart) error {
	data, err := cart.EncodeSnapshot(c, s.now())
	if err != nil {
		return err
	}
	row := cartSnapshotRow{
		CartID:    cartID,
		Snapshot:  data,
		UpdatedAt: s.now(),
	}
	err = s.db.WithContext(ctx).Save(&row).Error
	if err != nil {
		return fmt.Errorf("failed to save cart %s: %w", cartID, err)
	}
	return nil
}

// Delete removes any persisted snapshot for the id
func (s *GormStore) Delete(ctx context.Context, cartID string) error {
	err := s.db.WithContext(ctx).Delete(&cartSnapshotRow{}, "cart_id = ?", cartID).Error
	if err != nil {
		return fmt.Errorf("failed to delete cart %s: %w", cartID, err)
	}
	return nil
}

// PruneExpired deletes rows whose last write is older than the retention
// window. Lazy discard on load already hides these; pruning keeps the table
// from growing unbounded and is meant to run from a periodic job.
func (s *GormStore) PruneExpired(ctx context.Context) (int64, error) {
	cutoff := s.now().Add(-s.retention)
	result := s.db.WithContext(ctx).Delete(&cartSnapshotRow{}, "updated_at < ?", cutoff)
	if result.Error != nil {
		return 0, fmt.Errorf("failed to prune expired carts: %w", result.Error)
	}
	return result.RowsAffected, nil
}

var _ cart.Store = (*GormStore)(nil)
