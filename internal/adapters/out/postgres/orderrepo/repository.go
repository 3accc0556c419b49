package orderrepo

import (
	"context"
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/pkg/errs"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormOrderRepository implements OrderRepository using GORM.
type GormOrderRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormOrderRepository creates a new GORM order repository.
func NewGormOrderRepository(db *gorm.DB, tracker aggregateTracker) *GormOrderRepository {
	return &GormOrderRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new order with its lines and timeline events.
func (r *GormOrderRepository) Add(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto, err := fromDomain(aggregate)
	if err != nil {
		return err
	}

	if err = r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Update saves an existing order using a compare-and-swap on its version.
// A stale version, like a vanished row, means another writer got there first
// and is reported as errs.ErrVersionIsInvalid so the caller can retry from a
// fresh read.
//
// Lines are upserted on their counters; timeline events are append-only and
// already-persisted rows are skipped.
func (r *GormOrderRepository) Update(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto, err := fromDomain(aggregate)
	if err != nil {
		return err
	}

	result := r.db.WithContext(ctx).Model(&OrderDTO{}).
		Where("id = ? AND version = ?", dto.ID, dto.Version).
		Updates(map[string]any{
			"status":           dto.Status,
			"version":          dto.Version + 1,
			"imported_at":      dto.ImportedAt,
			"reserved_at":      dto.ReservedAt,
			"ready_to_ship_at": dto.ReadyToShipAt,
			"shipped_at":       dto.ShippedAt,
			"delivered_at":     dto.DeliveredAt,
			"cancelled_at":     dto.CancelledAt,
			"returned_at":      dto.ReturnedAt,
		})
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return errs.NewVersionIsInvalidError("order")
	}

	if len(dto.Lines) > 0 {
		err = r.db.WithContext(ctx).Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "order_id"}, {Name: "sku"}},
			DoUpdates: clause.AssignmentColumns([]string{"quantity", "reserved_qty", "shipped_qty"}),
		}).Create(&dto.Lines).Error
		if err != nil {
			return err
		}
	}

	if len(dto.Events) > 0 {
		err = r.db.WithContext(ctx).Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "id"}},
			DoNothing: true,
		}).Create(&dto.Events).Error
		if err != nil {
			return err
		}
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Get retrieves an order by id scoped to the tenant. An order owned by a
// different tenant is reported exactly like a missing one.
func (r *GormOrderRepository) Get(ctx context.Context, tenantID kernel.TenantID, id kernel.UUID) (*order.Order, error) {
	if err := tenantID.Validate(); err != nil {
		return nil, err
	}
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto OrderDTO
	err := r.db.WithContext(ctx).
		Preload("Lines").
		Preload("Events", func(db *gorm.DB) *gorm.DB {
			return db.Order("occurred_at, id")
		}).
		First(&dto, "id = ? AND tenant_id = ?", id.Bytes(), tenantID.UUID().Bytes()).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("order", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// GetAllOpen retrieves the tenant's orders that have not reached a terminal
// status.
func (r *GormOrderRepository) GetAllOpen(ctx context.Context, tenantID kernel.TenantID) ([]*order.Order, error) {
	if err := tenantID.Validate(); err != nil {
		return nil, err
	}

	terminal := make([]int, 0)
	for _, status := range order.AllStatuses() {
		if status.IsTerminal() {
			terminal = append(terminal, int(status))
		}
	}

	var dtos []OrderDTO
	err := r.db.WithContext(ctx).
		Preload("Lines").
		Preload("Events", func(db *gorm.DB) *gorm.DB {
			return db.Order("occurred_at, id")
		}).
		Where("tenant_id = ? AND status NOT IN ?", tenantID.UUID().Bytes(), terminal).
		Order("imported_at, id").
		Find(&dtos).Error
	if err != nil {
		return nil, err
	}

	orders := make([]*order.Order, 0, len(dtos))
	for _, dto := range dtos {
		o, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		orders = append(orders, o)
	}

	return orders, nil
}
