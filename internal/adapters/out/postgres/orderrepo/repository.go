package orderrepo

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"laundry/internal/adapters/out/postgres/pgerr"
	"laundry/internal/core/domain/model/kernel"
	"laundry/internal/core/domain/model/order"
	"laundry/internal/pkg/errs"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormOrderRepository implements ports.OrderRepository using GORM.
type GormOrderRepository struct {
	db     *gorm.DB
	logger *slog.Logger
}

// NewGormOrderRepository creates a repository bound to db, which may be a transaction.
func NewGormOrderRepository(db *gorm.DB) *GormOrderRepository {
	return &GormOrderRepository{db: db, logger: slog.Default().With("component", "order-repository")}
}

// Add saves a new order and any audit entries it carries.
func (r *GormOrderRepository) Add(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return pgerr.Translate("order", aggregate.ID().String(), err)
	}

	return r.appendEvents(ctx, aggregate)
}

// Update writes the aggregate only if the row still has the status and version
// it was loaded with.
func (r *GormOrderRepository) Update(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	result := r.db.WithContext(ctx).
		Model(&OrderDTO{}).
		Where("id = ? AND status = ? AND version = ?",
			dto.ID, aggregate.ExpectedStatus().String(), aggregate.ExpectedVersion()).
		Select("*").
		Omit("id", "created_at").
		Updates(&dto)
	if result.Error != nil {
		return pgerr.Translate("order", aggregate.ID().String(), result.Error)
	}

	if result.RowsAffected == 0 {
		return r.lostUpdate(ctx, aggregate)
	}

	return r.appendEvents(ctx, aggregate)
}

// Get retrieves an order by ID.
func (r *GormOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto OrderDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		return nil, pgerr.Translate("order", id.String(), err)
	}

	return toDomain(dto)
}

// GetForUpdate retrieves an order by ID and holds its row lock (SELECT ... FOR
// UPDATE) until the surrounding transaction ends. Outside a transaction the
// lock is released as soon as the statement completes.
func (r *GormOrderRepository) GetForUpdate(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto OrderDTO
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&dto, "id = ?", id.Bytes()).Error
	if err != nil {
		return nil, pgerr.Translate("order", id.String(), err)
	}

	return toDomain(dto)
}

// GetActiveFor returns non-archived orders visible to the actor, newest first.
func (r *GormOrderRepository) GetActiveFor(ctx context.Context, actor kernel.Actor) ([]*order.Order, error) {
	if err := actor.Validate(); err != nil {
		return nil, err
	}

	query := r.db.WithContext(ctx).Where("archived_at IS NULL")
	switch actor.Role() {
	case kernel.RoleAdmin:
	case kernel.RoleClient:
		query = query.Where("client_id = ?", actor.ID().Bytes())
	case kernel.RoleRider:
		query = query.Where("rider_id = ?", actor.ID().Bytes())
	case kernel.RolePartner:
		query = query.Where("partner_id = ?", actor.ID().Bytes())
	default:
		return nil, errs.NewForbiddenError(actor.String(), "list orders")
	}

	var dtos []OrderDTO
	if err := query.Order("created_at DESC").Find(&dtos).Error; err != nil {
		return nil, pgerr.Translate("orders", actor.ID().String(), err)
	}

	return toDomainAll(dtos)
}

// FindOverdueConfirmations lists delivered, unconfirmed orders last touched
// before cutoff, ordered by (updated_at, id). Rows that no longer restore into
// a valid aggregate are logged and skipped, and the scan keeps paging past
// them until limit orders are collected or the backlog is exhausted.
func (r *GormOrderRepository) FindOverdueConfirmations(
	ctx context.Context,
	cutoff time.Time,
	limit int,
) ([]*order.Order, error) {
	if limit <= 0 {
		return nil, nil
	}

	orders := make([]*order.Order, 0, limit)
	var last *OrderDTO
	for len(orders) < limit {
		want := limit - len(orders)
		query := r.db.WithContext(ctx).
			Where("status = ? AND is_confirmed_by_client = ? AND updated_at < ?",
				order.Delivered.String(), false, cutoff)
		if last != nil {
			query = query.Where("(updated_at, id) > (?, ?)", last.UpdatedAt, last.ID)
		}

		var page []OrderDTO
		if err := query.Order("updated_at, id").Limit(want).Find(&page).Error; err != nil {
			return nil, pgerr.Translate("orders", "overdue confirmations", err)
		}

		for _, dto := range page {
			o, err := toDomain(dto)
			if err != nil {
				r.logger.Warn("skipping unrestorable order", "order_id", dto.ID.String(), "error", err)
				continue
			}
			orders = append(orders, o)
		}

		if len(page) < want {
			break
		}
		last = &page[len(page)-1]
	}

	return orders, nil
}

func (r *GormOrderRepository) appendEvents(ctx context.Context, aggregate *order.Order) error {
	events := eventsFromDomain(aggregate.ID(), aggregate.PullAuditEntries())
	if len(events) == 0 {
		return nil
	}
	if err := r.db.WithContext(ctx).Create(&events).Error; err != nil {
		return pgerr.Translate("order events", aggregate.ID().String(), err)
	}
	return nil
}

// lostUpdate tells a concurrent writer apart from a missing row.
func (r *GormOrderRepository) lostUpdate(ctx context.Context, aggregate *order.Order) error {
	var count int64
	err := r.db.WithContext(ctx).Model(&OrderDTO{}).Where("id = ?", aggregate.ID().Bytes()).Count(&count).Error
	if err != nil {
		return pgerr.Translate("order", aggregate.ID().String(), err)
	}
	if count == 0 {
		return errs.NewObjectNotFoundError("order", aggregate.ID().String())
	}
	return errs.NewConflictErrorWithCause(
		"order "+aggregate.FriendlyID(),
		fmt.Errorf("expected %s at version %d", aggregate.ExpectedStatus(), aggregate.ExpectedVersion()),
	)
}

func toDomainAll(dtos []OrderDTO) ([]*order.Order, error) {
	orders := make([]*order.Order, 0, len(dtos))
	var restoreErrs []error
	for _, dto := range dtos {
		o, err := toDomain(dto)
		if err != nil {
			restoreErrs = append(restoreErrs, err)
			continue
		}
		orders = append(orders, o)
	}
	if err := errors.Join(restoreErrs...); err != nil {
		return nil, err
	}
	return orders, nil
}
