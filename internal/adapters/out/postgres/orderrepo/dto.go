// Package orderrepo provides data transfer objects and mapping functions for order persistence.
// This package implements the repository pattern for the order domain aggregate, handling
// the conversion between domain entities and database representations.
package orderrepo

import (
	"time"

	"laundry/internal/core/domain/model/kernel"
	"laundry/internal/core/domain/model/order"

	"github.com/google/uuid"
)

// OrderDTO represents the database structure for persisting order aggregates.
// Money columns hold pesewas. The composite index serves the auto-confirm sweep.
type OrderDTO struct {
	ID                  uuid.UUID   `gorm:"type:uuid;primaryKey"`
	FriendlyID          string      `gorm:"type:varchar(16);uniqueIndex"`
	ClientID            uuid.UUID   `gorm:"type:uuid;index"`
	ClientPhone         string      `gorm:"type:varchar(32)"`
	Location            LocationDTO `gorm:"embedded;embeddedPrefix:location_"`
	Items               []ItemDTO   `gorm:"type:jsonb;serializer:json"`
	Pricing             PricingDTO  `gorm:"embedded;embeddedPrefix:pricing_"`
	RiderID             *uuid.UUID  `gorm:"type:uuid;index"`
	PartnerID           *uuid.UUID  `gorm:"type:uuid;index"`
	Status              string      `gorm:"type:varchar(32);index:ix_orders_confirmation,priority:1"`
	IsConfirmedByClient bool        `gorm:"index:ix_orders_confirmation,priority:2"`
	IsAdminConfirmed    bool
	IsDisbursed         bool
	DeliveredAt         *time.Time
	ConfirmedAt         *time.Time
	ArchivedAt          *time.Time `gorm:"index"`
	CreatedAt           time.Time  `gorm:"autoCreateTime:false"`
	UpdatedAt           time.Time  `gorm:"autoUpdateTime:false;index:ix_orders_confirmation,priority:3"`
	Version             int
}

// TableName specifies the database table name for order entities.
func (OrderDTO) TableName() string {
	return "orders"
}

// LocationDTO is the client's pickup and delivery point embedded in the order row.
type LocationDTO struct {
	Address   string
	Latitude  float64
	Longitude float64
}

// ItemDTO is one catalog line stored inside the order's items document.
type ItemDTO struct {
	Name               string `json:"name"`
	Quantity           int    `json:"quantity"`
	UnitPrice          int64  `json:"unitPrice"`
	PlatformCommission int64  `json:"platformCommission"`
}

// PricingDTO is the catalog breakdown, stored as supplied.
type PricingDTO struct {
	ItemsSubtotal int64
	ServiceFee    int64
	DeliveryFee   int64
	SystemFee     int64
	TotalAmount   int64
}

// OrderEventDTO is one audit row written in the transaction of the change it describes.
type OrderEventDTO struct {
	ID         uint      `gorm:"primaryKey;autoIncrement"`
	OrderID    uuid.UUID `gorm:"type:uuid;index"`
	FromStatus string    `gorm:"type:varchar(32)"`
	ToStatus   string    `gorm:"type:varchar(32)"`
	ActorID    uuid.UUID `gorm:"type:uuid"`
	ActorRole  string    `gorm:"type:varchar(16)"`
	Note       string    `gorm:"type:varchar(64)"`
	At         time.Time
}

func (OrderEventDTO) TableName() string {
	return "order_events"
}

func fromDomain(o *order.Order) OrderDTO {
	items := make([]ItemDTO, 0, len(o.Items()))
	for _, item := range o.Items() {
		items = append(items, ItemDTO{
			Name:               item.Name(),
			Quantity:           item.Quantity(),
			UnitPrice:          item.UnitPrice().MinorUnits(),
			PlatformCommission: item.PlatformCommission().MinorUnits(),
		})
	}

	pricing := o.Pricing()
	contact := o.Contact()

	return OrderDTO{
		ID:          o.ID().Bytes(),
		FriendlyID:  o.FriendlyID(),
		ClientID:    o.ClientID().Bytes(),
		ClientPhone: contact.Phone,
		Location: LocationDTO{
			Address:   contact.Location.Address(),
			Latitude:  contact.Location.Latitude(),
			Longitude: contact.Location.Longitude(),
		},
		Items: items,
		Pricing: PricingDTO{
			ItemsSubtotal: pricing.ItemsSubtotal().MinorUnits(),
			ServiceFee:    pricing.ServiceFee().MinorUnits(),
			DeliveryFee:   pricing.DeliveryFee().MinorUnits(),
			SystemFee:     pricing.SystemFee().MinorUnits(),
			TotalAmount:   pricing.TotalAmount().MinorUnits(),
		},
		RiderID:             optionalID(o.Rider()),
		PartnerID:           optionalID(o.Partner()),
		Status:              o.Status().String(),
		IsConfirmedByClient: o.IsConfirmedByClient(),
		IsAdminConfirmed:    o.IsAdminConfirmed(),
		IsDisbursed:         o.IsDisbursed(),
		DeliveredAt:         o.DeliveredAt(),
		ConfirmedAt:         o.ConfirmedAt(),
		ArchivedAt:          o.ArchivedAt(),
		CreatedAt:           o.CreatedAt(),
		UpdatedAt:           o.UpdatedAt(),
		Version:             o.Version(),
	}
}

func toDomain(dto OrderDTO) (*order.Order, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	clientID, err := kernel.UUIDFromBytes(dto.ClientID[:])
	if err != nil {
		return nil, err
	}
	riderID, err := restoreOptionalID(dto.RiderID)
	if err != nil {
		return nil, err
	}
	partnerID, err := restoreOptionalID(dto.PartnerID)
	if err != nil {
		return nil, err
	}

	loc, err := kernel.NewLocation(dto.Location.Address, dto.Location.Latitude, dto.Location.Longitude)
	if err != nil {
		return nil, err
	}

	items := make([]order.Item, 0, len(dto.Items))
	for _, line := range dto.Items {
		item, itemErr := order.NewItem(line.Name, line.Quantity,
			kernel.Money(line.UnitPrice), kernel.Money(line.PlatformCommission))
		if itemErr != nil {
			return nil, itemErr
		}
		items = append(items, item)
	}

	pricing, err := order.NewPricing(
		kernel.Money(dto.Pricing.ItemsSubtotal),
		kernel.Money(dto.Pricing.ServiceFee),
		kernel.Money(dto.Pricing.DeliveryFee),
		kernel.Money(dto.Pricing.SystemFee),
		kernel.Money(dto.Pricing.TotalAmount),
	)
	if err != nil {
		return nil, err
	}

	status, err := order.ParseStatus(dto.Status)
	if err != nil {
		return nil, err
	}

	return order.Restore(order.Snapshot{
		ID:                  id,
		FriendlyID:          dto.FriendlyID,
		ClientID:            clientID,
		Contact:             order.Contact{Phone: dto.ClientPhone, Location: loc},
		Items:               items,
		Pricing:             pricing,
		RiderID:             riderID,
		PartnerID:           partnerID,
		Status:              status,
		IsConfirmedByClient: dto.IsConfirmedByClient,
		IsAdminConfirmed:    dto.IsAdminConfirmed,
		IsDisbursed:         dto.IsDisbursed,
		DeliveredAt:         utcPtr(dto.DeliveredAt),
		ConfirmedAt:         utcPtr(dto.ConfirmedAt),
		ArchivedAt:          utcPtr(dto.ArchivedAt),
		CreatedAt:           dto.CreatedAt.UTC(),
		UpdatedAt:           dto.UpdatedAt.UTC(),
		Version:             dto.Version,
	})
}

func eventsFromDomain(orderID kernel.UUID, entries []order.AuditEntry) []OrderEventDTO {
	events := make([]OrderEventDTO, 0, len(entries))
	for _, e := range entries {
		from := ""
		if e.From != order.Unknown {
			from = e.From.String()
		}
		events = append(events, OrderEventDTO{
			OrderID:    orderID.Bytes(),
			FromStatus: from,
			ToStatus:   e.To.String(),
			ActorID:    e.ActorID.Bytes(),
			ActorRole:  e.ActorRole.String(),
			Note:       e.Note,
			At:         e.At,
		})
	}
	return events
}

func optionalID(id *kernel.UUID) *uuid.UUID {
	if id == nil {
		return nil
	}
	raw := id.Bytes()
	return &raw
}

func restoreOptionalID(raw *uuid.UUID) (*kernel.UUID, error) {
	if raw == nil {
		return nil, nil //nolint:nilnil // absent binding
	}
	id, err := kernel.UUIDFromBytes(raw[:])
	if err != nil {
		return nil, err
	}
	return &id, nil
}

func utcPtr(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	u := t.UTC()
	return &u
}
