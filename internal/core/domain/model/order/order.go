package order

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"laundry/internal/core/domain/model/kernel"
	"laundry/internal/pkg/errs"
)

// ConfirmationGrace is how long a delivered order waits for the client before
// the system confirms it on their behalf.
const ConfirmationGrace = 2 * time.Hour

var (
	// ErrOrderIsNotConstructed is returned when an Order instance was not created through
	// NewOrder or Restore.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder constructor")
)

// ConfirmationSource records who acknowledged a delivery.
type ConfirmationSource string

const (
	ConfirmedByClient ConfirmationSource = "client"
	ConfirmedByAdmin  ConfirmationSource = "admin"
	ConfirmedBySystem ConfirmationSource = "system"
)

// Contact is how the rider reaches the client.
type Contact struct {
	Phone    string
	Location kernel.Location
}

// Validate requires a phone number and a constructed location.
func (c Contact) Validate() error {
	var phoneErr error
	if strings.TrimSpace(c.Phone) == "" {
		phoneErr = errs.NewValueIsRequiredError("client phone")
	}
	return errors.Join(phoneErr, c.Location.Validate())
}

// AuditEntry is one row of the order's audit trail. Entries are accumulated by
// the aggregate and drained by the repository in the same transaction as the
// state change they describe.
type AuditEntry struct {
	From      Status
	To        Status
	ActorID   kernel.UUID
	ActorRole kernel.Role
	Note      string
	At        time.Time
}

// Order is the aggregate root of one pickup-wash-deliver transaction.
//
// Invariants:
//   - status only moves along the forward path (see Status)
//   - rider and partner are bound together by dispatch and released together on cancel
//   - isConfirmedByClient becomes true only from Delivered
//   - isDisbursed becomes true only after confirmation
//
// Concurrency: the aggregate remembers the status and version it was loaded with;
// repositories persist it with a compare-and-swap on both.
type Order struct {
	id         kernel.UUID
	friendlyID string
	clientID   kernel.UUID
	contact    Contact
	items      []Item
	pricing    Pricing

	riderID   *kernel.UUID
	partnerID *kernel.UUID

	status              Status
	isConfirmedByClient bool
	isAdminConfirmed    bool
	isDisbursed         bool

	deliveredAt *time.Time
	confirmedAt *time.Time
	archivedAt  *time.Time
	createdAt   time.Time
	updatedAt   time.Time

	version         int
	expectedVersion int
	expectedStatus  Status

	audit []AuditEntry

	isConstructed bool
}

// NewOrder creates an order in Created status. Items must add up to the pricing's
// items subtotal exactly; the pricing itself is taken as supplied by the catalog.
func NewOrder(
	id kernel.UUID,
	clientID kernel.UUID,
	contact Contact,
	items []Item,
	pricing Pricing,
	now time.Time,
) (*Order, error) {
	o := &Order{
		status:        Created,
		createdAt:     now,
		updatedAt:     now,
		version:       1,
		isConstructed: true,
	}

	if err := errors.Join(
		o.setID(id),
		o.setClientID(clientID),
		contact.Validate(),
		o.setLines(items, pricing),
	); err != nil {
		return nil, err
	}
	o.contact = contact
	o.friendlyID = FriendlyIDFor(id)
	o.expectedVersion = 0
	o.expectedStatus = Unknown

	return o, nil
}

// FriendlyIDFor derives the short human-facing reference of an order.
func FriendlyIDFor(id kernel.UUID) string {
	raw := strings.ReplaceAll(id.String(), "-", "")
	return "LND-" + strings.ToUpper(raw[:8])
}

// Snapshot carries persisted state back into an aggregate.
type Snapshot struct {
	ID                  kernel.UUID
	FriendlyID          string
	ClientID            kernel.UUID
	Contact             Contact
	Items               []Item
	Pricing             Pricing
	RiderID             *kernel.UUID
	PartnerID           *kernel.UUID
	Status              Status
	IsConfirmedByClient bool
	IsAdminConfirmed    bool
	IsDisbursed         bool
	DeliveredAt         *time.Time
	ConfirmedAt         *time.Time
	ArchivedAt          *time.Time
	CreatedAt           time.Time
	UpdatedAt           time.Time
	Version             int
}

// Restore rebuilds an order loaded from storage, re-checking the invariants that
// relate fields to each other.
func Restore(s Snapshot) (*Order, error) {
	o := &Order{
		friendlyID:          s.FriendlyID,
		contact:             s.Contact,
		riderID:             s.RiderID,
		partnerID:           s.PartnerID,
		status:              s.Status,
		isConfirmedByClient: s.IsConfirmedByClient,
		isAdminConfirmed:    s.IsAdminConfirmed,
		isDisbursed:         s.IsDisbursed,
		deliveredAt:         s.DeliveredAt,
		confirmedAt:         s.ConfirmedAt,
		archivedAt:          s.ArchivedAt,
		createdAt:           s.CreatedAt,
		updatedAt:           s.UpdatedAt,
		version:             s.Version,
		expectedVersion:     s.Version,
		expectedStatus:      s.Status,
		isConstructed:       true,
	}

	var confirmErr error
	if s.IsConfirmedByClient && s.Status != Delivered {
		confirmErr = errs.NewInvalidStateError("order", fmt.Sprintf("is confirmed while %s", s.Status))
	}
	var bindingErr error
	if (s.RiderID == nil) != (s.PartnerID == nil) {
		bindingErr = errs.NewInvalidStateError("order", "has only one of rider and partner bound")
	}

	if err := errors.Join(
		o.setID(s.ID),
		o.setClientID(s.ClientID),
		s.Contact.Validate(),
		o.setLines(s.Items, s.Pricing),
		s.Status.Validate(),
		confirmErr,
		bindingErr,
	); err != nil {
		return nil, err
	}

	return o, nil
}

// Validate ensures the Order instance was properly constructed.
func (o *Order) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOrderIsNotConstructed
	}
	return nil
}

// IsEqual compares two orders by their unique identifiers.
func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id.IsEqual(other.id)
}

func (o *Order) ID() kernel.UUID            { return o.id }
func (o *Order) FriendlyID() string         { return o.friendlyID }
func (o *Order) ClientID() kernel.UUID      { return o.clientID }
func (o *Order) Contact() Contact           { return o.contact }
func (o *Order) Pricing() Pricing           { return o.pricing }
func (o *Order) Status() Status             { return o.status }
func (o *Order) Rider() *kernel.UUID        { return o.riderID }
func (o *Order) Partner() *kernel.UUID      { return o.partnerID }
func (o *Order) IsConfirmedByClient() bool  { return o.isConfirmedByClient }
func (o *Order) IsAdminConfirmed() bool     { return o.isAdminConfirmed }
func (o *Order) IsDisbursed() bool          { return o.isDisbursed }
func (o *Order) DeliveredAt() *time.Time    { return o.deliveredAt }
func (o *Order) ConfirmedAt() *time.Time    { return o.confirmedAt }
func (o *Order) ArchivedAt() *time.Time     { return o.archivedAt }
func (o *Order) CreatedAt() time.Time       { return o.createdAt }
func (o *Order) UpdatedAt() time.Time       { return o.updatedAt }
func (o *Order) Version() int               { return o.version }
func (o *Order) ExpectedVersion() int       { return o.expectedVersion }
func (o *Order) ExpectedStatus() Status     { return o.expectedStatus }
func (o *Order) IsArchived() bool           { return o.archivedAt != nil }
func (o *Order) IsAssignedTo(id kernel.UUID) bool {
	return (o.riderID != nil && o.riderID.IsEqual(id)) || (o.partnerID != nil && o.partnerID.IsEqual(id))
}

// Items returns a copy of the order lines.
func (o *Order) Items() []Item {
	items := make([]Item, len(o.items))
	copy(items, o.items)
	return items
}

// ItemsPlatformCommission is the platform cut embedded in the item prices.
func (o *Order) ItemsPlatformCommission() kernel.Money {
	var total kernel.Money
	for _, item := range o.items {
		total = total.Add(item.LineCommission())
	}
	return total
}

// ConfirmationDeadline is the moment after which the system may confirm
// a delivered order. ok is false until the order is delivered.
func (o *Order) ConfirmationDeadline() (deadline time.Time, ok bool) {
	if o.deliveredAt == nil {
		return time.Time{}, false
	}
	return o.deliveredAt.Add(ConfirmationGrace), true
}

// IsConfirmationOverdue reports whether the sweep should force-confirm the order:
// delivered, unconfirmed, and untouched for longer than ConfirmationGrace.
func (o *Order) IsConfirmationOverdue(now time.Time) bool {
	return o.status == Delivered && !o.isConfirmedByClient && now.Sub(o.updatedAt) > ConfirmationGrace
}

// CanBeViewedBy reports whether the actor is a participant of the order or an admin.
func (o *Order) CanBeViewedBy(actor kernel.Actor) bool {
	switch actor.Role() {
	case kernel.RoleAdmin:
		return true
	case kernel.RoleClient:
		return o.clientID.IsEqual(actor.ID())
	case kernel.RoleRider:
		return o.riderID != nil && o.riderID.IsEqual(actor.ID())
	case kernel.RolePartner:
		return o.partnerID != nil && o.partnerID.IsEqual(actor.ID())
	default:
		return false
	}
}

// Assign binds a rider and a partner and moves the order to Assigned.
// Only dispatch (admins or the system) may assign. An order that already left
// Created is reported as a conflict when it is Assigned and as an invalid
// transition otherwise.
func (o *Order) Assign(riderID, partnerID kernel.UUID, actor kernel.Actor, now time.Time) error {
	if err := errors.Join(riderID.Validate(), partnerID.Validate(), actor.Validate()); err != nil {
		return err
	}
	if !actor.Is(kernel.RoleAdmin) {
		return errs.NewForbiddenError(actor.Role().String(), "assign orders")
	}
	if o.status == Assigned || o.riderID != nil {
		return errs.NewConflictError(fmt.Sprintf("order %s is already assigned", o.friendlyID))
	}
	if err := o.status.ValidateTransition(Assigned); err != nil {
		return err
	}

	o.riderID = &riderID
	o.partnerID = &partnerID
	o.moveTo(Assigned, actor, now)
	return nil
}

// Advance applies a status change requested by an actor.
//
// The requested status must be the single successor of the current one (or
// Cancelled from a non-terminal status), the actor's role must own that edge, and
// riders/partners must be the ones bound to the order. Reaching Delivered starts the
// confirmation window; reaching Cancelled releases the bindings and archives the order.
func (o *Order) Advance(to Status, actor kernel.Actor, now time.Time) error {
	if err := actor.Validate(); err != nil {
		return err
	}
	if err := o.status.ValidateTransition(to); err != nil {
		return err
	}
	if err := o.status.AuthorizeTransition(to, actor.Role()); err != nil {
		return err
	}
	if err := o.authorizeParticipant(actor); err != nil {
		return err
	}

	switch to {
	case Delivered:
		o.deliveredAt = &now
	case Cancelled:
		o.riderID = nil
		o.partnerID = nil
		o.archivedAt = &now
	}
	o.moveTo(to, actor, now)
	return nil
}

// Confirm records the client's acknowledgement of delivery. Admins may confirm on
// behalf of a client. It returns false without error when the order is already
// confirmed.
func (o *Order) Confirm(actor kernel.Actor, now time.Time) (bool, error) {
	if err := actor.Validate(); err != nil {
		return false, err
	}

	source := ConfirmedByClient
	switch {
	case actor.Is(kernel.RoleAdmin):
		source = ConfirmedByAdmin
	case actor.Is(kernel.RoleClient) && o.clientID.IsEqual(actor.ID()):
	default:
		return false, errs.NewForbiddenError(actor.Role().String(), "confirm delivery of this order")
	}

	return o.confirm(actor, source, now)
}

// ForceConfirm is the system confirmation applied once the confirmation window
// lapsed. It marks the order admin-confirmed so it stays distinguishable from a
// client acknowledgement.
func (o *Order) ForceConfirm(now time.Time) (bool, error) {
	return o.confirm(kernel.SystemActor(), ConfirmedBySystem, now)
}

// MarkDisbursed flags the order once every commission of it is paid.
func (o *Order) MarkDisbursed(now time.Time) error {
	if !o.isConfirmedByClient {
		return errs.NewInvalidStateError("order", "cannot be disbursed before confirmation")
	}
	if o.isDisbursed {
		return nil
	}
	o.isDisbursed = true
	o.touch(now)
	o.audit = append(o.audit, AuditEntry{
		From: o.status, To: o.status,
		ActorID: kernel.SystemActorID, ActorRole: kernel.RoleAdmin,
		Note: "disbursed", At: now,
	})
	return nil
}

// PullAuditEntries returns and clears the pending audit trail.
func (o *Order) PullAuditEntries() []AuditEntry {
	entries := o.audit
	o.audit = nil
	return entries
}

func (o *Order) confirm(actor kernel.Actor, source ConfirmationSource, now time.Time) (bool, error) {
	if o.status != Delivered {
		return false, errs.NewInvalidStateError("order", fmt.Sprintf("cannot be confirmed while %s", o.status))
	}
	if o.isConfirmedByClient {
		return false, nil
	}

	o.isConfirmedByClient = true
	if source != ConfirmedByClient {
		o.isAdminConfirmed = true
	}
	o.confirmedAt = &now
	o.archivedAt = &now
	o.touch(now)
	o.audit = append(o.audit, AuditEntry{
		From: o.status, To: o.status,
		ActorID: actor.ID(), ActorRole: actor.Role(),
		Note: "confirmed_by_" + string(source), At: now,
	})
	return true, nil
}

func (o *Order) authorizeParticipant(actor kernel.Actor) error {
	switch actor.Role() {
	case kernel.RoleRider:
		if o.riderID == nil || !o.riderID.IsEqual(actor.ID()) {
			return errs.NewForbiddenError(actor.String(), "update an order it is not riding")
		}
	case kernel.RolePartner:
		if o.partnerID == nil || !o.partnerID.IsEqual(actor.ID()) {
			return errs.NewForbiddenError(actor.String(), "update an order it is not washing")
		}
	case kernel.RoleClient:
		if !o.clientID.IsEqual(actor.ID()) {
			return errs.NewForbiddenError(actor.String(), "update another client's order")
		}
	}
	return nil
}

func (o *Order) moveTo(to Status, actor kernel.Actor, now time.Time) {
	o.audit = append(o.audit, AuditEntry{
		From: o.status, To: to,
		ActorID: actor.ID(), ActorRole: actor.Role(),
		At: now,
	})
	o.status = to
	o.touch(now)
}

func (o *Order) touch(now time.Time) {
	if o.version == o.expectedVersion {
		o.version++
	}
	o.updatedAt = now
}

func (o *Order) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.id = id
	return nil
}

func (o *Order) setClientID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("client id", err)
	}
	o.clientID = id
	return nil
}

func (o *Order) setLines(items []Item, pricing Pricing) error {
	if len(items) == 0 {
		return errs.NewValueIsRequiredError("items")
	}
	if err := pricing.Validate(); err != nil {
		return err
	}

	var subtotal kernel.Money
	for _, item := range items {
		if err := item.Validate(); err != nil {
			return err
		}
		subtotal = subtotal.Add(item.LineTotal())
	}
	if subtotal != pricing.ItemsSubtotal() {
		return errs.NewValueIsInvalidErrorWithCause(
			"items subtotal",
			fmt.Errorf("items add up to %s, pricing says %s", subtotal, pricing.ItemsSubtotal()),
		)
	}

	o.items = append([]Item(nil), items...)
	o.pricing = pricing
	return nil
}
