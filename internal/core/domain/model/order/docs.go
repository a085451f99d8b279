// Package order provides the Order aggregate root and its lifecycle state machine.
//
// The package includes:
//   - Order: identity, client contact, priced items, rider/partner bindings, confirmation flags
//   - Status: the forward-only pickup/wash/delivery path plus cancellation
//   - Pricing and Item: the catalog's authoritative price breakdown, validated at construction
//
// Key business rules:
//   - Only the single successor of the current status is accepted; Cancelled is reachable
//     from any non-terminal status
//   - Riders drive pickup and delivery edges, partners drive the in-laundry edges,
//     admins may drive any edge; Created -> Assigned belongs to dispatch
//   - A delivered order opens a two hour confirmation window
//   - Confirmation is idempotent and only possible from Delivered
package order
