// Package services provides domain services that coordinate several aggregates
// of the laundry marketplace.
//
// The package includes:
//   - Dispatcher: binds an order to an available rider and partner
//   - CommissionEngine: splits a confirmed order's pricing into ledger entries
//
// Services are stateless; persistence and notification stay in the application layer.
package services
