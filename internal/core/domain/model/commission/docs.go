// Package commission provides the ledger entries created when an order is confirmed.
//
// Each confirmed order yields exactly one commission per beneficiary kind (rider,
// partner, platform). Entries start pending_settlement, become ready_for_payout after
// the 24 hour settlement window and are then driven by the external payout subsystem.
package commission
