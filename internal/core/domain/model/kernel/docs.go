// Package kernel provides the domain primitives shared by the order, commission
// and provider models.
//
// The package includes:
//   - UUID: identifier value object over github.com/google/uuid
//   - Money: integral amount in pesewas, the only currency representation used by the ledger
//   - Location: client address with coordinates
//   - Role and Actor: the verified identity every command is executed on behalf of
//
// Values are immutable and validated at construction; zero values fail Validate.
package kernel
