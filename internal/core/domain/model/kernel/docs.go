// Package kernel provides the shared value objects of the storefront domain.
//
// The package includes:
//   - UUID: identifier value object with validation and comparison
//   - Money: non-negative monetary amount backed by shopspring/decimal
//   - DomainEvent, EventRecorder: contracts between aggregates and the event publisher
//
// UUID and Money are immutable and safe to copy.
package kernel
