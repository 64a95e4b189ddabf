// Package services provides domain services that orchestrate business operations
// across multiple aggregates of the storefront.
//
// The package includes:
//   - OrderPricer: turns requested order lines into items priced from the catalog
//
// Domain services hold no state and perform no I/O; callers load the aggregates
// they need and persist the results.
package services
