// Package queries contains read operations of the storefront. Handlers read
// straight from the database with SQL and return flat response structs; they
// never load aggregates.
package queries
