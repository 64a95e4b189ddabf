// Package catalog provides the Category and Product aggregates that orders are
// priced from.
//
// Products belong to a category, carry a positive price and may be deactivated;
// inactive products cannot be ordered but keep appearing in past orders.
package catalog
