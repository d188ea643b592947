// Package services contains stateless domain services that operate across
// aggregates. ScanReconciler computes the fulfillment gate from an order's
// items and its scan events without touching persistence.
package services
