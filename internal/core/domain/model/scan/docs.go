// Package scan models physical inventory movement for rental orders.
//
// An Event is an append-only record of a warehouse scan (outbound when assets
// leave for an event, inbound when they return). A Report is the derived
// reconciliation of scanned totals against an order's required quantities;
// lifecycle transitions that depend on inventory movement consult the report
// as a gate.
package scan
