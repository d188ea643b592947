// Package notification models the delivery-attempt ledger for outbound
// messages. Delivery is best-effort and fully decoupled from business
// transitions: a failed notification never rolls anything back, it just
// accumulates attempts in the ledger until it is Sent or terminally Failed.
package notification
