// Package commands contains business operations that modify system state.
// Implements the Command pattern for write operations in the CQRS
// architecture. All commands follow a consistent pattern: validation,
// transaction management, persistence, and post-commit notification.
package commands

import (
	"context"

	"github.com/mesharis-cell/platform-client-main-sub003/internal/core/ports"
)

// Unit of Work interfaces provide transaction management for command handlers.
// Each handler depends only on the repositories it touches, so tests can mock
// the narrowest surface.
type (
	// TxManager handles database transaction lifecycle.
	// Ensures atomic operations across multiple repository calls.
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	// OrderRepoFactory provides access to the order repository within a transaction.
	OrderRepoFactory interface {
		OrderRepository() ports.OrderRepository
	}

	// ScanRepoFactory provides access to the scan repository within a transaction.
	ScanRepoFactory interface {
		ScanRepository() ports.ScanRepository
	}

	// HistoryRepoFactory provides access to the history repository within a transaction.
	HistoryRepoFactory interface {
		HistoryRepository() ports.HistoryRepository
	}

	// TierRepoFactory provides access to the tier repository within a transaction.
	TierRepoFactory interface {
		TierRepository() ports.TierRepository
	}

	// OrderUoW manages transactions for order-only operations.
	OrderUoW interface {
		TxManager
		OrderRepoFactory
	}

	// OrderUoWFactory creates new order unit of work instances.
	OrderUoWFactory interface {
		Create() OrderUoW
	}

	// PricingUoW manages transactions for the pricing workflow: the order's
	// pricing snapshot and the history row it produces.
	PricingUoW interface {
		TxManager
		OrderRepoFactory
		HistoryRepoFactory
	}

	// PricingUoWFactory creates new pricing unit of work instances.
	PricingUoWFactory interface {
		Create() PricingUoW
	}

	// TransitionUoW manages transactions for lifecycle transitions. Covers
	// the order, the audit log, and the scan events consulted by gated
	// transitions.
	TransitionUoW interface {
		TxManager
		OrderRepoFactory
		HistoryRepoFactory
		ScanRepoFactory
	}

	// TransitionUoWFactory creates new transition unit of work instances.
	// The scheduled runner creates one per order so a failing order cannot
	// poison the rest of the batch.
	TransitionUoWFactory interface {
		Create() TransitionUoW
	}

	// ScanUoW manages transactions for scan recording.
	ScanUoW interface {
		TxManager
		OrderRepoFactory
		ScanRepoFactory
	}

	// ScanUoWFactory creates new scan unit of work instances.
	ScanUoWFactory interface {
		Create() ScanUoW
	}
)
