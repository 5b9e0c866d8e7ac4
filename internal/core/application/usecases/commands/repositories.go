// Package commands contains business operations that modify system state.
// Implements the Command pattern for write operations in the CQRS architecture.
// All commands follow a consistent pattern: validation, transaction management, and persistence.
package commands

import (
	"context"

	"tracksaidas/internal/core/ports"
)

// Unit of Work interfaces provide transaction management for command handlers.
// These abstractions ensure data consistency across aggregate boundaries.
type (
	// TxManager handles database transaction lifecycle.
	// Ensures atomic operations across multiple repository calls.
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	// DeliveryRepoFactory provides access to the delivery repository within a transaction.
	DeliveryRepoFactory interface {
		DeliveryRepository() ports.DeliveryRepository
	}

	// HistoryRepoFactory provides access to the audit ledger within a transaction.
	HistoryRepoFactory interface {
		HistoryRepository() ports.HistoryRepository
	}

	// SessionRepoFactory provides access to the session repository within a transaction.
	SessionRepoFactory interface {
		SessionRepository() ports.SessionRepository
	}

	// BillingRepoFactory provides access to the billing repository within a transaction.
	BillingRepoFactory interface {
		BillingRepository() ports.BillingRepository
	}

	// ClosureRepoFactory provides access to the closure repository within a transaction.
	ClosureRepoFactory interface {
		ClosureRepository() ports.ClosureRepository
	}

	// DeliveryUoW manages transactions spanning a delivery and its audit
	// ledger. Every lifecycle command writes both, so the entry and the
	// state change commit or roll back together.
	DeliveryUoW interface {
		TxManager
		DeliveryRepoFactory
		HistoryRepoFactory
	}

	// DeliveryUoWFactory creates new delivery unit of work instances.
	DeliveryUoWFactory interface {
		Create() DeliveryUoW
	}

	// BillingUoW extends DeliveryUoW with billing access. Used by outcome
	// commands that freeze a price in the same transaction as the outcome.
	BillingUoW interface {
		DeliveryUoW
		BillingRepoFactory
	}

	// BillingUoWFactory creates new billing unit of work instances.
	BillingUoWFactory interface {
		Create() BillingUoW
	}

	// SessionUoW manages transactions for route session operations, which
	// read deliveries to validate and plan stops.
	SessionUoW interface {
		TxManager
		SessionRepoFactory
		DeliveryRepoFactory
	}

	// SessionUoWFactory creates new session unit of work instances.
	SessionUoWFactory interface {
		Create() SessionUoW
	}

	// ClosureUoW manages transactions for closure generation, which reads
	// billed work and delivery subjects and writes closure records.
	ClosureUoW interface {
		TxManager
		ClosureRepoFactory
		BillingRepoFactory
		DeliveryRepoFactory
	}

	// ClosureUoWFactory creates new closure unit of work instances.
	ClosureUoWFactory interface {
		Create() ClosureUoW
	}
)
