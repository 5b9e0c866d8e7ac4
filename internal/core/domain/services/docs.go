// Package services provides domain services that orchestrate business operations
// across multiple domain entities in the parcel tracking system. It implements
// logic that doesn't naturally belong to a single aggregate root.
//
// The package includes:
//   - RoutePlanner: A pure domain service that orders a courier's stops with a
//     nearest-neighbor heuristic and estimates route distance and duration
//
// Domain services coordinate between aggregates, implementing business logic that
// spans multiple bounded contexts following Domain-Driven Design principles.
package services
