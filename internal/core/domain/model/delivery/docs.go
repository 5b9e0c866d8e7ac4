// Package delivery provides domain entities and business logic for parcel
// tracking. It implements the Delivery aggregate root with lifecycle
// management and state transitions.
//
// The package includes:
//   - Delivery: The aggregate root that manages parcel identity, courier
//     ownership, destination data and lifecycle
//   - Status: A state machine that enforces valid lifecycle transitions
//   - ServiceKind: Marketplace channel classification used for pricing
//   - AddressSource: Provenance of a captured destination address
//
// Key business rules:
//   - Deliveries must have a valid unique identifier, operating date,
//     tracking code and base
//   - Status follows a defined workflow: Pending -> Assigned -> Delivered,
//     with Absent and Cancelled as alternative terminal outcomes
//   - Reassignment between couriers is allowed while Assigned and is
//     reported to the caller so it can be audited separately
//   - Terminal outcomes carry their evidence: Delivered requires a handover
//     instant, Absent requires a catalogued absence reason
//
// The package follows Domain-Driven Design principles, providing rich domain
// behavior, encapsulation, and validation to ensure business rules are enforced.
package delivery
