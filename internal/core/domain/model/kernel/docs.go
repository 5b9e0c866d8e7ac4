// Package kernel contains the shared value objects of the domain model:
// UUID identifiers, WGS84 geo points with great-circle distance, and
// monetary amounts in cents.
//
// Kernel types are immutable, constructor-validated, and safe to share
// across aggregates. They depend on nothing above them; the rest of the
// domain model builds on this package.
package kernel
