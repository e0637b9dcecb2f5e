// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
// # Required Interfaces
//
//   - DocumentStore: Document registry persistence
//   - CodeStore: Code taxonomy persistence and usage aggregation
//   - SegmentStore: Coded segment persistence and lookup
//   - TextStore: Canonical text files and their allocator
//   - Normaliser: Extracts canonical text from one source format
//   - NormaliserRegistry: Dispatches on file extension
//   - MetadataStore: Project metadata record
//
// Stores never validate taxonomy depth or offsets against text length.
// That policy lives in the services.
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter or normaliser package
package driven
