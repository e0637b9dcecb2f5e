// Package sqlite provides the SQLite-backed project store.
//
// This adapter uses modernc.org/sqlite, a pure Go SQLite implementation that requires
// no CGO, enabling easy cross-compilation. It implements the store interfaces
// through a single database connection owned by the project:
//
//   - DocumentStore: Document registry and document coding overview
//   - CodeStore: Code taxonomy and code usage overview
//   - SegmentStore: Coded segments and position lookup
//
// # Schema
//
// The schema is managed through versioned migrations stored in the
// migrations/ directory. Each migration is a pair of .up.sql and .down.sql files.
// Each up migration runs in its own transaction together with its
// schema_migrations row.
//
// # Data Location
//
// The database lives at <project>/project.db.
//
// # Atomicity
//
// Document and code deletion remove dependent segments and the owning row
// inside one transaction, so a failure leaves the store as it was.
package sqlite
