// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
// The single required interface is ContentStore, the document store the
// pipeline reads and mutates. Three adapters implement it: the live
// content-API adapter, a SQLite snapshot store for offline rehearsal,
// and an in-memory fake used by unit tests.
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter package
package driven
