// Package services implements the driving port interfaces.
// Services contain the migration pipeline's business logic and
// orchestrate calls to driven ports (adapters).
//
// Services are pure Go with no external dependencies. Execution is
// strictly sequential: one document, one field, one slot at a time.
// The only concurrency-safety mechanism is the deterministic-id upsert,
// which makes accidental overlapping runs converge instead of corrupt.
package services
