// Package sanity implements driven.ContentStore against the Sanity
// content API: GROQ queries for reads, transactional mutations
// (createIfNotExists, patch) for writes.
//
// The pipeline relies only on per-document atomicity and idempotent
// upserts keyed by deterministic ids; it needs none of the API's
// stronger guarantees.
package sanity
