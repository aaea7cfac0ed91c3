// Package domain defines the core business entities for faqctl.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - ParentDocument: A CMS page holding FAQ-bearing list fields
//   - Slot: One element of a list field, either inline item or reference
//   - FAQ: A standalone, referenced FAQ document
//   - Category: A taxonomy document FAQs point at
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
