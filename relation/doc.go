// Package relation is the schema registry (relation manager): it ingests
// IDL message descriptors, walks nested message trees, assigns every
// node (root table, sub-message, primitive field) a stable Path and
// numeric identity, extracts per-field type metadata and default values,
// records parent-table ownership, and maintains the indexes and caches
// that let query construction resolve paths to tables and columns in
// O(1).
//
// The registry is populated once (a sequence of RegisterRoot calls,
// typically at startup), then treated as read-only shared state during
// query construction; Clear drops everything. Mutation entry points
// (RegisterRoot, Clear) must not overlap with readers.
package relation
