// Package records persists per-(owner, rendition) encoding results in
// SQLite.
//
// A Record tracks the progress and committed output file of encoding one
// source video into one rendition. The (owner_kind, owner_id, field_name,
// format_name) tuple is unique; concurrent conversions of the same source
// are serialized by that constraint rather than in-process locking.
//
// A record with a committed output file is complete and is never re-encoded
// unless force-requested. Failed attempts leave no row behind: the
// orchestrator deletes the record so a clean retry starts from scratch.
//
// Treat this package as the single source of truth for record semantics;
// schema changes go through schema.sql and bump schemaVersion.
package records
