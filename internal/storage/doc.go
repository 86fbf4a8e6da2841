// Package storage abstracts where source videos live and where encoded
// renditions are committed.
//
// A File is any byte source with a name. Files backed by a filesystem path
// implement Pather; files owned by a Storage backend may be resolvable to a
// local path through LocalResolver. WithLocalPath bridges the gap for
// callers that need a real path for external tools, streaming remote bytes
// into a call-scoped temporary file when nothing cheaper works.
package storage
