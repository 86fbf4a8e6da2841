// Package encoding orchestrates converting a source video into every
// configured rendition. It drives the encoder backend, tracks per-format
// progress in the record store, publishes lifecycle events, and commits
// finished artifacts to output storage.
package encoding
