// Package events carries conversion lifecycle notifications. Dispatch is
// synchronous and in subscription order so listeners observe the strict
// started/finished bracketing the orchestrator guarantees.
package events
