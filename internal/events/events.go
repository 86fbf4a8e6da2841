package events

import (
	"context"

	"lathe/internal/records"
)

// Result describes how a single format conversion ended.
type Result string

const (
	ResultSucceeded Result = "succeeded"
	ResultFailed    Result = "failed"
	ResultSkipped   Result = "skipped"
)

// FormatOutcome is delivered when one format finishes.
type FormatOutcome struct {
	Owner      records.OwnerRef
	Format     string
	Result     Result
	OutputFile string
	Err        error
}

// Listener receives conversion lifecycle events. EncodingStarted fires once
// before any format work, EncodingFinished once after all of it, and each
// format produces exactly one FormatStarted and one FormatFinished in
// between. FormatStarted carries a snapshot of the format record as it stood
// when the format was picked up, so listeners can read prior progress and
// output state without touching the store.
type Listener interface {
	EncodingStarted(ctx context.Context, owner records.OwnerRef)
	FormatStarted(ctx context.Context, owner records.OwnerRef, record records.Record)
	FormatFinished(ctx context.Context, outcome FormatOutcome)
	EncodingFinished(ctx context.Context, owner records.OwnerRef)
}

// Bus fans events out to subscribed listeners, in subscription order.
type Bus struct {
	listeners []Listener
}

// NewBus returns an empty bus.
func NewBus() *Bus {
	return &Bus{}
}

// Subscribe registers a listener. Not safe to call concurrently with dispatch.
func (b *Bus) Subscribe(listener Listener) {
	if listener == nil {
		return
	}
	b.listeners = append(b.listeners, listener)
}

func (b *Bus) EncodingStarted(ctx context.Context, owner records.OwnerRef) {
	for _, listener := range b.listeners {
		listener.EncodingStarted(ctx, owner)
	}
}

func (b *Bus) FormatStarted(ctx context.Context, owner records.OwnerRef, record records.Record) {
	for _, listener := range b.listeners {
		listener.FormatStarted(ctx, owner, record)
	}
}

func (b *Bus) FormatFinished(ctx context.Context, outcome FormatOutcome) {
	for _, listener := range b.listeners {
		listener.FormatFinished(ctx, outcome)
	}
}

func (b *Bus) EncodingFinished(ctx context.Context, owner records.OwnerRef) {
	for _, listener := range b.listeners {
		listener.EncodingFinished(ctx, owner)
	}
}
