package main

import (
	"context"
	"io"

	"github.com/schollz/progressbar/v3"

	"lathe/internal/events"
	"lathe/internal/records"
)

// progressRenderer draws one terminal progress bar per format. Dispatch is
// synchronous, so a single current bar is enough.
type progressRenderer struct {
	out io.Writer
	bar *progressbar.ProgressBar
}

func newProgressRenderer(out io.Writer) *progressRenderer {
	return &progressRenderer{out: out}
}

func (p *progressRenderer) EncodingStarted(context.Context, records.OwnerRef) {}

func (p *progressRenderer) FormatStarted(_ context.Context, _ records.OwnerRef, record records.Record) {
	p.bar = progressbar.NewOptions(100,
		progressbar.OptionSetWriter(p.out),
		progressbar.OptionSetDescription(record.Format),
		progressbar.OptionSetPredictTime(false),
		progressbar.OptionClearOnFinish(),
	)
}

func (p *progressRenderer) Update(_ records.OwnerRef, _ string, percent int) {
	if p.bar != nil {
		_ = p.bar.Set(percent)
	}
}

func (p *progressRenderer) FormatFinished(context.Context, events.FormatOutcome) {
	if p.bar != nil {
		_ = p.bar.Finish()
		_ = p.bar.Clear()
		p.bar = nil
	}
}

func (p *progressRenderer) EncodingFinished(context.Context, records.OwnerRef) {}
