package encoding

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"lathe/internal/config"
	"lathe/internal/events"
	"lathe/internal/logging"
	"lathe/internal/records"
	"lathe/internal/storage"
)

// Source pairs an owning entity reference with the video file to convert.
type Source struct {
	Owner records.OwnerRef
	File  storage.File
}

// SourceProvider exposes every video field of an entity. Empty fields are
// represented by a nil File and skipped.
type SourceProvider interface {
	VideoSources() []Source
}

// ProgressFunc observes per-format progress as whole percentages.
type ProgressFunc func(owner records.OwnerRef, format string, percent int)

// Converter runs the full conversion lifecycle for a source video.
type Converter struct {
	cfg       *config.Config
	encoder   Encoder
	store     *records.Store
	artifacts storage.Storage
	bus       *events.Bus
	logger    *slog.Logger
	progress  ProgressFunc
}

// Option customizes a Converter.
type Option func(*Converter)

// WithLogger attaches a logger for progress and failure reporting.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Converter) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithProgressFunc registers a callback invoked after each persisted
// progress update.
func WithProgressFunc(fn ProgressFunc) Option {
	return func(c *Converter) {
		c.progress = fn
	}
}

// NewConverter wires the conversion dependencies together.
func NewConverter(cfg *config.Config, encoder Encoder, store *records.Store, artifacts storage.Storage, bus *events.Bus, opts ...Option) *Converter {
	c := &Converter{
		cfg:       cfg,
		encoder:   encoder,
		store:     store,
		artifacts: artifacts,
		bus:       bus,
		logger:    logging.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// ConvertAll converts every video source of the provider in order. Empty
// fields are skipped without events. Per-source failures do not stop the
// remaining sources; the combined error is returned at the end.
func (c *Converter) ConvertAll(ctx context.Context, provider SourceProvider, force bool) error {
	var failures []error
	for _, source := range provider.VideoSources() {
		if source.File == nil {
			continue
		}
		if err := c.Convert(ctx, source, force); err != nil {
			failures = append(failures, err)
		}
	}
	return errors.Join(failures...)
}

// Convert resolves the source to a local path and produces every configured
// rendition for it. The encoding_started event fires only after the source
// has been resolved; encoding_finished always follows it, regardless of
// per-format outcomes, including when the rendition list is empty. A failing
// format does not stop the remaining ones.
func (c *Converter) Convert(ctx context.Context, source Source, force bool) error {
	renditions := c.cfg.ActiveRenditions()
	return storage.WithLocalPath(source.File, func(path string) error {
		return c.convertLocal(ctx, source, path, renditions, force)
	})
}

func (c *Converter) convertLocal(ctx context.Context, source Source, path string, renditions []config.Rendition, force bool) error {
	log := c.logger.With("owner", source.Owner.String(), "source", source.File.Name())
	log.Info("encoding started", "renditions", len(renditions), "force", force)

	c.bus.EncodingStarted(ctx, source.Owner)
	defer c.bus.EncodingFinished(ctx, source.Owner)

	var failures []error
	for _, rendition := range renditions {
		if err := c.convertFormat(ctx, source, path, rendition, force, log); err != nil {
			failures = append(failures, fmt.Errorf("format %s: %w", rendition.Name, err))
		}
	}

	log.Info("encoding finished", "failed", len(failures))
	return errors.Join(failures...)
}

func (c *Converter) convertFormat(ctx context.Context, source Source, path string, rendition config.Rendition, force bool, log *slog.Logger) error {
	log = log.With("format", rendition.Name)

	record, created, err := c.store.GetOrCreate(ctx, source.Owner, rendition.Name)
	if err != nil {
		return err
	}

	c.bus.FormatStarted(ctx, source.Owner, *record)

	if !created && record.Complete() && !force {
		log.Info("format already converted, skipping")
		c.bus.FormatFinished(ctx, events.FormatOutcome{
			Owner:      source.Owner,
			Format:     rendition.Name,
			Result:     events.ResultSkipped,
			OutputFile: record.OutputFile,
		})
		return nil
	}

	if err := c.store.ResetProgress(ctx, record); err != nil {
		return c.fail(ctx, record, rendition, "", err, log)
	}

	target := filepath.Join(c.cfg.Paths.StagingDir, fmt.Sprintf("%s_%s.%s", uuid.NewString(), rendition.Name, rendition.Extension))

	session, err := c.encoder.Encode(ctx, path, target, rendition.Params)
	if err != nil {
		return c.fail(ctx, record, rendition, target, err, log)
	}

	for session.Scan() {
		percent := int(session.Percent())
		if err := c.store.SetProgress(ctx, record, percent); err != nil {
			return c.fail(ctx, record, rendition, target, err, log)
		}
		if c.progress != nil {
			c.progress(source.Owner, rendition.Name, percent)
		}
		log.Debug("conversion progress", "percent", percent)
	}
	if err := session.Err(); err != nil {
		return c.fail(ctx, record, rendition, target, err, log)
	}

	outputName, err := c.commitArtifact(source, rendition, target)
	if err != nil {
		return c.fail(ctx, record, rendition, target, err, log)
	}

	if err := c.store.SetOutputFile(ctx, record, outputName); err != nil {
		return c.fail(ctx, record, rendition, "", err, log)
	}

	log.Info("format converted", "output", outputName)
	c.bus.FormatFinished(ctx, events.FormatOutcome{
		Owner:      source.Owner,
		Format:     rendition.Name,
		Result:     events.ResultSucceeded,
		OutputFile: outputName,
	})
	return nil
}

// commitArtifact moves the staged encode into output storage under its
// final name, replacing any previous artifact for the same rendition.
func (c *Converter) commitArtifact(source Source, rendition config.Rendition, target string) (string, error) {
	staged, err := os.Open(target)
	if err != nil {
		return "", fmt.Errorf("open staged encode: %w", err)
	}
	defer staged.Close()

	base := strings.TrimSuffix(filepath.Base(source.File.Name()), filepath.Ext(source.File.Name()))
	outputName := fmt.Sprintf("%s_%s.%s", base, rendition.Name, rendition.Extension)

	saved, err := c.artifacts.Save(outputName, staged)
	if err != nil {
		return "", fmt.Errorf("save artifact: %w", err)
	}

	if err := os.Remove(target); err != nil {
		c.logger.Warn("remove staged encode failed", "path", target, "error", err)
	}
	return saved, nil
}

// fail discards the staged output and the record so a later run starts the
// format from scratch, then publishes the failed outcome.
func (c *Converter) fail(ctx context.Context, record *records.Record, rendition config.Rendition, target string, cause error, log *slog.Logger) error {
	log.Error("format conversion failed", "error", cause)

	if target != "" {
		if err := os.Remove(target); err != nil && !os.IsNotExist(err) {
			log.Warn("remove staged encode failed", "path", target, "error", err)
		}
	}
	if _, err := c.store.Delete(ctx, record.ID); err != nil {
		log.Warn("delete record failed", "error", err)
	}

	c.bus.FormatFinished(ctx, events.FormatOutcome{
		Owner:  record.Owner,
		Format: rendition.Name,
		Result: events.ResultFailed,
		Err:    cause,
	})
	return cause
}
