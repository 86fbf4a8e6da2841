package main

import (
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/gofrs/flock"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"lathe/internal/config"
	"lathe/internal/encoding"
	"lathe/internal/events"
	"lathe/internal/ffmpeg"
	"lathe/internal/logging"
	"lathe/internal/notifications"
	"lathe/internal/records"
	"lathe/internal/storage"
)

func newConvertCommand(ctx *commandContext) *cobra.Command {
	var force bool
	var ownerKind string
	var ownerID string
	var field string

	cmd := &cobra.Command{
		Use:   "convert <video-file>...",
		Short: "Convert videos into the configured renditions",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if ownerID != "" && len(args) > 1 {
				return errors.New("--owner-id can only be combined with a single source file")
			}
			return runConvert(cmd, ctx, args, force, ownerKind, ownerID, field)
		},
	}

	cmd.Flags().BoolVarP(&force, "force", "f", false, "Re-encode renditions that already have an output file")
	cmd.Flags().StringVar(&ownerKind, "owner-kind", "video", "Kind of the owning entity")
	cmd.Flags().StringVar(&ownerID, "owner-id", "", "Identifier of the owning entity (defaults to the file name)")
	cmd.Flags().StringVar(&field, "field", "file", "Video field name on the owning entity")
	return cmd
}

func runConvert(cmd *cobra.Command, ctx *commandContext, args []string, force bool, ownerKind, ownerID, field string) error {
	signalCtx, cancel := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	cfg, err := ctx.ensureConfig()
	if err != nil {
		return err
	}

	logger, err := logging.NewFromConfig(cfg)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}

	lock := flock.New(filepath.Join(cfg.Paths.LogDir, "lathe.lock"))
	locked, err := lock.TryLock()
	if err != nil {
		return fmt.Errorf("acquire lock: %w", err)
	}
	if !locked {
		return errors.New("another lathe conversion is already running")
	}
	defer func() { _ = lock.Unlock() }()

	backend, err := ffmpeg.New(cfg, ffmpeg.WithLogger(logger))
	if err != nil {
		return err
	}

	store, err := records.Open(cfg)
	if err != nil {
		return err
	}
	defer store.Close()

	artifacts, err := storage.NewDisk(cfg.Paths.OutputDir)
	if err != nil {
		return err
	}

	bus := events.NewBus()
	recorder := events.NewRecorder()
	bus.Subscribe(recorder)
	bus.Subscribe(notifications.NewListener(cfg, logger))

	opts := []encoding.Option{encoding.WithLogger(logger)}
	if isatty.IsTerminal(os.Stderr.Fd()) {
		bars := newProgressRenderer(os.Stderr)
		bus.Subscribe(bars)
		opts = append(opts, encoding.WithProgressFunc(bars.Update))
	}

	converter := encoding.NewConverter(cfg, encoding.NewFFmpegEncoder(backend), store, artifacts, bus, opts...)

	var failures []error
	for _, arg := range args {
		path, err := config.ExpandPath(arg)
		if err != nil {
			failures = append(failures, fmt.Errorf("resolve %s: %w", arg, err))
			continue
		}
		owner := records.OwnerRef{
			Kind:  ownerKind,
			ID:    ownerID,
			Field: field,
		}
		if owner.ID == "" {
			base := filepath.Base(path)
			owner.ID = strings.TrimSuffix(base, filepath.Ext(base))
		}

		source := encoding.Source{Owner: owner, File: storage.LocalFile(path)}
		if err := converter.Convert(signalCtx, source, force); err != nil {
			failures = append(failures, fmt.Errorf("%s: %w", arg, err))
		}
	}

	printConvertSummary(cmd, recorder)
	return errors.Join(failures...)
}

func printConvertSummary(cmd *cobra.Command, recorder *events.Recorder) {
	outcomes := recorder.Outcomes()
	if len(outcomes) == 0 {
		return
	}

	rows := make([][]string, 0, len(outcomes))
	for _, outcome := range outcomes {
		detail := outcome.OutputFile
		if outcome.Err != nil {
			detail = outcome.Err.Error()
		}
		rows = append(rows, []string{
			outcome.Owner.String(),
			outcome.Format,
			string(outcome.Result),
			detail,
		})
	}

	fmt.Fprintln(cmd.OutOrStdout(), renderTable([]string{"Owner", "Format", "Result", "Output"}, rows))
}
