package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"lathe/internal/config"
	"lathe/internal/ffmpeg"
	"lathe/internal/logging"
)

func newProbeCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "probe <video-file>",
		Short: "Inspect a video's dimensions and duration",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}

			backend, err := ffmpeg.New(cfg, ffmpeg.WithLogger(logging.NewNop()))
			if err != nil {
				return err
			}

			path, err := config.ExpandPath(args[0])
			if err != nil {
				return fmt.Errorf("resolve %s: %w", args[0], err)
			}

			info, err := backend.MediaInfo(cmd.Context(), path)
			if err != nil {
				return err
			}

			rows := [][]string{
				{"Width", strconv.FormatUint(uint64(info.Width), 10)},
				{"Height", strconv.FormatUint(uint64(info.Height), 10)},
				{"Duration", fmt.Sprintf("%.3fs", info.Duration)},
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderTable([]string{"Property", "Value"}, rows, 2))
			return nil
		},
	}
}
