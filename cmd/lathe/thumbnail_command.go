package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"lathe/internal/config"
	"lathe/internal/ffmpeg"
	"lathe/internal/fileutil"
	"lathe/internal/logging"
)

func newThumbnailCommand(ctx *commandContext) *cobra.Command {
	var atTime float64
	var outputPath string

	cmd := &cobra.Command{
		Use:   "thumbnail <video-file>",
		Short: "Extract a still frame from a video",
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

			image, err := backend.Thumbnail(cmd.Context(), path, atTime)
			if err != nil {
				return err
			}

			if outputPath != "" {
				target, err := config.ExpandPath(outputPath)
				if err != nil {
					return fmt.Errorf("resolve %s: %w", outputPath, err)
				}
				if err := fileutil.MoveFile(image, target); err != nil {
					return fmt.Errorf("move thumbnail: %w", err)
				}
				image = target
			}

			fmt.Fprintln(cmd.OutOrStdout(), image)
			return nil
		},
	}

	cmd.Flags().Float64Var(&atTime, "at", ffmpeg.DefaultThumbnailTime, "Timestamp in seconds to capture")
	cmd.Flags().StringVarP(&outputPath, "output", "o", "", "Destination path for the thumbnail")
	return cmd
}
