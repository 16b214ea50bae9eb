package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"clipkit/internal/logging"
	"clipkit/internal/media/video"
	"clipkit/internal/timecode"
)

func newExtractAudioCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "extract-audio <file> <output>",
		Short: "Copy the audio stream to a separate file without re-encoding",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger, err := ctx.ensureLogger()
			if err != nil {
				return err
			}
			handle, err := ctx.openVideo(args[0])
			if err != nil {
				return err
			}
			if err := handle.ExtractAudio(cmd.Context(), args[1]); err != nil {
				return err
			}
			logger.Info("audio extracted", logging.String("output", args[1]))
			return nil
		},
	}
}

func newToImagesCommand(ctx *commandContext) *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "to-images <file> <dir>",
		Short: "Emit one image per frame into a directory",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger, err := ctx.ensureLogger()
			if err != nil {
				return err
			}
			handle, err := ctx.openVideo(args[0])
			if err != nil {
				return err
			}
			if err := handle.ToImageSequence(cmd.Context(), args[1], format); err != nil {
				return err
			}
			logger.Info("image sequence written",
				logging.String("dir", args[1]),
				logging.String("format", format))
			return nil
		},
	}

	cmd.Flags().StringVar(&format, "format", "jpg", "Image format extension")
	return cmd
}

func newFromImagesCommand(ctx *commandContext) *cobra.Command {
	var rate int

	cmd := &cobra.Command{
		Use:   "from-images <pattern> <output>",
		Short: "Assemble a video from a sequential image pattern",
		Long: `Assemble a video from images matched by an ffmpeg sequence pattern.

Example:
  clipkit from-images 'frames/test-%03d.jpg' output.mp4 --rate 25`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger, err := ctx.ensureLogger()
			if err != nil {
				return err
			}
			opts, err := ctx.videoOptions()
			if err != nil {
				return err
			}
			handle, err := video.FromImageSequence(cmd.Context(), args[0], rate, args[1], opts...)
			if err != nil {
				return err
			}
			logger.Info("video assembled",
				logging.String("output", handle.Path()),
				logging.Int("rate", rate))
			return nil
		},
	}

	cmd.Flags().IntVar(&rate, "rate", 25, "Frame rate of the assembled video")
	return cmd
}

func newOverlayCommand(ctx *commandContext) *cobra.Command {
	var startFlag string
	var durationFlag string

	cmd := &cobra.Command{
		Use:   "overlay <file> <overlay> <output>",
		Short: "Composite another video or image on top of a media file",
		Long: `Composite a second input on top of a media file for a window of time.

The window starts at --start and runs for the overlay's own duration, or for
--duration when given. Still images have no duration of their own, so
--duration is required for them.`,
		Args: cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger, err := ctx.ensureLogger()
			if err != nil {
				return err
			}
			start, err := timecode.Parse(startFlag)
			if err != nil {
				return fmt.Errorf("parse --start: %w", err)
			}
			handle, err := ctx.openVideo(args[0])
			if err != nil {
				return err
			}
			overlaySource, err := ctx.openVideo(args[1])
			if err != nil {
				return err
			}

			var opts []video.OverlayOption
			if durationFlag != "" {
				duration, err := timecode.Parse(durationFlag)
				if err != nil {
					return fmt.Errorf("parse --duration: %w", err)
				}
				opts = append(opts, video.OverlayDuration(duration))
			}

			result, err := handle.Overlay(cmd.Context(), overlaySource, start, args[2], opts...)
			if err != nil {
				return err
			}
			logger.Info("overlay complete", logging.String("output", result.Path()))
			return nil
		},
	}

	cmd.Flags().StringVar(&startFlag, "start", "0", "Offset in seconds at which the overlay appears")
	cmd.Flags().StringVar(&durationFlag, "duration", "", "Overlay window length in seconds")
	return cmd
}

func newReencodeCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "reencode <file> <output>",
		Short: "Re-encode a media file; the output extension picks the container",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger, err := ctx.ensureLogger()
			if err != nil {
				return err
			}
			handle, err := ctx.openVideo(args[0])
			if err != nil {
				return err
			}
			result, err := handle.Reencode(cmd.Context(), args[1])
			if err != nil {
				return err
			}
			logger.Info("reencode complete", logging.String("output", result.Path()))
			return nil
		},
	}
}

func newSplitCommand(ctx *commandContext) *cobra.Command {
	var atFlag string

	cmd := &cobra.Command{
		Use:   "split <file> <first> <second>",
		Short: "Split a media file at an exact decimal offset",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger, err := ctx.ensureLogger()
			if err != nil {
				return err
			}
			at, err := timecode.Parse(atFlag)
			if err != nil {
				return fmt.Errorf("parse --at: %w", err)
			}
			handle, err := ctx.openVideo(args[0])
			if err != nil {
				return err
			}
			first, second, err := handle.Split(cmd.Context(), at, args[1], args[2])
			if err != nil {
				return err
			}
			logger.Info("split complete",
				logging.String("first", first.Path()),
				logging.String("second", second.Path()),
				logging.String("at", at.String()))
			return nil
		},
	}

	cmd.Flags().StringVar(&atFlag, "at", "", "Split point in seconds, decimal precision preserved")
	_ = cmd.MarkFlagRequired("at")
	return cmd
}

func newConcatCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "concat <file>... <output>",
		Short: "Concatenate media files in order",
		Args:  cobra.MinimumNArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger, err := ctx.ensureLogger()
			if err != nil {
				return err
			}
			inputs := args[:len(args)-1]
			output := args[len(args)-1]

			first, err := ctx.openVideo(inputs[0])
			if err != nil {
				return err
			}
			rest := make([]*video.Video, 0, len(inputs)-1)
			for _, path := range inputs[1:] {
				handle, err := ctx.openVideo(path)
				if err != nil {
					return err
				}
				rest = append(rest, handle)
			}

			result, err := first.Concatenate(cmd.Context(), rest, output)
			if err != nil {
				return err
			}
			logger.Info("concatenation complete",
				logging.String("output", result.Path()),
				logging.Int("inputs", len(inputs)))
			return nil
		},
	}
}

func newInsertCommand(ctx *commandContext) *cobra.Command {
	var atFlag string

	cmd := &cobra.Command{
		Use:   "insert <file> <other> <output>",
		Short: "Insert one media file into another at an offset",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger, err := ctx.ensureLogger()
			if err != nil {
				return err
			}
			at, err := timecode.Parse(atFlag)
			if err != nil {
				return fmt.Errorf("parse --at: %w", err)
			}
			handle, err := ctx.openVideo(args[0])
			if err != nil {
				return err
			}
			other, err := ctx.openVideo(args[1])
			if err != nil {
				return err
			}
			result, err := handle.Insert(cmd.Context(), other, at, args[2])
			if err != nil {
				return err
			}
			logger.Info("insert complete", logging.String("output", result.Path()))
			return nil
		},
	}

	cmd.Flags().StringVar(&atFlag, "at", "", "Insertion point in seconds")
	_ = cmd.MarkFlagRequired("at")
	return cmd
}
