package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"clipkit/internal/logging"
)

func newProbeCommand(ctx *commandContext) *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "probe <file>",
		Short: "Inspect a media file and show its streams and format",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger, err := ctx.ensureLogger()
			if err != nil {
				return err
			}

			handle, err := ctx.openVideo(args[0])
			if err != nil {
				return err
			}

			logger.Debug("probing media", logging.String("path", handle.Path()))
			meta, err := handle.Metadata(cmd.Context())
			if err != nil {
				return err
			}

			if jsonOutput {
				fmt.Fprintln(cmd.OutOrStdout(), string(meta.RawJSON()))
				return nil
			}

			rows := make([][]string, 0, len(meta.Streams))
			for _, stream := range meta.Streams {
				dimensions := ""
				if stream.Width > 0 {
					dimensions = fmt.Sprintf("%dx%d", stream.Width, stream.Height)
				}
				rows = append(rows, []string{
					fmt.Sprintf("%d", stream.Index),
					stream.CodecType,
					stream.CodecName,
					stream.Duration,
					stream.NBFrames,
					dimensions,
				})
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderTable(
				[]string{"#", "Type", "Codec", "Duration", "Frames", "Size"},
				rows,
			))
			fmt.Fprintf(cmd.OutOrStdout(), "Container: %s  Duration: %s\n",
				meta.Format.FormatName, meta.Format.Duration)
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Print the raw probe JSON payload")
	return cmd
}
