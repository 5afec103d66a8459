package cli

import (
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/BALASANKARP/Edurecap/internal/app"
	"github.com/BALASANKARP/Edurecap/internal/exporter"
	"github.com/BALASANKARP/Edurecap/internal/output"
)

func NewExportCmd(deps *Dependencies) *cobra.Command {
	var outputPath string

	cmd := &cobra.Command{
		Use:   "export <number>",
		Short: "Export a recording's transcription to a Word document",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			formatter := output.NewFormatter(deps.Out)

			i, err := parseIndex(args[0])
			if err != nil {
				return err
			}

			a, err := deps.NewApp(cmd.Context(), app.Options{Notifier: formatter})
			if err != nil {
				return err
			}
			defer a.Close()

			rec, err := a.Catalog.At(i)
			if err != nil {
				return err
			}

			if outputPath == "" {
				outputPath = rec.Name + ".docx"
			}
			if err := exporter.Save(exporter.FromRecording(rec, time.Now()), outputPath); err != nil {
				return err
			}

			abs, _ := filepath.Abs(outputPath)
			formatter.Exported(abs)
			return nil
		},
	}

	cmd.Flags().StringVarP(&outputPath, "output", "o", "", "Output file (default <name>.docx)")
	return cmd
}
