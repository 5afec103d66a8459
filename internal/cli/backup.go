package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/BALASANKARP/Edurecap/internal/app"
	"github.com/BALASANKARP/Edurecap/internal/archive"
	"github.com/BALASANKARP/Edurecap/internal/output"
)

func NewBackupCmd(deps *Dependencies) *cobra.Command {
	return &cobra.Command{
		Use:   "backup",
		Short: "Upload saved recordings to the configured MinIO bucket",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			formatter := output.NewFormatter(deps.Out)

			arch, err := archive.New(deps.Config.Archive, deps.Logger)
			if err != nil {
				return err
			}

			a, err := deps.NewApp(ctx, app.Options{Notifier: formatter})
			if err != nil {
				return err
			}
			defer a.Close()

			res, err := arch.Backup(ctx, a.Catalog.All())
			for _, name := range res.Skipped {
				formatter.Warning(fmt.Sprintf("Skipped %s: audio file is missing", name))
			}
			if err != nil {
				return err
			}
			formatter.Success(fmt.Sprintf("Backed up %d recordings to %s", res.Uploaded, deps.Config.Archive.Bucket))
			return nil
		},
	}
}
