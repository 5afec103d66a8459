package cli

import (
	"github.com/spf13/cobra"

	"github.com/BALASANKARP/Edurecap/internal/app"
	"github.com/BALASANKARP/Edurecap/internal/output"
)

func NewListCmd(deps *Dependencies) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List saved recordings",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			formatter := output.NewFormatter(deps.Out)

			a, err := deps.NewApp(cmd.Context(), app.Options{Notifier: formatter})
			if err != nil {
				return err
			}
			defer a.Close()

			recs := a.Catalog.All()
			formatter.RecordingListHeader(len(recs))
			for i, rec := range recs {
				formatter.RecordingListItem(i+1, rec)
			}
			return nil
		},
	}
}

func NewShowCmd(deps *Dependencies) *cobra.Command {
	return &cobra.Command{
		Use:   "show <number>",
		Short: "Show a recording with its transcription",
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
			formatter.RecordingDetail(i+1, rec)
			return nil
		},
	}
}

func NewDeleteCmd(deps *Dependencies) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <number>",
		Short: "Delete a recording and its audio",
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

			rec, err := a.Delete(cmd.Context(), i)
			if err != nil {
				return err
			}
			formatter.Deleted(rec)
			return nil
		},
	}
}
