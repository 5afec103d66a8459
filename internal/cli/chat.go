package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/BALASANKARP/Edurecap/internal/app"
	"github.com/BALASANKARP/Edurecap/internal/output"
	"github.com/BALASANKARP/Edurecap/internal/pipeline"
)

func NewChatCmd(deps *Dependencies) *cobra.Command {
	var (
		paragraph string
		number    string
	)

	cmd := &cobra.Command{
		Use:   "chat [question]",
		Short: "Ask questions about a passage or a recording's transcription",
		Long:  "Ask the processing service a question about a passage. Without a question argument, questions are read one per line until an empty line.",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			formatter := output.NewFormatter(deps.Out)

			if number != "" {
				i, err := parseIndex(number)
				if err != nil {
					return err
				}
				a, err := deps.NewApp(ctx, app.Options{Notifier: formatter})
				if err != nil {
					return err
				}
				rec, err := a.Catalog.At(i)
				a.Close()
				if err != nil {
					return err
				}
				paragraph = rec.Transcription
			}

			client := pipeline.NewClient(deps.Config.Remote.BaseURL, deps.Config.Remote.Timeout, deps.Logger)

			ask := func(question string) error {
				answer, err := client.Ask(ctx, paragraph, question)
				if err != nil {
					formatter.Notify(ctx, err)
					return reported(err)
				}
				fmt.Fprintf(deps.Out, "💬 %s\n", answer)
				return nil
			}

			if len(args) > 0 {
				return ask(strings.Join(args, " "))
			}

			for {
				fmt.Fprint(deps.Out, "? ")
				line, ok := <-deps.lines.Next()
				question := strings.TrimSpace(line)
				if !ok || question == "" {
					return nil
				}
				// a failed question does not end the conversation
				ask(question)
			}
		},
	}

	cmd.Flags().StringVarP(&paragraph, "context", "c", "", "Passage the question is about")
	cmd.Flags().StringVarP(&number, "recording", "r", "", "Use the transcription of this recording as the passage")
	return cmd
}
