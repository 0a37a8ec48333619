package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/ShayCichocki/maestro/internal/supervisor"
	"github.com/ShayCichocki/maestro/pkg/models"
)

var (
	queryUserID         string
	queryConversationID string
	queryDebug          bool
)

var queryCmd = &cobra.Command{
	Use:   "query [text]",
	Short: "Run a single query through the pipeline",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := buildApp()
		if err != nil {
			return err
		}
		defer app.close()

		resp := app.supervisor.HandleQuery(context.Background(), supervisor.Request{
			Query:          strings.Join(args, " "),
			UserID:         queryUserID,
			ConversationID: queryConversationID,
			Debug:          queryDebug,
		})

		fmt.Println(resp.Answer)

		if len(resp.Errors) > 0 {
			fmt.Println()
			for _, e := range resp.Errors {
				fmt.Printf("%s %s\n", color.YellowString("⚠"), e)
			}
		}

		if queryDebug && len(resp.Steps) > 0 {
			fmt.Println()
			for _, step := range resp.Steps {
				marker := color.GreenString("✓")
				detail := step.Result
				if step.Status != models.StatusSuccess {
					marker = color.RedString("✗")
					detail = step.Error
				}
				fmt.Printf("%s step %d %s: %s\n", marker, step.StepID, step.Agent, detail)
			}
		}

		return nil
	},
}

func init() {
	queryCmd.Flags().StringVar(&queryUserID, "user", "", "User id passed to agents")
	queryCmd.Flags().StringVar(&queryConversationID, "conversation", "", "Conversation id for history")
	queryCmd.Flags().BoolVar(&queryDebug, "debug", false, "Show per-step results")
}
