package cmd

import (
	"fmt"
	"strings"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var suggestComment string

// suggestCmd runs categorization only, without saving a note.
var suggestCmd = &cobra.Command{
	Use:   "suggest [text]",
	Short: "Suggest a category and title for a snippet",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		appInstance, err := GetAppFromContext(cmd.Context())
		if err != nil {
			return err
		}

		text := strings.Join(args, " ")

		var known []string
		if creds := appInstance.Creds(); creds != nil {
			known, err = appInstance.CategoryExtractor.Fetch(cmd.Context(), creds.Token, creds.DatabaseID, true)
			if err != nil {
				log.Warnf("could not read workspace categories: %v", err)
				known = nil
			}
		}

		suggestion, err := appInstance.CategorizationService.Suggest(cmd.Context(), text, suggestComment, known)
		if err != nil {
			return fmt.Errorf("categorization failed: %w", err)
		}

		fmt.Printf("Category:   %s\n", suggestion.Category)
		fmt.Printf("Title:      %s\n", suggestion.Title)
		fmt.Printf("Confidence: %.2f\n", suggestion.Confidence)
		if suggestion.IsNew {
			fmt.Println("Note: this category does not exist in the workspace yet.")
		}
		if suggestion.Reasoning != "" {
			fmt.Printf("Reasoning:  %s\n", suggestion.Reasoning)
		}
		return nil
	},
}

func init() {
	suggestCmd.Flags().StringVarP(&suggestComment, "comment", "c", "", "Optional comment on the snippet")
	rootCmd.AddCommand(suggestCmd)
}
