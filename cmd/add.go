package cmd

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/haritha1313/smartnotes/internal/models"
)

var (
	addComment  string
	addURL      string
	addTitle    string
	addCategory string
	addNoAI     bool
)

// addCmd represents the add command
var addCmd = &cobra.Command{
	Use:   "add [text]",
	Short: "Capture a note and sync it to the workspace",
	Long: `Captures a text snippet as a note. Unless a category is given, one is
suggested by the categorization engine using the workspace's existing
categories. The note is saved locally first; workspace sync happens with a
short foreground budget and finishes in the background if the workspace is
slow.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		appInstance, err := GetAppFromContext(cmd.Context())
		if err != nil {
			return err
		}

		text := strings.Join(args, " ")
		creds := appInstance.Creds()

		input := models.NoteInput{
			Text:     text,
			Comment:  addComment,
			URL:      addURL,
			Title:    addTitle,
			Category: addCategory,
		}

		if input.Category == "" && !addNoAI {
			known := []string{}
			if creds != nil {
				known, err = appInstance.CategoryExtractor.Fetch(cmd.Context(), creds.Token, creds.DatabaseID, true)
				if err != nil {
					log.Warnf("could not read workspace categories: %v", err)
					known = nil
				}
			}
			suggestion, err := appInstance.CategorizationService.Suggest(cmd.Context(), text, addComment, known)
			if err != nil {
				return fmt.Errorf("categorization failed: %w", err)
			}
			input.Category = suggestion.Category
			if input.Title == "" {
				input.Title = suggestion.Title
			}
			fmt.Printf("Suggested category: %s (confidence %.2f)\n", suggestion.Category, suggestion.Confidence)
		}

		note, err := appInstance.NoteService.CreateAndSync(cmd.Context(), input, creds)
		if err != nil {
			return fmt.Errorf("failed to add note: %w", err)
		}

		fmt.Printf("Note %s saved.\n", note.ID)
		fmt.Printf("  Title:    %s\n", note.Title)
		fmt.Printf("  Category: %s\n", note.Category)
		fmt.Printf("  Sync:     %s\n", colorSyncState(note.SyncState))
		if note.PageID != "" {
			fmt.Printf("  Page:     %s\n", note.PageID)
		}
		return nil
	},
}

func colorSyncState(state models.SyncState) string {
	switch state {
	case models.SyncSynced:
		return color.GreenString(string(state))
	case models.SyncPending:
		return color.YellowString(string(state))
	case models.SyncFailed:
		return color.RedString(string(state))
	default:
		return string(state)
	}
}

func init() {
	addCmd.Flags().StringVarP(&addComment, "comment", "c", "", "Optional comment on the snippet")
	addCmd.Flags().StringVarP(&addURL, "url", "u", "", "Source URL the snippet came from")
	addCmd.Flags().StringVarP(&addTitle, "title", "t", "", "Note title (derived when empty)")
	addCmd.Flags().StringVar(&addCategory, "category", "", "Category (skips categorization when set)")
	addCmd.Flags().BoolVar(&addNoAI, "no-ai", false, "Skip categorization, use default category")
	rootCmd.AddCommand(addCmd)
}
