package cmd

import (
	"fmt"
	"os"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/haritha1313/smartnotes/internal/clix"
)

var (
	listCategory string
	listSearch   string
)

// listCmd represents the list command
var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List captured notes",
	Long: `Displays the locally stored notes, newest first. Supports filtering
by category and a case-insensitive text search over text, title and comment.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		appInstance, err := GetAppFromContext(cmd.Context())
		if err != nil {
			return err
		}

		filters := clix.ParseNoteFilters(cmd.Flags())
		notes, err := appInstance.NoteService.List(cmd.Context(), filters.Category, filters.Search)
		if err != nil {
			return fmt.Errorf("failed to list notes: %w", err)
		}
		if len(notes) == 0 {
			fmt.Println("No notes found.")
			return nil
		}

		table := tablewriter.NewWriter(os.Stdout)
		table.SetHeader([]string{"ID", "Title", "Category", "Sync", "Created At"})
		table.SetBorder(false)
		table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
		table.SetAlignment(tablewriter.ALIGN_LEFT)

		for _, n := range notes {
			id := n.ID
			if len(id) > 8 {
				id = id[:8]
			}
			table.Append([]string{
				id,
				n.Title,
				n.Category,
				colorSyncState(n.SyncState),
				n.CreatedAt.Format("2006-01-02 15:04:05"),
			})
		}
		table.Render()
		return nil
	},
}

func init() {
	listCmd.Flags().StringVar(&listCategory, "category", "", "Only show notes in this category")
	listCmd.Flags().StringVarP(&listSearch, "search", "s", "", "Filter notes by substring match")
	rootCmd.AddCommand(listCmd)
}
