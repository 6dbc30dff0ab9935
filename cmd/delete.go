package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/haritha1313/smartnotes/internal/models"
)

var deleteCmd = &cobra.Command{
	Use:   "delete [id]",
	Short: "Delete a locally stored note",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		appInstance, err := GetAppFromContext(cmd.Context())
		if err != nil {
			return err
		}

		if err := appInstance.NoteService.Delete(cmd.Context(), args[0]); err != nil {
			if errors.Is(err, models.ErrNotFound) {
				return fmt.Errorf("no note with id %s", args[0])
			}
			return fmt.Errorf("failed to delete note: %w", err)
		}
		fmt.Println("Note deleted. The workspace copy, if any, is kept.")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(deleteCmd)
}
