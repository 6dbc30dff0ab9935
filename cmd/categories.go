package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var categoriesFresh bool

var categoriesCmd = &cobra.Command{
	Use:   "categories",
	Short: "Work with workspace categories",
	Run: func(cmd *cobra.Command, args []string) {
		cmd.Help()
	},
}

var categoriesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List the category options of the workspace database",
	RunE: func(cmd *cobra.Command, args []string) error {
		appInstance, err := GetAppFromContext(cmd.Context())
		if err != nil {
			return err
		}
		creds := appInstance.Creds()
		if creds == nil {
			return fmt.Errorf("no workspace configured")
		}

		categories, err := appInstance.CategoryExtractor.Fetch(cmd.Context(), creds.Token, creds.DatabaseID, !categoriesFresh)
		if err != nil {
			return fmt.Errorf("failed to read categories: %w", err)
		}
		for _, cat := range categories {
			fmt.Println(cat)
		}
		return nil
	},
}

var categoriesWarmCmd = &cobra.Command{
	Use:   "warm",
	Short: "Pre-populate the category cache",
	RunE: func(cmd *cobra.Command, args []string) error {
		appInstance, err := GetAppFromContext(cmd.Context())
		if err != nil {
			return err
		}
		creds := appInstance.Creds()
		if creds == nil {
			return fmt.Errorf("no workspace configured")
		}

		if appInstance.CategoryExtractor.Warm(cmd.Context(), creds.Token, creds.DatabaseID) {
			fmt.Println("Category cache warmed.")
		} else {
			fmt.Println("Warm-up failed; cache left as is.")
		}
		return nil
	},
}

var categoriesClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Drop all cached category lists",
	RunE: func(cmd *cobra.Command, args []string) error {
		appInstance, err := GetAppFromContext(cmd.Context())
		if err != nil {
			return err
		}
		appInstance.CategoryExtractor.InvalidateAll()
		fmt.Println("Category cache cleared.")
		return nil
	},
}

func init() {
	categoriesListCmd.Flags().BoolVar(&categoriesFresh, "fresh", false, "Bypass the cache and read the schema")
	categoriesCmd.AddCommand(categoriesListCmd)
	categoriesCmd.AddCommand(categoriesWarmCmd)
	categoriesCmd.AddCommand(categoriesClearCmd)
	rootCmd.AddCommand(categoriesCmd)
}
