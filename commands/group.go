package commands

import (
	"fmt"
	"yatube/storage/models"
	"yatube/utils"

	"github.com/spf13/cobra"
)

var (
	// Group flags
	groupTitle       string
	groupDescription string
)

// groupCmd manages post groups
var groupCmd = &cobra.Command{
	Use:   "group",
	Short: "Manage post groups",
}

var groupCreateCmd = &cobra.Command{
	Use:   "create SLUG",
	Short: "Create a group",
	Long: `Create a group posts can be filed under.

Examples:
  yatube group create cats --title "Cats" --description "All about cats"`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		store, err := openStore(ctx, settings)
		if err != nil {
			return err
		}
		defer store.Close()

		group := models.Group{
			Slug:        args[0],
			Title:       utils.StringFromString(groupTitle, args[0]),
			Description: groupDescription,
		}
		if len([]rune(group.Title)) > models.GroupTitleMaxLength {
			return fmt.Errorf("title is longer than %d characters", models.GroupTitleMaxLength)
		}

		created, err := store.CreateGroup(ctx, group)
		if err != nil {
			return fmt.Errorf("failed to create group %s: %w", group.Slug, err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Created group %s (id %d)\n", created.Slug, created.ID)
		return nil
	},
}

var groupDeleteCmd = &cobra.Command{
	Use:   "delete SLUG",
	Short: "Delete a group, keeping its posts",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		store, err := openStore(ctx, settings)
		if err != nil {
			return err
		}
		defer store.Close()

		group, err := store.GetGroupBySlug(ctx, args[0])
		if err != nil {
			return fmt.Errorf("failed to find group %s: %w", args[0], err)
		}
		if err := store.DeleteGroup(ctx, group.ID); err != nil {
			return fmt.Errorf("failed to delete group %s: %w", group.Slug, err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Deleted group %s\n", group.Slug)
		return nil
	},
}

func init() {
	groupCreateCmd.Flags().StringVar(&groupTitle, "title", "", "Group title (defaults to the slug)")
	groupCreateCmd.Flags().StringVar(&groupDescription, "description", "", "Group description")

	groupCmd.AddCommand(groupCreateCmd)
	groupCmd.AddCommand(groupDeleteCmd)
	rootCmd.AddCommand(groupCmd)
}
