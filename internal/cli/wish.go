package cli

import (
	"fmt"
	"strings"

	"github.com/imkarma/kidtask/internal/store"
	"github.com/spf13/cobra"
)

var wishLevel string

var wishCmd = &cobra.Command{
	Use:   "wish",
	Short: "Create and review wishes",
}

var wishAddCmd = &cobra.Command{
	Use:   "add [name]",
	Short: "Add a wish (Child)",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runWishAdd,
}

var wishListCmd = &cobra.Command{
	Use:   "list",
	Short: "List wishes with their visibility at the current level",
	Args:  cobra.NoArgs,
	RunE:  runWishList,
}

var wishApproveCmd = &cobra.Command{
	Use:   "approve [id]",
	Short: "Approve a wish (Parent/Teacher)",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return reviewWish(cmd, args[0], store.WishApproved)
	},
}

var wishRejectCmd = &cobra.Command{
	Use:   "reject [id]",
	Short: "Reject a wish (Parent/Teacher)",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return reviewWish(cmd, args[0], store.WishRejected)
	},
}

func init() {
	wishAddCmd.Flags().StringVarP(&wishLevel, "level", "l", "", "Minimum level required to see the wish")

	wishCmd.AddCommand(wishAddCmd)
	wishCmd.AddCommand(wishListCmd)
	wishCmd.AddCommand(wishApproveCmd)
	wishCmd.AddCommand(wishRejectCmd)
}

func runWishAdd(cmd *cobra.Command, args []string) error {
	if _, err := requireRole("add wishes", store.RoleChild); err != nil {
		return err
	}
	name, err := store.RequireText("wish name", strings.Join(args, " "))
	if err != nil {
		return err
	}
	level, err := store.ParseInt("min level", wishLevel)
	if err != nil {
		return err
	}

	s, err := mustStore()
	if err != nil {
		return err
	}
	defer s.Close()

	wish, err := s.AddWish(name, level)
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Created wish %s: %s (min level %d)\n", wish.ID, wish.Name, wish.MinLevel)
	return nil
}

func runWishList(cmd *cobra.Command, args []string) error {
	s, err := mustStore()
	if err != nil {
		return err
	}
	defer s.Close()

	out := cmd.OutOrStdout()
	level := s.Progress().Level
	wishes := s.Wishes()
	if len(wishes) == 0 {
		fmt.Fprintln(out, "No wishes created yet.")
	}
	for _, w := range wishes {
		tag := colorGreen + "VISIBLE" + colorReset
		if !store.WishVisible(w, level) {
			tag = colorDim + "LOCKED" + colorReset
		}
		fmt.Fprintf(out, "%-4s [%s] %s (min level %d) -> %s\n", w.ID, w.Status, w.Name, w.MinLevel, tag)
	}
	fmt.Fprintf(out, "\nCurrent child level = %d. Wishes with min level > level are LOCKED.\n", level)
	return nil
}

func reviewWish(cmd *cobra.Command, id string, status store.WishStatus) error {
	if _, err := requireRole("review wishes", store.RoleParent, store.RoleTeacher); err != nil {
		return err
	}

	s, err := mustStore()
	if err != nil {
		return err
	}
	defer s.Close()

	var wish store.Wish
	if status == store.WishApproved {
		wish, err = s.ApproveWish(id)
	} else {
		wish, err = s.RejectWish(id)
	}
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Wish %s (%s) is now %s.\n", wish.ID, wish.Name, wish.Status)
	return nil
}
