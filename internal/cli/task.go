package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/imkarma/kidtask/internal/store"
	"github.com/spf13/cobra"
)

var (
	taskDescription string
	taskPoints      string
	taskRating      string
)

var taskCmd = &cobra.Command{
	Use:   "task",
	Short: "Create, complete and review tasks",
}

var taskAddCmd = &cobra.Command{
	Use:   "add [title]",
	Short: "Add a task (Parent/Teacher)",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runTaskAdd,
}

var taskListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all tasks",
	Args:  cobra.NoArgs,
	RunE:  runTaskList,
}

var taskShowCmd = &cobra.Command{
	Use:   "show [id]",
	Short: "Show task details",
	Args:  cobra.ExactArgs(1),
	RunE:  runTaskShow,
}

var taskDoneCmd = &cobra.Command{
	Use:   "done [id]",
	Short: "Mark a task as completed and send it for review (Child)",
	Args:  cobra.ExactArgs(1),
	RunE:  runTaskDone,
}

var taskApproveCmd = &cobra.Command{
	Use:   "approve [id]",
	Short: "Approve a completed task with a rating (Parent/Teacher)",
	Args:  cobra.ExactArgs(1),
	RunE:  runTaskApprove,
}

var taskReviewsCmd = &cobra.Command{
	Use:   "reviews",
	Short: "List tasks waiting for review (Parent/Teacher)",
	Args:  cobra.NoArgs,
	RunE:  runTaskReviews,
}

func init() {
	taskAddCmd.Flags().StringVarP(&taskDescription, "desc", "d", "", "Task description")
	taskAddCmd.Flags().StringVarP(&taskPoints, "points", "p", "", "Points awarded on approval")

	taskApproveCmd.Flags().StringVar(&taskRating, "rating", "5", "Rating from 1 to 5")

	taskCmd.AddCommand(taskAddCmd)
	taskCmd.AddCommand(taskListCmd)
	taskCmd.AddCommand(taskShowCmd)
	taskCmd.AddCommand(taskDoneCmd)
	taskCmd.AddCommand(taskApproveCmd)
	taskCmd.AddCommand(taskReviewsCmd)
}

func runTaskAdd(cmd *cobra.Command, args []string) error {
	role, err := requireRole("add tasks", store.RoleParent, store.RoleTeacher)
	if err != nil {
		return err
	}
	title, err := store.RequireText("title", strings.Join(args, " "))
	if err != nil {
		return err
	}
	points, err := store.ParseInt("points", taskPoints)
	if err != nil {
		return err
	}

	s, err := mustStore()
	if err != nil {
		return err
	}
	defer s.Close()

	task, err := s.AddTask(title, taskDescription, points, role.Ptr())
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Created task %s: %s (%d pts)\n", task.ID, task.Title, task.Points)
	return nil
}

func runTaskList(cmd *cobra.Command, args []string) error {
	s, err := mustStore()
	if err != nil {
		return err
	}
	defer s.Close()

	tasks := s.Tasks()
	if len(tasks) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No tasks yet.")
		return nil
	}
	for _, t := range tasks {
		printTaskLine(cmd.OutOrStdout(), t)
	}
	return nil
}

func printTaskLine(w io.Writer, t store.Task) {
	extra := ""
	if t.CreatedBy != nil {
		extra += fmt.Sprintf(" | by %s", *t.CreatedBy)
	}
	if t.Status == store.TaskApproved && t.Rating != nil {
		extra += fmt.Sprintf(" | rating=%d by %s", *t.Rating, roleOrDash(t.ReviewedBy))
	}
	fmt.Fprintf(w, "%-4s %s%-26s%s %s - %d pts%s\n",
		t.ID, statusColor(t.Status), "["+string(t.Status)+"]", colorReset, t.Title, t.Points, extra)
}

func runTaskShow(cmd *cobra.Command, args []string) error {
	s, err := mustStore()
	if err != nil {
		return err
	}
	defer s.Close()

	task, err := s.Task(args[0])
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Task %s\n", task.ID)
	fmt.Fprintf(out, "  Title:    %s\n", task.Title)
	if task.Description != "" {
		fmt.Fprintf(out, "  Desc:     %s\n", task.Description)
	}
	fmt.Fprintf(out, "  Points:   %d\n", task.Points)
	fmt.Fprintf(out, "  Status:   %s\n", task.Status)
	fmt.Fprintf(out, "  Created:  %s\n", roleOrDash(task.CreatedBy))
	if task.Rating != nil {
		fmt.Fprintf(out, "  Rating:   %d\n", *task.Rating)
	}
	if task.ReviewedBy != nil {
		fmt.Fprintf(out, "  Reviewer: %s\n", *task.ReviewedBy)
	}
	return nil
}

func runTaskDone(cmd *cobra.Command, args []string) error {
	if _, err := requireRole("complete tasks", store.RoleChild); err != nil {
		return err
	}

	s, err := mustStore()
	if err != nil {
		return err
	}
	defer s.Close()

	outcome, err := s.MarkTaskCompleted(args[0])
	if err != nil {
		return err
	}
	if outcome == store.OutcomeAlreadyApproved {
		fmt.Fprintf(cmd.OutOrStdout(), "Task %s is already APPROVED.\n", args[0])
		return nil
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Task %s is now %s.\n", args[0], store.TaskCompletedPendingReview)
	fmt.Fprintln(cmd.OutOrStdout(), "Ask a Parent or Teacher to approve and rate it.")
	return nil
}

func runTaskApprove(cmd *cobra.Command, args []string) error {
	role, err := requireRole("approve tasks", store.RoleParent, store.RoleTeacher)
	if err != nil {
		return err
	}
	rating, err := store.ParseInt("rating", taskRating)
	if err != nil {
		return err
	}

	s, err := mustStore()
	if err != nil {
		return err
	}
	defer s.Close()

	task, err := s.ApproveTask(args[0], rating, role)
	if err != nil {
		return err
	}

	p := s.Progress()
	fmt.Fprintf(cmd.OutOrStdout(), "%s✓ Approved%s %s with rating %d (+%d pts, level %d)\n",
		colorGreen+colorBold, colorReset, task.ID, rating, task.Points, p.Level)
	return nil
}

func runTaskReviews(cmd *cobra.Command, args []string) error {
	if _, err := requireRole("review tasks", store.RoleParent, store.RoleTeacher); err != nil {
		return err
	}

	s, err := mustStore()
	if err != nil {
		return err
	}
	defer s.Close()

	pending := s.PendingReview()
	out := cmd.OutOrStdout()
	if len(pending) == 0 {
		fmt.Fprintln(out, "No tasks pending review.")
		return nil
	}
	for _, t := range pending {
		fmt.Fprintf(out, "%-4s %s - %d pts\n", t.ID, t.Title, t.Points)
	}
	fmt.Fprintf(out, "\nApprove with: %skidtask --role %s task approve <id> --rating 1-5%s\n",
		colorCyan, roleFlagOrDefault(), colorReset)
	return nil
}

func roleOrDash(r *store.Role) string {
	if r == nil {
		return "-"
	}
	return string(*r)
}

func roleFlagOrDefault() string {
	if r, err := currentRole(); err == nil {
		return string(r)
	}
	return string(store.RoleParent)
}
