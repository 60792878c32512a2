package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/sitansu1aapt/employeetrack-agent/internal/models"
)

// NewTasksCommand groups the task workflow operations
func NewTasksCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tasks",
		Short: "Assigned task operations",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List assigned tasks",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}
			defer a.Close()

			tasks, err := a.client.ListTasks(cmd.Context())
			if err != nil {
				return err
			}
			if len(tasks) == 0 {
				fmt.Println("no tasks assigned")
				return nil
			}
			for _, t := range tasks {
				fmt.Printf("%s  %-12s  %s\n", t.TaskID, t.Status, t.Title)
			}
			return nil
		},
	})

	var note string
	update := &cobra.Command{
		Use:   "update <task-id> <status>",
		Short: "Transition a task (ACCEPTED, IN_PROGRESS, COMPLETED)",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}
			defer a.Close()

			task, err := a.client.UpdateTask(cmd.Context(), args[0], models.TaskUpdateRequest{
				Status: args[1],
				Note:   note,
			})
			if err != nil {
				return err
			}
			fmt.Printf("task %s is now %s\n", task.TaskID, task.Status)
			return nil
		},
	}
	update.Flags().StringVar(&note, "note", "", "transition note")
	cmd.AddCommand(update)

	return cmd
}

// NewNotificationsCommand groups the notification inbox operations
func NewNotificationsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "notifications",
		Short: "Notification inbox operations",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List notifications",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}
			defer a.Close()

			notes, err := a.client.ListNotifications(cmd.Context())
			if err != nil {
				return err
			}
			for _, n := range notes {
				marker := " "
				if !n.Read {
					marker = "*"
				}
				fmt.Printf("%s %s  %s\n", marker, n.NotificationID, n.Title)
			}
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "read <notification-id>",
		Short: "Mark a notification as read",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}
			defer a.Close()
			return a.client.MarkNotificationRead(cmd.Context(), args[0])
		},
	})

	return cmd
}

// NewDutyCommand groups the duty status operations
func NewDutyCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "duty",
		Short: "Duty status operations",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "status",
		Short: "Show current duty status",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}
			defer a.Close()

			status, err := a.client.DutyStatus(cmd.Context())
			if err != nil {
				return err
			}
			if status.OnDuty {
				fmt.Printf("on duty since %s\n", status.Since)
			} else {
				fmt.Println("off duty")
			}
			return nil
		},
	})

	for _, v := range []struct {
		use    string
		onDuty bool
	}{{"on", true}, {"off", false}} {
		onDuty := v.onDuty
		cmd.AddCommand(&cobra.Command{
			Use:   v.use,
			Short: "Go " + v.use + " duty",
			RunE: func(cmd *cobra.Command, args []string) error {
				a, err := newApp()
				if err != nil {
					return err
				}
				defer a.Close()

				status, err := a.client.SetDuty(cmd.Context(), onDuty)
				if err != nil {
					return err
				}
				fmt.Printf("duty status updated: on_duty=%t\n", status.OnDuty)
				return nil
			},
		})
	}

	return cmd
}
