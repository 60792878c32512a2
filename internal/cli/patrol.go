package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/sitansu1aapt/employeetrack-agent/internal/models"
	"github.com/sitansu1aapt/employeetrack-agent/internal/patrol"
)

// NewPatrolCommand groups the patrol session operations
func NewPatrolCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "patrol",
		Short: "Patrol session operations",
	}

	cmd.AddCommand(newPatrolListCommand())
	cmd.AddCommand(newPatrolStartCommand())
	cmd.AddCommand(newPatrolEndCommand())
	cmd.AddCommand(newPatrolStatusCommand())

	return cmd
}

func newPatrolListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List patrol sessions",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}
			defer a.Close()

			ctrl := patrol.NewController(a.client, a.role())
			sessions, err := ctrl.List(cmd.Context())
			if err != nil {
				return err
			}

			if len(sessions) == 0 {
				fmt.Println("no patrol sessions assigned")
				return nil
			}

			// Server order is kept as-is.
			for _, s := range sessions {
				fmt.Printf("%s  %-12s  %s\n", s.SessionID, s.Status, s.RouteName)
			}
			return nil
		},
	}
}

// findSession resolves a session id against a fresh listing
func findSession(ctrl *patrol.Controller, cmd *cobra.Command, sessionID string) (*models.PatrolSession, error) {
	sessions, err := ctrl.List(cmd.Context())
	if err != nil {
		return nil, err
	}
	for i := range sessions {
		if sessions[i].SessionID == sessionID {
			return &sessions[i], nil
		}
	}
	return nil, fmt.Errorf("unknown patrol session %q", sessionID)
}

func newPatrolStartCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "start <session-id>",
		Short: "Start a planned patrol session",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}
			defer a.Close()

			ctrl := patrol.NewController(a.client, a.role())
			session, err := findSession(ctrl, cmd, args[0])
			if err != nil {
				return err
			}

			started, err := ctrl.Start(cmd.Context(), *session)
			if err != nil {
				return err
			}
			fmt.Printf("patrol started: %s %s\n", started.SessionID, started.RouteName)
			return nil
		},
	}
}

func newPatrolEndCommand() *cobra.Command {
	var notes string

	cmd := &cobra.Command{
		Use:   "end <session-id>",
		Short: "End an in-progress patrol session",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}
			defer a.Close()

			ctrl := patrol.NewController(a.client, a.role())
			session, err := findSession(ctrl, cmd, args[0])
			if err != nil {
				return err
			}

			if err := ctrl.End(cmd.Context(), *session, notes); err != nil {
				return err
			}
			fmt.Printf("patrol ended: %s\n", session.SessionID)
			return nil
		},
	}

	cmd.Flags().StringVar(&notes, "notes", "", "closing notes")
	return cmd
}

func newPatrolStatusCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "status <session-id>",
		Short: "Show checkpoint progress for a session",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}
			defer a.Close()

			ctrl := patrol.NewController(a.client, a.role())
			status, err := ctrl.Status(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			fmt.Printf("status: %s\n", status.Status)
			fmt.Printf("checkpoints: %d/%d scanned\n",
				len(status.ScannedCheckpoints), status.TotalCheckpoints)
			if len(status.RemainingCheckpoints) > 0 {
				fmt.Printf("remaining: %s\n", strings.Join(status.RemainingCheckpoints, ", "))
			}
			return nil
		},
	}
}
