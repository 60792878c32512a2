package cli

import (
	"fmt"
	"os"
	"runtime"

	"github.com/spf13/cobra"

	"github.com/sitansu1aapt/employeetrack-agent/internal/api"
	"github.com/sitansu1aapt/employeetrack-agent/internal/config"
	"github.com/sitansu1aapt/employeetrack-agent/internal/models"
	"github.com/sitansu1aapt/employeetrack-agent/internal/prefs"
	"github.com/sitansu1aapt/employeetrack-agent/internal/session"
)

const agentVersion = "0.3.0"

// NewRootCommand creates the root command for the agent CLI
func NewRootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "employeetrack",
		Short:         "EmployeeTrack field agent",
		Long:          "Field-workforce agent: attendance check-in/out with geofence verification, patrol sessions, tasks, notifications and wake-check alerts.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.AddCommand(NewRunCommand())
	cmd.AddCommand(NewLoginCommand())
	cmd.AddCommand(NewLogoutCommand())
	cmd.AddCommand(NewCheckCommand(models.ModeCheckIn))
	cmd.AddCommand(NewCheckCommand(models.ModeCheckOut))
	cmd.AddCommand(NewPatrolCommand())
	cmd.AddCommand(NewTasksCommand())
	cmd.AddCommand(NewNotificationsCommand())
	cmd.AddCommand(NewDutyCommand())

	return cmd
}

// app bundles the pieces every command needs
type app struct {
	cfg    *config.Config
	store  *prefs.Store
	holder *session.Holder
	client *api.Client
}

// newApp loads config, opens the preference store and builds the API
// client with the stored token. AGENT_TOKEN overrides the stored one.
func newApp() (*app, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	store, err := prefs.Open(cfg.PrefsPath)
	if err != nil {
		return nil, err
	}

	holder := session.NewHolder()
	if token := os.Getenv("AGENT_TOKEN"); token != "" {
		holder.Set(token)
	} else if token, ok, err := store.Get(prefs.KeyAuthToken); err != nil {
		store.Close()
		return nil, err
	} else if ok {
		holder.Set(token)
	}

	return &app{
		cfg:    cfg,
		store:  store,
		holder: holder,
		client: api.NewClient(cfg.BaseURL, holder),
	}, nil
}

func (a *app) Close() {
	a.store.Close()
}

// deviceInfo builds the device block attached to attendance
// submissions
func (a *app) deviceInfo() (models.DeviceInfo, error) {
	id, err := a.store.DeviceID()
	if err != nil {
		return models.DeviceInfo{}, err
	}
	return models.DeviceInfo{
		DeviceID:     id,
		AgentVersion: agentVersion,
		Platform:     runtime.GOOS,
	}, nil
}

// role returns the role context, preferring config over the stored
// preference
func (a *app) role() string {
	if a.cfg.RoleContext != "" {
		return a.cfg.RoleContext
	}
	role, _, _ := a.store.Get(prefs.KeyRole)
	return role
}

// NewLoginCommand stores the bearer token for subsequent commands
func NewLoginCommand() *cobra.Command {
	var token string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Store the API bearer token",
		RunE: func(cmd *cobra.Command, args []string) error {
			if token == "" {
				return fmt.Errorf("--token is required")
			}
			a, err := newApp()
			if err != nil {
				return err
			}
			defer a.Close()
			return a.store.Set(prefs.KeyAuthToken, token)
		},
	}

	cmd.Flags().StringVar(&token, "token", "", "bearer token issued by the backend")
	return cmd
}

// NewLogoutCommand discards the stored token
func NewLogoutCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Discard the stored API token",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}
			defer a.Close()
			return a.store.Delete(prefs.KeyAuthToken)
		},
	}
}
