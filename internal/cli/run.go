package cli

import (
	"context"
	"log"
	"net/http"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/sitansu1aapt/employeetrack-agent/internal/location"
	"github.com/sitansu1aapt/employeetrack-agent/internal/report"
	"github.com/sitansu1aapt/employeetrack-agent/internal/server"
)

// NewRunCommand starts the long-running agent: the push webhook, the
// local status API and, when a locator is configured, the periodic
// location reporter.
func NewRunCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "run",
		Short: "Run the agent (push webhook, status API, location reporting)",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}
			defer a.Close()

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			deviceID, err := a.store.DeviceID()
			if err != nil {
				return err
			}

			var reporter *report.Reporter
			if a.cfg.LocatorCommand != "" {
				parts := strings.Fields(a.cfg.LocatorCommand)
				provider := location.Command{Path: parts[0], Args: parts[1:]}
				reporter = report.New(provider, a.client.ReportLocation, deviceID,
					a.cfg.ReportBaseInterval, a.cfg.ReportMaxInterval)
				go reporter.Run(ctx)
				log.Printf("location reporting every %s (cap %s)",
					a.cfg.ReportBaseInterval, a.cfg.ReportMaxInterval)
			}

			agent := server.NewAgent(ctx, a.client)
			srv := &http.Server{
				Addr:    a.cfg.ListenAddr,
				Handler: server.New(agent, reporter).Router(),
			}

			go func() {
				<-ctx.Done()
				srv.Shutdown(context.Background())
			}()

			log.Printf("agent listening on %s", a.cfg.ListenAddr)
			if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				return err
			}
			return nil
		},
	}
}
