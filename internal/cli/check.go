package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/sitansu1aapt/employeetrack-agent/internal/checkin"
	"github.com/sitansu1aapt/employeetrack-agent/internal/location"
	"github.com/sitansu1aapt/employeetrack-agent/internal/media"
	"github.com/sitansu1aapt/employeetrack-agent/internal/models"
)

// NewCheckCommand builds the checkin or checkout command; both run the
// same wizard with a different mode.
func NewCheckCommand(mode models.AttendanceMode) *cobra.Command {
	use := "checkin"
	short := "Check in at the assigned site"
	if mode == models.ModeCheckOut {
		use = "checkout"
		short = "Check out from the assigned site"
	}

	var (
		lat, lng, accuracy float64
		selfie             string
		notes              string
	)

	cmd := &cobra.Command{
		Use:   use,
		Short: short,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}
			defer a.Close()

			device, err := a.deviceInfo()
			if err != nil {
				return err
			}

			var provider location.Provider
			switch {
			case cmd.Flags().Changed("lat"):
				provider = location.Static{Latitude: lat, Longitude: lng, Accuracy: accuracy}
			case a.cfg.LocatorCommand != "":
				parts := strings.Fields(a.cfg.LocatorCommand)
				provider = location.Command{Path: parts[0], Args: parts[1:]}
			default:
				return fmt.Errorf("no location source: pass --lat/--lng or configure locator_command")
			}

			var capturer media.Capturer
			switch {
			case selfie != "":
				capturer = media.File{Path: selfie}
			case a.cfg.CaptureCommand != "":
				parts := strings.Fields(a.cfg.CaptureCommand)
				capturer = media.Command{Path: parts[0], Args: parts[1:]}
			default:
				return fmt.Errorf("no selfie source: pass --selfie or configure capture_command")
			}

			ctx := cmd.Context()
			wizard := checkin.New(mode, a.client, provider, capturer, device)

			if err := wizard.Begin(ctx); err != nil {
				return err
			}

			// Location -> selfie -> notes, each confirmed before the
			// wizard moves on.
			for wizard.Step() != checkin.StepReady {
				if err := wizard.Advance(ctx); err != nil {
					return err
				}
			}
			wizard.SetNotes(notes)

			record := wizard.Record()
			if !record.InsideFence && wizard.Site() != nil {
				fmt.Printf("warning: outside the %s geofence (%.0fm from site center)\n",
					wizard.Site().SiteName, record.DistanceMeters)
			}

			result, err := wizard.Submit(ctx)
			if err != nil {
				return err
			}

			fmt.Printf("%s recorded: %s at %s\n", use, result.AttendanceID, result.RecordedAt)
			return nil
		},
	}

	cmd.Flags().Float64Var(&lat, "lat", 0, "latitude of the current position")
	cmd.Flags().Float64Var(&lng, "lng", 0, "longitude of the current position")
	cmd.Flags().Float64Var(&accuracy, "accuracy", 10, "position accuracy in meters")
	cmd.Flags().StringVar(&selfie, "selfie", "", "path to the selfie image")
	cmd.Flags().StringVar(&notes, "notes", "", "optional notes")

	return cmd
}
