package theme

import (
	"fmt"

	"github.com/spf13/cobra"

	"complaintbox/internal/client/app"
)

// Cmd represents the theme command
var Cmd = &cobra.Command{
	Use:   "theme [dark|light]",
	Short: "Show or set the persisted theme preference",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := app.Open()
		if err != nil {
			return err
		}
		defer a.Close()

		if len(args) == 0 {
			if a.State.Dark() {
				fmt.Println("dark")
			} else {
				fmt.Println("light")
			}
			return nil
		}

		switch args[0] {
		case "dark":
			return a.State.SetDark(true)
		case "light":
			return a.State.SetDark(false)
		default:
			return fmt.Errorf("unknown theme %q, want dark or light", args[0])
		}
	},
}
