package complaint

import (
	"fmt"
	"strconv"

	"github.com/samber/lo"
	"github.com/spf13/cobra"

	"complaintbox/internal/client/app"
	"complaintbox/internal/client/ledger"
)

var (
	imagePath string
	audioPath string
	caption   string
)

// Cmd represents the complaint command
var Cmd = &cobra.Command{
	Use:   "complaint",
	Short: "Manage the locally persisted complaint ledger",
}

var addCmd = &cobra.Command{
	Use:   "add",
	Short: "Add an entry to the ledger",
	Long: `Add an entry to the front of the ledger. An entry needs at least a
photo or an audio recording; the caption may stay empty.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := app.Open()
		if err != nil {
			return err
		}
		defer a.Close()

		entry := ledger.Entry{
			Image:    imagePath,
			AudioURI: audioPath,
			Caption:  caption,
		}
		if err := a.Ledger.Append(entry); err != nil {
			return err
		}
		fmt.Println("Complaint added to the ledger.")
		return nil
	},
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List ledger entries, newest first",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := app.Open()
		if err != nil {
			return err
		}
		defer a.Close()

		entries := a.Ledger.Entries()
		if len(entries) == 0 {
			fmt.Println("No complaints yet.")
			return nil
		}

		lines := lo.Map(entries, func(e ledger.Entry, i int) string {
			label := e.Caption
			if label == "" {
				label = "(no caption)"
			}
			media := ""
			if e.Image != "" {
				media += " [photo]"
			}
			if e.AudioURI != "" {
				media += " [audio]"
			}
			return fmt.Sprintf("%3d  %s%s", i, label, media)
		})
		for _, line := range lines {
			fmt.Println(line)
		}
		return nil
	},
}

var removeCmd = &cobra.Command{
	Use:   "remove <index>",
	Short: "Delete the entry at the given position",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		index, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("index must be a number: %w", err)
		}

		a, err := app.Open()
		if err != nil {
			return err
		}
		defer a.Close()

		if err := a.Ledger.Remove(index); err != nil {
			return err
		}
		fmt.Println("Complaint removed.")
		return nil
	},
}

var shareCmd = &cobra.Command{
	Use:   "share <index>",
	Short: "Render the entry at the given position as shareable text",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		index, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("index must be a number: %w", err)
		}

		a, err := app.Open()
		if err != nil {
			return err
		}
		defer a.Close()

		text, err := a.Ledger.Share(index)
		if err != nil {
			return err
		}
		fmt.Print(text)
		return nil
	},
}

func init() {
	addCmd.Flags().StringVarP(&imagePath, "image", "i", "", "photo reference")
	addCmd.Flags().StringVarP(&audioPath, "audio", "r", "", "audio recording reference")
	addCmd.Flags().StringVarP(&caption, "caption", "c", "", "free-form caption")

	Cmd.AddCommand(addCmd)
	Cmd.AddCommand(listCmd)
	Cmd.AddCommand(removeCmd)
	Cmd.AddCommand(shareCmd)
}
