package record

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"complaintbox/internal/client/app"
	"complaintbox/internal/client/capture"
	"complaintbox/internal/client/ledger"
)

var (
	addEntry  bool
	imagePath string
)

// Cmd represents the record command
var Cmd = &cobra.Command{
	Use:   "record <audio-file>",
	Short: "Run a capture session: transcribe a recording and draft a complaint",
	Long: `Run one capture/upload cycle against the relay service. The audio file
stands in for the finished microphone capture; the relay's transcript
becomes the draft caption. With --add the result is appended to the
ledger, on upload failure with an empty caption.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		audioPath := args[0]
		if _, err := os.Stat(audioPath); err != nil {
			return fmt.Errorf("recording not found: %w", err)
		}

		a, err := app.Open()
		if err != nil {
			return err
		}
		defer a.Close()

		sess := capture.NewSession(
			capture.GrantedMicrophone{},
			capture.FileRecorder{Path: audioPath},
			a.Relay,
			a.Logger,
		)

		if err := sess.StartRecording(cmd.Context()); err != nil {
			return err
		}
		if err := sess.StopRecording(cmd.Context()); err != nil {
			return err
		}

		switch sess.Outcome() {
		case capture.OutcomeTranscribed:
			fmt.Printf("Transcript: %s\n", sess.Caption())
		case capture.OutcomeUploadFailed:
			fmt.Println(sess.Notice())
		}

		if !addEntry {
			return nil
		}

		entry := ledger.Entry{
			Image:    imagePath,
			AudioURI: sess.AudioURI(),
			Caption:  sess.Caption(),
		}
		if err := a.Ledger.Append(entry); err != nil {
			return err
		}
		fmt.Println("Complaint added to the ledger.")
		return nil
	},
}

func init() {
	Cmd.Flags().BoolVarP(&addEntry, "add", "a", false, "append the result to the ledger")
	Cmd.Flags().StringVarP(&imagePath, "image", "i", "", "attach a photo reference to the entry")
}
