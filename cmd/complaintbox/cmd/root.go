package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"complaintbox/cmd/complaintbox/cmd/account"
	"complaintbox/cmd/complaintbox/cmd/complaint"
	"complaintbox/cmd/complaintbox/cmd/record"
	"complaintbox/cmd/complaintbox/cmd/serve"
	"complaintbox/cmd/complaintbox/cmd/theme"
	"complaintbox/cmd/complaintbox/cmd/version"
)

var Verbose bool

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "complaintbox",
	Short: "A complaint-reporting app: record audio, transcribe it, keep a local ledger",
	Long: `complaintbox bundles both halves of the complaint-reporting system:
- 'serve' runs the relay service that forwards audio to the transcription engine
- the remaining commands are the local client: sign in, record a complaint,
  and manage the locally persisted ledger of entries.`,
	TraverseChildren: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddCommand(serve.Cmd)
	rootCmd.AddCommand(account.Cmd)
	rootCmd.AddCommand(record.Cmd)
	rootCmd.AddCommand(complaint.Cmd)
	rootCmd.AddCommand(theme.Cmd)
	rootCmd.AddCommand(version.Cmd)

	rootCmd.PersistentFlags().BoolVarP(&Verbose, "verbose", "V", false, "verbose output")
}
