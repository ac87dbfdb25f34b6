package cli

import (
	_ "embed"
	"io"

	"github.com/spf13/cobra"
)

//go:embed license.txt
var licenseText string

var licenseCmd = &cobra.Command{
	Use:   "license",
	Short: "Print the srtplay license",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		_, err := io.WriteString(cmd.OutOrStdout(), licenseText)
		return err
	},
}

func init() {
	rootCmd.AddCommand(licenseCmd)
}
