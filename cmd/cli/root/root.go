package root

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// Exported RootCmd
var RootCmd = &cobra.Command{
	Use:   "campsite",
	Short: "Campsite admin CLI",
	Long:  "Command line interface for seeding and inspecting the Campsite database",
}

func Execute() {
	if err := RootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

// GetRoot returns the RootCmd so subcommand packages can attach themselves.
func GetRoot() *cobra.Command {
	return RootCmd
}
