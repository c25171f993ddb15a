package cmd

import (
	"github.com/spf13/cobra"

	"github.com/wikisage/wikisage/internal/config"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize wikisage configuration with an interactive wizard",
	Long:  `Runs an interactive wizard to connect wikisage to your wiki and generates a .wikisage.yml file.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		_, err := config.RunWizard()
		return err
	},
}

func init() {
	rootCmd.AddCommand(initCmd)
}
