package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func SetVersionInfo(version, commit string) {
	rootCmd.Version = fmt.Sprintf("%s (%s)", version, commit)
}

var rootCmd = &cobra.Command{
	Use:   "sshwomper",
	Short: "Run commands, browse files and watch processes on remote hosts",
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().String("password", "", "Password for the connection (or SSHWOMPER_PASSWORD)")
	rootCmd.PersistentFlags().String("key", "", "Path to a private key file")
	rootCmd.PersistentFlags().IntP("port", "p", 22, "SSH port")
}
