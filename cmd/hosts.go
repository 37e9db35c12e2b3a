package cmd

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/simon/sshwomper/internal/config"
	"github.com/simon/sshwomper/internal/registry"
)

var hostsCmd = &cobra.Command{
	Use:   "hosts",
	Short: "List saved connection profiles and configured nicknames",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)

		reg, err := registry.Open()
		if err == nil {
			profiles := reg.Load()
			if len(profiles) > 0 {
				fmt.Fprintln(w, "SAVED\tADDRESS")
				for _, p := range profiles {
					fmt.Fprintf(w, "\t%s@%s:%d\n", p.Username, p.Hostname, p.Port)
				}
			}
		}

		cfg, err := config.Load()
		if err == nil && len(cfg.Hosts) > 0 {
			fmt.Fprintln(w, "NICKNAME\tADDRESS")
			for name, h := range cfg.Hosts {
				fmt.Fprintf(w, "%s\t%s@%s:%d\n", name, h.User, h.Host, h.Port)
			}
		}

		return w.Flush()
	},
}

func init() {
	rootCmd.AddCommand(hostsCmd)
}
