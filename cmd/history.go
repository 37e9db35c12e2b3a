package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/simon/sshwomper/internal/config"
	"github.com/simon/sshwomper/internal/state"
)

var historyCmd = &cobra.Command{
	Use:   "history <host>",
	Short: "Show commands previously run against a host",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")

		_, host := parseTarget(args[0])
		if cfg, err := config.Load(); err == nil {
			if h, ok := cfg.Hosts[host]; ok {
				host = h.Host
			}
		}

		path, err := state.DefaultPath()
		if err != nil {
			return err
		}
		store, err := state.Open(path)
		if err != nil {
			return err
		}
		defer store.Close()

		entries, err := store.Recent(host, limit)
		if err != nil {
			return err
		}
		for _, e := range entries {
			fmt.Printf("%s  %s\n", e.CreatedAt.Format("2006-01-02 15:04:05"), e.Command)
		}
		return nil
	},
}

func init() {
	historyCmd.Flags().IntP("limit", "n", 20, "Maximum entries to show")
	rootCmd.AddCommand(historyCmd)
}
