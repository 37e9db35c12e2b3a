package cmd

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

var psCmd = &cobra.Command{
	Use:   "ps <target>",
	Short: "Show the remote host's top CPU-consuming processes",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		sess, cleanup, err := openSession(cmd, args[0])
		if err != nil {
			return err
		}
		defer cleanup()

		procs, err := sess.Processes()
		if err != nil {
			return err
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "PID\tUSER\t%CPU\t%MEM\tSTAT\tCOMMAND")
		for _, p := range procs {
			fmt.Fprintf(w, "%s\t%s\t%.1f\t%.1f\t%s\t%s\n", p.PID, p.User, p.CPU, p.Mem, p.Stat, p.Command)
		}
		return w.Flush()
	},
}

func init() {
	rootCmd.AddCommand(psCmd)
}
