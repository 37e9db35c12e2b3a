package cmd

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/simon/sshwomper/internal/session"
)

var lsCmd = &cobra.Command{
	Use:   "ls <target> [path]",
	Short: "List a remote directory",
	Args:  cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		sess, cleanup, err := openSession(cmd, args[0])
		if err != nil {
			return err
		}
		defer cleanup()

		dir := ""
		if len(args) > 1 {
			if dir, err = sess.Navigate(args[1]); err != nil {
				return err
			}
		}

		entries, err := sess.List(dir)
		if err != nil {
			return err
		}

		fmt.Printf("%s:\n", sess.Path())
		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		for _, e := range entries {
			name := e.Name
			if e.Type == session.TypeDirectory {
				name += "/"
			}
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", e.Permissions, e.Size, e.Type, name)
		}
		return w.Flush()
	},
}

func init() {
	rootCmd.AddCommand(lsCmd)
}
