package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

var execCmd = &cobra.Command{
	Use:   "exec <target> <command...>",
	Short: "Run a one-shot command on a remote host",
	Args:  cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		sess, cleanup, err := openSession(cmd, args[0])
		if err != nil {
			return err
		}
		defer cleanup()

		stdout, stderr, exit := sess.Exec(strings.Join(args[1:], " "))
		if stdout != "" {
			fmt.Println(stdout)
		}
		if stderr != "" {
			fmt.Fprintln(os.Stderr, stderr)
		}
		if exit != 0 {
			return fmt.Errorf("exit status %d", exit)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(execCmd)
}
