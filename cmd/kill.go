package cmd

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

var killCmd = &cobra.Command{
	Use:   "kill <target> <pid|name>",
	Short: "Terminate a remote process by PID, or every process by name",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		all, _ := cmd.Flags().GetBool("all")
		force, _ := cmd.Flags().GetBool("force")

		if !force {
			fmt.Printf("Kill %q on %s? [y/N] ", args[1], args[0])
			reader := bufio.NewReader(os.Stdin)
			answer, _ := reader.ReadString('\n')
			if !strings.HasPrefix(strings.ToLower(strings.TrimSpace(answer)), "y") {
				fmt.Println("Cancelled.")
				return nil
			}
		}

		sess, cleanup, err := openSession(cmd, args[0])
		if err != nil {
			return err
		}
		defer cleanup()

		if all {
			killed, remaining, err := sess.KillAllByName(args[1])
			if err != nil {
				return err
			}
			fmt.Printf("Killed %d process(es); %d now listed\n", killed, len(remaining))
			return nil
		}

		if err := sess.Kill(args[1]); err != nil {
			return err
		}
		fmt.Printf("Killed process %s\n", args[1])
		return nil
	},
}

func init() {
	killCmd.Flags().BoolP("all", "a", false, "Treat the argument as a command name and kill every match")
	killCmd.Flags().BoolP("force", "f", false, "Skip confirmation")
	rootCmd.AddCommand(killCmd)
}
