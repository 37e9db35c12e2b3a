package cmd

import (
	"bufio"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/simon/sshwomper/internal/ssh"
)

var shellCmd = &cobra.Command{
	Use:   "shell <target>",
	Short: "Open an interactive shell on a remote host",
	Long: `Open an interactive shell on a remote host.

Lines read from stdin are sent to the remote shell; filtered remote output
is printed as it streams in. Type "exit" to leave.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		sess, cleanup, err := openSession(cmd, args[0])
		if err != nil {
			return err
		}
		defer cleanup()

		sh, err := sess.StartShell()
		if err != nil {
			return fmt.Errorf("starting shell: %w", err)
		}

		id := sh.Subscribe(ssh.Subscriber{
			Output: func(chunk string) { fmt.Print(chunk) },
			Err:    func(err error) { fmt.Fprintln(os.Stderr, "shell:", err) },
		})
		defer sh.Unsubscribe(id)

		scanner := bufio.NewScanner(os.Stdin)
		for scanner.Scan() {
			line := scanner.Text()
			if line == "exit" || line == "quit" {
				break
			}
			if err := sh.Send(line); err != nil {
				fmt.Fprintln(os.Stderr, "shell:", err)
				break
			}
		}

		sh.Stop()
		return scanner.Err()
	},
}

func init() {
	rootCmd.AddCommand(shellCmd)
}
