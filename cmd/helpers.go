package cmd

import (
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/simon/sshwomper/internal/config"
	"github.com/simon/sshwomper/internal/registry"
	"github.com/simon/sshwomper/internal/session"
	"github.com/simon/sshwomper/internal/ssh"
	"github.com/simon/sshwomper/internal/state"
)

// parseTarget splits "user@host" into (user, host).
// If no @, returns ("", target).
func parseTarget(target string) (user, host string) {
	if idx := strings.IndexByte(target, '@'); idx >= 0 {
		return target[:idx], target[idx+1:]
	}
	return "", target
}

// resolveConfig builds a connection config for target: either a nickname
// from the config file or a user@host literal. The password comes from
// --password or SSHWOMPER_PASSWORD.
func resolveConfig(cmd *cobra.Command, target string) (ssh.Config, error) {
	password, _ := cmd.Flags().GetString("password")
	if password == "" {
		password = os.Getenv("SSHWOMPER_PASSWORD")
	}
	key, _ := cmd.Flags().GetString("key")
	port, _ := cmd.Flags().GetInt("port")

	cfg, err := config.Load()
	if err == nil && cfg != nil {
		if h, ok := cfg.Hosts[target]; ok {
			sc := ssh.Config{
				Hostname: h.Host,
				Username: h.User,
				Password: password,
				KeyPath:  h.SSHKey,
				Port:     h.Port,
			}
			if key != "" {
				sc.KeyPath = key
			}
			if cmd.Flags().Changed("port") {
				sc.Port = port
			}
			return sc, nil
		}
	}

	user, host := parseTarget(target)
	if user == "" || host == "" {
		return ssh.Config{}, fmt.Errorf("unknown target %q: expected a configured nickname or user@host", target)
	}
	return ssh.Config{
		Hostname: host,
		Username: user,
		Password: password,
		KeyPath:  key,
		Port:     port,
	}, nil
}

// openSession connects to target, wiring the profile registry and the
// persistent history store. The returned cleanup closes everything.
func openSession(cmd *cobra.Command, target string) (*session.Session, func(), error) {
	sc, err := resolveConfig(cmd, target)
	if err != nil {
		return nil, nil, err
	}

	reg, err := registry.Open()
	if err != nil {
		log.Printf("profile registry unavailable: %v", err)
		reg = nil
	}

	var store *state.Store
	if path, err := state.DefaultPath(); err == nil {
		if st, err := state.Open(path); err == nil {
			store = st
		} else {
			log.Printf("history store unavailable: %v", err)
		}
	}

	sess, err := session.Connect(sc, reg, store)
	if err != nil {
		if store != nil {
			store.Close()
		}
		return nil, nil, err
	}

	cleanup := func() {
		sess.Close()
		if store != nil {
			store.Close()
		}
	}
	return sess, cleanup, nil
}
