package config

import (
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// HostConfig describes one configured remote under a nickname.
type HostConfig struct {
	Host   string `yaml:"host"`
	User   string `yaml:"user"`
	Port   int    `yaml:"port"`
	SSHKey string `yaml:"ssh_key"`
}

type Config struct {
	Hosts map[string]HostConfig `yaml:"hosts"`
}

// Load reads the config from ~/.config/sshwomper/config.yaml.
// Returns an empty config if the file doesn't exist.
func Load() (*Config, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return &Config{}, nil
	}

	path := filepath.Join(home, ".config", "sshwomper", "config.yaml")
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &Config{}, nil
		}
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}

	// Default port to 22 if not set
	for name, h := range cfg.Hosts {
		if h.Port == 0 {
			h.Port = 22
		}
		// Expand ~ in ssh_key
		if len(h.SSHKey) > 0 && h.SSHKey[0] == '~' {
			h.SSHKey = filepath.Join(home, h.SSHKey[1:])
		}
		cfg.Hosts[name] = h
	}

	return &cfg, nil
}
