// Package ssh wraps the secure transport for one remote host: an
// authenticated connection, one-shot command execution and the interactive
// shell channel. The SSH protocol itself comes from golang.org/x/crypto/ssh;
// this package adds identity verification, keepalive and teardown ordering.
package ssh

import (
	"errors"
	"fmt"
	"net"
	"os"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/pkg/sftp"
	gossh "golang.org/x/crypto/ssh"
)

const (
	dialTimeout       = 10 * time.Second
	keepaliveInterval = 30 * time.Second
)

// Config holds everything needed to open a connection.
type Config struct {
	Hostname string
	Username string
	Password string
	KeyPath  string
	Port     int
}

func (c Config) addr() string {
	port := c.Port
	if port == 0 {
		port = 22
	}
	return net.JoinHostPort(c.Hostname, strconv.Itoa(port))
}

// Client is an authenticated connection plus its secondary data channel.
type Client struct {
	conn   *gossh.Client
	sftp   *sftp.Client
	stopKA chan struct{}
	closed sync.Once
}

// Dial opens an authenticated connection to cfg's host. After the transport
// accepts the credentials the remote identity is checked with whoami; a
// mismatch closes the connection and fails with ErrVerification. On success
// a keepalive request is sent every 30 seconds so idle sessions are not
// dropped by the server.
func Dial(cfg Config) (*Client, error) {
	var auth []gossh.AuthMethod
	if cfg.Password != "" {
		auth = append(auth, gossh.Password(cfg.Password))
	}
	if cfg.KeyPath != "" {
		key, err := os.ReadFile(cfg.KeyPath)
		if err != nil {
			return nil, fmt.Errorf("reading key %s: %w", cfg.KeyPath, err)
		}
		signer, err := gossh.ParsePrivateKey(key)
		if err != nil {
			return nil, fmt.Errorf("parsing key %s: %w", cfg.KeyPath, err)
		}
		auth = append(auth, gossh.PublicKeys(signer))
	}

	clientCfg := &gossh.ClientConfig{
		User:            cfg.Username,
		Auth:            auth,
		HostKeyCallback: gossh.InsecureIgnoreHostKey(),
		Timeout:         dialTimeout,
	}

	conn, err := gossh.Dial("tcp", cfg.addr(), clientCfg)
	if err != nil {
		var ne net.Error
		switch {
		case strings.Contains(err.Error(), "unable to authenticate"):
			return nil, fmt.Errorf("%w: %v", ErrAuth, err)
		case errors.As(err, &ne) && ne.Timeout():
			return nil, fmt.Errorf("%w: %v", ErrTimeout, err)
		default:
			return nil, fmt.Errorf("connect %s: %w", cfg.addr(), err)
		}
	}

	c := &Client{conn: conn}
	whoami, _, exit := c.Run("whoami")
	if exit != 0 || strings.TrimSpace(whoami) != cfg.Username {
		c.Close()
		return nil, ErrVerification
	}

	ftp, err := sftp.NewClient(conn)
	if err != nil {
		c.Close()
		return nil, fmt.Errorf("open data channel: %w", err)
	}
	c.sftp = ftp

	c.stopKA = make(chan struct{})
	go c.keepalive()
	return c, nil
}

func (c *Client) keepalive() {
	ticker := time.NewTicker(keepaliveInterval)
	defer ticker.Stop()
	for {
		select {
		case <-c.stopKA:
			return
		case <-ticker.C:
			_, _, _ = c.conn.SendRequest("keepalive@openssh.com", true, nil)
		}
	}
}

// WorkingDir reports the remote working directory seen by the data channel,
// defaulting to the root.
func (c *Client) WorkingDir() string {
	if c.sftp != nil {
		if wd, err := c.sftp.Getwd(); err == nil && wd != "" {
			return wd
		}
	}
	return "/"
}

// Close shuts the connection down: data channel first, then the transport.
// Every step swallows its error and Close is safe to call repeatedly.
func (c *Client) Close() {
	c.closed.Do(func() {
		if c.stopKA != nil {
			close(c.stopKA)
		}
		if c.sftp != nil {
			_ = c.sftp.Close()
		}
		if c.conn != nil {
			_ = c.conn.Close()
		}
	})
}
