package collector

import (
	"context"
	"fmt"
	"net"
	"os"
	"time"

	"golang.org/x/crypto/ssh"

	"netimpact/internal/domain"
	"netimpact/internal/loader"
)

// Fetch reads the device's running configuration and parses it into a
// tree. The output format is sniffed, so devices that emit structured
// JSON work the same as CLI-style platforms.
func (c *Collector) Fetch(ctx context.Context, host string) (*domain.Tree, error) {
	output, err := c.FetchRaw(ctx, host)
	if err != nil {
		return nil, err
	}

	tree, err := loader.Parse([]byte(output), loader.DetectFormat("", []byte(output)))
	if err != nil {
		return nil, fmt.Errorf("failed to parse config from %s: %w", host, err)
	}
	return tree, nil
}

// FetchRaw reads the device's running configuration without parsing it.
func (c *Collector) FetchRaw(ctx context.Context, host string) (string, error) {
	client, err := c.connect(ctx, host)
	if err != nil {
		return "", err
	}
	defer client.Close()

	c.logger.Printf("collector: running %q on %s", c.command, host)
	output, err := c.runCommand(client, c.command)
	if err != nil {
		return "", fmt.Errorf("failed to read config from %s: %w", host, err)
	}
	return output, nil
}

// connect establishes an SSH connection with a context-aware dial.
func (c *Collector) connect(ctx context.Context, host string) (*ssh.Client, error) {
	config, err := c.sshConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to build SSH config: %w", err)
	}

	addr := net.JoinHostPort(host, fmt.Sprint(c.port))
	dialer := &net.Dialer{Timeout: c.connectTimeout}

	conn, err := dialer.DialContext(ctx, "tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("failed to dial %s: %w", addr, err)
	}

	sshConn, chans, reqs, err := ssh.NewClientConn(conn, addr, config)
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to establish SSH connection to %s: %w", addr, err)
	}

	return ssh.NewClient(sshConn, chans, reqs), nil
}

// sshConfig builds the client config from the credentials. Key-based auth
// wins when a key file is configured.
func (c *Collector) sshConfig() (*ssh.ClientConfig, error) {
	if c.creds.Username == "" {
		return nil, fmt.Errorf("username is required")
	}

	var auth ssh.AuthMethod
	switch {
	case c.creds.KeyFile != "":
		keyData, err := os.ReadFile(c.creds.KeyFile)
		if err != nil {
			return nil, fmt.Errorf("failed to read key file: %w", err)
		}
		var signer ssh.Signer
		if c.creds.KeyPassphrase != "" {
			signer, err = ssh.ParsePrivateKeyWithPassphrase(keyData, []byte(c.creds.KeyPassphrase))
		} else {
			signer, err = ssh.ParsePrivateKey(keyData)
		}
		if err != nil {
			return nil, fmt.Errorf("failed to parse private key: %w", err)
		}
		auth = ssh.PublicKeys(signer)

	case c.creds.Password != "":
		auth = ssh.Password(c.creds.Password)

	default:
		return nil, fmt.Errorf("either a key file or a password is required")
	}

	return &ssh.ClientConfig{
		User:            c.creds.Username,
		Auth:            []ssh.AuthMethod{auth},
		HostKeyCallback: ssh.InsecureIgnoreHostKey(),
		Timeout:         c.connectTimeout,
	}, nil
}

// runCommand executes one command and returns its combined output. Network
// devices routinely exit non-zero on benign output, so a non-zero exit
// with output is not treated as a failure.
func (c *Collector) runCommand(client *ssh.Client, cmd string) (string, error) {
	session, err := client.NewSession()
	if err != nil {
		return "", fmt.Errorf("failed to create session: %w", err)
	}
	defer session.Close()

	done := make(chan error, 1)
	var output []byte

	go func() {
		var runErr error
		output, runErr = session.CombinedOutput(cmd)
		done <- runErr
	}()

	select {
	case err := <-done:
		if err != nil {
			if _, ok := err.(*ssh.ExitError); ok && len(output) > 0 {
				return string(output), nil
			}
			return "", fmt.Errorf("command failed: %w", err)
		}
		return string(output), nil
	case <-time.After(c.commandTimeout):
		session.Signal(ssh.SIGKILL)
		return "", fmt.Errorf("command timed out after %s", c.commandTimeout)
	}
}
