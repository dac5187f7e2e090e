package ipc

import (
	"context"
	"fmt"
	"net"
	"net/http"

	"resty.dev/v3"
)

// Client talks to a running daemon.
type Client struct {
	rest *resty.Client
}

func NewClient(path string) *Client {
	client := resty.NewWithClient(&http.Client{
		Transport: &http.Transport{
			DialContext: func(ctx context.Context, _, _ string) (net.Conn, error) {
				var d net.Dialer
				return d.DialContext(ctx, "unix", path)
			},
		},
	})

	client.SetBaseURL("http://setroot")
	client.SetHeader("Content-Type", "application/json")
	client.SetHeader("Accept", "application/json")
	client.SetHeader("User-Agent", "setroot")

	return &Client{rest: client}
}

func (c *Client) Close() error {
	return c.rest.Close()
}

func (c *Client) Command(cmd Command) (*Response, error) {
	result := Response{}

	response, err := c.rest.R().SetBody(cmd).SetResult(&result).Post("/command")
	if err != nil {
		return nil, err
	}

	if response.StatusCode() != http.StatusOK {
		return nil, fmt.Errorf("error sending command: %s", response.Status())
	}

	return &result, nil
}

func (c *Client) Status() (*StatusResponse, error) {
	result := StatusResponse{}

	response, err := c.rest.R().SetResult(&result).Get("/status")
	if err != nil {
		return nil, fmt.Errorf("error pinging socket: %w", err)
	}
	if response.StatusCode() != http.StatusOK {
		return nil, fmt.Errorf("error pinging socket: %s", response.Status())
	}

	return &result, nil
}

func (c *Client) post(path string, body any) error {
	req := c.rest.R()
	if body != nil {
		req.SetBody(body)
	}
	response, err := req.Post(path)
	if err != nil {
		return err
	}
	if response.StatusCode() != http.StatusOK {
		return fmt.Errorf("%s failed: %s", path, response.Status())
	}
	return nil
}

func (c *Client) Stop() error {
	return c.post("/stop", nil)
}

func (c *Client) Next() error {
	return c.post("/next", nil)
}

func (c *Client) Load(wallpapers []string) error {
	return c.post("/load", wallpapers)
}

// Set asks the daemon to fade in one image, outside the rotation.
func (c *Client) Set(path string) error {
	_, err := c.Command(Command{Type: CommandSet, Args: []string{path}})
	return err
}

func (c *Client) Color(color string) error {
	_, err := c.Command(Command{Type: CommandColor, Args: []string{color}})
	return err
}

func (c *Client) CopyRoot() error {
	_, err := c.Command(Command{Type: CommandCopyRoot})
	return err
}

func withClient[T any](fn func(*Client) (T, error)) (T, error) {
	c := NewClient(SocketPath())
	defer c.Close()
	return fn(c)
}

// SendCommand sends cmd to the daemon on the default socket.
func SendCommand(cmd Command) (*Response, error) {
	return withClient(func(c *Client) (*Response, error) {
		return c.Command(cmd)
	})
}

func SendStatus() (*StatusResponse, error) {
	return withClient((*Client).Status)
}

func SendStop() error {
	_, err := withClient(func(c *Client) (struct{}, error) {
		return struct{}{}, c.Stop()
	})
	return err
}

func SendNext() error {
	_, err := withClient(func(c *Client) (struct{}, error) {
		return struct{}{}, c.Next()
	})
	return err
}

func SendLoad(wallpapers []string) error {
	_, err := withClient(func(c *Client) (struct{}, error) {
		return struct{}{}, c.Load(wallpapers)
	})
	return err
}

func send(fn func(*Client) error) error {
	_, err := withClient(func(c *Client) (struct{}, error) {
		return struct{}{}, fn(c)
	})
	return err
}

func SendSet(path string) error {
	return send(func(c *Client) error { return c.Set(path) })
}

func SendColor(color string) error {
	return send(func(c *Client) error { return c.Color(color) })
}

func SendCopyRoot() error {
	return send((*Client).CopyRoot)
}
