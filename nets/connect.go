package nets

import (
	"bufio"
	"context"
	"encoding/base64"
	"fmt"
	"net"
	"net/http"
	"net/url"
	"time"

	"golang.org/x/net/proxy"
)

func init() {
	proxy.RegisterDialerType("http", func(u *url.URL, forward proxy.Dialer) (proxy.Dialer, error) {
		return &connectDialer{
			proxy:   u,
			forward: forward,
		}, nil
	})
}

// connectDialer tunnels connections through an HTTP proxy with the CONNECT method.
type connectDialer struct {
	proxy   *url.URL
	forward proxy.Dialer
}

var _ Dialer = new(connectDialer)

func (c *connectDialer) Dial(network, addr string) (net.Conn, error) {
	return c.DialContext(context.Background(), network, addr)
}

func (c *connectDialer) DialContext(ctx context.Context, network, addr string) (_ net.Conn, err error) {
	var conn net.Conn
	if d, ok := c.forward.(proxy.ContextDialer); ok {
		conn, err = d.DialContext(ctx, "tcp", c.proxy.Host)
	} else {
		conn, err = c.forward.Dial("tcp", c.proxy.Host)
	}
	if err != nil {
		return nil, err
	}
	defer func() {
		if err != nil {
			conn.Close()
		}
	}()

	if deadline, ok := ctx.Deadline(); ok {
		conn.SetDeadline(deadline)
		defer conn.SetDeadline(time.Time{})
	}

	req := &http.Request{
		Method: http.MethodConnect,
		URL:    &url.URL{Opaque: addr},
		Host:   addr,
		Header: make(http.Header),
	}
	if user := c.proxy.User; user != nil {
		password, _ := user.Password()
		req.Header.Set("Proxy-Authorization", "Basic "+base64.StdEncoding.EncodeToString(
			[]byte(user.Username()+":"+password),
		))
	}
	if err := req.Write(conn); err != nil {
		return nil, fmt.Errorf("connect %s via %s: %w", addr, c.proxy.Host, err)
	}

	resp, err := http.ReadResponse(bufio.NewReader(conn), req)
	if err != nil {
		return nil, fmt.Errorf("connect %s via %s: %w", addr, c.proxy.Host, err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("connect %s via %s: %s", addr, c.proxy.Host, resp.Status)
	}
	return conn, nil
}
