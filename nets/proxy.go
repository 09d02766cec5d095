package nets

import (
	"fmt"
	"net"
	"net/url"
	"os"
	"strings"
	"sync"

	"github.com/reusee/armplan/configs"
	"github.com/reusee/armplan/logs"
	"github.com/reusee/armplan/modes"
	"github.com/reusee/armplan/vars"
	"golang.org/x/net/proxy"
)

// ProxyAddr is the proxy model provider traffic goes through, as a socks5:// or http:// URL.
// A bare host:port means socks5. Empty means direct.
type ProxyAddr string

func (Module) ProxyAddr(
	mode modes.Mode,
	loader configs.Loader,
	logger logs.Logger,
) ProxyAddr {
	if mode == modes.ModeDevelopment {
		return ""
	}
	addr := vars.FirstNonZero(
		configs.First[ProxyAddr](loader, "proxy_addr", "socks_proxy"),
		ProxyAddr(os.Getenv("ARMPLAN_PROXY")),
		ProxyAddr(os.Getenv("ALL_PROXY")),
		ProxyAddr(os.Getenv("all_proxy")),
	)
	if addr != "" {
		logger.Info("proxy", "addr", addr)
	}
	return addr
}

type GetProxyURL func() (*url.URL, error)

func (Module) GetProxyURL(
	addr ProxyAddr,
) GetProxyURL {
	return sync.OnceValues(func() (*url.URL, error) {
		return parseProxyURL(string(addr))
	})
}

func parseProxyURL(addr string) (*url.URL, error) {
	if addr == "" {
		return nil, nil
	}
	if !strings.Contains(addr, "://") {
		addr = "socks5://" + addr
	}
	u, err := url.Parse(addr)
	if err != nil {
		return nil, fmt.Errorf("parse proxy address: %w", err)
	}
	switch u.Scheme {
	case "socks":
		u.Scheme = "socks5"
	case "socks5", "socks5h", "http":
	default:
		return nil, fmt.Errorf("unsupported proxy scheme %q", u.Scheme)
	}
	if u.Host == "" {
		return nil, fmt.Errorf("proxy address %q has no host", addr)
	}
	return u, nil
}

type GetProxyDialer func() (Dialer, error)

func (Module) GetProxyDialer(
	getURL GetProxyURL,
) GetProxyDialer {
	return sync.OnceValues(func() (Dialer, error) {
		direct := &net.Dialer{
			Timeout: dialTimeout,
		}
		u, err := getURL()
		if err != nil {
			return nil, err
		}
		if u == nil {
			return direct, nil
		}
		d, err := proxy.FromURL(u, direct)
		if err != nil {
			return nil, err
		}
		ret, ok := d.(Dialer)
		if !ok {
			return nil, fmt.Errorf("proxy scheme %s does not support contexts", u.Scheme)
		}
		return ret, nil
	})
}
