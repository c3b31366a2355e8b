package proxy

import (
	"net"
	"time"

	"github.com/domsolutions/tcp-h2-describe/internal/h2frame"
	"github.com/domsolutions/tcp-h2-describe/internal/proxylog"
	"github.com/domsolutions/tcp-h2-describe/internal/sink"
)

// Default configuration values, named after the CLI flags.
const (
	DefaultProxyHost  = "0.0.0.0"
	DefaultProxyPort  = 24909
	DefaultServerHost = "localhost"
	DefaultServerPort = 80

	// DefaultKeepaliveThreshold is the minimum idle/interval timer value
	// the proxy raises a client socket's keepalive timers to.
	DefaultKeepaliveThreshold = 180 * time.Second
)

// Config carries everything ListenAndServe needs. New fills ProxyHost,
// ServerHost, KeepaliveThreshold, Registry and Logger when they are unset;
// ProxyPort and ServerPort are used as given. Sink must be supplied.
type Config struct {
	ProxyHost string
	ProxyPort int

	ServerHost string
	ServerPort int

	KeepaliveThreshold time.Duration

	// Registry holds the payload-handler and setting extensions. If nil,
	// New seeds a fresh h2frame.NewRegistry().
	Registry *h2frame.Registry

	// Logger receives operational messages (accept errors, connection
	// teardown). If nil, New installs a logger writing to the standard
	// library's default logger.
	Logger proxylog.Logger

	// Sink receives every rendered description block. Required.
	Sink *sink.Sink

	// Ready, if set, is called once with the bound listener address,
	// before the accept loop starts. Useful for tests and for
	// operational logging when ProxyPort is 0 (OS-assigned).
	Ready func(addr net.Addr)
}

func (c Config) withDefaults() Config {
	if c.ProxyHost == "" {
		c.ProxyHost = DefaultProxyHost
	}
	if c.ServerHost == "" {
		c.ServerHost = DefaultServerHost
	}
	// ProxyPort and ServerPort are not defaulted here: the CLI supplies
	// them via flag defaults, and a caller who explicitly wants an
	// OS-assigned ephemeral port (port 0, e.g. in tests) must not have
	// that turned back into DefaultProxyPort/DefaultServerPort.
	if c.KeepaliveThreshold == 0 {
		c.KeepaliveThreshold = DefaultKeepaliveThreshold
	}
	if c.Registry == nil {
		c.Registry = h2frame.NewRegistry()
	}
	return c
}
