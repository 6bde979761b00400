package transport

import (
	"crypto/tls"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
	"golang.org/x/net/http2"
)

const (
	// NameAWS is the transport used by the AWS session.
	NameAWS = "aws"
	// NameSlack is the transport used by the Slack client.
	NameSlack = "slack"
	// NameDefault is used for names which have no defaults of their own.
	NameDefault = "default"
)

const (
	paramClientTimeout         = "client-timeout"
	paramDialTimeout           = "dial-timeout"
	paramTLSHandshakeTimeout   = "tls-handshake-timeout"
	paramResponseHeaderTimeout = "response-header-timeout"
	paramMaxIdleConnections    = "max-idle-connections"
	paramIdleConnectionTimeout = "idle-connection-timeout"
	paramEnableHTTP2           = "enable-http2"
)

// settings of a single client. Durations of 0 mean no timeout.
type settings struct {
	clientTimeout         time.Duration
	dialTimeout           time.Duration
	tlsHandshakeTimeout   time.Duration
	responseHeaderTimeout time.Duration
	maxIdleConnections    int
	idleConnectionTimeout time.Duration
	enableHTTP2           bool
}

// A function instance handles one event at a time and is frozen between
// invocations, so every client keeps a handful of idle connections at most.
var defaultSettings = map[string]settings{
	// EC2 and Route 53 calls are retried by the SDK, keep each attempt short.
	NameAWS: {
		clientTimeout:         10 * time.Second,
		dialTimeout:           3 * time.Second,
		tlsHandshakeTimeout:   3 * time.Second,
		responseHeaderTimeout: 5 * time.Second,
		maxIdleConnections:    4,
		idleConnectionTimeout: 5 * time.Minute,
	},
	// One message per invocation; a slow Slack must not hold the function.
	NameSlack: {
		clientTimeout:         5 * time.Second,
		dialTimeout:           2 * time.Second,
		tlsHandshakeTimeout:   2 * time.Second,
		maxIdleConnections:    1,
		idleConnectionTimeout: 5 * time.Minute,
		enableHTTP2:           true,
	},
	NameDefault: {
		clientTimeout:         10 * time.Second,
		dialTimeout:           5 * time.Second,
		tlsHandshakeTimeout:   3 * time.Second,
		maxIdleConnections:    2,
		idleConnectionTimeout: time.Minute,
	},
}

// Pool creates http.Clients as required, using the provided viper.Viper for configuration.
// Client settings start from the defaults of the name and are overridden by transport.<name>.
type Pool struct {
	config *viper.Viper
	logger logrus.FieldLogger

	mu      sync.Mutex
	clients map[string]*http.Client
}

func NewPool(logger logrus.FieldLogger, config *viper.Viper) *Pool {
	return &Pool{
		logger:  logger,
		clients: map[string]*http.Client{},
		config:  config,
	}
}

// Client returns the named client, creating it on first use.
func (p *Pool) Client(name string) (*http.Client, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if c, ok := p.clients[name]; ok {
		return c, nil
	}

	c, err := p.newClient(name)
	if err != nil {
		return nil, errors.Wrapf(err, "transport %s", name)
	}
	p.clients[name] = c
	return c, nil
}

func (p *Pool) newClient(name string) (*http.Client, error) {
	s, err := p.settings(name)
	if err != nil {
		return nil, err
	}

	dialer := &net.Dialer{Timeout: s.dialTimeout}
	transport := &http.Transport{
		Proxy:       http.ProxyFromEnvironment,
		DialContext: dialer.DialContext,
		TLSClientConfig: &tls.Config{
			MinVersion: tls.VersionTLS12,
		},
		TLSHandshakeTimeout:   s.tlsHandshakeTimeout,
		ResponseHeaderTimeout: s.responseHeaderTimeout,
		MaxIdleConns:          s.maxIdleConnections,
		MaxIdleConnsPerHost:   s.maxIdleConnections,
		IdleConnTimeout:       s.idleConnectionTimeout,
	}

	if s.enableHTTP2 {
		if err := http2.ConfigureTransport(transport); err != nil {
			return nil, errors.Wrap(err, "configuring http2")
		}
	} else {
		// A non-nil empty map disables HTTP/2 in the client.
		transport.TLSNextProto = map[string]func(string, *tls.Conn) http.RoundTripper{}
	}

	p.logger.WithFields(logrus.Fields{
		"name":                     name,
		paramClientTimeout:         s.clientTimeout,
		paramDialTimeout:           s.dialTimeout,
		paramResponseHeaderTimeout: s.responseHeaderTimeout,
		paramMaxIdleConnections:    s.maxIdleConnections,
		paramEnableHTTP2:           s.enableHTTP2,
	}).Debug("created client")

	return &http.Client{
		Transport: transport,
		Timeout:   s.clientTimeout,
	}, nil
}

func (p *Pool) settings(name string) (settings, error) {
	s, ok := defaultSettings[name]
	if !ok {
		s = defaultSettings[NameDefault]
	}

	v := p.config.Sub("transport." + name)
	if v == nil {
		return s, nil
	}
	v.SetDefault(paramClientTimeout, s.clientTimeout)
	v.SetDefault(paramDialTimeout, s.dialTimeout)
	v.SetDefault(paramTLSHandshakeTimeout, s.tlsHandshakeTimeout)
	v.SetDefault(paramResponseHeaderTimeout, s.responseHeaderTimeout)
	v.SetDefault(paramMaxIdleConnections, s.maxIdleConnections)
	v.SetDefault(paramIdleConnectionTimeout, s.idleConnectionTimeout)
	v.SetDefault(paramEnableHTTP2, s.enableHTTP2)

	s = settings{
		clientTimeout:         v.GetDuration(paramClientTimeout),
		dialTimeout:           v.GetDuration(paramDialTimeout),
		tlsHandshakeTimeout:   v.GetDuration(paramTLSHandshakeTimeout),
		responseHeaderTimeout: v.GetDuration(paramResponseHeaderTimeout),
		maxIdleConnections:    v.GetInt(paramMaxIdleConnections),
		idleConnectionTimeout: v.GetDuration(paramIdleConnectionTimeout),
		enableHTTP2:           v.GetBool(paramEnableHTTP2),
	}

	for param, d := range map[string]time.Duration{
		paramClientTimeout:         s.clientTimeout,
		paramDialTimeout:           s.dialTimeout,
		paramTLSHandshakeTimeout:   s.tlsHandshakeTimeout,
		paramResponseHeaderTimeout: s.responseHeaderTimeout,
		paramIdleConnectionTimeout: s.idleConnectionTimeout,
	} {
		if d < 0 {
			return settings{}, errors.New(param + " must not be negative")
		}
	}
	if s.maxIdleConnections < 0 {
		return settings{}, errors.New(paramMaxIdleConnections + " must not be negative")
	}
	return s, nil
}
