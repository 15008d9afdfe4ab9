package natsx

import (
	"errors"
	"time"

	"github.com/nats-io/nats.go"
)

// Thin core-NATS client used for the cross-node delivery relay. No
// JetStream: a missed relay is acceptable because the message store is
// the durable record.

type Config struct {
	URL           string
	Name          string
	ReconnectWait time.Duration
	Timeout       time.Duration
}

type Client struct {
	nc *nats.Conn
}

func New(cfg Config) (*Client, error) {
	if cfg.URL == "" {
		return nil, errors.New("nats url missing")
	}
	if cfg.ReconnectWait == 0 {
		cfg.ReconnectWait = 500 * time.Millisecond
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = 3 * time.Second
	}
	nc, err := nats.Connect(cfg.URL,
		nats.Name(cfg.Name),
		nats.MaxReconnects(-1),
		nats.ReconnectWait(cfg.ReconnectWait),
		nats.ReconnectJitter(100*time.Millisecond, 500*time.Millisecond),
		nats.Timeout(cfg.Timeout),
	)
	if err != nil {
		return nil, err
	}
	return &Client{nc: nc}, nil
}

func (c *Client) Publish(subject string, data []byte) error {
	return c.nc.Publish(subject, data)
}

// Subscribe delivers every message on subject to fn. Plain subscription,
// not a queue group: every gateway node must see relayed payloads so the
// one holding the recipient's connection can deliver.
func (c *Client) Subscribe(subject string, fn func(data []byte)) (*nats.Subscription, error) {
	return c.nc.Subscribe(subject, func(m *nats.Msg) { fn(m.Data) })
}

func (c *Client) Close() {
	if c.nc != nil {
		c.nc.Drain()
	}
}
