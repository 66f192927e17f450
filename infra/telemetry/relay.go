// Package telemetry mirrors fleet state to the display side over MQTT.
// The relay is strictly fire-and-forget: it consumes snapshots from the
// event bus and never holds up a dispatch decision.
package telemetry

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	paho "github.com/eclipse/paho.mqtt.golang"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/hoistlab/liftcore/core/events"
	"github.com/hoistlab/liftcore/infra/logger"
)

var (
	snapshotsPublished prometheus.Counter
	snapshotsDropped   prometheus.Counter
)

func init() {
	snapshotsPublished = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "telemetry_snapshots_published_total",
		Help: "Number of fleet snapshots relayed over MQTT",
	})
	snapshotsDropped = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "telemetry_snapshots_dropped_total",
		Help: "Number of fleet snapshots dropped on publish failure",
	})
	prometheus.MustRegister(snapshotsPublished, snapshotsDropped)
}

// Config defines the MQTT endpoint the relay publishes to.
type Config struct {
	Enabled  bool   `json:"enabled"`
	Broker   string `json:"broker"`
	ClientID string `json:"client_id"`
	Username string `json:"username"`
	Password string `json:"password"`
	Topic    string `json:"topic"`
	QoS      byte   `json:"qos"`
}

// SetDefaults fills unset fields with sensible values.
func (c *Config) SetDefaults() {
	if c.Topic == "" {
		c.Topic = "liftcore/state"
	}
}

// Validate checks mandatory fields when the relay is enabled.
func (c Config) Validate() error {
	if c.Enabled && c.Broker == "" {
		return fmt.Errorf("telemetry: broker is required")
	}
	return nil
}

// Relay forwards fleet snapshots from the event bus to an MQTT topic.
type Relay struct {
	cfg Config
	cli paho.Client
	log logger.Logger
}

// NewRelay connects to the broker and prepares the relay.
func NewRelay(cfg Config) (*Relay, error) {
	cfg.SetDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	id := cfg.ClientID
	if id == "" {
		id = "liftcore-relay-" + uuid.NewString()
	}
	opts := paho.NewClientOptions().
		AddBroker(cfg.Broker).
		SetClientID(id).
		SetUsername(cfg.Username).
		SetPassword(cfg.Password).
		SetConnectTimeout(5 * time.Second).
		SetAutoReconnect(true)
	cli := paho.NewClient(opts)
	if token := cli.Connect(); token.Wait() && token.Error() != nil {
		return nil, token.Error()
	}
	return &Relay{cfg: cfg, cli: cli, log: logger.New("telemetry")}, nil
}

// Run consumes bus events until the context is done, relaying every fleet
// snapshot. Non-snapshot events are ignored.
func (r *Relay) Run(ctx context.Context, bus <-chan any) {
	for {
		select {
		case ev, ok := <-bus:
			if !ok {
				return
			}
			if snap, ok := ev.(events.Snapshot); ok {
				r.publish(snap)
			}
		case <-ctx.Done():
			return
		}
	}
}

func (r *Relay) publish(snap events.Snapshot) {
	payload, err := json.Marshal(snap)
	if err != nil {
		r.log.Errorf("marshal snapshot: %v", err)
		snapshotsDropped.Inc()
		return
	}
	token := r.cli.Publish(r.cfg.Topic, r.cfg.QoS, false, payload)
	go func() {
		if token.Wait() && token.Error() != nil {
			r.log.Warnf("publish snapshot %d: %v", snap.Seq, token.Error())
			snapshotsDropped.Inc()
			return
		}
		snapshotsPublished.Inc()
	}()
}

// Close disconnects from the broker.
func (r *Relay) Close() {
	r.cli.Disconnect(250)
}
