package telemetry

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"testing"
	"time"

	paho "github.com/eclipse/paho.mqtt.golang"
	tc "github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/hoistlab/liftcore/core/events"
)

// TestIntegration relays a snapshot through a real Mosquitto broker.
func TestIntegration(t *testing.T) {
	if os.Getenv("DOCKER_AVAILABLE") != "true" && os.Getenv("DOCKER_AVAILABLE") != "1" {
		t.Skip("docker not available")
	}
	ctx := context.Background()
	req := tc.ContainerRequest{
		Image:        "eclipse-mosquitto:2.0",
		ExposedPorts: []string{"1883/tcp"},
		Cmd:          []string{"mosquitto", "-c", "/mosquitto-no-auth.conf"},
		WaitingFor:   wait.ForListeningPort("1883/tcp"),
	}
	container, err := tc.GenericContainer(ctx, tc.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	if err != nil {
		t.Fatalf("failed to start container: %v", err)
	}
	defer func() {
		if err := container.Terminate(ctx); err != nil {
			t.Fatalf("failed to terminate container: %v", err)
		}
	}()

	// give broker time to fully start
	time.Sleep(500 * time.Millisecond)

	host, err := container.Host(ctx)
	if err != nil {
		t.Fatalf("failed to get container host: %v", err)
	}
	port, err := container.MappedPort(ctx, "1883")
	if err != nil {
		t.Fatalf("failed to get mapped port: %v", err)
	}
	brokerURL := fmt.Sprintf("tcp://%s:%s", host, port.Port())

	sub := paho.NewClient(paho.NewClientOptions().AddBroker(brokerURL).SetClientID("sub"))
	if token := sub.Connect(); token.Wait() && token.Error() != nil {
		t.Fatalf("failed to connect subscriber: %v", token.Error())
	}
	defer sub.Disconnect(250)

	msgCh := make(chan []byte, 1)
	if token := sub.Subscribe("liftcore/state", 0, func(_ paho.Client, m paho.Message) {
		msgCh <- m.Payload()
	}); token.Wait() && token.Error() != nil {
		t.Fatalf("failed to subscribe: %v", token.Error())
	}

	relay, err := NewRelay(Config{Enabled: true, Broker: brokerURL})
	if err != nil {
		t.Fatalf("failed to create relay: %v", err)
	}
	defer relay.Close()

	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()
	bus := make(chan any, 1)
	go relay.Run(runCtx, bus)

	snap := events.Snapshot{
		Seq:      1,
		MaxFloor: 9,
		Cars:     []events.CarStatus{{ID: 0, Floor: 2, Direction: "none", State: "resting", Capacity: 10}},
		Pending:  []int{5},
	}
	bus <- snap

	select {
	case payload := <-msgCh:
		var got events.Snapshot
		if err := json.Unmarshal(payload, &got); err != nil {
			t.Fatalf("unmarshal payload: %v", err)
		}
		if got.Seq != snap.Seq || got.MaxFloor != snap.MaxFloor || len(got.Cars) != 1 {
			t.Fatalf("unexpected snapshot: %+v", got)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("timeout waiting for snapshot")
	}
}
