package hostlink

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/telebench/telebench/pkg/harness"
)

func newHost(t *testing.T) (url string, received <-chan Event) {
	t.Helper()

	events := make(chan Event, 32)
	upgrader := websocket.Upgrader{}

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			t.Errorf("upgrade failed: %v", err)
			return
		}
		defer func() { _ = conn.Close() }()
		for {
			var ev Event
			if err := conn.ReadJSON(&ev); err != nil {
				return
			}
			events <- ev
		}
	}))
	t.Cleanup(srv.Close)

	return "ws" + strings.TrimPrefix(srv.URL, "http"), events
}

func TestClient_RunLifecycle(t *testing.T) {
	url, received := newHost(t)

	c, err := Dial(context.Background(), url, zap.NewNop())
	require.NoError(t, err)

	tc := &harness.TCDef{ID: "fxp-autocor", Iterations: 10, Duration: 1234, CRC: 0xb49f}
	c.SignalStart("run-1", tc.ID)
	c.SignalFinished("run-1", tc.ID, tc.Duration)
	c.ReportResults("run-1", tc, 0xb49f, true)
	c.Close()

	kinds := make([]string, 0, 3)
	for i := 0; i < 3; i++ {
		select {
		case ev := <-received:
			kinds = append(kinds, ev.Kind)
			assert.Equal(t, "run-1", ev.RunID)
			assert.Equal(t, "fxp-autocor", ev.BenchID)
			assert.NotZero(t, ev.TimestampNs)
			if ev.Kind == "results" {
				assert.Equal(t, uint64(10), ev.Iterations)
				assert.Equal(t, uint16(0xb49f), ev.CRC)
				assert.True(t, ev.Passed)
			}
		case <-time.After(2 * time.Second):
			t.Fatal("timed out waiting for event")
		}
	}
	assert.Equal(t, []string{"start", "finished", "results"}, kinds)
}

func TestClient_NilIsNoOp(t *testing.T) {
	var c *Client
	c.SignalStart("run", "bench")
	c.SignalFinished("run", "bench", 0)
	c.ReportResults("run", &harness.TCDef{}, 0, false)
	c.Close()
}

func TestDial_BadEndpoint(t *testing.T) {
	_, err := Dial(context.Background(), "ws://127.0.0.1:1/nothing", zap.NewNop())
	require.Error(t, err)
}
