// Package hostlink streams run lifecycle signals to a monitoring host over a
// websocket. It externalizes the start / finished / results signals the
// harness already raises; a nil client is a valid no-op, so drivers wire it
// only when a host endpoint is configured.
package hostlink

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/telebench/telebench/pkg/harness"
)

const (
	writeQueueCapacity = 16
	writeTimeout       = 5 * time.Second
)

// Event is one lifecycle message sent to the host.
type Event struct {
	Kind          string `json:"kind"` // "start", "finished" or "results"
	RunID         string `json:"run_id"`
	BenchID       string `json:"bench_id"`
	TimestampNs   int64  `json:"timestamp_ns"`
	Iterations    uint64 `json:"iterations,omitempty"`
	DurationTicks uint64 `json:"duration_ticks,omitempty"`
	CRC           uint16 `json:"crc,omitempty"`
	ExpectedCRC   uint16 `json:"expected_crc,omitempty"`
	Passed        bool   `json:"passed,omitempty"`
}

// Client is a write-only websocket link to the host. Events are queued and
// written by a single pump goroutine; a full queue drops the event rather than
// stalling the benchmark.
type Client struct {
	conn   *websocket.Conn
	logger *zap.Logger

	ctx       context.Context
	ctxCancel context.CancelFunc

	writeChan chan Event
	wg        sync.WaitGroup
}

// Dial connects to the host endpoint and starts the write pump.
func Dial(ctx context.Context, url string, logger *zap.Logger) (*Client, error) {
	conn, _, err := websocket.DefaultDialer.DialContext(ctx, url, nil)
	if err != nil {
		return nil, fmt.Errorf("hostlink dial %q: %w", url, err)
	}

	pumpCtx, cancel := context.WithCancel(context.Background())
	c := &Client{
		conn:      conn,
		logger:    logger,
		ctx:       pumpCtx,
		ctxCancel: cancel,
		writeChan: make(chan Event, writeQueueCapacity),
	}
	c.wg.Add(1)
	go c.write()
	return c, nil
}

// SignalStart tells the host the measured section has begun.
func (c *Client) SignalStart(runID, benchID string) {
	c.post(Event{Kind: "start", RunID: runID, BenchID: benchID})
}

// SignalFinished tells the host the measured section ended.
func (c *Client) SignalFinished(runID, benchID string, durationTicks uint64) {
	c.post(Event{Kind: "finished", RunID: runID, BenchID: benchID, DurationTicks: durationTicks})
}

// ReportResults sends the final result record.
func (c *Client) ReportResults(runID string, tc *harness.TCDef, expectedCRC uint16, passed bool) {
	c.post(Event{
		Kind:          "results",
		RunID:         runID,
		BenchID:       tc.ID,
		Iterations:    tc.Iterations,
		DurationTicks: tc.Duration,
		CRC:           tc.CRC,
		ExpectedCRC:   expectedCRC,
		Passed:        passed,
	})
}

// Close drains queued events and shuts the connection down. Safe on nil.
func (c *Client) Close() {
	if c == nil {
		return
	}
	close(c.writeChan)
	c.wg.Wait()
	c.ctxCancel()
	_ = c.conn.WriteMessage(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
	_ = c.conn.Close()
}

func (c *Client) post(ev Event) {
	if c == nil {
		return
	}
	ev.TimestampNs = time.Now().UnixNano()
	select {
	case c.writeChan <- ev:
	default:
		c.logger.Warn("hostlink queue full, dropping event", zap.String("kind", ev.Kind))
	}
}

func (c *Client) write() {
	defer c.wg.Done()
	for ev := range c.writeChan {
		select {
		case <-c.ctx.Done():
			return
		default:
		}
		_ = c.conn.SetWriteDeadline(time.Now().Add(writeTimeout))
		if err := c.conn.WriteJSON(ev); err != nil {
			c.logger.Warn("hostlink write failed", zap.Error(err))
			return
		}
	}
}
