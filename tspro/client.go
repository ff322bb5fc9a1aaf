package tspro

import (
	"bufio"
	"context"
	"io"
	"log/slog"
	"net"
	"strconv"
	"strings"
	"sync"
	"time"
)

// connState tracks where a Client is in its one-way lifecycle.
type connState int

const (
	stateIdle connState = iota
	stateConnecting
	stateConnected
	stateClosed
)

// Client is a TCP client for a single TigerStop Pro controller.
//
// It sends requests as delimiter-separated lines and runs one reader
// goroutine that parses inbound lines and hands the decoded events to the
// handlers registered with SetEventHook.
//
// Thread Safety:
// All methods are safe for concurrent use. Handlers run on the reader
// goroutine and must not call Close directly; use `go c.Close()` instead.
type Client struct {
	mu sync.Mutex

	conn           net.Conn
	remoteAddr     string
	state          connState
	closeRequested bool
	err            error

	// writeMu keeps concurrent requests from interleaving on the wire.
	writeMu sync.Mutex

	handlers *HandlerTable
	cfg      Config
	logger   *slog.Logger

	// done is closed once the connection is over and the disconnection
	// notice has been delivered.
	done chan struct{}
}

// NewClient creates a new, unconnected controller client.
func NewClient(opts ...Option) *Client {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	return &Client{
		handlers: NewHandlerTable(),
		cfg:      cfg,
		logger:   cfg.Logger,
		done:     make(chan struct{}),
	}
}

// SetEventHook registers handler for events with the given code, replacing
// any handler already registered for it. Register EventDisconnected to be
// told when the connection ends.
func (c *Client) SetEventHook(code EventCode, handler Handler) {
	c.handlers.Set(code, handler)
}

// SetEventHookFunc registers a callback that receives the raw argument
// strings of each matching line instead of a decoded event. The strings are
// passed through unconverted, so lines such as "2|a|b" still reach fn;
// parsing them is up to fn.
func (c *Client) SetEventHookFunc(code EventCode, fn func(args ...string)) {
	c.handlers.SetArgs(code, fn)
}

// RemoveEventHook removes the handler for code. Removing a code with no
// handler is a no-op.
func (c *Client) RemoveEventHook(code EventCode) {
	c.handlers.Remove(code)
}

// IsConnected returns true while the connection is up.
func (c *Client) IsConnected() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state == stateConnected
}

// RemoteAddr returns the address the client connected to, including port.
// Returns empty string if Connect never succeeded.
func (c *Client) RemoteAddr() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.remoteAddr
}

// Done returns a channel that is closed when the client is finished: the
// connection has ended and the disconnection notice has been delivered, or
// Close was called before any connection was made.
func (c *Client) Done() <-chan struct{} {
	return c.done
}

// Err returns why the connection ended. It is nil while connected and after
// a requested Close.
func (c *Client) Err() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.err
}

// Connect connects to the controller at address. If address has no port,
// the configured port (Port by default) is used.
func (c *Client) Connect(address string) error {
	return c.ConnectWithContext(context.Background(), address)
}

// ConnectWithContext connects to the controller with a context for
// cancellation. A failed attempt leaves the client unconnected, so it may be
// retried with the same or a different address. Once a connection has been
// made, further calls fail with ErrAlreadyConnected.
func (c *Client) ConnectWithContext(ctx context.Context, address string) error {
	c.mu.Lock()
	switch c.state {
	case stateConnecting, stateConnected:
		c.mu.Unlock()
		return ErrAlreadyConnected
	case stateClosed:
		c.mu.Unlock()
		return ErrClosed
	}
	c.state = stateConnecting
	c.mu.Unlock()

	target := c.resolveAddress(address)
	d := net.Dialer{Timeout: c.cfg.DialTimeout}
	conn, err := d.DialContext(ctx, Network, target)
	if err != nil {
		c.mu.Lock()
		if c.state == stateConnecting {
			c.state = stateIdle
		}
		c.mu.Unlock()
		c.logger.Debug("connect failed", "address", target, "error", err)
		return NewConnectionError("failed to connect to "+target, err)
	}

	c.mu.Lock()
	if c.state == stateClosed {
		// Close ran while we were dialing.
		c.mu.Unlock()
		conn.Close()
		return ErrClosed
	}
	c.conn = conn
	c.remoteAddr = target
	c.state = stateConnected
	go c.readerLoop(conn, bufio.NewReader(conn))
	c.mu.Unlock()

	c.logger.Info("connected", "address", target)
	return nil
}

// resolveAddress appends the configured port when address has none.
func (c *Client) resolveAddress(address string) string {
	address = strings.TrimSpace(address)
	if _, _, err := net.SplitHostPort(address); err == nil {
		return address
	}
	host := strings.TrimSuffix(strings.TrimPrefix(address, "["), "]")
	return net.JoinHostPort(host, strconv.Itoa(c.cfg.Port))
}

// Close closes the connection and waits for the reader goroutine to deliver
// the Disconnected event. Calling Close more than once is harmless. A closed
// client cannot be connected again.
func (c *Client) Close() error {
	c.mu.Lock()
	switch c.state {
	case stateClosed:
		c.mu.Unlock()
		return nil
	case stateIdle, stateConnecting:
		c.state = stateClosed
		close(c.done)
		c.mu.Unlock()
		return nil
	}

	c.state = stateClosed
	c.closeRequested = true
	conn := c.conn
	c.mu.Unlock()

	err := conn.Close()
	<-c.done
	if err != nil {
		return NewConnectionError("failed to close connection", err)
	}
	return nil
}

// Send formats req and writes it as one line. It blocks until the whole
// line has been handed to the socket or the write fails.
func (c *Client) Send(req Request) error {
	data, err := req.Encode()
	if err != nil {
		return err
	}

	c.mu.Lock()
	switch c.state {
	case stateClosed:
		c.mu.Unlock()
		return ErrClosed
	case stateConnected:
	default:
		c.mu.Unlock()
		return ErrNotConnected
	}
	conn := c.conn
	c.mu.Unlock()

	return c.write(conn, data)
}

func (c *Client) write(conn net.Conn, data []byte) error {
	c.writeMu.Lock()
	defer c.writeMu.Unlock()

	if c.cfg.WriteTimeout > 0 {
		conn.SetWriteDeadline(time.Now().Add(c.cfg.WriteTimeout))
	}

	// Partial writes are continued until the whole line is out. A write
	// that makes no progress without an error is reported as short.
	for rest := data; len(rest) > 0; {
		n, err := conn.Write(rest)
		if err == nil && n == 0 {
			err = io.ErrShortWrite
		}
		if err != nil {
			c.logger.Debug("send failed", "line", strings.TrimSuffix(string(data), LineTerminator), "error", err)
			return NewConnectionError("failed to send request", err)
		}
		rest = rest[n:]
	}

	c.logger.Debug("sent line", "line", strings.TrimSuffix(string(data), LineTerminator))
	return nil
}

// RequestMoveToPosition asks the controller to move to position.
// Sent as "move_to|<position>".
func (c *Client) RequestMoveToPosition(position float64) error {
	return c.Send(NewMoveToRequest(position))
}

// RequestStop asks the controller to stop all movement. Sent as "stop".
func (c *Client) RequestStop() error {
	return c.Send(NewStopRequest())
}

// RequestCurrentPosition asks the controller for its position. The answer
// arrives as a PositionReceived event. Sent as "get_position".
func (c *Client) RequestCurrentPosition() error {
	return c.Send(NewGetPositionRequest())
}

// RequestCalibrate asks the controller to calibrate to position.
// Sent as "calibrate|<position>".
func (c *Client) RequestCalibrate(position float64) error {
	return c.Send(NewCalibrateRequest(position))
}

// RequestHome asks the controller to run its home routine. Sent as "home".
func (c *Client) RequestHome() error {
	return c.Send(NewHomeRequest())
}

// RequestSetting asks the controller for a setting. The answer arrives as a
// SettingReceived event. Sent as "get_setting|<name>".
func (c *Client) RequestSetting(name SettingName) error {
	return c.Send(NewGetSettingRequest(name))
}

// RequestCycleTool asks the controller to cycle the tool. Sent as "cycle_tool".
func (c *Client) RequestCycleTool() error {
	return c.Send(NewCycleToolRequest())
}

// readerLoop reads lines until the connection fails, dispatching each one.
func (c *Client) readerLoop(conn net.Conn, reader *bufio.Reader) {
	defer close(c.done)

	for {
		if c.cfg.ReadTimeout > 0 {
			conn.SetReadDeadline(time.Now().Add(c.cfg.ReadTimeout))
		}

		// A partial line at end-of-stream comes back with the error and is
		// dropped.
		line, err := reader.ReadString('\n')
		if err != nil {
			c.handleDisconnect(conn, err)
			return
		}

		c.processLine(line)
	}
}

// processLine parses one line and runs the matching handler, if any.
func (c *Client) processLine(line string) {
	c.logger.Debug("received line", "line", strings.TrimRight(line, "\r\n"))

	frame, err := ParseFrame(line)
	if err != nil {
		// Malformed line: noise or desync, skip it and keep reading.
		c.logger.Debug("discarding malformed line", "error", err)
		return
	}

	handler, raw, ok := c.handlers.lookup(frame.Code)
	if !ok {
		return
	}

	if raw {
		c.invoke(handler, Unknown{ID: frame.Code, rawArgs: rawArgs(frame.Args)})
		return
	}

	event, err := DecodeEvent(frame)
	if err != nil {
		c.logger.Debug("discarding undecodable event", "code", frame.Code, "error", err)
		return
	}

	c.invoke(handler, event)
}

// invoke runs a handler, containing any panic so the reader keeps going.
func (c *Client) invoke(handler Handler, event Event) {
	defer func() {
		if r := recover(); r != nil {
			c.logger.Error("event handler panicked", "code", event.Code(), "panic", r)
		}
	}()
	handler(event)
}

// handleDisconnect records why the connection ended and delivers the single
// Disconnected event.
func (c *Client) handleDisconnect(conn net.Conn, err error) {
	c.mu.Lock()
	if c.closeRequested {
		err = nil
	}
	c.state = stateClosed
	c.err = err
	c.mu.Unlock()

	conn.Close()

	if err != nil {
		c.logger.Info("disconnected", "address", c.RemoteAddr(), "error", err)
	} else {
		c.logger.Info("disconnected", "address", c.RemoteAddr())
	}

	if handler, ok := c.handlers.Lookup(EventDisconnected); ok {
		c.invoke(handler, Disconnected{Err: err})
	}
}
