// Package tsprotest provides a fake TigerStop Pro controller for tests.
//
// The fake listens on a loopback TCP port, records every line a client
// sends and lets the test push arbitrary bytes back, close connections
// cleanly or reset them.
package tsprotest

import (
	"bufio"
	"net"
	"strconv"
	"strings"
	"sync"
	"testing"
	"time"
)

// Controller is a lightweight fake of the controller side of the protocol.
type Controller struct {
	listener net.Listener

	// received gets every line read from any client, without terminator.
	received chan string

	// accepted gets every new client connection.
	accepted chan net.Conn

	// mu protects concurrent access to the connections slice.
	mu          sync.Mutex
	connections []net.Conn

	// wg tracks all goroutines spawned by the controller for clean shutdown.
	wg sync.WaitGroup

	closeOnce sync.Once
}

// NewController starts a fake controller on 127.0.0.1 with a random port.
// It is stopped automatically when the test finishes.
func NewController(t testing.TB) *Controller {
	t.Helper()

	listener, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("failed to listen for fake controller: %v", err)
	}

	c := &Controller{
		listener: listener,
		received: make(chan string, 1024),
		accepted: make(chan net.Conn, 16),
	}

	c.wg.Add(1)
	go c.acceptLoop()

	t.Cleanup(c.Close)
	return c
}

// Addr returns the host:port the fake listens on.
func (c *Controller) Addr() string {
	return c.listener.Addr().String()
}

// Host returns the host part of Addr.
func (c *Controller) Host() string {
	host, _, _ := net.SplitHostPort(c.Addr())
	return host
}

// Port returns the port part of Addr.
func (c *Controller) Port() int {
	_, port, _ := net.SplitHostPort(c.Addr())
	n, _ := strconv.Atoi(port)
	return n
}

// acceptLoop runs in a goroutine, accepting and reading client connections.
func (c *Controller) acceptLoop() {
	defer c.wg.Done()

	for {
		conn, err := c.listener.Accept()
		if err != nil {
			// Listener was closed (normal shutdown).
			return
		}

		c.mu.Lock()
		c.connections = append(c.connections, conn)
		c.mu.Unlock()

		select {
		case c.accepted <- conn:
		default:
		}

		c.wg.Add(1)
		go c.readConnection(conn)
	}
}

// readConnection records lines sent by a client until it goes away.
func (c *Controller) readConnection(conn net.Conn) {
	defer c.wg.Done()

	scanner := bufio.NewScanner(conn)
	for scanner.Scan() {
		select {
		case c.received <- scanner.Text():
		default:
			// Test is not reading; drop rather than block the connection.
		}
	}
}

// WaitForConnection blocks until a client connects or the timeout expires.
func (c *Controller) WaitForConnection(t testing.TB, timeout time.Duration) net.Conn {
	t.Helper()
	select {
	case conn := <-c.accepted:
		return conn
	case <-time.After(timeout):
		t.Fatalf("no client connected within %v", timeout)
		return nil
	}
}

// NextLine returns the next line a client sent, failing the test if none
// arrives within timeout.
func (c *Controller) NextLine(t testing.TB, timeout time.Duration) string {
	t.Helper()
	select {
	case line := <-c.received:
		return line
	case <-time.After(timeout):
		t.Fatalf("no line received within %v", timeout)
		return ""
	}
}

// Received exposes the channel of lines sent by clients.
func (c *Controller) Received() <-chan string {
	return c.received
}

// SendRaw writes s unchanged to every connected client. It is used to
// produce partial lines and garbage.
func (c *Controller) SendRaw(t testing.TB, s string) {
	t.Helper()
	for _, conn := range c.snapshot() {
		if _, err := conn.Write([]byte(s)); err != nil {
			t.Fatalf("fake controller write failed: %v", err)
		}
	}
}

// SendEvent writes one event line built from code and args.
func (c *Controller) SendEvent(t testing.TB, code int, args ...string) {
	t.Helper()
	fields := append([]string{strconv.Itoa(code)}, args...)
	c.SendRaw(t, strings.Join(fields, "|")+"\n")
}

// CloseConnections closes every client connection cleanly (the client sees
// end-of-stream).
func (c *Controller) CloseConnections() {
	for _, conn := range c.takeConnections() {
		conn.Close()
	}
}

// ResetConnections aborts every client connection so the client sees a
// connection reset instead of a clean end-of-stream.
func (c *Controller) ResetConnections() {
	for _, conn := range c.takeConnections() {
		if tcp, ok := conn.(*net.TCPConn); ok {
			tcp.SetLinger(0)
		}
		conn.Close()
	}
}

// Close stops the fake controller and waits for its goroutines.
func (c *Controller) Close() {
	c.closeOnce.Do(func() {
		c.listener.Close()
		c.CloseConnections()
		c.wg.Wait()
	})
}

func (c *Controller) snapshot() []net.Conn {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]net.Conn(nil), c.connections...)
}

func (c *Controller) takeConnections() []net.Conn {
	c.mu.Lock()
	defer c.mu.Unlock()
	conns := c.connections
	c.connections = nil
	return conns
}
