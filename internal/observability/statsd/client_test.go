package statsd

import (
	"net"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// pipeClient returns a client writing into one end of a pipe plus a channel
// of the datagrams read from the other end.
func pipeClient(t *testing.T, cfg Config) (*Client, <-chan string) {
	t.Helper()
	clientConn, peerConn := net.Pipe()
	t.Cleanup(func() { _ = peerConn.Close() })

	got := make(chan string, 16)
	go func() {
		buf := make([]byte, 4096)
		for {
			n, err := peerConn.Read(buf)
			if err != nil {
				close(got)
				return
			}
			got <- string(buf[:n])
		}
	}()
	return newClient(clientConn, cfg), got
}

func TestMetricName(t *testing.T) {
	c := newClient(nil, Config{Prefix: " .shopadmin. "})
	tests := map[string]string{
		"cache.fetch":        "shopadmin.cache.fetch",
		" cache/fetch ":      "shopadmin.cache_fetch",
		"foo..bar":           "shopadmin.foo.bar",
		"products/{id}/edit": "shopadmin.products_{id}_edit",
		"a:b|c":              "shopadmin.a_b_c",
		"":                   "",
		"..":                 "",
	}
	for in, want := range tests {
		assert.Equal(t, want, c.metricName(in), in)
	}

	bare := newClient(nil, Config{})
	assert.Equal(t, "http.request", bare.metricName("http.request"))
}

func TestFormatTags(t *testing.T) {
	global := map[string]string{"env": "prod", " service ": " shopadmin "}
	local := map[string]string{"result": " success ", "": "ignored", "env": "stage"}

	assert.Equal(t, "|#env:stage,result:success,service:shopadmin", formatTags(global, local))
	assert.Empty(t, formatTags(nil, nil))
}

func TestClientBatchesUntilFlush(t *testing.T) {
	c, got := pipeClient(t, Config{Prefix: "shopadmin", GlobalTags: map[string]string{"env": "test"}})

	c.Count("cache.fetch", 1, map[string]string{"resource": "products"})
	c.Gauge("sessions.active", 3, nil)
	c.Timing("http.request", 1500*time.Microsecond, nil)
	c.Flush()

	packet := <-got
	assert.Equal(t, strings.Join([]string{
		"shopadmin.cache.fetch:1|c|#env:test,resource:products",
		"shopadmin.sessions.active:3|g|#env:test",
		"shopadmin.http.request:1.5|ms|#env:test",
	}, "\n"), packet)
}

func TestClientSplitsAtPacketSize(t *testing.T) {
	c, got := pipeClient(t, Config{MaxPacketSize: 40})

	c.Count("aaaaaaaaaaaaaaaa", 1, nil) // 20 bytes
	c.Count("bbbbbbbbbbbbbbbb", 1, nil) // would make 41
	c.Flush()

	assert.Equal(t, "aaaaaaaaaaaaaaaa:1|c", <-got)
	assert.Equal(t, "bbbbbbbbbbbbbbbb:1|c", <-got)
}

func TestClientCloseFlushes(t *testing.T) {
	c, got := pipeClient(t, Config{})
	c.Count("logins", 2, nil)

	done := make(chan error, 1)
	go func() { done <- c.Close() }()
	assert.Equal(t, "logins:2|c", <-got)
	require.NoError(t, <-done)

	assert.False(t, c.Enabled())
	require.NoError(t, c.Close())
	// Dropped silently once closed.
	c.Count("logins", 1, nil)
}

func TestNilClientIsSafe(t *testing.T) {
	var c *Client
	assert.False(t, c.Enabled())
	c.Count("x", 1, nil)
	c.Flush()
	require.NoError(t, c.Close())
}

func TestNewClientDisabled(t *testing.T) {
	c, err := NewClient(Config{Enabled: true, Address: "   "})
	require.NoError(t, err)
	assert.False(t, c.Enabled())
	require.NoError(t, c.Close())

	c, err = NewClient(Config{Address: "127.0.0.1:8125"})
	require.NoError(t, err)
	assert.False(t, c.Enabled())
}

func TestNewClientDialError(t *testing.T) {
	_, err := NewClient(Config{Enabled: true, Address: "bad address"})
	require.ErrorContains(t, err, "statsd dial")
}

func TestNewClientSendsOverUDP(t *testing.T) {
	pc, err := net.ListenPacket("udp", "127.0.0.1:0")
	require.NoError(t, err)
	defer pc.Close()

	c, err := NewClient(Config{Enabled: true, Address: pc.LocalAddr().String(), FlushInterval: 10 * time.Millisecond})
	require.NoError(t, err)
	defer c.Close()
	require.True(t, c.Enabled())

	c.Count("orders.status", 1, nil)

	require.NoError(t, pc.SetReadDeadline(time.Now().Add(2*time.Second)))
	buf := make([]byte, 512)
	n, _, err := pc.ReadFrom(buf)
	require.NoError(t, err)
	assert.Equal(t, "orders.status:1|c", string(buf[:n]))
}
