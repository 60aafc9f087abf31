package logging

import (
	"errors"
	"io"
	"net"
	"os"
	"strings"
	"sync"
	"sync/atomic"
	"time"
)

var (
	ErrEmptyAddress = errors.New("logstash: empty address")
	errCoolingDown  = errors.New("logstash: waiting before reconnect")
)

// Config tunes the Logstash connection. Zero values fall back to defaults.
type Config struct {
	Addr          string
	DialTimeout   time.Duration
	WriteTimeout  time.Duration
	RetryInterval time.Duration
}

func (c Config) withDefaults() Config {
	if c.DialTimeout <= 0 {
		c.DialTimeout = 2 * time.Second
	}
	if c.WriteTimeout <= 0 {
		c.WriteTimeout = time.Second
	}
	if c.RetryInterval <= 0 {
		c.RetryInterval = 5 * time.Second
	}
	return c
}

// LogstashWriter forwards log lines to a Logstash TCP input. Lines written
// while Logstash is unreachable are counted and dropped; Write never returns
// a network error so the process log keeps flowing.
type LogstashWriter struct {
	cfg     Config
	dial    func(network, addr string, timeout time.Duration) (net.Conn, error)
	now     func() time.Time
	dropped atomic.Int64

	mu       sync.Mutex
	conn     net.Conn
	retryAt  time.Time
	shutdown bool
}

func NewLogstashWriter(cfg Config) (*LogstashWriter, error) {
	if strings.TrimSpace(cfg.Addr) == "" {
		return nil, ErrEmptyAddress
	}
	return &LogstashWriter{
		cfg:  cfg.withDefaults(),
		dial: net.DialTimeout,
		now:  time.Now,
	}, nil
}

// Mirror returns a writer for log.SetOutput that copies every line to both
// stderr and Logstash. With an empty address it returns stderr alone.
func Mirror(cfg Config) (io.Writer, io.Closer, error) {
	if strings.TrimSpace(cfg.Addr) == "" {
		return os.Stderr, nopCloser{}, nil
	}
	w, err := NewLogstashWriter(cfg)
	if err != nil {
		return nil, nil, err
	}
	return io.MultiWriter(os.Stderr, w), w, nil
}

// Dropped reports how many lines could not be delivered.
func (w *LogstashWriter) Dropped() int64 {
	return w.dropped.Load()
}

func (w *LogstashWriter) Write(p []byte) (int, error) {
	if len(p) == 0 {
		return 0, nil
	}
	line := make([]byte, len(p), len(p)+1)
	copy(line, p)
	if line[len(line)-1] != '\n' {
		line = append(line, '\n')
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	if w.shutdown {
		return 0, io.ErrClosedPipe
	}
	if err := w.connectLocked(); err != nil {
		w.dropped.Add(1)
		return len(p), nil
	}
	_ = w.conn.SetWriteDeadline(w.now().Add(w.cfg.WriteTimeout))
	if _, err := w.conn.Write(line); err != nil {
		w.dropConnLocked()
		w.retryAt = w.now().Add(w.cfg.RetryInterval)
		w.dropped.Add(1)
	}
	return len(p), nil
}

func (w *LogstashWriter) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.shutdown {
		return nil
	}
	w.shutdown = true
	return w.dropConnLocked()
}

func (w *LogstashWriter) connectLocked() error {
	if w.conn != nil {
		return nil
	}
	if now := w.now(); !w.retryAt.IsZero() && now.Before(w.retryAt) {
		return errCoolingDown
	}
	conn, err := w.dial("tcp", w.cfg.Addr, w.cfg.DialTimeout)
	if err != nil {
		w.retryAt = w.now().Add(w.cfg.RetryInterval)
		return err
	}
	w.conn = conn
	w.retryAt = time.Time{}
	return nil
}

func (w *LogstashWriter) dropConnLocked() error {
	if w.conn == nil {
		return nil
	}
	err := w.conn.Close()
	w.conn = nil
	return err
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
