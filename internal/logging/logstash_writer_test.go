package logging

import (
	"bufio"
	"errors"
	"net"
	"testing"
	"time"
)

func TestNewLogstashWriterRequiresAddress(t *testing.T) {
	if _, err := NewLogstashWriter(Config{Addr: "  "}); !errors.Is(err, ErrEmptyAddress) {
		t.Fatalf("expected ErrEmptyAddress, got %v", err)
	}
}

func TestLogstashWriterForwardsLines(t *testing.T) {
	w, err := NewLogstashWriter(Config{Addr: "logstash:5000"})
	if err != nil {
		t.Fatalf("new writer: %v", err)
	}
	client, server := net.Pipe()
	defer server.Close()
	w.dial = func(network, addr string, timeout time.Duration) (net.Conn, error) {
		if network != "tcp" || addr != "logstash:5000" {
			t.Fatalf("unexpected dial %s %s", network, addr)
		}
		return client, nil
	}

	received := make(chan string, 1)
	go func() {
		line, _ := bufio.NewReader(server).ReadString('\n')
		received <- line
	}()

	n, err := w.Write([]byte(`{"msg":"checkin"}`))
	if err != nil || n != len(`{"msg":"checkin"}`) {
		t.Fatalf("write returned %d, %v", n, err)
	}
	select {
	case line := <-received:
		if line != "{\"msg\":\"checkin\"}\n" {
			t.Fatalf("unexpected line %q", line)
		}
	case <-time.After(time.Second):
		t.Fatalf("line was not forwarded")
	}
	if w.Dropped() != 0 {
		t.Fatalf("expected no drops, got %d", w.Dropped())
	}
}

func TestLogstashWriterDropsWhileUnreachable(t *testing.T) {
	w, err := NewLogstashWriter(Config{Addr: "logstash:5000", RetryInterval: time.Minute})
	if err != nil {
		t.Fatalf("new writer: %v", err)
	}
	now := time.Date(2026, 10, 18, 9, 0, 0, 0, time.UTC)
	w.now = func() time.Time { return now }
	dials := 0
	w.dial = func(string, string, time.Duration) (net.Conn, error) {
		dials++
		return nil, errors.New("connection refused")
	}

	for i := 0; i < 3; i++ {
		if _, err := w.Write([]byte("line")); err != nil {
			t.Fatalf("write must not surface network errors: %v", err)
		}
	}
	if dials != 1 {
		t.Fatalf("expected one dial inside the retry window, got %d", dials)
	}
	if w.Dropped() != 3 {
		t.Fatalf("expected 3 dropped lines, got %d", w.Dropped())
	}

	now = now.Add(time.Minute)
	_, _ = w.Write([]byte("line"))
	if dials != 2 {
		t.Fatalf("expected a redial after the retry window, got %d", dials)
	}
}

func TestLogstashWriterClosed(t *testing.T) {
	w, err := NewLogstashWriter(Config{Addr: "logstash:5000"})
	if err != nil {
		t.Fatalf("new writer: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}
	if _, err := w.Write([]byte("late")); err == nil {
		t.Fatalf("expected write after close to fail")
	}
}

func TestMirrorWithoutAddressIsStderrOnly(t *testing.T) {
	out, closer, err := Mirror(Config{})
	if err != nil {
		t.Fatalf("mirror: %v", err)
	}
	if out == nil || closer == nil {
		t.Fatalf("expected writer and closer")
	}
	if err := closer.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}
}
