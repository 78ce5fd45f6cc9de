package server

import (
	"context"
	"net/http"
	"testing"
	"time"
)

func TestNormalizeAddr(t *testing.T) {
	cases := map[string]string{
		"":               "",
		"8080":           ":8080",
		":9090":          ":9090",
		" 7000 ":         ":7000",
		"127.0.0.1:8080": "127.0.0.1:8080",
	}
	for in, want := range cases {
		if got := normalizeAddr(in); got != want {
			t.Fatalf("normalizeAddr(%q) = %q; want %q", in, got, want)
		}
	}
}

func TestNew_AppliesDefaults(t *testing.T) {
	s := New(Config{WriteTimeout: time.Minute})
	if s.Addr() != ":"+DefaultPort {
		t.Fatalf("addr %q", s.Addr())
	}
	hs := newHTTPServer(s.Addr(), http.NotFoundHandler(), s.cfg)
	if hs.WriteTimeout != time.Minute || hs.ReadHeaderTimeout != readHeaderTimeout || hs.IdleTimeout != idleTimeout {
		t.Fatalf("unexpected timeouts: %+v", hs)
	}
}

func TestShutdown_BeforeRun(t *testing.T) {
	if err := New(Config{}).Shutdown(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}
