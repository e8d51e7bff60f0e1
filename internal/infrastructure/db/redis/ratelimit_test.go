package redis

import (
	"context"
	"testing"
	"time"
)

func TestNewWindowLimiter_Defaults(t *testing.T) {
	l := NewWindowLimiter(nil, 0, 0)
	if l.limit != defaultLimit || l.window != defaultWindow {
		t.Fatalf("expected defaults, got %d/%s", l.limit, l.window)
	}
}

func TestWindowLimiter_NilClientAllows(t *testing.T) {
	l := NewWindowLimiter(nil, 1, time.Second)
	ok, wait, err := l.Allow(context.Background(), "127.0.0.1")
	if err != nil || !ok || wait != 0 {
		t.Fatalf("expected pass-through, got %v %s %v", ok, wait, err)
	}
}

func TestParseAllowReply(t *testing.T) {
	tests := []struct {
		name    string
		reply   any
		allowed bool
		wait    time.Duration
		wantErr bool
	}{
		{"allowed", []any{int64(1), int64(59000)}, true, 59 * time.Second, false},
		{"denied", []any{int64(0), int64(1500)}, false, 1500 * time.Millisecond, false},
		{"no ttl", []any{int64(1), int64(-1)}, true, 0, false},
		{"wrong shape", []any{int64(1)}, false, 0, true},
		{"wrong types", []any{"1", "2"}, false, 0, true},
		{"not a list", "OK", false, 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			allowed, wait, err := parseAllowReply(tt.reply)
			if (err != nil) != tt.wantErr {
				t.Fatalf("unexpected error state: %v", err)
			}
			if allowed != tt.allowed || wait != tt.wait {
				t.Errorf("got %v/%s, want %v/%s", allowed, wait, tt.allowed, tt.wait)
			}
		})
	}
}
