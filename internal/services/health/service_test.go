package health

import (
	"context"
	"errors"
	"testing"
)

type pingerFunc func(ctx context.Context) error

func (f pingerFunc) PingContext(ctx context.Context) error { return f(ctx) }

func TestStatus(t *testing.T) {
	tests := []struct {
		name   string
		db     Pinger
		wantOK bool
		wantDB string
	}{
		{name: "memory", db: nil, wantOK: true, wantDB: "memory"},
		{name: "up", db: pingerFunc(func(context.Context) error { return nil }), wantOK: true, wantDB: "up"},
		{name: "down", db: pingerFunc(func(context.Context) error { return errors.New("refused") }), wantOK: false, wantDB: "down"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			body, ok := NewService(tt.db).Status(context.Background())
			if ok != tt.wantOK || body["ok"] != tt.wantOK || body["database"] != tt.wantDB {
				t.Fatalf("unexpected status %v %v", ok, body)
			}
		})
	}
}
