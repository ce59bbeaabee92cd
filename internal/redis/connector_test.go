package redis

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/naitik09090/backend-games/internal/logger"
)

func TestOptions(t *testing.T) {
	tests := []struct {
		name     string
		opts     ConnectOptions
		wantAddr string
		wantDB   int
		wantPool int
		wantErr  bool
	}{
		{
			name:     "plain url",
			opts:     ConnectOptions{URL: "redis://localhost:6379/2"},
			wantAddr: "localhost:6379",
			wantDB:   2,
		},
		{
			name:     "pool size override",
			opts:     ConnectOptions{URL: "redis://cache:6380", PoolSize: 7},
			wantAddr: "cache:6380",
			wantPool: 7,
		},
		{name: "empty url", opts: ConnectOptions{}, wantErr: true},
		{name: "wrong scheme", opts: ConnectOptions{URL: "mongodb://localhost"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ro, err := tt.opts.Options()
			if (err != nil) != tt.wantErr {
				t.Fatalf("Options() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				return
			}
			if ro.Addr != tt.wantAddr {
				t.Errorf("Addr = %q, want %q", ro.Addr, tt.wantAddr)
			}
			if ro.DB != tt.wantDB {
				t.Errorf("DB = %d, want %d", ro.DB, tt.wantDB)
			}
			if tt.wantPool != 0 && ro.PoolSize != tt.wantPool {
				t.Errorf("PoolSize = %d, want %d", ro.PoolSize, tt.wantPool)
			}
		})
	}
}

func TestConnect(t *testing.T) {
	mr := miniredis.RunT(t)
	log := logger.New("error", false)

	client, err := Connect(context.Background(), ConnectOptions{URL: "redis://" + mr.Addr()}, log)
	if err != nil {
		t.Fatalf("Connect() error = %v", err)
	}
	defer client.Close()

	if err := client.Set(context.Background(), "k", "v", 0).Err(); err != nil {
		t.Errorf("Set() error = %v", err)
	}
}

func TestConnectUnreachable(t *testing.T) {
	mr := miniredis.RunT(t)
	addr := mr.Addr()
	mr.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 500*time.Millisecond)
	defer cancel()

	_, err := Connect(ctx, ConnectOptions{URL: "redis://" + addr, DialTimeout: 100 * time.Millisecond}, logger.New("error", false))
	if err == nil {
		t.Fatal("Connect() to a closed server should fail")
	}
}
