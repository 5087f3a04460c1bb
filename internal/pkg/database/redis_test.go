package database

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
)

func TestNewRedis_EmptyURL(t *testing.T) {
	client, err := NewRedis(context.Background(), "")
	if err != nil || client != nil {
		t.Fatalf("expected nil client and no error, got %v %v", client, err)
	}
}

func TestNewRedis_Connects(t *testing.T) {
	mr := miniredis.RunT(t)

	client, err := NewRedis(context.Background(), "redis://"+mr.Addr()+"/0")
	if err != nil {
		t.Fatalf("expected connection, got %v", err)
	}
	defer CloseRedis(client)

	if err := client.Set(context.Background(), "k", "v", 0).Err(); err != nil {
		t.Fatalf("set: %v", err)
	}
	if got, _ := mr.Get("k"); got != "v" {
		t.Fatalf("expected v, got %q", got)
	}
}

func TestNewRedis_BadURL(t *testing.T) {
	if _, err := NewRedis(context.Background(), "://nope"); err == nil {
		t.Fatal("expected parse error")
	}
}
