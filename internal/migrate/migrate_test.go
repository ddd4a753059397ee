package migrate

import (
	"context"
	"testing"
	"time"
)

func TestUp_UnreachableDatabase(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if _, err := Up(ctx, "postgres://u:p@127.0.0.1:1/proglo?sslmode=disable&connect_timeout=1"); err == nil {
		t.Fatalf("want error for unreachable database")
	}
}
