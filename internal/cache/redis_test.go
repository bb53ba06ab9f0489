package cache

import (
	"context"
	"testing"
	"time"
)

func TestKey(t *testing.T) {
	tests := []struct {
		parts []any
		want  string
	}{
		{nil, "frenchify"},
		{[]any{"leaderboard", "top", 10}, "frenchify:leaderboard:top:10"},
		{[]any{"exams", "reading", "", 20, 0}, "frenchify:exams:reading::20:0"},
	}
	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			if got := Key(tt.parts...); got != tt.want {
				t.Fatalf("Key = %q, want %q", got, tt.want)
			}
		})
	}
}

// Sin InitRedis el cache queda apagado y todo es no-op.
func TestDisabledCache(t *testing.T) {
	ctx := context.Background()

	if err := SetJSON(ctx, Key("x"), map[string]int{"a": 1}, time.Minute); err != nil {
		t.Fatalf("SetJSON: %v", err)
	}
	var dest map[string]int
	ok, err := GetJSON(ctx, Key("x"), &dest)
	if err != nil || ok {
		t.Fatalf("GetJSON = %v, %v; want miss", ok, err)
	}
	if err := DeletePrefix(ctx, Key("exams")); err != nil {
		t.Fatalf("DeletePrefix: %v", err)
	}
	if err := Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
}
