package settings

import (
	"context"
	"testing"
)

func TestDefaults(t *testing.T) {
	v := Defaults()
	if v.MPG != 24.0 {
		t.Errorf("default mpg = %v, want 24.0", v.MPG)
	}
	if v.FuelPrice != 4.79 {
		t.Errorf("default fuel price = %v, want 4.79", v.FuelPrice)
	}
	if v.SMSConfig != "" {
		t.Errorf("default sms config = %q, want empty", v.SMSConfig)
	}
}

func TestMemoryStore_RoundTrip(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	v, err := s.Load(ctx)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if v != Defaults() {
		t.Errorf("fresh store should load defaults, got %+v", v)
	}

	want := Values{MPG: 30, FuelPrice: 3.50, SMSConfig: "carrier:+15551234567"}
	if err := s.Save(ctx, want); err != nil {
		t.Fatalf("save failed: %v", err)
	}
	got, err := s.Load(ctx)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if got != want {
		t.Errorf("loaded %+v, want %+v", got, want)
	}
}
