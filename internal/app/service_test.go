package app

import (
	"context"
	"errors"
	"testing"
	"time"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/gigpulse/gigpulse/internal/adapters/settings"
	"github.com/gigpulse/gigpulse/internal/domain/hotspot"
	"github.com/gigpulse/gigpulse/internal/domain/ledger"
	"github.com/gigpulse/gigpulse/internal/domain/mileage"
	"github.com/gigpulse/gigpulse/internal/domain/model"
	"github.com/gigpulse/gigpulse/pkg/logger"
)

func TestMain(m *testing.M) {
	if err := logger.Init(); err != nil {
		panic(err)
	}
	m.Run()
}

func startedService(t *testing.T, opts ...Option) *Service {
	t.Helper()
	s := New(opts...)
	if err := s.Start(context.Background()); err != nil {
		t.Fatalf("start failed: %v", err)
	}
	t.Cleanup(s.Stop)
	return s
}

func TestService_Lifecycle(t *testing.T) {
	s := New()
	if err := s.Start(context.Background()); err != nil {
		t.Fatalf("start failed: %v", err)
	}
	// Second start is a no-op, second stop likewise.
	if err := s.Start(context.Background()); err != nil {
		t.Fatalf("restart failed: %v", err)
	}
	s.Stop()
	s.Stop()
}

func TestService_Hotspots(t *testing.T) {
	Convey("Given a started service", t, func() {
		s := startedService(t)

		Convey("adding a valid hotspot assigns identity and starts calm", func() {
			added, err := s.AddHotspot(model.Hotspot{
				Name: "Airport Lot", Lat: 37.62, Lng: -122.38, Platform: model.PlatformDoorDash,
			})
			So(err, ShouldBeNil)
			So(added.ID, ShouldNotBeEmpty)
			So(added.Busy, ShouldBeFalse)
			So(added.RadiusMeters, ShouldEqual, hotspot.DefaultRadiusMeters)
			So(s.Hotspots(), ShouldHaveLength, 1)
		})

		Convey("an invalid submission is rejected", func() {
			_, err := s.AddHotspot(model.Hotspot{Name: "", Lat: 0, Lng: 0, Platform: model.PlatformDoorDash})
			So(errors.Is(err, hotspot.ErrInvalidInput), ShouldBeTrue)
			So(s.Hotspots(), ShouldBeEmpty)
		})

		Convey("toggling an unknown id reports not found", func() {
			err := s.SetHotspotBusy("no-such-id", true)
			So(errors.Is(err, hotspot.ErrNotFound), ShouldBeTrue)
		})

		Convey("toggling a known id flips its busy-state", func() {
			added, err := s.AddHotspot(model.Hotspot{
				Name: "Downtown", Lat: 37.77, Lng: -122.41, Platform: model.PlatformUberEats,
			})
			So(err, ShouldBeNil)

			So(s.SetHotspotBusy(added.ID, true), ShouldBeNil)
			So(s.Hotspots()[0].Busy, ShouldBeTrue)
		})
	})
}

func TestService_Tracking(t *testing.T) {
	Convey("Given a started service", t, func() {
		s := startedService(t)

		Convey("stop without start is an error and records nothing", func() {
			_, err := s.StopTracking()
			So(errors.Is(err, mileage.ErrNoActiveSession), ShouldBeTrue)
			So(s.Trips(), ShouldBeEmpty)
		})

		Convey("a session accumulates fixes and closes into a trip", func() {
			miles := s.StartTracking()
			So(miles, ShouldEqual, 0)
			So(s.Tracking().Active, ShouldBeTrue)

			now := time.Now()
			s.ApplyFix(context.Background(), model.Fix{Lat: 37.0, Lng: -122.0, RecordedAt: now})
			s.ApplyFix(context.Background(), model.Fix{Lat: 37.01, Lng: -122.0, RecordedAt: now.Add(time.Minute)})

			status := s.Tracking()
			So(status.Miles, ShouldBeGreaterThan, 0)

			trip, err := s.StopTracking()
			So(err, ShouldBeNil)
			So(trip.Miles, ShouldAlmostEqual, status.Miles, 1e-9)
			So(s.Tracking().Active, ShouldBeFalse)
			So(s.Trips(), ShouldHaveLength, 1)
		})

		Convey("fixes with no active session are discarded", func() {
			s.ApplyFix(context.Background(), model.Fix{Lat: 37.0, Lng: -122.0, RecordedAt: time.Now()})
			So(s.Tracking().Miles, ShouldEqual, 0)
		})

		Convey("fixes with out-of-range coordinates are dropped", func() {
			s.StartTracking()
			s.ApplyFix(context.Background(), model.Fix{Lat: 95, Lng: 0, RecordedAt: time.Now()})
			So(s.Tracking().Miles, ShouldEqual, 0)
		})
	})
}

func TestService_LedgerAndSnapshot(t *testing.T) {
	Convey("Given a started service with default settings", t, func() {
		s := startedService(t)

		Convey("a non-positive earning is rejected", func() {
			_, err := s.AddEarning(model.Earning{Platform: model.PlatformDoorDash, Amount: 0})
			So(errors.Is(err, ledger.ErrNonPositiveAmount), ShouldBeTrue)
			So(s.Earnings(), ShouldBeEmpty)
		})

		Convey("snapshot derives from earnings, trips, and settings", func() {
			_, err := s.AddEarning(model.Earning{Platform: model.PlatformDoorDash, Amount: 120.50})
			So(err, ShouldBeNil)
			_, err = s.AddEarning(model.Earning{Platform: model.PlatformUberEats, Amount: 79.50})
			So(err, ShouldBeNil)

			s.UpdateSettings(context.Background(), settings.Values{MPG: 25, FuelPrice: 4.00})

			s.StartTracking()
			now := time.Now()
			s.ApplyFix(context.Background(), model.Fix{Lat: 37.0, Lng: -122.0, RecordedAt: now})
			s.ApplyFix(context.Background(), model.Fix{Lat: 37.0, Lng: -122.0, RecordedAt: now.Add(time.Minute)})
			_, err = s.StopTracking()
			So(err, ShouldBeNil)

			snap := s.Snapshot()
			So(snap.Gross, ShouldAlmostEqual, 200.00, 1e-9)
			So(snap.FuelCost, ShouldAlmostEqual, (snap.Miles/25)*4.00, 1e-9)
			So(snap.Net, ShouldAlmostEqual, snap.Gross-snap.FuelCost, 1e-9)
		})

		Convey("a live session does not contribute miles until stopped", func() {
			s.StartTracking()
			now := time.Now()
			s.ApplyFix(context.Background(), model.Fix{Lat: 37.0, Lng: -122.0, RecordedAt: now})
			s.ApplyFix(context.Background(), model.Fix{Lat: 37.05, Lng: -122.0, RecordedAt: now.Add(time.Minute)})

			So(s.Snapshot().Miles, ShouldEqual, 0)
		})
	})
}

func TestService_Notifications(t *testing.T) {
	Convey("Given a started service with hotspots on two platforms", t, func() {
		s := startedService(t)
		dd, err := s.AddHotspot(model.Hotspot{Name: "Mall", Lat: 37.3, Lng: -121.9, Platform: model.PlatformDoorDash})
		So(err, ShouldBeNil)
		ue, err := s.AddHotspot(model.Hotspot{Name: "Campus", Lat: 37.4, Lng: -122.1, Platform: model.PlatformUberEats})
		So(err, ShouldBeNil)

		findBusy := func(id string) bool {
			for _, h := range s.Hotspots() {
				if h.ID == id {
					return h.Busy
				}
			}
			t.Fatalf("hotspot %s missing", id)
			return false
		}

		Convey("a busy notification flips only its platform", func() {
			s.ApplyNotification(context.Background(), model.Notification{
				SourceApp: "com.doordash.driverapp", Title: "Peak Pay", Body: "It's very busy near you",
			})
			So(findBusy(dd.ID), ShouldBeTrue)
			So(findBusy(ue.ID), ShouldBeFalse)
		})

		Convey("a calm notification clears the platform", func() {
			s.ApplyNotification(context.Background(), model.Notification{
				SourceApp: "com.doordash.driverapp", Title: "Peak Pay", Body: "surge now",
			})
			s.ApplyNotification(context.Background(), model.Notification{
				SourceApp: "com.doordash.driverapp", Title: "Update", Body: "Thanks for dashing today",
			})
			So(findBusy(dd.ID), ShouldBeFalse)
		})

		Convey("a notification from an unrelated app changes nothing", func() {
			s.ApplyNotification(context.Background(), model.Notification{
				SourceApp: "com.example.mail", Title: "busy", Body: "busy busy busy",
			})
			So(findBusy(dd.ID), ShouldBeFalse)
			So(findBusy(ue.ID), ShouldBeFalse)
		})
	})
}

func TestService_Settings(t *testing.T) {
	store := settings.NewMemoryStore()
	s := startedService(t, WithSettingsStore(store))

	if got := s.Settings(); got != settings.Defaults() {
		t.Fatalf("settings = %+v, want defaults", got)
	}

	want := settings.Values{MPG: 30, FuelPrice: 3.50, SMSConfig: "+15550001111"}
	s.UpdateSettings(context.Background(), want)

	if got := s.Settings(); got != want {
		t.Fatalf("settings = %+v, want %+v", got, want)
	}

	// Persistence is fire-and-forget; poll briefly for the async save.
	deadline := time.Now().Add(2 * time.Second)
	for {
		saved, err := store.Load(context.Background())
		if err == nil && saved == want {
			break
		}
		if time.Now().After(deadline) {
			t.Fatalf("saved settings = %+v, want %+v", saved, want)
		}
		time.Sleep(10 * time.Millisecond)
	}
}

func TestService_EnqueuePipeline(t *testing.T) {
	progress := make(chan Progress, 16)
	s := startedService(t, WithProgressSink(func(p Progress) {
		select {
		case progress <- p:
		default:
		}
	}))

	s.StartTracking()
	now := time.Now()
	if !s.EnqueueFix(context.Background(), model.Fix{Lat: 37.0, Lng: -122.0, RecordedAt: now}) {
		t.Fatal("enqueue refused")
	}
	if !s.EnqueueFix(context.Background(), model.Fix{Lat: 37.01, Lng: -122.0, RecordedAt: now.Add(time.Minute)}) {
		t.Fatal("enqueue refused")
	}

	var last Progress
	for i := 0; i < 2; i++ {
		select {
		case last = <-progress:
		case <-time.After(2 * time.Second):
			t.Fatal("timed out waiting for progress")
		}
	}
	if !last.Active {
		t.Error("progress should report an active session")
	}
	if last.Miles <= 0 {
		t.Errorf("miles = %v, want > 0", last.Miles)
	}

	if !s.EnqueueNotification(context.Background(), model.Notification{
		SourceApp: "com.ubercab.eats", Title: "Boost", Body: "surge in your area",
	}) {
		t.Fatal("enqueue refused")
	}
}

func TestService_Stats(t *testing.T) {
	s := startedService(t)
	if _, err := s.AddHotspot(model.Hotspot{Name: "Pier", Lat: 36.6, Lng: -121.9, Platform: model.PlatformDoorDash}); err != nil {
		t.Fatal(err)
	}

	stats := s.Stats(context.Background())
	if stats["hotspots"] != 1 {
		t.Errorf("hotspots = %v, want 1", stats["hotspots"])
	}
	if stats["started"] != true {
		t.Error("expected started=true")
	}
}
