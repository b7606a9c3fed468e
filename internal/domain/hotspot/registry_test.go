package hotspot_test

import (
	"errors"
	"testing"

	"github.com/gigpulse/gigpulse/internal/domain/hotspot"
	"github.com/gigpulse/gigpulse/internal/domain/model"
	. "github.com/smartystreets/goconvey/convey"
)

func TestRegistry_Add(t *testing.T) {
	Convey("Given an empty registry", t, func() {
		r := hotspot.NewRegistry()

		Convey("Adding a valid hotspot assigns identity and defaults", func() {
			h, err := r.Add(model.Hotspot{
				Name:     "Downtown",
				Lat:      36.2077,
				Lng:      -119.3473,
				Platform: model.PlatformDoorDash,
				Busy:     true, // ignored; new hotspots start calm
			})
			So(err, ShouldBeNil)
			So(h.ID, ShouldNotBeEmpty)
			So(h.RadiusMeters, ShouldEqual, hotspot.DefaultRadiusMeters)
			So(h.Busy, ShouldBeFalse)
			So(r.Count(), ShouldEqual, 1)
		})

		Convey("Invalid submissions are rejected and leave the registry unchanged", func() {
			cases := []model.Hotspot{
				{Name: "", Lat: 36.2, Lng: -119.3, Platform: "DoorDash"},
				{Name: "x", Lat: 36.2, Lng: -119.3, Platform: ""},
				{Name: "x", Lat: 91, Lng: 0, Platform: "DoorDash"},
				{Name: "x", Lat: 0, Lng: -200, Platform: "DoorDash"},
				{Name: "x", Lat: 36.2, Lng: -119.3, Platform: "DoorDash", RadiusMeters: -1},
			}
			for _, c := range cases {
				_, err := r.Add(c)
				So(errors.Is(err, hotspot.ErrInvalidInput), ShouldBeTrue)
			}
			So(r.Count(), ShouldEqual, 0)
		})

		Convey("List preserves insertion order", func() {
			first, _ := r.Add(model.Hotspot{Name: "A", Lat: 1, Lng: 1, Platform: "DoorDash"})
			second, _ := r.Add(model.Hotspot{Name: "B", Lat: 2, Lng: 2, Platform: "UberEats"})

			got := r.List()
			So(len(got), ShouldEqual, 2)
			So(got[0].ID, ShouldEqual, first.ID)
			So(got[1].ID, ShouldEqual, second.ID)
		})
	})
}

func TestRegistry_Verdicts(t *testing.T) {
	Convey("Given a registry with hotspots on two platforms", t, func() {
		r := hotspot.NewRegistry()
		dd1, _ := r.Add(model.Hotspot{Name: "DD north", Lat: 1, Lng: 1, Platform: "DoorDash"})
		dd2, _ := r.Add(model.Hotspot{Name: "DD south", Lat: 2, Lng: 2, Platform: "doordash"})
		ue, _ := r.Add(model.Hotspot{Name: "UE east", Lat: 3, Lng: 3, Platform: "UberEats"})

		Convey("A DoorDash verdict touches every DoorDash hotspot and nothing else", func() {
			touched := r.ApplyPlatformVerdict(model.Verdict{Platform: model.PlatformDoorDash, Busy: true})
			So(touched, ShouldEqual, 2)

			byID := map[string]bool{}
			for _, h := range r.List() {
				byID[h.ID] = h.Busy
			}
			So(byID[dd1.ID], ShouldBeTrue)
			So(byID[dd2.ID], ShouldBeTrue)
			So(byID[ue.ID], ShouldBeFalse)
		})

		Convey("A calm verdict overwrites a previous busy verdict", func() {
			r.ApplyPlatformVerdict(model.Verdict{Platform: model.PlatformDoorDash, Busy: true})
			r.ApplyPlatformVerdict(model.Verdict{Platform: model.PlatformDoorDash, Busy: false})
			for _, h := range r.List() {
				So(h.Busy, ShouldBeFalse)
			}
		})

		Convey("SetBusy toggles a single hotspot", func() {
			So(r.SetBusy(ue.ID, true), ShouldBeNil)
			So(r.SetBusy(ue.ID, true), ShouldBeNil) // idempotent

			for _, h := range r.List() {
				So(h.Busy, ShouldEqual, h.ID == ue.ID)
			}
		})

		Convey("SetBusy on an unknown id reports not found", func() {
			err := r.SetBusy("missing", true)
			So(errors.Is(err, hotspot.ErrNotFound), ShouldBeTrue)
		})
	})
}
