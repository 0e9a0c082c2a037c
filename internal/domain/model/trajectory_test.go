package model_test

import (
	"testing"

	model "github.com/okian/geoplot/internal/domain/model"
	"github.com/smartystreets/goconvey/convey"
)

func TestTrajectory(t *testing.T) {
	convey.Convey("Given a trajectory with uneven episodes", t, func() {
		traj := model.Trajectory{
			{{"a": 1}, {"a": 2}},
			{{"a": 3}},
			{},
		}

		convey.Convey("Then Steps should count every snapshot", func() {
			convey.So(traj.Steps(), convey.ShouldEqual, 3)
		})
	})

	convey.Convey("Given an empty trajectory", t, func() {
		convey.So(model.Trajectory(nil).Steps(), convey.ShouldEqual, 0)
	})
}

func TestParseMode(t *testing.T) {
	convey.Convey("Given visualization mode strings", t, func() {
		convey.Convey("When the mode is color or size", func() {
			m, ok := model.ParseMode("color")
			convey.So(ok, convey.ShouldBeTrue)
			convey.So(m, convey.ShouldEqual, model.ModeColor)

			m, ok = model.ParseMode(" Size ")
			convey.So(ok, convey.ShouldBeTrue)
			convey.So(m, convey.ShouldEqual, model.ModeSize)
		})

		convey.Convey("When the mode is unknown or empty", func() {
			_, ok := model.ParseMode("heat")
			convey.So(ok, convey.ShouldBeFalse)

			_, ok = model.ParseMode("")
			convey.So(ok, convey.ShouldBeFalse)
		})
	})
}

func TestSimulationMetadata(t *testing.T) {
	convey.Convey("Given simulation metadata", t, func() {
		md := model.SimulationMetadata{Name: "sim", NumEpisodes: 3, NumStepsPerEpisode: 4}

		convey.Convey("Then Slots should be episodes times steps", func() {
			convey.So(md.Slots(), convey.ShouldEqual, 12)
		})
	})
}
