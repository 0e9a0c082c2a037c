package timeline_test

import (
	"errors"
	"math"
	"testing"
	"time"

	"github.com/okian/geoplot/internal/domain/timeline"
	. "github.com/smartystreets/goconvey/convey"
)

func TestGenerate(t *testing.T) {
	Convey("Given a start instant and an hourly step", t, func() {
		start := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
		step := time.Hour

		Convey("When generating ten timestamps", func() {
			ts, err := timeline.Generate(start, step, 10)

			Convey("Then they start at start and are spaced exactly by step", func() {
				So(err, ShouldBeNil)
				So(len(ts), ShouldEqual, 10)
				So(ts[0].Equal(start), ShouldBeTrue)
				for i := 0; i+1 < len(ts); i++ {
					So(ts[i+1].Sub(ts[i]), ShouldEqual, step)
				}
			})
		})

		Convey("When the start is not in UTC", func() {
			loc := time.FixedZone("X", 2*3600)
			ts, err := timeline.Generate(start.In(loc), step, 1)

			Convey("Then the instant is kept and normalized to UTC", func() {
				So(err, ShouldBeNil)
				So(ts[0].Equal(start), ShouldBeTrue)
				So(ts[0].Location(), ShouldEqual, time.UTC)
			})
		})

		Convey("When count is zero", func() {
			ts, err := timeline.Generate(start, step, 0)
			So(err, ShouldBeNil)
			So(ts, ShouldBeEmpty)
		})

		Convey("When the step or count is invalid", func() {
			_, err := timeline.Generate(start, 0, 3)
			So(errors.Is(err, timeline.ErrInvalidStep), ShouldBeTrue)

			_, err = timeline.Generate(start, step, -1)
			So(errors.Is(err, timeline.ErrInvalidCount), ShouldBeTrue)
		})

		Convey("When the sequence would outrun the time range", func() {
			ts, err := timeline.Generate(start, 24*time.Hour, 200000)

			Convey("Then it is rejected instead of wrapping around", func() {
				So(errors.Is(err, timeline.ErrInvalidCount), ShouldBeTrue)
				So(ts, ShouldBeNil)
				So(timeline.Fits(24*time.Hour, 200000), ShouldBeFalse)
			})
		})

		Convey("When the sequence ends just inside the time range", func() {
			count := int(time.Duration(math.MaxInt64)/(24*time.Hour)) + 1
			ts, err := timeline.Generate(start, 24*time.Hour, count)

			Convey("Then every instant is strictly later than the previous one", func() {
				So(err, ShouldBeNil)
				So(len(ts), ShouldEqual, count)
				ordered := true
				for i := 1; i < len(ts); i++ {
					ordered = ordered && ts[i].After(ts[i-1])
				}
				So(ordered, ShouldBeTrue)
			})
		})
	})
}

func TestFormat(t *testing.T) {
	Convey("Given instants in different zones", t, func() {
		ts := time.Date(2024, 3, 1, 12, 30, 5, 123456789, time.UTC)

		So(timeline.Format(ts), ShouldEqual, "2024-03-01T12:30:05.123456Z")
		So(timeline.Format(ts.In(time.FixedZone("X", -5*3600))), ShouldEqual, "2024-03-01T12:30:05.123456Z")
	})
}

func TestBoundsAndPairs(t *testing.T) {
	Convey("Given a timestamp sequence", t, func() {
		start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
		ts, _ := timeline.Generate(start, time.Minute, 4)

		first, last, ok := timeline.Bounds(ts)
		So(ok, ShouldBeTrue)
		So(first.Equal(start), ShouldBeTrue)
		So(last.Equal(start.Add(3*time.Minute)), ShouldBeTrue)

		_, _, ok = timeline.Bounds(nil)
		So(ok, ShouldBeFalse)
	})

	Convey("Given timestamp and vector counts that disagree", t, func() {
		So(timeline.Pairs(12, 2), ShouldEqual, 2)
		So(timeline.Pairs(1, 2), ShouldEqual, 1)
		So(timeline.Pairs(0, 5), ShouldEqual, 0)
	})
}

func TestStepFromSeconds(t *testing.T) {
	Convey("Given step intervals in seconds", t, func() {
		So(timeline.StepFromSeconds(3600), ShouldEqual, time.Hour)
		So(timeline.StepFromSeconds(0.5), ShouldEqual, 500*time.Millisecond)

		Convey("Then unusable values convert to zero", func() {
			for _, s := range []float64{0, -1, math.NaN(), math.Inf(1), math.Inf(-1), 1e-12, 1e10} {
				So(timeline.StepFromSeconds(s), ShouldEqual, time.Duration(0))
			}
		})
	})
}
