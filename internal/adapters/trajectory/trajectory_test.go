package trajectory_test

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/okian/geoplot/internal/adapters/trajectory"
	"github.com/okian/geoplot/internal/domain/field"
	"github.com/okian/geoplot/internal/domain/model"
	"github.com/okian/geoplot/internal/domain/reducer"
	. "github.com/smartystreets/goconvey/convey"
)

func fixture() model.Trajectory {
	snap := func(a, b float64) model.Snapshot {
		return model.Snapshot{
			"agents": map[string]any{
				"coordinates": []any{[]any{1.5, 2.5}, []any{3.5, 4.5}},
				"infected":    []any{a, b},
			},
		}
	}
	return model.Trajectory{
		{snap(0, 0), snap(10, 20)},
		{snap(30, 40)},
		{snap(50, 60)},
	}
}

func TestDetect(t *testing.T) {
	Convey("Given trajectory file names", t, func() {
		cases := []struct {
			path   string
			format trajectory.Format
			comp   trajectory.Compression
		}{
			{"run.json", trajectory.FormatJSON, trajectory.CompressionNone},
			{"dir/run.YAML", trajectory.FormatYAML, trajectory.CompressionNone},
			{"run.yml.gz", trajectory.FormatYAML, trajectory.CompressionGzip},
			{"run.msgpack.zst", trajectory.FormatMsgpack, trajectory.CompressionZstd},
			{"run.mpk", trajectory.FormatMsgpack, trajectory.CompressionNone},
		}

		Convey("Then format and compression come from the extensions", func() {
			for _, c := range cases {
				format, comp, err := trajectory.Detect(c.path)
				So(err, ShouldBeNil)
				So(format, ShouldEqual, c.format)
				So(comp, ShouldEqual, c.comp)
			}
		})

		Convey("Then unknown extensions are rejected", func() {
			for _, p := range []string{"run.csv", "run.gz", "run", "run.json.bz2"} {
				_, _, err := trajectory.Detect(p)
				So(errors.Is(err, trajectory.ErrUnsupportedFormat), ShouldBeTrue)
			}
		})
	})
}

func TestSaveLoad(t *testing.T) {
	Convey("Given a trajectory", t, func() {
		dir := t.TempDir()
		ctx := context.Background()
		traj := fixture()

		for _, name := range []string{
			"run.json", "run.json.gz", "run.yaml", "run.yml.zst", "run.msgpack", "run.mpk.gz", "run.msgpack.zst",
		} {
			Convey("When it is saved and loaded as "+name, func() {
				path := filepath.Join(dir, name)
				So(trajectory.Save(ctx, path, traj), ShouldBeNil)
				loaded, err := trajectory.Load(ctx, path)
				So(err, ShouldBeNil)

				Convey("Then the episode structure survives", func() {
					So(len(loaded), ShouldEqual, 3)
					So(len(loaded[0]), ShouldEqual, 2)
					So(loaded.Steps(), ShouldEqual, 4)
				})

				Convey("And the fields reduce to the same values", func() {
					red, err := reducer.Reduce(loaded, "agents/coordinates", "agents/infected")
					So(err, ShouldBeNil)
					So(red.Positions, ShouldResemble, []model.LatLon{{Lat: 1.5, Lon: 2.5}, {Lat: 3.5, Lon: 4.5}})
					So(red.Features, ShouldResemble, [][]float64{{10, 20}, {30, 40}})
				})
			})
		}
	})
}

func TestLoadErrors(t *testing.T) {
	Convey("Given bad trajectory files", t, func() {
		dir := t.TempDir()
		ctx := context.Background()

		Convey("When the file does not exist", func() {
			_, err := trajectory.Load(ctx, filepath.Join(dir, "missing.json"))
			So(errors.Is(err, os.ErrNotExist), ShouldBeTrue)
		})

		Convey("When the content does not match the extension", func() {
			path := filepath.Join(dir, "bad.json")
			So(os.WriteFile(path, []byte("{not json"), 0o600), ShouldBeNil)
			_, err := trajectory.Load(ctx, path)
			So(errors.Is(err, trajectory.ErrDecode), ShouldBeTrue)
		})

		Convey("When a gzip file is not compressed", func() {
			path := filepath.Join(dir, "plain.json.gz")
			So(os.WriteFile(path, []byte("[]"), 0o600), ShouldBeNil)
			_, err := trajectory.Load(ctx, path)
			So(errors.Is(err, trajectory.ErrDecode), ShouldBeTrue)
		})

		Convey("When the format is unsupported", func() {
			_, err := trajectory.Load(ctx, filepath.Join(dir, "run.csv"))
			So(errors.Is(err, trajectory.ErrUnsupportedFormat), ShouldBeTrue)
			So(errors.Is(trajectory.Save(ctx, filepath.Join(dir, "run.csv"), fixture()), trajectory.ErrUnsupportedFormat), ShouldBeTrue)
		})

		Convey("When the context is cancelled", func() {
			cctx, cancel := context.WithCancel(ctx)
			cancel()
			_, err := trajectory.Load(cctx, filepath.Join(dir, "run.json"))
			So(errors.Is(err, context.Canceled), ShouldBeTrue)
		})
	})
}

func TestYAMLIntegers(t *testing.T) {
	Convey("Given a hand-written YAML trajectory with integer values", t, func() {
		src := `
- - agents:
      coordinates: [[1, 2], [3, 4]]
      infected: [10, 20]
- - agents:
      coordinates: [[1, 2], [3, 4]]
      infected: [30, 40]
`
		traj, err := trajectory.Decode(bytes.NewBufferString(src), trajectory.FormatYAML, trajectory.CompressionNone)
		So(err, ShouldBeNil)

		Convey("Then the fields are still numeric", func() {
			v, err := field.Lookup(traj[0][0], "agents/infected/1")
			So(err, ShouldBeNil)
			f, err := field.Float(v)
			So(err, ShouldBeNil)
			So(f, ShouldEqual, 20.0)
		})
	})
}
