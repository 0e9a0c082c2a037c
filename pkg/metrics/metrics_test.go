package metrics

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	. "github.com/smartystreets/goconvey/convey"
)

func TestMetricsOptions(t *testing.T) {
	Convey("Given metrics options", t, func() {
		Convey("When creating options", func() {
			namespaceOpt := WithNamespace("test-namespace")
			subsystemOpt := WithSubsystem("test-subsystem")
			histogramBucketsOpt := WithHistogramBuckets([]float64{0.1, 0.5, 1.0})
			constLabelsOpt := WithConstLabels(map[string]string{"simulation": "test"})

			Convey("Then they should be valid functions", func() {
				So(namespaceOpt, ShouldNotBeNil)
				So(subsystemOpt, ShouldNotBeNil)
				So(histogramBucketsOpt, ShouldNotBeNil)
				So(constLabelsOpt, ShouldNotBeNil)
			})
		})

		Convey("When applying empty values", func() {
			m := &Manager{namespace: "geoplot", subsystem: "render", histogramBuckets: []float64{1}}
			WithNamespace("")(m)
			WithSubsystem("")(m)
			WithHistogramBuckets(nil)(m)

			Convey("Then the defaults are kept", func() {
				So(m.namespace, ShouldEqual, "geoplot")
				So(m.subsystem, ShouldEqual, "render")
				So(m.histogramBuckets, ShouldResemble, []float64{1})
			})
		})
	})
}

func TestMetricsManager(t *testing.T) {
	Convey("Given a manager on its own registry", t, func() {
		registry := prometheus.NewRegistry()
		manager := NewManager(
			WithPrometheusRegistry(registry),
			WithConstLabels(map[string]string{"simulation": "covid"}),
		)

		Convey("When a render is recorded", func() {
			manager.RecordShape(12, 2, 2, 6)
			manager.RecordStage(StageReduce, 3*time.Millisecond)
			manager.RecordFeatures(4)
			manager.RecordOutput(OutputGeoJSON, 512)
			manager.RecordOutput(OutputHTML, 2048)
			manager.RecordRender(20 * time.Millisecond)
			manager.RecordError(StageBuild)

			families, err := registry.Gather()
			So(err, ShouldBeNil)

			byName := map[string]float64{}
			for _, mf := range families {
				for _, m := range mf.GetMetric() {
					switch {
					case m.GetCounter() != nil:
						byName[mf.GetName()] += m.GetCounter().GetValue()
					case m.GetGauge() != nil:
						byName[mf.GetName()] = m.GetGauge().GetValue()
					case m.GetHistogram() != nil:
						byName[mf.GetName()] += float64(m.GetHistogram().GetSampleCount())
					}
				}
			}

			Convey("Then the counters and gauges reflect it", func() {
				So(byName["geoplot_render_renders_total"], ShouldEqual, 1.0)
				So(byName["geoplot_render_errors_total"], ShouldEqual, 1.0)
				So(byName["geoplot_render_features_emitted_total"], ShouldEqual, 4.0)
				So(byName["geoplot_render_output_bytes_total"], ShouldEqual, 2560.0)
				So(byName["geoplot_render_entities"], ShouldEqual, 2.0)
				So(byName["geoplot_render_timestamp_slots"], ShouldEqual, 6.0)
				So(byName["geoplot_render_trajectory_steps"], ShouldEqual, 12.0)
				So(byName["geoplot_render_duration_milliseconds"], ShouldEqual, 1.0)
				So(byName["geoplot_render_stage_duration_milliseconds"], ShouldEqual, 1.0)
				So(byName["geoplot_render_last_success_unix"], ShouldBeGreaterThan, 0)
			})

			Convey("And a textfile dump contains them", func() {
				path := filepath.Join(t.TempDir(), "geoplot.prom")
				So(manager.WriteTextfile(path), ShouldBeNil)

				raw, err := os.ReadFile(path)
				So(err, ShouldBeNil)
				So(string(raw), ShouldContainSubstring, `geoplot_render_renders_total{simulation="covid"} 1`)
				So(string(raw), ShouldContainSubstring, `stage="build"`)
			})
		})
	})

	Convey("Given a manager on a registerer that cannot gather", t, func() {
		registry := prometheus.NewRegistry()
		manager := NewManager(WithPrometheusRegistry(prometheus.WrapRegistererWithPrefix("x_", registry)))

		Convey("Then WriteTextfile fails with ErrWriteTextfile", func() {
			err := manager.WriteTextfile(filepath.Join(t.TempDir(), "m.prom"))
			So(errors.Is(err, ErrWriteTextfile), ShouldBeTrue)
		})
	})

	Convey("Given the global manager", t, func() {
		So(Default(), ShouldNotBeNil)
		So(GetRegistry(), ShouldNotBeNil)
	})
}
