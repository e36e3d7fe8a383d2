package metrics

import (
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	. "github.com/smartystreets/goconvey/convey"
)

func TestMetricsOptions(t *testing.T) {
	Convey("Given a manager built with options", t, func() {
		registry := prometheus.NewRegistry()
		m := NewManager(
			WithNamespace("test_ns"),
			WithSubsystem("test_sub"),
			WithHistogramBuckets([]float64{0.1, 0.5, 1.0}),
			WithMetricsEnabled(false),
			WithRefreshInterval(5*time.Second),
			WithCustomLabels(map[string]string{"env": "test"}),
			WithPrometheusRegistry(registry),
		)

		Convey("Then the options are applied", func() {
			So(m.namespace, ShouldEqual, "test_ns")
			So(m.subsystem, ShouldEqual, "test_sub")
			So(m.histogramBuckets, ShouldResemble, []float64{0.1, 0.5, 1.0})
			So(m.Enabled(), ShouldBeFalse)
			So(m.RefreshInterval(), ShouldEqual, 5*time.Second)
		})

		Convey("And metrics are registered on the given registry with const labels", func() {
			m.datasetSeasons.Set(5)
			families, err := registry.Gather()
			So(err, ShouldBeNil)

			var found bool
			for _, mf := range families {
				if mf.GetName() == "test_ns_test_sub_dataset_seasons" {
					found = true
					So(mf.GetMetric()[0].GetLabel()[0].GetName(), ShouldEqual, "env")
				}
			}
			So(found, ShouldBeTrue)
		})

		Convey("And empty option values keep defaults", func() {
			d := NewManager(
				WithNamespace(""),
				WithSubsystem(""),
				WithHistogramBuckets(nil),
				WithRefreshInterval(0),
				WithPrometheusRegistry(prometheus.NewRegistry()),
			)
			So(d.namespace, ShouldEqual, "blaugrana")
			So(d.subsystem, ShouldEqual, "dashboard")
			So(d.RefreshInterval(), ShouldEqual, defaultRefreshInterval)
		})
	})
}

func TestMetricsRecording(t *testing.T) {
	Convey("Given the global manager", t, func() {
		Convey("When dataset gauges are updated", func() {
			UpdateDatasetSeasons(5)
			UpdateDatasetDrift(0)
			UpdateDatasetLoadDuration(20 * time.Millisecond)

			Convey("Then the gauges hold the values", func() {
				So(testutil.ToFloat64(globalManager.datasetSeasons), ShouldEqual, 5)
				So(testutil.ToFloat64(globalManager.datasetDrift), ShouldEqual, 0)
				So(testutil.ToFloat64(globalManager.datasetLoadSeconds), ShouldAlmostEqual, 0.02, 1e-9)
			})
		})

		Convey("When season lookups are recorded", func() {
			hits := testutil.ToFloat64(globalManager.seasonLookups.WithLabelValues("hit"))
			misses := testutil.ToFloat64(globalManager.seasonLookups.WithLabelValues("miss"))
			RecordSeasonLookup(true)
			RecordSeasonLookup(false)
			RecordSeasonLookup(false)

			Convey("Then hits and misses are split", func() {
				So(testutil.ToFloat64(globalManager.seasonLookups.WithLabelValues("hit")), ShouldEqual, hits+1)
				So(testutil.ToFloat64(globalManager.seasonLookups.WithLabelValues("miss")), ShouldEqual, misses+2)
			})
		})

		Convey("When pages and charts are rendered", func() {
			before, err := Total("page_renders_total")
			So(err, ShouldBeNil)
			RecordPageRender("overview", 1.5)
			RecordPageRender("season", 2.5)
			RecordChartRender("bar", 0.7)
			RecordExportedFile()

			Convey("Then Total sums every label combination", func() {
				after, err := Total("page_renders_total")
				So(err, ShouldBeNil)
				So(after, ShouldEqual, before+2)
				So(testutil.ToFloat64(globalManager.chartRenders.WithLabelValues("bar")), ShouldBeGreaterThanOrEqualTo, 1)
			})
		})

		Convey("When an unknown family is requested", func() {
			v, err := Total("does_not_exist")

			Convey("Then zero is returned without error", func() {
				So(err, ShouldBeNil)
				So(v, ShouldEqual, 0)
			})
		})

		Convey("When http, error and system metrics are recorded", func() {
			So(func() {
				RecordHTTPRequest("overview", "GET", "200")
				RecordHTTPRequestDuration("overview", "GET", "200", 3)
				RecordErrorByComponent("site", "render")
				RecordErrorByType("not_found", "medium")
				RecordErrorByEndpoint("season", "GET", "not_found")
				RecordErrorLatency("http", "not_found", 1)
				RecordRepositoryQueryLatency(0.01)
				UpdateSystemMemoryUsage(1024)
				UpdateSystemGoroutineCount(12)
				RecordSystemGCPauseTime(0.2)
			}, ShouldNotPanic)

			Convey("Then they are exposed by the registry", func() {
				out, err := testutil.CollectAndLint(globalManager.httpRequests)
				So(err, ShouldBeNil)
				So(out, ShouldBeEmpty)
				So(testutil.ToFloat64(globalManager.systemGoroutineCount), ShouldEqual, 12)
			})
		})
	})
}

func TestGetRegistry(t *testing.T) {
	Convey("Given the custom registry", t, func() {
		UpdateDatasetSeasons(5)
		families, err := GetRegistry().Gather()

		Convey("Then it only carries blaugrana metrics", func() {
			So(err, ShouldBeNil)
			So(len(families), ShouldBeGreaterThan, 0)
			for _, mf := range families {
				So(strings.HasPrefix(mf.GetName(), "blaugrana_dashboard_"), ShouldBeTrue)
			}
		})
	})
}

func TestErrors(t *testing.T) {
	Convey("ErrGather is defined", t, func() {
		So(ErrGather, ShouldNotBeNil)
		So(ErrGather.Error(), ShouldEqual, "metrics gather failed")
	})
}
