package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/cockroachdb/errors"
	. "github.com/smartystreets/goconvey/convey"

	"github.com/okian/blaugrana/internal/adapters/repository"
	service "github.com/okian/blaugrana/internal/app"
	"github.com/okian/blaugrana/internal/domain/crossseason"
	"github.com/okian/blaugrana/internal/domain/model"
	"github.com/okian/blaugrana/pkg/logger"
)

func init() {
	// Initialize logging for tests
	err := logger.Init()
	if err != nil {
		panic(err)
	}
}

func TestService_New(t *testing.T) {
	Convey("Given a new service with default options", t, func() {
		svc := service.New()

		Convey("Then it serves an empty dataset until started", func() {
			So(svc.Started(), ShouldBeFalse)
			So(svc.Count(context.Background()), ShouldEqual, 0)
			So(svc.MaxPlayerRows(), ShouldEqual, service.DefaultMaxPlayerRows)
		})
	})

	Convey("Given a new service with custom options", t, func() {
		svc := service.New(service.WithMaxPlayerRows(5), service.WithMaxPlayerRows(-1))

		Convey("Then valid options apply and invalid ones are ignored", func() {
			So(svc.MaxPlayerRows(), ShouldEqual, 5)
		})
	})
}

func TestService_Start(t *testing.T) {
	Convey("Given a new service", t, func() {
		svc := service.New()
		defer svc.Stop()

		Convey("When starting the service", func() {
			ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			err := svc.Start(ctx)

			Convey("Then it should start successfully", func() {
				So(err, ShouldBeNil)
				So(svc.Count(ctx), ShouldEqual, 5)
			})

			Convey("And the embedded dataset shows no drift", func() {
				So(svc.Drift(), ShouldBeEmpty)
			})

			Convey("And it should be marked as started", func() {
				stats := svc.GetStats()
				So(stats["started"], ShouldEqual, true)
				So(stats["seasons"], ShouldEqual, 5)
				So(stats["drift"], ShouldBeEmpty)
			})

			Convey("And starting again is a no-op", func() {
				So(svc.Start(ctx), ShouldBeNil)
			})
		})
	})

	Convey("Given a service pointed at a missing dataset file", t, func() {
		svc := service.New(service.WithDatasetPath("/nonexistent/campaigns.json"))

		Convey("Then Start fails and the service stays stopped", func() {
			err := svc.Start(context.Background())
			So(errors.Is(err, repository.ErrReadDataset), ShouldBeTrue)
			So(svc.Started(), ShouldBeFalse)
		})
	})

	Convey("Given a store whose stored metrics disagree", t, func() {
		season := model.Season{
			ID: "x", DisplayName: "x", MatchesPlayed: 2, Wins: 2,
			GoalsScored: 4, GoalDifference: 4, CleanSheets: 2, WinPercentage: 100,
			TopScorers: []model.PlayerStat{{Name: "A", Goals: 4}},
		}
		row := crossseason.Compare(season)
		row.DominanceIndex = 10
		ds := &model.Dataset{
			Seasons: []model.Season{season},
			CrossSeason: model.CrossSeason{
				Comparison:   []model.CrossSeasonComparison{row},
				CommonTraits: crossseason.Traits([]model.Season{season}),
			},
		}
		svc := service.New(service.WithStore(repository.NewMemStore(ds)))
		defer svc.Stop()

		Convey("Then Start reports the drift without failing", func() {
			So(svc.Start(context.Background()), ShouldBeNil)
			So(svc.Drift(), ShouldHaveLength, 1)
			So(svc.Drift()[0].Field, ShouldEqual, "dominance_index")
			So(svc.GetStats()["drift"], ShouldHaveLength, 1)
		})
	})
}

func TestService_Stop(t *testing.T) {
	Convey("Given a started service", t, func() {
		svc := service.New()
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		So(svc.Start(ctx), ShouldBeNil)

		Convey("When stopping the service", func() {
			svc.Stop()

			Convey("Then it should be marked as stopped", func() {
				So(svc.GetStats()["started"], ShouldEqual, false)
			})

			Convey("And stopping twice is safe", func() {
				So(func() { svc.Stop() }, ShouldNotPanic)
			})
		})
	})
}
