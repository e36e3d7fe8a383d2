package model_test

import (
	"context"
	"testing"

	"github.com/cockroachdb/errors"
	model "github.com/okian/blaugrana/internal/domain/model"
	"github.com/smartystreets/goconvey/convey"
)

func validSeason(id string) model.Season {
	return model.Season{
		ID:             id,
		DisplayName:    id,
		MatchesPlayed:  3,
		Wins:           2,
		Draws:          1,
		GoalsScored:    5,
		GoalsConceded:  2,
		GoalDifference: 3,
		CleanSheets:    1,
		WinPercentage:  66.7,
		Matches: []model.Match{
			{Date: "2009-05-27", Opponent: "Manchester United", HomeAway: model.VenueNeutral, GoalsScored: 2},
		},
		TopScorers: []model.PlayerStat{{Name: "Lionel Messi", Goals: 3, Minutes: 270}},
		Final:      model.FinalInfo{Date: "2009-05-27"},
	}
}

func validDataset() *model.Dataset {
	return &model.Dataset{
		Metadata: model.Metadata{Title: "Barça UCL Winning Campaigns"},
		Seasons:  []model.Season{validSeason("2008-09"), validSeason("2010-11")},
	}
}

func TestSeasonHelpers(t *testing.T) {
	convey.Convey("Given a season", t, func() {
		s := validSeason("2008-09")

		convey.Convey("Then TopScorer returns the first listed scorer", func() {
			top, ok := s.TopScorer()
			convey.So(ok, convey.ShouldBeTrue)
			convey.So(top.Name, convey.ShouldEqual, "Lionel Messi")
		})

		convey.Convey("And TopScorer reports absence on an empty list", func() {
			s.TopScorers = nil
			_, ok := s.TopScorer()
			convey.So(ok, convey.ShouldBeFalse)
		})

		convey.Convey("And HasPossession follows the nullable field", func() {
			convey.So(s.HasPossession(), convey.ShouldBeFalse)
			p := 63.0
			s.AvgPossession = &p
			convey.So(s.HasPossession(), convey.ShouldBeTrue)
		})

		convey.Convey("And TwoLegged needs both legs", func() {
			k := model.KnockoutRound{Round: "Quarter-final", Leg1: &model.Leg{Score: "4-0", Venue: "H"}}
			convey.So(k.TwoLegged(), convey.ShouldBeFalse)
			k.Leg2 = &model.Leg{Score: "1-1", Venue: "A"}
			convey.So(k.TwoLegged(), convey.ShouldBeTrue)
		})
	})
}

func TestValidator(t *testing.T) {
	convey.Convey("Given a dataset validator", t, func() {
		ctx := context.Background()
		v := model.NewValidator()

		convey.Convey("When the dataset is consistent", func() {
			convey.Convey("Then it validates", func() {
				convey.So(v.Validate(ctx, validDataset()), convey.ShouldBeNil)
			})
		})

		convey.Convey("When wins+draws+losses differs from matches played", func() {
			ds := validDataset()
			ds.Seasons[1].Losses = 1

			err := v.Validate(ctx, ds)

			convey.Convey("Then the record invariant is reported", func() {
				convey.So(errors.Is(err, model.ErrInvariant), convey.ShouldBeTrue)
				convey.So(err.Error(), convey.ShouldContainSubstring, "record_sum")
			})
		})

		convey.Convey("When goal difference disagrees with the goals", func() {
			ds := validDataset()
			ds.Seasons[0].GoalDifference = 4

			err := v.Validate(ctx, ds)

			convey.Convey("Then the goal difference invariant is reported", func() {
				convey.So(errors.Is(err, model.ErrInvariant), convey.ShouldBeTrue)
				convey.So(err.Error(), convey.ShouldContainSubstring, "goal_diff")
			})
		})

		convey.Convey("When two seasons share an id", func() {
			ds := validDataset()
			ds.Seasons[1].ID = ds.Seasons[0].ID

			err := v.Validate(ctx, ds)

			convey.Convey("Then uniqueness fails", func() {
				convey.So(errors.Is(err, model.ErrInvariant), convey.ShouldBeTrue)
				convey.So(err.Error(), convey.ShouldContainSubstring, "unique")
			})
		})

		convey.Convey("When a match has an unknown venue code", func() {
			ds := validDataset()
			ds.Seasons[0].Matches[0].HomeAway = "X"

			err := v.Validate(ctx, ds)

			convey.Convey("Then the oneof rule fails", func() {
				convey.So(errors.Is(err, model.ErrInvariant), convey.ShouldBeTrue)
				convey.So(err.Error(), convey.ShouldContainSubstring, "oneof")
			})
		})

		convey.Convey("When a match date is not ISO formatted", func() {
			ds := validDataset()
			ds.Seasons[0].Matches[0].Date = "27/05/2009"

			convey.So(errors.Is(v.Validate(ctx, ds), model.ErrInvariant), convey.ShouldBeTrue)
		})

		convey.Convey("When there are no seasons", func() {
			ds := validDataset()
			ds.Seasons = nil

			convey.So(errors.Is(v.Validate(ctx, ds), model.ErrInvariant), convey.ShouldBeTrue)
		})

		convey.Convey("When the dataset is nil", func() {
			convey.So(errors.Is(v.Validate(ctx, nil), model.ErrInvariant), convey.ShouldBeTrue)
		})
	})
}
