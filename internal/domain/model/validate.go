package model

import (
	"context"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/go-playground/validator/v10"
)

// ErrInvariant marks a dataset that breaks a season invariant or a field rule.
var ErrInvariant = errors.New("dataset invariant violated")

// Validator checks decoded datasets.
type Validator struct {
	v *validator.Validate
}

// NewValidator returns a Validator with the season invariants registered.
func NewValidator() *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterStructValidation(seasonInvariants, Season{})
	return &Validator{v: v}
}

// Validate returns nil or an error marked ErrInvariant listing every failed rule.
func (val *Validator) Validate(ctx context.Context, ds *Dataset) error {
	if ds == nil {
		return errors.Mark(errors.New("nil dataset"), ErrInvariant)
	}
	err := val.v.StructCtx(ctx, ds)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return errors.Mark(errors.Wrap(err, "validate dataset"), ErrInvariant)
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msgs = append(msgs, fe.Namespace()+": "+fe.Tag())
	}
	return errors.Mark(errors.Newf("invalid dataset: %s", strings.Join(msgs, "; ")), ErrInvariant)
}

// seasonInvariants enforces wins+draws+losses == matches_played and
// goals_scored-goals_conceded == goal_difference.
func seasonInvariants(sl validator.StructLevel) {
	s, ok := sl.Current().Interface().(Season)
	if !ok {
		return
	}
	if s.Wins+s.Draws+s.Losses != s.MatchesPlayed {
		sl.ReportError(s.MatchesPlayed, "MatchesPlayed", "matches_played", "record_sum", "")
	}
	if s.GoalsScored-s.GoalsConceded != s.GoalDifference {
		sl.ReportError(s.GoalDifference, "GoalDifference", "goal_difference", "goal_diff", "")
	}
}
