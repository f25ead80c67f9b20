package grading

import (
	"context"
	"sort"
	"strconv"
	"strings"

	"github.com/openlinalg/practice-server/internal/exercise"
)

// Response is a student submission. Widgets fill the fields relevant to
// their prompt kind; the grader reads only what the kind needs.
type Response struct {
	Raw            string   `json:"raw,omitempty"`             // free text
	X              string   `json:"x,omitempty"`               // vector coordinate inputs
	Y              string   `json:"y,omitempty"`               //
	Point          []int    `json:"point,omitempty"`           // plotted grid point [x,y]
	SelectedOption string   `json:"selected_option,omitempty"` // choice id
	SelectedIDs    []string `json:"selected_ids,omitempty"`    // equal-vectors picks
}

// Strategy grades one submission against the expected solution.
type Strategy interface {
	Grade(ctx context.Context, sol exercise.Solution, resp Response) (bool, error)
}

// Grader routes by prompt kind to the correct Strategy.
type Grader interface {
	Grade(ctx context.Context, p exercise.Prompt, sol exercise.Solution, resp Response) (bool, error)
}

type defaultGrader struct {
	strategies map[string]Strategy
	fallback   Strategy
}

// Grade dispatches in fixed priority: a prompt kind with a registered
// strategy wins, anything else is compared as normalized free text.
func (g *defaultGrader) Grade(ctx context.Context, p exercise.Prompt, sol exercise.Solution, resp Response) (bool, error) {
	if s, ok := g.strategies[p.Kind()]; ok {
		return s.Grade(ctx, sol, resp)
	}
	return g.fallback.Grade(ctx, sol, resp)
}

// NewDefaultGrader installs the built-in strategies.
func NewDefaultGrader() Grader {
	return &defaultGrader{
		strategies: map[string]Strategy{
			exercise.KindEqualVectorsPick:  equalVectorsStrategy{},
			exercise.KindMultipleChoice:    choiceStrategy{},
			exercise.KindSingleChoice:      choiceStrategy{},
			exercise.KindPointPlot:         pointStrategy{},
			exercise.KindVectorXYFromGraph: vectorStrategy{},
		},
		fallback: freeTextStrategy{},
	}
}

// --- Strategies ---

type equalVectorsStrategy struct{}

// Order-independent, cardinality-sensitive id-set comparison.
func (equalVectorsStrategy) Grade(_ context.Context, sol exercise.Solution, resp Response) (bool, error) {
	expected, ok := sol.(exercise.IDSetSolution)
	if !ok {
		return false, nil
	}
	actual := append([]string(nil), resp.SelectedIDs...)
	sort.Strings(actual)
	if len(actual) != len(expected.IDs) {
		return false, nil
	}
	for i := range actual {
		if actual[i] != expected.IDs[i] {
			return false, nil
		}
	}
	return true, nil
}

type choiceStrategy struct{}

func (choiceStrategy) Grade(_ context.Context, sol exercise.Solution, resp Response) (bool, error) {
	expected, ok := sol.(exercise.ChoiceSolution)
	if !ok {
		return false, nil
	}
	return resp.SelectedOption == expected.OptionID, nil
}

type pointStrategy struct{}

// Exact integer match on both coordinates; the widget only ever produces
// integer grid points.
func (pointStrategy) Grade(_ context.Context, sol exercise.Solution, resp Response) (bool, error) {
	expected, ok := sol.(exercise.XYSolution)
	if !ok {
		return false, nil
	}
	if len(resp.Point) != 2 {
		return false, nil
	}
	return float64(resp.Point[0]) == expected.X && float64(resp.Point[1]) == expected.Y, nil
}

type vectorStrategy struct{}

// Coordinates arrive as free-form strings; both must parse to finite
// numbers equal to the stored solution. No tolerance. Blank or
// non-numeric input is always incorrect, even against a zero solution;
// it never coerces to 0.
func (vectorStrategy) Grade(_ context.Context, sol exercise.Solution, resp Response) (bool, error) {
	expected, ok := sol.(exercise.XYSolution)
	if !ok {
		return false, nil
	}
	x, okX := parseFinite(resp.X)
	y, okY := parseFinite(resp.Y)
	return okX && okY && x == expected.X && y == expected.Y, nil
}

type freeTextStrategy struct{}

func (freeTextStrategy) Grade(_ context.Context, sol exercise.Solution, resp Response) (bool, error) {
	var expected any
	switch v := sol.(type) {
	case exercise.TextSolution:
		expected = v.Value
	case exercise.ChoiceSolution:
		expected = v.OptionID
	case exercise.XYSolution:
		expected = map[string]any{"x": v.X, "y": v.Y}
	case exercise.IDSetSolution:
		expected = v.IDs
	default:
		return false, nil
	}
	return Normalize(ParseInput(resp.Raw)) == Normalize(expected), nil
}

func parseFinite(s string) (float64, bool) {
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, false
	}
	return f, true
}

