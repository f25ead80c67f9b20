package exercise

import (
	"encoding/json"
	"sort"
)

// Prompt kinds. The kind tag inside the stored prompt JSON selects the
// rendering widget and the grading comparator.
const (
	KindVectorXYFromGraph = "vector_xy_from_graph"
	KindPointPlot         = "point_plot_from_coordinates"
	KindSingleChoice      = "single_choice"
	KindMultipleChoice    = "multiple_choice"
	KindEqualVectorsPick  = "equal_vectors_pick"
	KindShortAnswer       = "short_answer"
)

// Grid is the coordinate plane shown by the graph widgets.
type Grid struct {
	XMin float64 `json:"xMin"`
	XMax float64 `json:"xMax"`
	YMin float64 `json:"yMin"`
	YMax float64 `json:"yMax"`
	Step float64 `json:"step"`
}

// DefaultGrid is the ±10 square with step 1 used whenever bounds are absent.
func DefaultGrid() Grid {
	return Grid{XMin: -10, XMax: 10, YMin: -10, YMax: 10, Step: 1}
}

type ChoiceOption struct {
	ID   string `json:"id"`
	Text string `json:"text"`
}

// PlaneVector is one drawable vector of an equal_vectors_pick prompt.
type PlaneVector struct {
	ID    string     `json:"id"`
	Color string     `json:"color,omitempty"`
	Start [2]float64 `json:"start"`
	End   [2]float64 `json:"end"`
}

// Prompt is the tagged union of renderable question payloads.
type Prompt interface {
	Kind() string
	Question() string
}

// ShortAnswerPrompt is the generic free-text prompt. It is stored without a
// kind tag, matching the fallback shape graded by normalized comparison.
type ShortAnswerPrompt struct {
	QuestionText string `json:"question"`
}

func (ShortAnswerPrompt) Kind() string       { return KindShortAnswer }
func (p ShortAnswerPrompt) Question() string { return p.QuestionText }

type VectorPrompt struct {
	QuestionText string     `json:"question"`
	Grid         Grid       `json:"grid"`
	Origin       [2]float64 `json:"origin"`
	VectorEnd    [2]float64 `json:"vectorEnd"`
	ShowLabels   bool       `json:"showLabels"`
}

func (VectorPrompt) Kind() string       { return KindVectorXYFromGraph }
func (p VectorPrompt) Question() string { return p.QuestionText }

type PointPrompt struct {
	QuestionText string     `json:"question"`
	Grid         Grid       `json:"grid"`
	Target       [2]float64 `json:"target"`
	ShowLabels   bool       `json:"showLabels"`
}

func (PointPrompt) Kind() string       { return KindPointPlot }
func (p PointPrompt) Question() string { return p.QuestionText }

type ChoicePrompt struct {
	Multi        bool           `json:"-"`
	QuestionText string         `json:"question"`
	Options      []ChoiceOption `json:"options"`
}

func (p ChoicePrompt) Kind() string {
	if p.Multi {
		return KindMultipleChoice
	}
	return KindSingleChoice
}
func (p ChoicePrompt) Question() string { return p.QuestionText }

type EqualVectorsPrompt struct {
	QuestionText string        `json:"question"`
	Grid         Grid          `json:"grid"`
	Vectors      []PlaneVector `json:"vectors"`
}

func (EqualVectorsPrompt) Kind() string       { return KindEqualVectorsPick }
func (p EqualVectorsPrompt) Question() string { return p.QuestionText }

// EncodePrompt serializes a prompt with its kind tag. Short-answer prompts
// stay untagged.
func EncodePrompt(p Prompt) ([]byte, error) {
	switch v := p.(type) {
	case ShortAnswerPrompt:
		return json.Marshal(v)
	case VectorPrompt:
		return json.Marshal(struct {
			Kind string `json:"kind"`
			VectorPrompt
		}{v.Kind(), v})
	case PointPrompt:
		return json.Marshal(struct {
			Kind string `json:"kind"`
			PointPrompt
		}{v.Kind(), v})
	case ChoicePrompt:
		return json.Marshal(struct {
			Kind string `json:"kind"`
			ChoicePrompt
		}{v.Kind(), v})
	case EqualVectorsPrompt:
		return json.Marshal(struct {
			Kind string `json:"kind"`
			EqualVectorsPrompt
		}{v.Kind(), v})
	default:
		return json.Marshal(p)
	}
}

// DecodePrompt parses stored prompt JSON back into its variant. Unknown or
// missing kinds decode as short-answer, which is how they are graded.
func DecodePrompt(raw []byte) (Prompt, error) {
	var head struct {
		Kind     string `json:"kind"`
		Question string `json:"question"`
	}
	if err := json.Unmarshal(raw, &head); err != nil {
		return nil, err
	}
	switch head.Kind {
	case KindVectorXYFromGraph:
		var p VectorPrompt
		err := json.Unmarshal(raw, &p)
		return p, err
	case KindPointPlot:
		var p PointPrompt
		err := json.Unmarshal(raw, &p)
		return p, err
	case KindSingleChoice, KindMultipleChoice:
		var p ChoicePrompt
		if err := json.Unmarshal(raw, &p); err != nil {
			return nil, err
		}
		p.Multi = head.Kind == KindMultipleChoice
		return p, nil
	case KindEqualVectorsPick:
		var p EqualVectorsPrompt
		err := json.Unmarshal(raw, &p)
		return p, err
	default:
		return ShortAnswerPrompt{QuestionText: head.Question}, nil
	}
}

// Solution is the tagged union of expected answers. Every variant encodes as
// {"result": ...}; the shape of result follows the prompt kind.
type Solution interface{ isSolution() }

type XYSolution struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

func (XYSolution) isSolution() {}

type ChoiceSolution struct{ OptionID string }

func (ChoiceSolution) isSolution() {}

type IDSetSolution struct{ IDs []string }

func (IDSetSolution) isSolution() {}

// TextSolution holds any free-form expected value, usually the raw solution
// markdown string.
type TextSolution struct{ Value any }

func (TextSolution) isSolution() {}

type solutionEnvelope struct {
	Result json.RawMessage `json:"result"`
}

func EncodeSolution(s Solution) ([]byte, error) {
	var result any
	switch v := s.(type) {
	case XYSolution:
		result = v
	case ChoiceSolution:
		result = v.OptionID
	case IDSetSolution:
		ids := append([]string(nil), v.IDs...)
		sort.Strings(ids)
		result = ids
	case TextSolution:
		result = v.Value
	default:
		result = nil
	}
	return json.Marshal(map[string]any{"result": result})
}

// DecodeSolution parses stored solution JSON for a given prompt kind. When
// the envelope has no result key, the whole document is the expected value.
func DecodeSolution(kind string, raw []byte) (Solution, error) {
	var env solutionEnvelope
	if err := json.Unmarshal(raw, &env); err != nil || env.Result == nil {
		var whole any
		if err2 := json.Unmarshal(raw, &whole); err2 != nil {
			return nil, err2
		}
		return TextSolution{Value: whole}, nil
	}

	switch kind {
	case KindVectorXYFromGraph, KindPointPlot:
		var xy XYSolution
		if err := json.Unmarshal(env.Result, &xy); err != nil {
			return nil, err
		}
		return xy, nil
	case KindSingleChoice, KindMultipleChoice:
		var id string
		if err := json.Unmarshal(env.Result, &id); err != nil {
			return nil, err
		}
		return ChoiceSolution{OptionID: id}, nil
	case KindEqualVectorsPick:
		var ids []string
		if err := json.Unmarshal(env.Result, &ids); err != nil {
			return nil, err
		}
		sort.Strings(ids)
		return IDSetSolution{IDs: ids}, nil
	default:
		var v any
		if err := json.Unmarshal(env.Result, &v); err != nil {
			return nil, err
		}
		return TextSolution{Value: v}, nil
	}
}
