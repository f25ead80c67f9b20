package exercise

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// Payload building turns the authoring config (the Choices document) plus the
// markdown fields into the stored prompt/solution pair. Builders never fail:
// malformed config degrades to defaults so a draft can always be saved.

type gridConfig struct {
	XMin any `json:"xMin"`
	XMax any `json:"xMax"`
	YMin any `json:"yMin"`
	YMax any `json:"yMax"`
	Step any `json:"step"`
}

type vectorConfig struct {
	Grid      *gridConfig `json:"grid"`
	Origin    []any       `json:"origin"`
	VectorEnd []any       `json:"vectorEnd"`
}

type pointConfig struct {
	Grid   *gridConfig `json:"grid"`
	Target []any       `json:"target"`
}

type choiceConfig struct {
	Options       []choiceOptionConfig `json:"options"`
	CorrectOption string               `json:"correctOption"`
}

type choiceOptionConfig struct {
	ID   string `json:"id"`
	Text string `json:"text"`
}

type equalVectorsConfig struct {
	Grid     *gridConfig   `json:"grid"`
	Vectors  []PlaneVector `json:"vectors"`
	EqualIDs []string      `json:"equalIds"`
}

// coerceNum applies "parse or default" coercion: numbers pass through,
// numeric strings parse, booleans map to 1/0, everything else (including
// absent values) yields def. Never NaN.
func coerceNum(v any, def float64) float64 {
	switch x := v.(type) {
	case float64:
		return x
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(x), 64)
		if err != nil {
			return def
		}
		return f
	case bool:
		if x {
			return 1
		}
		return 0
	case json.Number:
		f, err := x.Float64()
		if err != nil {
			return def
		}
		return f
	default:
		return def
	}
}

func buildGrid(c *gridConfig) Grid {
	g := DefaultGrid()
	if c == nil {
		return g
	}
	g.XMin = coerceNum(c.XMin, -10)
	g.XMax = coerceNum(c.XMax, 10)
	g.YMin = coerceNum(c.YMin, -10)
	g.YMax = coerceNum(c.YMax, 10)
	g.Step = coerceNum(c.Step, 1)
	return g
}

func coercePair(v []any) [2]float64 {
	var out [2]float64
	if len(v) > 0 {
		out[0] = coerceNum(v[0], 0)
	}
	if len(v) > 1 {
		out[1] = coerceNum(v[1], 0)
	}
	return out
}

// placeholderOptions is the fallback emitted when fewer than two valid
// options were authored.
func placeholderOptions() []ChoiceOption {
	return []ChoiceOption{
		{ID: "a", Text: "Option A"},
		{ID: "b", Text: "Option B"},
		{ID: "c", Text: "Option C"},
		{ID: "d", Text: "Option D"},
	}
}

// BuildPayload derives the stored prompt and solution for an editor record.
func BuildPayload(in EditorInput) (Prompt, Solution) {
	switch in.Type {
	case KindVectorXYFromGraph:
		var cfg vectorConfig
		_ = json.Unmarshal(in.Choices, &cfg)
		end := coercePair(cfg.VectorEnd)
		return VectorPrompt{
			QuestionText: in.PromptMD,
			Grid:         buildGrid(cfg.Grid),
			Origin:       coercePair(cfg.Origin),
			VectorEnd:    end,
			ShowLabels:   true,
		}, XYSolution{X: end[0], Y: end[1]}

	case KindPointPlot:
		var cfg pointConfig
		_ = json.Unmarshal(in.Choices, &cfg)
		target := coercePair(cfg.Target)
		question := strings.TrimSpace(in.PromptMD)
		if question == "" {
			question = fmt.Sprintf("Plot the point (%s, %s) on the grid.",
				formatNum(target[0]), formatNum(target[1]))
		}
		return PointPrompt{
			QuestionText: question,
			Grid:         buildGrid(cfg.Grid),
			Target:       target,
			ShowLabels:   true,
		}, XYSolution{X: target[0], Y: target[1]}

	case KindSingleChoice, KindMultipleChoice:
		var cfg choiceConfig
		_ = json.Unmarshal(in.Choices, &cfg)
		options := make([]ChoiceOption, 0, len(cfg.Options))
		for _, o := range cfg.Options {
			id := strings.TrimSpace(o.ID)
			text := strings.TrimSpace(o.Text)
			if id == "" || text == "" {
				continue
			}
			options = append(options, ChoiceOption{ID: id, Text: text})
		}
		if len(options) < 2 {
			options = placeholderOptions()
			return ChoicePrompt{
				Multi:        in.Type == KindMultipleChoice,
				QuestionText: in.PromptMD,
				Options:      options,
			}, ChoiceSolution{OptionID: "a"}
		}
		correct := strings.TrimSpace(cfg.CorrectOption)
		valid := false
		for _, o := range options {
			if o.ID == correct {
				valid = true
				break
			}
		}
		if !valid {
			// Silent fallback: the author sees no error.
			correct = options[0].ID
		}
		return ChoicePrompt{
			Multi:        in.Type == KindMultipleChoice,
			QuestionText: in.PromptMD,
			Options:      options,
		}, ChoiceSolution{OptionID: correct}

	case KindEqualVectorsPick:
		var cfg equalVectorsConfig
		_ = json.Unmarshal(in.Choices, &cfg)
		vectors := make([]PlaneVector, 0, len(cfg.Vectors))
		known := map[string]bool{}
		for _, v := range cfg.Vectors {
			if strings.TrimSpace(v.ID) == "" {
				continue
			}
			vectors = append(vectors, v)
			known[v.ID] = true
		}
		ids := make([]string, 0, len(cfg.EqualIDs))
		for _, id := range cfg.EqualIDs {
			if known[id] {
				ids = append(ids, id)
			}
		}
		return EqualVectorsPrompt{
			QuestionText: in.PromptMD,
			Grid:         buildGrid(cfg.Grid),
			Vectors:      vectors,
		}, IDSetSolution{IDs: ids}

	default:
		return ShortAnswerPrompt{QuestionText: in.PromptMD},
			TextSolution{Value: in.SolutionMD}
	}
}

func formatNum(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
