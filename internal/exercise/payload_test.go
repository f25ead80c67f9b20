package exercise

import (
	"encoding/json"
	"math"
	"testing"
)

func editorInput(typ string, choices string) EditorInput {
	return EditorInput{
		SubthemeID: "f47ac10b-58cc-4372-a567-0e02b2c3d479",
		Title:      "Sample",
		Type:       typ,
		Difficulty: 2,
		Status:     StatusDraft,
		PromptMD:   "Read the vector from the graph.",
		SolutionMD: "x = 3, y = -2",
		Choices:    json.RawMessage(choices),
	}
}

func TestBuildPayloadVector(t *testing.T) {
	in := editorInput(KindVectorXYFromGraph,
		`{"grid":{"xMin":-5,"xMax":5,"yMin":-5,"yMax":5,"step":1},"vectorEnd":["3","-2"]}`)
	p, sol := BuildPayload(in)

	vp, ok := p.(VectorPrompt)
	if !ok {
		t.Fatalf("prompt type %T", p)
	}
	if vp.Grid.XMin != -5 || vp.Grid.XMax != 5 {
		t.Errorf("grid not taken from config: %+v", vp.Grid)
	}
	if vp.VectorEnd != [2]float64{3, -2} {
		t.Errorf("vectorEnd = %v", vp.VectorEnd)
	}
	xy, ok := sol.(XYSolution)
	if !ok || xy.X != 3 || xy.Y != -2 {
		t.Errorf("solution = %#v", sol)
	}
}

func TestBuildPayloadVectorDefaults(t *testing.T) {
	in := editorInput(KindVectorXYFromGraph, `{"vectorEnd":["not a number",null]}`)
	p, sol := BuildPayload(in)

	vp := p.(VectorPrompt)
	if vp.Grid != DefaultGrid() {
		t.Errorf("grid = %+v, want defaults", vp.Grid)
	}
	xy := sol.(XYSolution)
	if xy.X != 0 || xy.Y != 0 {
		t.Errorf("unparseable coordinates should coerce to 0, got %+v", xy)
	}
	if math.IsNaN(xy.X) || math.IsNaN(xy.Y) {
		t.Error("solution must never contain NaN")
	}
}

func TestBuildPayloadPointTemplatedQuestion(t *testing.T) {
	in := editorInput(KindPointPlot, `{"target":[4,-1]}`)
	in.PromptMD = "   "
	p, _ := BuildPayload(in)

	pp := p.(PointPrompt)
	want := "Plot the point (4, -1) on the grid."
	if pp.QuestionText != want {
		t.Errorf("question = %q, want %q", pp.QuestionText, want)
	}
}

func TestBuildPayloadChoicePlaceholders(t *testing.T) {
	in := editorInput(KindSingleChoice, `{"options":[{"id":"a","text":"Only one"}]}`)
	p, sol := BuildPayload(in)

	cp := p.(ChoicePrompt)
	if len(cp.Options) != 4 {
		t.Fatalf("want 4 placeholder options, got %d", len(cp.Options))
	}
	if cp.Options[0].ID != "a" || cp.Options[3].Text != "Option D" {
		t.Errorf("placeholders = %+v", cp.Options)
	}
	if cs := sol.(ChoiceSolution); cs.OptionID != "a" {
		t.Errorf("placeholder solution = %q, want a", cs.OptionID)
	}
}

func TestBuildPayloadChoiceInvalidCorrectFallsBack(t *testing.T) {
	in := editorInput(KindSingleChoice,
		`{"options":[{"id":"a","text":"First"},{"id":"b","text":"Second"}],"correctOption":"zz"}`)
	_, sol := BuildPayload(in)

	if cs := sol.(ChoiceSolution); cs.OptionID != "a" {
		t.Errorf("invalid correctOption should fall back to first option, got %q", cs.OptionID)
	}
}

func TestBuildPayloadEqualVectorsFiltersUnknownIDs(t *testing.T) {
	in := editorInput(KindEqualVectorsPick,
		`{"vectors":[{"id":"A","start":[0,0],"end":[1,1]},{"id":"B","start":[2,2],"end":[3,3]},{"id":"","start":[0,0],"end":[0,0]}],"equalIds":["B","A","ghost"]}`)
	p, sol := BuildPayload(in)

	ev := p.(EqualVectorsPrompt)
	if len(ev.Vectors) != 2 {
		t.Errorf("blank-id vector not dropped: %+v", ev.Vectors)
	}
	ids := sol.(IDSetSolution)
	if len(ids.IDs) != 2 {
		t.Errorf("unknown id not filtered: %v", ids.IDs)
	}
}

func TestBuildPayloadUnknownTypeIsShortAnswer(t *testing.T) {
	in := editorInput("essay_on_matrices", `null`)
	p, sol := BuildPayload(in)

	if p.Kind() != KindShortAnswer {
		t.Errorf("kind = %q", p.Kind())
	}
	ts := sol.(TextSolution)
	if ts.Value != in.SolutionMD {
		t.Errorf("solution = %#v", ts.Value)
	}
}

func TestPromptCodecRoundTrip(t *testing.T) {
	prompts := []Prompt{
		VectorPrompt{QuestionText: "q", Grid: DefaultGrid(), VectorEnd: [2]float64{3, -2}, ShowLabels: true},
		PointPrompt{QuestionText: "q", Grid: DefaultGrid(), Target: [2]float64{1, 2}},
		ChoicePrompt{QuestionText: "q", Options: []ChoiceOption{{ID: "a", Text: "A"}, {ID: "b", Text: "B"}}},
		ChoicePrompt{Multi: true, QuestionText: "q", Options: []ChoiceOption{{ID: "a", Text: "A"}, {ID: "b", Text: "B"}}},
		EqualVectorsPrompt{QuestionText: "q", Grid: DefaultGrid(), Vectors: []PlaneVector{{ID: "A", Start: [2]float64{0, 0}, End: [2]float64{1, 1}}}},
		ShortAnswerPrompt{QuestionText: "q"},
	}
	for _, p := range prompts {
		raw, err := EncodePrompt(p)
		if err != nil {
			t.Fatalf("%s: encode: %v", p.Kind(), err)
		}
		back, err := DecodePrompt(raw)
		if err != nil {
			t.Fatalf("%s: decode: %v", p.Kind(), err)
		}
		if back.Kind() != p.Kind() {
			t.Errorf("kind %q decoded as %q", p.Kind(), back.Kind())
		}
	}
}

func TestDecodePromptUnknownKind(t *testing.T) {
	p, err := DecodePrompt([]byte(`{"kind":"hologram","question":"what"}`))
	if err != nil {
		t.Fatal(err)
	}
	if p.Kind() != KindShortAnswer || p.Question() != "what" {
		t.Errorf("got %#v", p)
	}
}

func TestDecodeSolutionMissingResultKey(t *testing.T) {
	sol, err := DecodeSolution(KindShortAnswer, []byte(`"just a string"`))
	if err != nil {
		t.Fatal(err)
	}
	ts, ok := sol.(TextSolution)
	if !ok || ts.Value != "just a string" {
		t.Errorf("got %#v", sol)
	}
}

func TestSolutionCodecRoundTrip(t *testing.T) {
	raw, err := EncodeSolution(IDSetSolution{IDs: []string{"B", "A"}})
	if err != nil {
		t.Fatal(err)
	}
	back, err := DecodeSolution(KindEqualVectorsPick, raw)
	if err != nil {
		t.Fatal(err)
	}
	ids := back.(IDSetSolution)
	if len(ids.IDs) != 2 || ids.IDs[0] != "A" || ids.IDs[1] != "B" {
		t.Errorf("ids not sorted on round trip: %v", ids.IDs)
	}
}
