package tui

import (
	"context"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-cardgen/pkg/forms"
)

type stubDriver struct {
	inputs       []string
	selectIdx    []int
	multiIdx     [][]int
	infoMessages []string
	inputConfigs []InputConfig
	selectCfgs   []SelectConfig
	inputPos     int
	selectPos    int
	multiPos     int
	failWith     error
}

func (s *stubDriver) Input(_ context.Context, cfg InputConfig) (string, error) {
	if s.failWith != nil {
		return "", s.failWith
	}
	if s.inputPos >= len(s.inputs) {
		return "", errors.New("no input scripted")
	}
	s.inputConfigs = append(s.inputConfigs, cfg)
	val := s.inputs[s.inputPos]
	s.inputPos++
	return val, nil
}

func (s *stubDriver) Select(_ context.Context, cfg SelectConfig) (int, error) {
	if s.selectPos >= len(s.selectIdx) {
		return -1, errors.New("no select scripted")
	}
	s.selectCfgs = append(s.selectCfgs, cfg)
	val := s.selectIdx[s.selectPos]
	s.selectPos++
	return val, nil
}

func (s *stubDriver) MultiSelect(_ context.Context, _ SelectConfig) ([]int, error) {
	if s.multiPos >= len(s.multiIdx) {
		return nil, errors.New("no multiselect scripted")
	}
	val := s.multiIdx[s.multiPos]
	s.multiPos++
	return val, nil
}

func (s *stubDriver) Info(_ context.Context, msg string) error {
	s.infoMessages = append(s.infoMessages, msg)
	return nil
}

func leaveDefinition() forms.Definition {
	return forms.Definition{
		FormID:       "form-1",
		Title:        "Leave request",
		Instructions: "Fill everything in.",
		Fields: []forms.FieldSpec{
			{ID: "start", Type: forms.FieldTypeDate, Label: "Start", IsRequired: true},
			{ID: "days", Type: forms.FieldTypeNumber, Label: "Days"},
			{ID: "kind", Type: forms.FieldTypeChoice, Label: "Kind", IsRequired: true, Options: []forms.Option{
				{Title: "Annual", Value: "annual"},
				{Title: "Sick", Value: "sick"},
			}},
			{ID: "notify", Type: forms.FieldTypeCheckbox, Label: "Notify", Options: []forms.Option{
				{Title: "Manager", Value: "mgr"},
				{Title: "Team", Value: "team"},
				{Title: "HR", Value: "hr"},
			}},
			{ID: "note", Type: forms.FieldTypeText, Label: "Note"},
		},
	}
}

func TestFillCollectsSubmission(t *testing.T) {
	driver := &stubDriver{
		inputs:    []string{"2024-06-01", "3", ""},
		selectIdx: []int{1},
		multiIdx:  [][]int{{0, 2}},
	}
	got, err := New(WithPromptDriver(driver)).Fill(context.Background(), leaveDefinition())
	if err != nil {
		t.Fatalf("fill: %v", err)
	}

	want := map[string]any{
		"action":  "submit_dynamic_form",
		"form_id": "form-1",
		"start":   "2024-06-01",
		"days":    "3",
		"kind":    "sick",
		"notify":  "mgr,hr",
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("submission mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"Leave request", "Fill everything in."}, driver.infoMessages); diff != "" {
		t.Fatalf("info mismatch (-want +got):\n%s", diff)
	}
	if driver.inputConfigs[0].Message != "Start *" {
		t.Fatalf("required fields should be marked, got %q", driver.inputConfigs[0].Message)
	}
}

func TestFillRepromptsInvalidAnswers(t *testing.T) {
	def := forms.Definition{
		Title: "Numbers",
		Fields: []forms.FieldSpec{
			{ID: "name", Type: forms.FieldTypeText, Label: "Name", IsRequired: true},
			{ID: "age", Type: forms.FieldTypeNumber, Label: "Age"},
		},
	}
	driver := &stubDriver{inputs: []string{"  ", "Ada", "forty", "36"}}
	got, err := New(WithPromptDriver(driver)).Fill(context.Background(), def)
	if err != nil {
		t.Fatalf("fill: %v", err)
	}
	want := map[string]any{"action": "submit_dynamic_form", "name": "Ada", "age": "36"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("submission mismatch (-want +got):\n%s", diff)
	}
	wantInfo := []string{"Numbers", "! Name is required.", `! "forty" is not a number`}
	if diff := cmp.Diff(wantInfo, driver.infoMessages); diff != "" {
		t.Fatalf("info mismatch (-want +got):\n%s", diff)
	}
}

func TestFillGivesUpAfterMaxAttempts(t *testing.T) {
	def := forms.Definition{Fields: []forms.FieldSpec{{ID: "d", Type: forms.FieldTypeDate, Label: "When", IsRequired: true}}}
	driver := &stubDriver{inputs: []string{"tomorrow", "soon"}}
	_, err := New(WithPromptDriver(driver), WithMaxAttempts(2)).Fill(context.Background(), def)
	if !errors.Is(err, ErrTooManyAttempts) {
		t.Fatalf("expected ErrTooManyAttempts, got %v", err)
	}
	if driver.infoMessages[0] != "Form" {
		t.Fatalf("missing title should default to Form, got %q", driver.infoMessages[0])
	}
}

func TestFillOptionalChoiceAndPrefill(t *testing.T) {
	def := forms.Definition{Fields: []forms.FieldSpec{
		{ID: "size", Type: forms.FieldTypeChoice, Label: "Size", Options: []forms.Option{
			{Title: "Small", Value: "s"},
			{Title: "Large", Value: "l"},
		}},
		{ID: "city", Type: forms.FieldTypeText, Label: "City"},
	}}
	driver := &stubDriver{selectIdx: []int{0}, inputs: []string{"Oslo"}}
	filler := New(WithPromptDriver(driver), WithPrefill(map[string]string{"size": "l", "city": "Bergen"}))

	got, err := filler.Fill(context.Background(), def)
	if err != nil {
		t.Fatalf("fill: %v", err)
	}
	if _, ok := got["size"]; ok {
		t.Fatalf("choosing none should omit the field, got %v", got)
	}
	cfg := driver.selectCfgs[0]
	if cfg.Options[0] != "(none)" || cfg.DefaultIndex != 2 {
		t.Fatalf("unexpected select config %+v", cfg)
	}
	if driver.inputConfigs[0].Default != "Bergen" {
		t.Fatalf("prefill should become the default, got %q", driver.inputConfigs[0].Default)
	}
}

func TestFillAborted(t *testing.T) {
	driver := &stubDriver{failWith: ErrAborted}
	_, err := New(WithPromptDriver(driver)).Fill(context.Background(), leaveDefinition())
	if !errors.Is(err, ErrAborted) {
		t.Fatalf("expected ErrAborted, got %v", err)
	}
}

func TestIndexHelpers(t *testing.T) {
	options := []string{"a", "b", "c"}
	if indexOf(options, "c") != 2 || indexOf(options, "z") != -1 {
		t.Fatalf("indexOf mismatch")
	}
	if diff := cmp.Diff([]int{0, 2}, indicesOf(options, []string{"c", "a"})); diff != "" {
		t.Fatalf("indicesOf mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"b"}, defaultsFromIndices(options, []int{1, 7})); diff != "" {
		t.Fatalf("defaultsFromIndices mismatch (-want +got):\n%s", diff)
	}
}
