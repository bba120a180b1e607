package validation_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-cardgen/pkg/forms"
	"github.com/goliatone/go-cardgen/pkg/formstore"
	"github.com/goliatone/go-cardgen/pkg/validation"
)

func storeWithForm(t *testing.T) (*formstore.Memory, string) {
	t.Helper()
	store := formstore.NewMemory()
	id, err := store.Put(context.Background(), forms.Definition{
		Title: "Leave request",
		Fields: []forms.FieldSpec{
			{ID: "start", Type: forms.FieldTypeDate, Label: "Start date", IsRequired: true},
			{ID: "days", Type: forms.FieldTypeNumber, IsRequired: true},
			{ID: "note", Type: forms.FieldTypeText, Label: "Note"},
		},
	})
	if err != nil {
		t.Fatalf("put: %v", err)
	}
	return store, id
}

func TestValidateSuccess(t *testing.T) {
	store, id := storeWithForm(t)
	v := validation.New(store)

	got := v.Validate(context.Background(), map[string]any{"form_id": id, "start": "2024-05-01", "days": 3})
	want := validation.Result{
		Outcome: validation.OutcomeSuccess,
		Valid:   true,
		Message: "Success! Your submission for 'Leave request' has been validated.",
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("result mismatch (-want +got):\n%s", diff)
	}
}

func TestValidateReportsEveryMissingField(t *testing.T) {
	store, id := storeWithForm(t)
	v := validation.New(store)

	got := v.Validate(context.Background(), `{"form_id":"`+id+`","start":"","days":null}`)
	want := validation.Result{
		Outcome: validation.OutcomeMissingFields,
		Message: "Validation Failed:\n- Start date is required.\n- days is required.",
		Issues: []validation.Issue{
			{Field: "start", Message: "Start date is required."},
			{Field: "days", Message: "days is required."},
		},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("result mismatch (-want +got):\n%s", diff)
	}

	single := v.Validate(context.Background(), map[string]any{"form_id": id, "start": "2024-05-01"})
	if single.Message != "Validation Failed:\n- days is required." {
		t.Fatalf("expected only days to be reported, got %q", single.Message)
	}
}

func TestValidateUnknownSession(t *testing.T) {
	store, _ := storeWithForm(t)
	v := validation.New(store)

	got := v.Validate(context.Background(), map[string]any{"form_id": "nonexistent"})
	if got.Outcome != validation.OutcomeSessionNotFound || got.Valid {
		t.Fatalf("expected session not found, got %+v", got)
	}
	if got.Message != "Error: Form session 'nonexistent' not found or expired." {
		t.Fatalf("unexpected message %q", got.Message)
	}

	noID := v.Validate(context.Background(), map[string]any{"start": "x"})
	if noID.Outcome != validation.OutcomeSessionNotFound {
		t.Fatalf("missing form id should be reported as unknown session, got %+v", noID)
	}
}

func TestValidateRejectsNonObjects(t *testing.T) {
	v := validation.New(formstore.NewMemory())
	for _, data := range []any{"not json", `[1,2]`, 42, nil} {
		got := v.Validate(context.Background(), data)
		if got.Outcome != validation.OutcomeInvalidSubmission || got.Message != validation.MessageInvalidSubmission {
			t.Fatalf("%v: expected invalid submission, got %+v", data, got)
		}
	}
}

type failingStore struct{ formstore.Store }

func (failingStore) Get(context.Context, string) (forms.Definition, error) {
	return forms.Definition{}, errors.New("connection reset")
}

func TestValidateStoreFailureReadsAsUnknownSession(t *testing.T) {
	v := validation.New(failingStore{})
	got := v.Validate(context.Background(), map[string]any{"form_id": "abc"})
	if got.Outcome != validation.OutcomeSessionNotFound {
		t.Fatalf("expected session not found, got %+v", got)
	}
}

func TestValidateDocumentUsesSimpleTemplate(t *testing.T) {
	store, id := storeWithForm(t)
	v := validation.New(store)

	doc := v.ValidateDocument(context.Background(), map[string]any{"form_id": id})
	if len(doc.Body) != 1 || !doc.Body[0].Wrap {
		t.Fatalf("expected a single wrapped text block, got %+v", doc.Body)
	}
	if doc.Body[0].Text != "Validation Failed:\n- Start date is required.\n- days is required." {
		t.Fatalf("unexpected text %q", doc.Body[0].Text)
	}
}

func TestIsSubmission(t *testing.T) {
	cases := map[string]bool{
		`{"form_id":"x"}`:                  true,
		`{"action":"submit_dynamic_form"}`: true,
		`{"action":"acknowledge"}`:         false,
		`{"form_id":null}`:                 false,
		`"submit_dynamic_form"`:            false,
	}
	for raw, want := range cases {
		sub, ok := validation.ParseSubmission(raw)
		isSub := ok && validation.IsSubmission(sub.Values)
		if isSub != want {
			t.Fatalf("%s: got %v, want %v", raw, isSub, want)
		}
	}
}
