package formvalidator

import (
	"context"
	"io/fs"
	"testing"

	"github.com/goliatone/go-formvalidator/pkg/constraint"
	"github.com/goliatone/go-formvalidator/pkg/definition"
)

func TestExampleDefinitionsFSLoads(t *testing.T) {
	store, err := definition.LoadFS(ExampleDefinitionsFS())
	if err != nil {
		t.Fatalf("load example definitions: %v", err)
	}
	ids := store.IDs()
	if len(ids) != 2 || ids[0] != "newsletter" || ids[1] != "registration" {
		t.Fatalf("unexpected form ids %v", ids)
	}
	if _, err := fs.ReadFile(ExampleDefinitionsFS(), "registration.yaml"); err != nil {
		t.Fatalf("expected registration.yaml to be readable: %v", err)
	}
}

func TestValidateDefinitionDraftButtonOverridesGroups(t *testing.T) {
	submission := []byte(`{"username": "", "age": "x", "address": {"street": "", "zip": "1"}, "saveDraft": ""}`)
	result, err := ValidateDefinition(context.Background(), ExampleDefinitionsFS(), "registration", submission)
	if err != nil {
		t.Fatalf("validate: %v", err)
	}

	notSync := result.Violations.ByCode(constraint.CodeNotSynchronized)
	if len(notSync) != 1 || notSync[0].Message != `Please enter a whole number, "x" is not one.` {
		t.Fatalf("unexpected not synchronized violations %+v", notSync)
	}
	if result.Form.ClickedButton() == nil || result.Form.ClickedButton().Name() != "saveDraft" {
		t.Fatal("expected saveDraft to be clicked")
	}
	if len(result.Violations.ByCode(constraint.CodeNoSuchField)) != 0 {
		t.Fatal("button keys must not be reported as extra fields")
	}
}

func TestValidateDefinitionExtraFields(t *testing.T) {
	submission := []byte(`{"email": "a@b.c", "frequency": "weekly", "foo": 1, "bar": 2}`)
	result, err := ValidateDefinition(context.Background(), ExampleDefinitionsFS(), "newsletter", submission)
	if err != nil {
		t.Fatalf("validate: %v", err)
	}
	extra := result.Violations.ByCode(constraint.CodeNoSuchField)
	if len(extra) != 1 {
		t.Fatalf("expected one extra fields violation, got %+v", result.Violations)
	}
	if got := extra[0].Parameters["{{ extra_fields }}"]; got != `"foo", "bar"` {
		t.Fatalf("extra_fields = %q", got)
	}
	if len(result.Violations) != 1 {
		t.Fatalf("expected only the extra fields violation, got %v", result.Violations.Messages())
	}
}

func TestValidateDefinitionDraftButtonSkipsRegistrationChecks(t *testing.T) {
	submission := []byte(`{"username": "ab", "age": "5", "address": {"street": "x", "zip": "1"}, "saveDraft": ""}`)
	result, err := ValidateDefinition(context.Background(), ExampleDefinitionsFS(), "registration", submission)
	if err != nil {
		t.Fatalf("validate: %v", err)
	}
	if len(result.Violations) != 0 {
		t.Fatalf("expected no violations under the Draft group, got %v", result.Violations.Messages())
	}
}

func TestValidateDefinitionAddressSequenceStopsAtDefault(t *testing.T) {
	submission := []byte(`{"username": "ab", "age": "5", "address": {"street": "", "zip": "1"}}`)
	result, err := ValidateDefinition(context.Background(), ExampleDefinitionsFS(), "registration", submission)
	if err != nil {
		t.Fatalf("validate: %v", err)
	}
	if got := result.Violations.ByCode(constraint.CodeTooShort).ByPath("username"); len(got) != 1 {
		t.Fatalf("expected username to be too short, got %v", result.Violations.Messages())
	}
	if got := result.Violations.ByCode(constraint.CodeTooLow).ByPath("age"); len(got) != 1 {
		t.Fatalf("expected age to be too low, got %v", result.Violations.Messages())
	}
	if got := result.Violations.ByCode(constraint.CodeBlank).ByPath("address.street"); len(got) != 1 {
		t.Fatalf("expected street to be blank, got %v", result.Violations.Messages())
	}
	if got := result.Violations.ByCode(constraint.CodeRegexFailed); len(got) != 0 {
		t.Fatalf("zip must not be checked while Default fails, got %v", got)
	}

	submission = []byte(`{"username": "alice", "age": "30", "address": {"street": "Main St", "zip": "1"}}`)
	result, err = ValidateDefinition(context.Background(), ExampleDefinitionsFS(), "registration", submission)
	if err != nil {
		t.Fatalf("validate: %v", err)
	}
	if got := result.Violations.ByPath("address.zip"); len(got) != 1 || got[0].Code != constraint.CodeRegexFailed {
		t.Fatalf("expected zip to fail the Strict group, got %v", result.Violations.Messages())
	}
}
