package form

import "testing"

func TestTransformers(t *testing.T) {
	cases := []struct {
		name    string
		fn      Transformer
		raw     any
		want    any
		wantErr bool
	}{
		{name: "string passthrough", fn: StringTransformer, raw: "abc", want: "abc"},
		{name: "string from number", fn: StringTransformer, raw: 12.5, want: "12.5"},
		{name: "string rejects mapping", fn: StringTransformer, raw: map[string]any{}, wantErr: true},
		{name: "integer from string", fn: IntegerTransformer, raw: " 42 ", want: int64(42)},
		{name: "integer from integral float", fn: IntegerTransformer, raw: 7.0, want: int64(7)},
		{name: "integer rejects fraction", fn: IntegerTransformer, raw: 7.5, wantErr: true},
		{name: "integer rejects text", fn: IntegerTransformer, raw: "foobar", wantErr: true},
		{name: "integer rejects float above int64", fn: IntegerTransformer, raw: 1e20, wantErr: true},
		{name: "integer rejects float below int64", fn: IntegerTransformer, raw: -1e20, wantErr: true},
		{name: "integer rejects 2^63", fn: IntegerTransformer, raw: 9223372036854775808.0, wantErr: true},
		{name: "integer empty is nil", fn: IntegerTransformer, raw: "", want: nil},
		{name: "number from string", fn: NumberTransformer, raw: "3.25", want: 3.25},
		{name: "number rejects text", fn: NumberTransformer, raw: "12,5", wantErr: true},
		{name: "boolean checkbox", fn: BooleanTransformer, raw: "on", want: true},
		{name: "boolean missing", fn: BooleanTransformer, raw: nil, want: false},
		{name: "boolean rejects text", fn: BooleanTransformer, raw: "maybe", wantErr: true},
	}

	for _, tc := range cases {
		got, err := tc.fn(tc.raw)
		if tc.wantErr {
			if err == nil {
				t.Errorf("%s: expected error, got %v", tc.name, got)
			}
			continue
		}
		if err != nil {
			t.Errorf("%s: unexpected error %v", tc.name, err)
			continue
		}
		if got != tc.want {
			t.Errorf("%s: got %#v, want %#v", tc.name, got, tc.want)
		}
	}
}

func TestParseFieldType(t *testing.T) {
	if got, ok := ParseFieldType("Int"); !ok || got != FieldTypeInteger {
		t.Fatalf("expected integer, got %q (ok=%v)", got, ok)
	}
	if got, ok := ParseFieldType(""); !ok || got != FieldTypeString {
		t.Fatalf("expected string default, got %q (ok=%v)", got, ok)
	}
	if _, ok := ParseFieldType("date"); ok {
		t.Fatalf("expected unknown type to be rejected")
	}
	if TransformerFor(FieldTypeObject) != nil {
		t.Fatalf("expected object fields to have no transformer")
	}
}
