package definition

import (
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/goliatone/go-formvalidator/pkg/constraint"
	"github.com/goliatone/go-formvalidator/pkg/form"
)

const articleYAML = `
forms:
  article:
    validationGroups: [Default, Article]
    buttons:
      - name: draft
        validationGroups: [Draft]
    fields:
      - name: title
        constraints:
          - kind: notBlank
            groups: [Default, Draft]
          - kind: length
            max: 80
      - name: price
        type: number
        constraints:
          - kind: range
            min: 0
      - name: author
        allowExtraFields: true
        fields:
          - name: email
            constraints:
              - kind: regex
                pattern: '^[^@]+@[^@]+$'
`

const couponTOML = `
[forms.coupon]
groupSequence = ["Basic", "Strict"]
extraFieldsMessage = "Unexpected: {{ extra_fields }}"

[[forms.coupon.fields]]
name = "code"
invalidMessage = "Code is unreadable."

[[forms.coupon.fields.constraints]]
kind = "choice"
choices = ["SPRING", "FALL"]
groups = ["Strict"]
`

const signupJSON = `{
  "forms": {
    "signup": {
      "cascade": false,
      "fields": [
        {"name": "age", "type": "integer", "validationGroups": []}
      ]
    }
  }
}`

func TestLoadFS_AllFormats(t *testing.T) {
	fsys := fstest.MapFS{
		"forms/article.yaml": {Data: []byte(articleYAML)},
		"forms/coupon.toml":  {Data: []byte(couponTOML)},
		"signup.json":        {Data: []byte(signupJSON)},
		"README.md":          {Data: []byte("ignored")},
	}

	store, err := LoadFS(fsys)
	require.NoError(t, err)
	assert.Equal(t, []string{"article", "coupon", "signup"}, store.IDs())

	def, ok := store.Form("coupon")
	require.True(t, ok)
	assert.Equal(t, "forms/coupon.toml", def.Source)
}

func TestDefinitionBuild_Article(t *testing.T) {
	store, err := Parse([]byte(articleYAML), FormatYAML, "article.yaml")
	require.NoError(t, err)
	def, ok := store.Form("article")
	require.True(t, ok)

	root, err := def.Build()
	require.NoError(t, err)

	assert.Equal(t, "article", root.Name())
	assert.True(t, root.Compound())
	assert.True(t, root.Cascade())
	groups, ok := root.ValidationGroups()
	require.True(t, ok)
	assert.True(t, groups.Equal(form.List("Default", "Article")))

	draft := root.Button("draft")
	require.NotNil(t, draft)
	buttonGroups, ok := draft.ValidationGroups()
	require.True(t, ok)
	assert.True(t, buttonGroups.Equal(form.List("Draft")))

	title := root.Child("title")
	require.NotNil(t, title)
	assert.False(t, title.Compound())
	require.Len(t, title.Constraints(), 3)
	assert.Equal(t, "NotBlank", title.Constraints()[0].Constraint.Name())
	assert.Equal(t, "Default", title.Constraints()[0].Group)
	assert.Equal(t, "Draft", title.Constraints()[1].Group)
	assert.Equal(t, constraint.Length{Max: 80}, title.Constraints()[2].Constraint)
	assert.Equal(t, constraint.DefaultGroup, title.Constraints()[2].Group)

	price := root.Child("price")
	require.NotNil(t, price)
	data, err := price.Transformer()("4.5")
	require.NoError(t, err)
	assert.Equal(t, 4.5, data)

	author := root.Child("author")
	require.NotNil(t, author)
	assert.True(t, author.Compound())
	assert.True(t, author.Cascade())
	assert.True(t, author.AllowsExtraFields())
	assert.Equal(t, "author.email", author.Child("email").Path())
}

func TestDefinitionBuild_FreshTreePerCall(t *testing.T) {
	store, err := Parse([]byte(articleYAML), FormatYAML, "article.yaml")
	require.NoError(t, err)
	def, _ := store.Form("article")

	first, err := def.Build()
	require.NoError(t, err)
	second, err := def.Build()
	require.NoError(t, err)

	require.NoError(t, first.Click(first.Button("draft")))
	assert.Nil(t, second.ClickedButton())
}

func TestDefinitionBuild_SequenceAndMessages(t *testing.T) {
	store, err := Parse([]byte(couponTOML), FormatTOML, "coupon.toml")
	require.NoError(t, err)
	def, _ := store.Form("coupon")

	root, err := def.Build()
	require.NoError(t, err)

	groups, ok := root.ValidationGroups()
	require.True(t, ok)
	assert.True(t, groups.Equal(form.Sequence("Basic", "Strict")))
	assert.Equal(t, "Unexpected: {{ extra_fields }}", root.ExtraFieldsMessage())

	code := root.Child("code")
	require.NotNil(t, code)
	assert.Equal(t, "Code is unreadable.", code.InvalidMessage())
	require.Len(t, code.Constraints(), 1)
	assert.Equal(t, "Strict", code.Constraints()[0].Group)
	choice, ok := code.Constraints()[0].Constraint.(constraint.Choice)
	require.True(t, ok)
	assert.Equal(t, []any{"SPRING", "FALL"}, choice.Choices)
}

func TestDefinitionBuild_EmptyListAndCascadeOverride(t *testing.T) {
	store, err := Parse([]byte(signupJSON), FormatJSON, "signup.json")
	require.NoError(t, err)
	def, _ := store.Form("signup")

	root, err := def.Build()
	require.NoError(t, err)
	assert.True(t, root.Compound())
	assert.False(t, root.Cascade())

	age := root.Child("age")
	groups, ok := age.ValidationGroups()
	require.True(t, ok)
	assert.Equal(t, form.KindList, groups.Kind())
	assert.Zero(t, groups.Len())
}

func TestLoad_Errors(t *testing.T) {
	cases := []struct {
		name   string
		data   string
		format Format
		want   string
	}{
		{"empty", "  ", FormatYAML, "is empty"},
		{"no forms", "forms: {}", FormatYAML, "defines no forms"},
		{"bad type", "forms:\n  f:\n    fields:\n      - name: a\n        type: date\n", FormatYAML, `unknown type "date"`},
		{"bad kind", "forms:\n  f:\n    fields:\n      - name: a\n        constraints:\n          - kind: email\n", FormatYAML, `unknown constraint kind "email"`},
		{"bad regex", "forms:\n  f:\n    fields:\n      - name: a\n        constraints:\n          - kind: regex\n            pattern: '('\n", FormatYAML, "regex"},
		{"unnamed field", "forms:\n  f:\n    fields:\n      - type: string\n", FormatYAML, "has no name"},
		{"duplicate child", "forms:\n  f:\n    fields:\n      - name: a\n      - name: a\n", FormatYAML, "duplicate"},
		{"bad json", "{", FormatJSON, "parse"},
		{"unknown format", "x", Format("ini"), "unsupported format"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Parse([]byte(tc.data), tc.format, "test")
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.want)
		})
	}
}

func TestLoadFS_DuplicateFormAcrossFiles(t *testing.T) {
	fsys := fstest.MapFS{
		"a.yaml": {Data: []byte("forms:\n  same:\n    fields:\n      - name: x\n")},
		"b.json": {Data: []byte(`{"forms":{"same":{"fields":[{"name":"y"}]}}}`)},
	}
	_, err := LoadFS(fsys)
	require.Error(t, err)
	assert.Contains(t, err.Error(), `duplicate form "same"`)
}

func TestLoadFS_Nil(t *testing.T) {
	store, err := LoadFS(nil)
	require.NoError(t, err)
	assert.True(t, store.Empty())
}
