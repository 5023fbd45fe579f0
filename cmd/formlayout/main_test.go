package main

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/goliatone/go-formlayout/pkg/prompt"
	"github.com/goliatone/go-formlayout/pkg/render"
)

const document = `
forms:
  contact:
    fields:
      - {name: name, type: CharField}
      - {name: note, type: CharField, required: false, widget: Textarea}
      - {name: token, type: CharField, widget: HiddenInput}
    layout:
      - group: About you
        children: [name]
`

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	root := newRootCmd()
	var out, errOut bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&errOut)
	root.SetArgs(args)
	err := root.ExecuteContext(context.Background())
	return out.String(), err
}

func TestRender_Document(t *testing.T) {
	file := writeFile(t, "forms.yaml", document)
	values := writeFile(t, "values.json", `{"name": "Ada", "token": "t"}`)
	errs := writeFile(t, "errors.json", `{"name": ["Too short"], "__all__": ["Check the form"]}`)

	out, err := execute(t, "render", "--file", file, "--values", values, "--errors", errs, "--csrf", "abc")
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(out, `<input type="hidden" name="_csrf" value="abc" /><input type="hidden" name="token" id="id_token" value="t" />`), out)
	assert.Contains(t, out, `<ul class="errors"><li>Check the form</li></ul><fieldset><legend>About you</legend>`)
	assert.Contains(t, out, `value="Ada"`)
	assert.Contains(t, out, `<ul class="errors"><li>Too short</li></ul>`)
	assert.Contains(t, out, `<textarea name="note" id="id_note"`)
}

func TestRender_HiddenFieldsMergedAndSorted(t *testing.T) {
	file := writeFile(t, "forms.yaml", document)

	out, err := execute(t, "render", "--file", file,
		"--hidden", "next=/done", "--hidden", "_csrf=stale", "--csrf", "fresh")
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(out,
		`<input type="hidden" name="_csrf" value="fresh" /><input type="hidden" name="next" value="/done" />`), out)
	assert.NotContains(t, out, "stale")
}

func TestRender_Errors(t *testing.T) {
	file := writeFile(t, "forms.yaml", document)

	_, err := execute(t, "render", "--file", file, "--mode", "table")
	assert.True(t, errors.Is(err, render.ErrUnsupportedOutputMode), "got %v", err)

	_, err = execute(t, "render", "--file", file, "--form", "nope")
	assert.Error(t, err)

	_, err = execute(t, "render")
	assert.EqualError(t, err, "one of --file or --openapi is required")
}

func TestRender_OutputFile(t *testing.T) {
	file := writeFile(t, "forms.yaml", document)
	target := filepath.Join(t.TempDir(), "out.html")

	out, err := execute(t, "render", "--file", file, "-o", target)
	require.NoError(t, err)
	assert.Empty(t, out)

	written, err := os.ReadFile(target)
	require.NoError(t, err)
	assert.Contains(t, string(written), "<fieldset>")
}

type answerDriver struct{}

func (answerDriver) Ask(_ context.Context, q prompt.Question) (prompt.Answer, error) {
	if q.Kind == prompt.AskMultiline {
		return prompt.Answer{Text: "hello"}, nil
	}
	return prompt.Answer{Text: "Grace"}, nil
}

func TestRender_Interactive(t *testing.T) {
	file := writeFile(t, "forms.yaml", document)
	cmd := newRenderCmdWithDriver(answerDriver{})
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"--file", file, "--interactive"})

	require.NoError(t, cmd.ExecuteContext(context.Background()))
	assert.Contains(t, out.String(), `value="Grace"`)
	assert.Contains(t, out.String(), `>hello</textarea>`)
}

func TestFields(t *testing.T) {
	file := writeFile(t, "forms.yaml", document)
	out, err := execute(t, "fields", "--file", file)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 4)
	assert.True(t, strings.HasPrefix(lines[1], "name "))
	assert.Contains(t, lines[2], "Textarea")
	assert.Contains(t, lines[3], "HiddenInput")
}

const spec = `{
  "openapi": "3.0.3",
  "info": {"title": "Signup", "version": "1.0.0"},
  "paths": {},
  "components": {"schemas": {"Signup": {
    "type": "object",
    "required": ["email"],
    "x-formlayout-layout": [{"columns": [["email"], ["plan"]]}],
    "properties": {
      "email": {"type": "string", "format": "email"},
      "plan": {"type": "string", "enum": ["free", "pro"], "x-formlayout-size": 3}
    }
  }}}
}`

func TestRender_OpenAPI(t *testing.T) {
	file := writeFile(t, "openapi.json", spec)
	out, err := execute(t, "render", "--openapi", file, "--schema", "Signup")
	require.NoError(t, err)
	assert.Contains(t, out, `<div class="yui-g"><div class="yui-u first"><div class="field EmailField TextInput Required">`)
	assert.Contains(t, out, `<select name="plan" id="id_plan"`)

	_, err = execute(t, "render", "--openapi", file)
	assert.Error(t, err)
}

func TestLint(t *testing.T) {
	file := writeFile(t, "openapi.json", spec)
	root := newRootCmd()
	var errOut bytes.Buffer
	root.SetOut(&bytes.Buffer{})
	root.SetErr(&errOut)
	root.SetArgs([]string{"lint", file})

	err := root.ExecuteContext(context.Background())
	assert.EqualError(t, err, "1 extension violation(s)")
	assert.Contains(t, errOut.String(), `unsupported extension "x-formlayout-size"`)
}
