package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	json "github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/reoring/valchain"
)

const report = `{
  "violations": [
    {"field": "age", "errors": ["must be adult"]},
    {"field": "address", "violations": [{"field": "city", "errors": ["may not be null"]}]},
    {"field": "items", "violations": [{"field": "items", "index": 2, "errors": ["must be odd"]}]}
  ]
}`

func run(t *testing.T, stdin string, args ...string) (stdout, stderr string, err error) {
	t.Helper()
	var out, errOut bytes.Buffer
	a := newApp(strings.NewReader(stdin), &out, &errOut)
	cmd := a.root()
	cmd.SetArgs(args)
	err = cmd.Execute()
	return out.String(), errOut.String(), err
}

func TestRender_Text(t *testing.T) {
	out, _, err := run(t, report, "render")
	require.NoError(t, err)

	assert.Contains(t, out, "3 violation(s), 3 message(s)")
	for _, want := range []string{"age", "  - ", "must be adult", "address", "  city", "#2", "must be odd"} {
		assert.Contains(t, out, want)
	}
}

func TestRender_Empty(t *testing.T) {
	out, _, err := run(t, `{"violations": []}`, "render", "--fail")
	require.NoError(t, err)
	assert.Contains(t, out, "no violations")
}

func TestRender_FailExitCode(t *testing.T) {
	_, _, err := run(t, report, "render", "--fail")
	var ee *exitError
	require.ErrorAs(t, err, &ee)
	assert.Equal(t, 1, ee.code)
}

func TestRender_JSONAndYAMLRoundTrip(t *testing.T) {
	want, err := valchain.UnmarshalReport([]byte(report))
	require.NoError(t, err)

	out, _, err := run(t, report, "render", "--format", "json")
	require.NoError(t, err)
	got, err := valchain.UnmarshalReport([]byte(out))
	require.NoError(t, err)
	assert.True(t, valchain.EqualViolations(want, got))

	out, _, err = run(t, report, "render", "-f", "yaml")
	require.NoError(t, err)
	got, err = valchain.UnmarshalReportYAML([]byte(out))
	require.NoError(t, err)
	assert.True(t, valchain.EqualViolations(want, got))

	// YAML input is detected without --from.
	out2, _, err := run(t, out, "render", "-f", "json")
	require.NoError(t, err)
	got, err = valchain.UnmarshalReport([]byte(out2))
	require.NoError(t, err)
	assert.True(t, valchain.EqualViolations(want, got))
}

func TestFlatten(t *testing.T) {
	out, _, err := run(t, report, "flatten")
	require.NoError(t, err)
	assert.Contains(t, out, "/address/city")
	assert.Contains(t, out, ": may not be null")

	out, _, err = run(t, report, "flatten", "-f", "json")
	require.NoError(t, err)
	var iss valchain.Issues
	require.NoError(t, json.Unmarshal([]byte(out), &iss))
	assert.Equal(t, []string{"/age", "/address/city", "/items/2"}, iss.Paths())
}

func TestInputFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "report.json")
	require.NoError(t, os.WriteFile(path, []byte(report), 0o600))

	out, _, err := run(t, "", "flatten", "--input", path)
	require.NoError(t, err)
	assert.Contains(t, out, "/age")
}

func TestStrictRejectsDuplicateKeys(t *testing.T) {
	doc := `{"violations":[{"field":"a","errors":["x"],"errors":["y"]}]}`

	_, _, err := run(t, doc, "render")
	require.NoError(t, err)

	_, stderr, err := run(t, doc, "render", "--strict")
	var ee *exitError
	require.ErrorAs(t, err, &ee)
	assert.Equal(t, 2, ee.code)
	assert.ErrorIs(t, err, valchain.ErrDuplicateKey)
	assert.Contains(t, stderr, "duplicate")
}

func TestMalformedReport(t *testing.T) {
	_, _, err := run(t, `{"violations":[{"field":"a"}]}`, "render")
	assert.ErrorIs(t, err, valchain.ErrMalformedViolation)
}

func TestSchema(t *testing.T) {
	out, _, err := run(t, "", "schema")
	require.NoError(t, err)

	var doc map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &doc))
	assert.Contains(t, doc, "$defs")

	out, _, err = run(t, "", "schema", "--issues")
	require.NoError(t, err)
	assert.Contains(t, out, `"path"`)
}

func TestVerboseLogsToStderr(t *testing.T) {
	_, stderr, err := run(t, report, "flatten", "-v")
	require.NoError(t, err)
	assert.Contains(t, stderr, "flattened report")
}

func TestDetectEncoding(t *testing.T) {
	assert.Equal(t, "yaml", detectEncoding("r.yml", []byte("{")))
	assert.Equal(t, "json", detectEncoding("r.json", nil))
	assert.Equal(t, "json", detectEncoding("-", []byte("  {}")))
	assert.Equal(t, "yaml", detectEncoding("-", []byte("violations: []")))
}
