package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const benchDSL = `module lab

entity Bench:
  @version 1.2.0
  @described_by "https://example.org/bench.py"
  height: decimal required ge=0
`

type runResult struct {
	stdout, stderr string
	err            error
}

// run выполняет команду с изолированными каталогами DSL, справочников и вывода.
func run(t *testing.T, dir string, args ...string) runResult {
	t.Helper()
	cmd := rootCmd()
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetIn(strings.NewReader(`{"height": 2.50}`))
	base := []string{
		"--config", "",
		"--dsl", filepath.Join(dir, "dsl"),
		"--enums", filepath.Join(dir, "enums"),
		"--out", dir,
		"--log-level", "error",
	}
	cmd.SetArgs(append(args, base...))
	err := cmd.Execute()
	return runResult{out.String(), errOut.String(), err}
}

func workspace(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "dsl"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "dsl", "bench.dsl"), []byte(benchDSL), 0o644))
	return dir
}

func writeJSON(t *testing.T, dir, name, body string) string {
	t.Helper()
	p := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(p, []byte(body), 0o644))
	return p
}

func TestVersion(t *testing.T) {
	res := run(t, t.TempDir(), "version")
	require.NoError(t, res.err)
	assert.Equal(t, "aind version "+Version+"\n", res.stdout)
}

func TestCatalogCommand(t *testing.T) {
	dir := workspace(t)
	res := run(t, dir, "catalog")
	require.NoError(t, res.err, res.stderr)
	assert.Regexp(t, `(?m)^rig\.Rig\s+core\s+0\.1\.0`, res.stdout)
	assert.Regexp(t, `(?m)^lab\.Bench\s+core\s+1\.2\.0`, res.stdout)
	assert.Regexp(t, `(?m)^units\.SizeValueMM\s+quantity`, res.stdout)
	assert.Regexp(t, `(?m)^device\.Camera\s+record`, res.stdout)
}

func TestValidateCommand(t *testing.T) {
	dir := workspace(t)
	good := writeJSON(t, dir, "good.json", `{"height": 1.5}`)
	bad := writeJSON(t, dir, "bad.json", `{"height": -1, "color": "red"}`)

	res := run(t, dir, "validate", "lab.Bench", good, "-")
	require.NoError(t, res.err, res.stderr)
	assert.Contains(t, res.stdout, good+": ok")
	assert.Contains(t, res.stdout, "-: ok")

	res = run(t, dir, "validate", "Bench", good, bad)
	require.ErrorIs(t, res.err, errInvalid)
	assert.Contains(t, res.err.Error(), "1 of 2")
	assert.Contains(t, res.stderr, "[out_of_range]")
	assert.Contains(t, res.stderr, "[unknown_field]")

	res = run(t, dir, "validate", "lab.Nope", good)
	assert.ErrorContains(t, res.err, `unknown entity "lab.Nope"`)
}

func TestWriteCommand(t *testing.T) {
	dir := workspace(t)

	res := run(t, dir, "write", "lab.Bench", "-", "--prefix", "fip")
	require.NoError(t, res.err, res.stderr)
	path := filepath.Join(dir, "fip_bench.json")
	assert.Equal(t, path+"\n", res.stdout)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "{\n"+
		"   \"describedBy\": \"https://example.org/bench.py\",\n"+
		"   \"schema_version\": \"1.2.0\",\n"+
		"   \"height\": 2.5\n"+
		"}", string(data))

	src := writeJSON(t, dir, "size.json", `{"value": 3}`)
	res = run(t, dir, "write", "units.SizeValueMM", src)
	assert.ErrorContains(t, res.err, "not a core record")

	res = run(t, dir, "write", "lab.Bench", writeJSON(t, dir, "bad.json", `{}`))
	assert.ErrorIs(t, res.err, errInvalid)
	assert.Contains(t, res.stderr, "[required]")
}

func TestDDLCommand(t *testing.T) {
	dir := workspace(t)
	res := run(t, dir, "ddl")
	require.NoError(t, res.err, res.stderr)
	assert.Contains(t, res.stdout, "-- 000_schemas_and_tables")
	assert.Contains(t, res.stdout, `create table if not exists "lab"."benchs"`)

	res = run(t, dir, "ddl", "--apply")
	assert.ErrorContains(t, res.err, "database URL")
}

func TestBadConfigRejected(t *testing.T) {
	res := run(t, t.TempDir(), "catalog", "--log-format", "xml")
	assert.ErrorContains(t, res.err, "log format")
}

func TestRepositorySamples(t *testing.T) {
	cmd := rootCmd()
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs([]string{"catalog",
		"--config", "",
		"--dsl", filepath.Join("..", "..", "dsl"),
		"--enums", filepath.Join("..", "..", "reference", "enums"),
		"--log-level", "error",
	})
	require.NoError(t, cmd.Execute(), errOut.String())
	assert.Regexp(t, `(?m)^behavior\.BehaviorRig\s+core\s+0\.1\.0`, out.String())
	assert.Regexp(t, `(?m)^behavior\.Arena\s+record`, out.String())
}
