package dsl

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bendichter/aind-data-schema/internal/reference"
	"github.com/bendichter/aind-data-schema/internal/schema"
	"github.com/bendichter/aind-data-schema/internal/vocab"
)

const rigDSL = `
# test rig
module lab

entity Part:
  name: string required title="Part name"
  maker: subset[Maker: A, B] required
  size: quantity[Size:MM; width, height; decimal]
  notes: string   # free text

entity Stand:
  kind: string const=stand
  height: decimal ge=0

entity Box extends Part:
  status: enum["new", "used", "broken box"] default=new
  tags: array[string] unique
  mount: oneof[Stand, Part]

entity Bench:
  @version 1.2.0
  @described_by "https://example.org/bench.py"
  boxes: array[ref[Box]]
  maker: enum[Maker]
`

func baseCatalog(t *testing.T) *reference.Catalog {
	t.Helper()
	maker := vocab.MustEnum("Maker", vocab.Label("A", "Acme"), vocab.Label("B", "Blue"), vocab.Label("C", "Cobalt"))
	size := vocab.MustEnum("Size", vocab.Label("MM", "millimeter"), vocab.Label("CM", "centimeter"))
	c, err := reference.NewCatalog(reference.WithEnums(maker, size))
	require.NoError(t, err)
	return c
}

func parse(t *testing.T, src string) map[string]*Entity {
	t.Helper()
	ents, err := ParseEntities(strings.NewReader(src), "test.dsl")
	require.NoError(t, err)
	out := map[string]*Entity{}
	for _, e := range ents {
		out[e.FQN()] = e
	}
	return out
}

func TestParseEntities(t *testing.T) {
	raw := parse(t, rigDSL)
	require.Len(t, raw, 4)

	part := raw["lab.Part"]
	require.NotNil(t, part)
	require.Len(t, part.Fields, 4)
	assert.Equal(t, "Part name", part.Fields[0].Options["title"])
	assert.Equal(t, "true", part.Fields[0].Options["required"])
	assert.Equal(t, TypeSpec{Base: "subset", Family: "Maker", Values: []string{"A", "B"}}, part.Fields[1].Type)
	assert.Equal(t, TypeSpec{Base: "quantity", Family: "Size", Unit: "MM", Fields: []string{"width", "height"}, Scalar: "decimal"}, part.Fields[2].Type)
	assert.Empty(t, part.Fields[3].Options)

	box := raw["lab.Box"]
	assert.Equal(t, "Part", box.Extends)
	assert.Equal(t, []string{"new", "used", "broken box"}, box.Fields[0].Type.Values)
	assert.Equal(t, "new", box.Fields[0].Options["default"])

	bench := raw["lab.Bench"]
	assert.Equal(t, "1.2.0", bench.Version)
	assert.Equal(t, "https://example.org/bench.py", bench.DescribedBy)
	assert.Equal(t, "array", bench.Fields[0].Type.Base)
	assert.Equal(t, []string{"Box"}, bench.Fields[0].Type.Elem.Targets)
}

func TestParseErrors(t *testing.T) {
	testCases := []struct {
		name string
		src  string
	}{
		{"no module", "entity A:\n  x: string\n"},
		{"field outside entity", "module m\nx: string\n"},
		{"unknown type", "module m\nentity A:\n  x: strnig\n"},
		{"unbalanced", "module m\nentity A:\n  x: array[string\n"},
		{"duplicate field", "module m\nentity A:\n  x: string\n  x: int\n"},
		{"unknown directive", "module m\nentity A:\n  @owner me\n"},
		{"bad header", "module m\nentity A extends:\n"},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := ParseEntities(strings.NewReader(tc.src), "bad.dsl")
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrSyntax)
			assert.Contains(t, err.Error(), "bad.dsl:")
		})
	}
}

func TestCompile(t *testing.T) {
	cat, err := Compile(parse(t, rigDSL), baseCatalog(t))
	require.NoError(t, err)
	assert.Empty(t, cat.Lint())

	_, box, ok := cat.Entity("lab.Box")
	require.True(t, ok)
	names := []string{}
	for _, f := range box.Fields() {
		names = append(names, f.Name)
	}
	assert.Equal(t, []string{"name", "maker", "size", "notes", "status", "tags", "mount"}, names)

	r, err := box.New(map[string]any{
		"name":  "b1",
		"maker": "Blue",
		"size":  map[string]any{"width": 1, "height": "2.5"},
		"tags":  []any{"x"},
		"mount": map[string]any{"height": 3},
	})
	require.NoError(t, err)
	st, _ := r.Get("status")
	assert.Equal(t, "new", st.(vocab.Member).Name())
	mount, _ := r.Get("mount")
	assert.Equal(t, "Stand", mount.(*schema.Record).Entity().Name())

	_, err = box.New(map[string]any{"name": "b", "maker": "Cobalt"})
	assert.ErrorIs(t, err, schema.ErrInvalidEnumMember)

	_, err = box.New(map[string]any{"name": "b", "maker": "Acme", "tags": []any{"x", "x"}})
	assert.ErrorIs(t, err, schema.ErrDuplicateItem)
}

func TestCompileCoreEntity(t *testing.T) {
	cat, err := Compile(parse(t, rigDSL), baseCatalog(t))
	require.NoError(t, err)
	_, bench, ok := cat.Entity("Bench")
	require.True(t, ok)
	require.True(t, bench.IsCore())
	assert.Equal(t, "1.2.0", bench.SchemaVersion())

	_, err = bench.New(map[string]any{"boxes": []any{map[string]any{"name": "b", "maker": "A"}}})
	assert.ErrorIs(t, err, schema.ErrInvalidEnumMember, "a tag is not a canonical name")

	r, err := bench.New(map[string]any{"boxes": []any{map[string]any{"name": "b", "maker": "Acme"}}, "maker": "Cobalt"})
	require.NoError(t, err)
	b, err := json.Marshal(r)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(b), `{"describedBy":"https://example.org/bench.py","schema_version":"1.2.0","boxes":[`))
}

func TestCompileQuantitiesAreShared(t *testing.T) {
	src := "module m\nentity A:\n  w: quantity[Size:CM]\nentity B:\n  w: quantity[Size:centimeter]\n"
	cat, err := Compile(parse(t, src), baseCatalog(t))
	require.NoError(t, err)
	_, a, _ := cat.Entity("m.A")
	_, b, _ := cat.Entity("m.B")
	fa, _ := a.Field("w")
	fb, _ := b.Field("w")
	assert.Same(t, fa.Entity, fb.Entity)
	assert.True(t, fa.Entity.IsQuantity())
	_, _, ok := cat.Entity("units.Quantity[Size:CM;value]")
	assert.True(t, ok)
}

func TestCompileErrors(t *testing.T) {
	testCases := []struct {
		name string
		src  string
		want error
	}{
		{"unknown enum", "module m\nentity A:\n  x: enum[Nope]\n", ErrUnknownName},
		{"unknown ref", "module m\nentity A:\n  x: ref[Nope]\n", ErrUnknownName},
		{"self cycle", "module m\nentity A:\n  x: ref[A]\n", ErrCycle},
		{"mutual cycle", "module m\nentity A:\n  x: ref[B]\nentity B:\n  y: array[ref[A]]\n", ErrCycle},
		{"bad default", "module m\nentity A:\n  x: int default=abc\n", schema.ErrInvalidSchema},
		{"core without described_by", "module m\nentity A:\n  @version 1.0.0\n  x: int\n", schema.ErrInvalidSchema},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Compile(parse(t, tc.src), baseCatalog(t))
			require.Error(t, err)
			assert.ErrorIs(t, err, tc.want)
		})
	}

	_, err := Compile(parse(t, "module m\nentity A:\n  x: string unique\n"), baseCatalog(t))
	assert.ErrorContains(t, err, "unique applies to arrays only")
	_, err = Compile(parse(t, "module m\nentity A:\n  x: string colour=red\n"), baseCatalog(t))
	assert.ErrorContains(t, err, `unknown option "colour"`)
}

func TestCompileResolvesAgainstCatalog(t *testing.T) {
	base := baseCatalog(t)
	shared := schema.MustEntity("Shared", schema.Text("id", "").Req())
	cat, err := base.With(reference.WithEntities("common", shared))
	require.NoError(t, err)

	out, err := Compile(parse(t, "module m\nentity A:\n  s: ref[common.Shared]\n"), cat)
	require.NoError(t, err)
	_, a, ok := out.Entity("m.A")
	require.True(t, ok)
	f, _ := a.Field("s")
	assert.Same(t, shared, f.Entity)
}

func TestLoadAllEntities(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, "core", "nested"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(root, "core", "a.dsl"), []byte("module m\nentity A:\n  x: string\n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(root, "core", "nested", "b.dsl"), []byte("module m\nentity B:\n  a: ref[A]\n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(root, "core", "notes.txt"), []byte("entity C:"), 0o644))

	raw, err := LoadAllEntities(root, "")
	require.NoError(t, err)
	assert.Len(t, raw, 2)
	assert.Contains(t, raw, "m.A")
	assert.Contains(t, raw, "m.B")

	only, err := LoadAllEntities(root, "core/*.dsl")
	require.NoError(t, err)
	assert.Len(t, only, 1)

	require.NoError(t, os.WriteFile(filepath.Join(root, "dup.dsl"), []byte("module m\nentity A:\n  y: int\n"), 0o644))
	_, err = LoadAllEntities(root, "")
	assert.ErrorContains(t, err, "duplicate entity")
}

func TestSplitOptionTokens(t *testing.T) {
	got := splitOptionTokens(`required, title="Serial number, rev" default='a b' ge=0`)
	assert.Equal(t, []string{"required", `title="Serial number, rev"`, `default='a b'`, "ge=0"}, got)
}

func TestBuildFromDirectories(t *testing.T) {
	root := t.TempDir()
	enums := filepath.Join(root, "enums")
	schemas := filepath.Join(root, "dsl")
	require.NoError(t, os.MkdirAll(enums, 0o755))
	require.NoError(t, os.MkdirAll(schemas, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(enums, "maker.yaml"), []byte(
		"name: Maker\nitems:\n  - code: A\n    name: Acme\n  - code: B\n    name: Blue\n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(schemas, "part.dsl"), []byte(
		"module lab\nentity Part:\n  maker: subset[Maker: A]\n"), 0o644))

	cat, err := Build(nil, Source{DSLDir: schemas, EnumsDir: enums})
	require.NoError(t, err)
	_, ok := cat.Enum("Maker")
	assert.True(t, ok)
	_, part, ok := cat.Entity("lab.Part")
	require.True(t, ok)
	_, err = part.New(map[string]any{"maker": "Blue"})
	assert.ErrorIs(t, err, schema.ErrInvalidEnumMember)
	assert.Empty(t, cat.Lint())

	base := baseCatalog(t)
	same, err := Build(base, Source{DSLDir: filepath.Join(root, "none"), EnumsDir: ""})
	require.NoError(t, err)
	assert.Same(t, base, same)

	_, err = Build(base, Source{DSLDir: filepath.Join(schemas, "part.dsl")})
	assert.ErrorContains(t, err, "not a directory")
}
