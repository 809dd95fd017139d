package dsl

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// DefaultPattern — какие файлы считаются DSL при обходе каталога.
const DefaultPattern = "**/*.dsl"

var ErrSyntax = errors.New("dsl syntax error")

var (
	entityRe    = regexp.MustCompile(`^entity\s+(\w+)(?:\s+extends\s+([A-Za-z0-9_.]+))?\s*:$`)
	fieldRe     = regexp.MustCompile(`^\s*([\w_]+):\s*([^\s#]+)(.*)$`)
	moduleRe    = regexp.MustCompile(`^\s*module\s+([A-Za-z0-9_-]+)\s*$`)
	directiveRe = regexp.MustCompile(`^@(\w+)\s+(.+)$`)
	identRe     = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_.]*$`)
)

// SyntaxError указывает место ошибки разбора.
type SyntaxError struct {
	File string
	Line int
	Msg  string
}

func (e *SyntaxError) Error() string { return fmt.Sprintf("%s:%d: %s", e.File, e.Line, e.Msg) }

func (e *SyntaxError) Unwrap() error { return ErrSyntax }

// parse: options tokenizer — делит "k=v k2='v 2', ge=0" на токены, не рвёт внутри кавычек/скобок.
// Разделители: пробел, таб и запятая.
func splitOptionTokens(s string) []string {
	var out []string
	var buf []rune
	inSingle, inDouble := false, false
	bracketDepth := 0

	flush := func() {
		if len(buf) > 0 {
			out = append(out, string(buf))
			buf = buf[:0]
		}
	}

	for _, r := range s {
		switch r {
		case '\'':
			if !inDouble && bracketDepth == 0 {
				inSingle = !inSingle
			}
			buf = append(buf, r)
		case '"':
			if !inSingle && bracketDepth == 0 {
				inDouble = !inDouble
			}
			buf = append(buf, r)
		case '[':
			if !inSingle && !inDouble {
				bracketDepth++
			}
			buf = append(buf, r)
		case ']':
			if !inSingle && !inDouble && bracketDepth > 0 {
				bracketDepth--
			}
			buf = append(buf, r)
		default:
			if (r == ' ' || r == '\t' || r == ',') && !inSingle && !inDouble && bracketDepth == 0 {
				flush()
				continue
			}
			buf = append(buf, r)
		}
	}
	flush()
	return out
}

// glueType доклеивает к типу хвост, пока скобки не сбалансированы:
// "quantity[SizeUnit:MM;" + " x,y; decimal] required" -> "quantity[SizeUnit:MM; x,y; decimal]", " required".
func glueType(rawType, tail string) (string, string) {
	depth := strings.Count(rawType, "[") - strings.Count(rawType, "]")
	if depth <= 0 {
		return rawType, tail
	}
	for i, r := range tail {
		switch r {
		case '[':
			depth++
		case ']':
			depth--
			if depth == 0 {
				return rawType + tail[:i+1], tail[i+1:]
			}
		}
	}
	return rawType + tail, ""
}

// cutComment срезает "# ..." вне кавычек.
func cutComment(s string) string {
	inSingle, inDouble := false, false
	for i, r := range s {
		switch r {
		case '\'':
			if !inDouble {
				inSingle = !inSingle
			}
		case '"':
			if !inSingle {
				inDouble = !inDouble
			}
		case '#':
			if !inSingle && !inDouble {
				return s[:i]
			}
		}
	}
	return s
}

func unquote(v string) string {
	if len(v) >= 2 {
		if (v[0] == '"' && v[len(v)-1] == '"') || (v[0] == '\'' && v[len(v)-1] == '\'') {
			return v[1 : len(v)-1]
		}
	}
	return v
}

// ParseType разбирает выражение типа поля.
func ParseType(expr string) (TypeSpec, error) {
	expr = strings.TrimSpace(expr)
	open := strings.IndexByte(expr, '[')
	if open < 0 {
		base := strings.ToLower(expr)
		switch base {
		case "string", "int", "decimal", "float", "bool", "date", "datetime", "dict":
			return TypeSpec{Base: base}, nil
		}
		return TypeSpec{}, fmt.Errorf("unknown type %q", expr)
	}
	if !strings.HasSuffix(expr, "]") {
		return TypeSpec{}, fmt.Errorf("unbalanced brackets in %q", expr)
	}
	head := strings.ToLower(strings.TrimSpace(expr[:open]))
	inner := strings.TrimSpace(expr[open+1 : len(expr)-1])
	if inner == "" {
		return TypeSpec{}, fmt.Errorf("empty %s[]", head)
	}

	switch head {
	case "enum":
		if inner[0] == '"' || inner[0] == '\'' {
			vals := splitList(inner, ",")
			for i, v := range vals {
				vals[i] = unquote(v)
			}
			return TypeSpec{Base: "enum", Values: vals}, nil
		}
		if !identRe.MatchString(inner) {
			return TypeSpec{}, fmt.Errorf("bad enumeration name %q", inner)
		}
		return TypeSpec{Base: "enum", Family: inner}, nil

	case "subset":
		fam, tags, ok := strings.Cut(inner, ":")
		if !ok {
			return TypeSpec{}, fmt.Errorf("subset needs Family: TAG, ... in %q", expr)
		}
		vals := splitList(tags, ",")
		if len(vals) == 0 {
			return TypeSpec{}, fmt.Errorf("subset of %s lists no members", fam)
		}
		return TypeSpec{Base: "subset", Family: strings.TrimSpace(fam), Values: vals}, nil

	case "quantity":
		parts := strings.Split(inner, ";")
		if len(parts) > 3 {
			return TypeSpec{}, fmt.Errorf("quantity takes at most 3 sections in %q", expr)
		}
		fam, unit, ok := strings.Cut(parts[0], ":")
		if !ok {
			return TypeSpec{}, fmt.Errorf("quantity needs Family:DEFAULT in %q", expr)
		}
		ts := TypeSpec{Base: "quantity", Family: strings.TrimSpace(fam), Unit: strings.TrimSpace(unit), Fields: []string{"value"}}
		if len(parts) > 1 {
			if fs := splitList(parts[1], ","); len(fs) > 0 {
				ts.Fields = fs
			}
		}
		if len(parts) > 2 {
			ts.Scalar = strings.ToLower(strings.TrimSpace(parts[2]))
		}
		return ts, nil

	case "ref":
		if !identRe.MatchString(inner) {
			return TypeSpec{}, fmt.Errorf("bad ref target %q", inner)
		}
		return TypeSpec{Base: "ref", Targets: []string{inner}}, nil

	case "oneof":
		alts := splitList(inner, ",")
		for _, a := range alts {
			if !identRe.MatchString(a) {
				return TypeSpec{}, fmt.Errorf("bad oneof alternative %q", a)
			}
		}
		return TypeSpec{Base: "oneof", Targets: alts}, nil

	case "array":
		elem, err := ParseType(inner)
		if err != nil {
			return TypeSpec{}, err
		}
		return TypeSpec{Base: "array", Elem: &elem}, nil
	}
	return TypeSpec{}, fmt.Errorf("unknown type constructor %q", head)
}

func splitList(s, sep string) []string {
	var out []string
	for _, p := range strings.Split(s, sep) {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// LoadEntities читает один .dsl файл и возвращает список Entity
func LoadEntities(path string) ([]*Entity, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()
	return ParseEntities(file, path)
}

// ParseEntities разбирает DSL из r; name используется в сообщениях об ошибках.
func ParseEntities(r io.Reader, name string) ([]*Entity, error) {
	var entities []*Entity
	var current *Entity
	currentModule := ""
	lineNo := 0

	fail := func(format string, args ...any) error {
		return &SyntaxError{File: name, Line: lineNo, Msg: fmt.Sprintf(format, args...)}
	}

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		// module ...
		if m := moduleRe.FindStringSubmatch(line); m != nil {
			currentModule = m[1]
			continue
		}

		// entity <Name> [extends <Base>]:
		if strings.HasPrefix(line, "entity ") {
			m := entityRe.FindStringSubmatch(line)
			if m == nil {
				return nil, fail("bad entity header %q", line)
			}
			if currentModule == "" {
				return nil, fail("entity %q has no module — add `module <name>` above it", m[1])
			}
			if current != nil {
				entities = append(entities, current)
			}
			current = &Entity{
				Name:    m[1],
				Extends: m[2],
				Module:  currentModule,
				Source:  fmt.Sprintf("%s:%d", name, lineNo),
			}
			continue
		}
		if current == nil {
			return nil, fail("unexpected %q outside of an entity", line)
		}

		// @version / @described_by
		if strings.HasPrefix(line, "@") {
			m := directiveRe.FindStringSubmatch(strings.TrimSpace(cutComment(line)))
			if m == nil {
				return nil, fail("bad directive %q", line)
			}
			val := unquote(strings.TrimSpace(m[2]))
			switch strings.ToLower(m[1]) {
			case "version":
				current.Version = val
			case "described_by", "describedby":
				current.DescribedBy = val
			default:
				return nil, fail("unknown directive @%s", m[1])
			}
			continue
		}

		m := fieldRe.FindStringSubmatch(line)
		if m == nil {
			return nil, fail("cannot parse %q", line)
		}
		rawType, tail := glueType(m[2], m[3])
		ts, err := ParseType(rawType)
		if err != nil {
			return nil, fail("field %s: %v", m[1], err)
		}

		optsRaw := strings.TrimSpace(cutComment(tail))
		// необязательный префикс "options:"
		if strings.HasPrefix(strings.ToLower(optsRaw), "options:") {
			optsRaw = strings.TrimSpace(optsRaw[len("options:"):])
		}

		f := Field{Name: m[1], Type: ts, Options: map[string]string{}, Line: lineNo}
		for _, tok := range splitOptionTokens(optsRaw) {
			// флаг без значения → "true"
			if !strings.Contains(tok, "=") {
				f.Options[strings.ToLower(tok)] = "true"
				continue
			}
			k, v, _ := strings.Cut(tok, "=")
			k = strings.ToLower(strings.TrimSpace(k))
			if k == "" {
				return nil, fail("field %s: empty option name in %q", f.Name, tok)
			}
			f.Options[k] = unquote(strings.TrimSpace(v))
		}
		for _, prev := range current.Fields {
			if prev.Name == f.Name {
				return nil, fail("duplicate field %q in %s", f.Name, current.Name)
			}
		}
		current.Fields = append(current.Fields, f)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	if current != nil {
		entities = append(entities, current)
	}
	return entities, nil
}

// LoadAllEntities собирает сущности из всех файлов под root, подходящих под pattern
// (doublestar, по умолчанию **/*.dsl). Ключ — FQN "module.Name".
func LoadAllEntities(root, pattern string) (map[string]*Entity, error) {
	if strings.TrimSpace(pattern) == "" {
		pattern = DefaultPattern
	}
	if !doublestar.ValidatePattern(pattern) {
		return nil, fmt.Errorf("invalid DSL pattern %q", pattern)
	}
	matches, err := doublestar.Glob(os.DirFS(root), pattern)
	if err != nil {
		return nil, fmt.Errorf("glob %s: %w", pattern, err)
	}
	sort.Strings(matches)

	result := make(map[string]*Entity)
	for _, rel := range matches {
		path := filepath.Join(root, filepath.FromSlash(rel))
		st, err := os.Stat(path)
		if err != nil {
			return nil, err
		}
		if st.IsDir() {
			continue
		}
		ents, err := LoadEntities(path)
		if err != nil {
			return nil, fmt.Errorf("parse %s: %w", path, err)
		}
		for _, e := range ents {
			fqn := e.FQN()
			if prev, exists := result[fqn]; exists {
				return nil, fmt.Errorf("duplicate entity %q in module %q (%s and %s)", e.Name, e.Module, prev.Source, e.Source)
			}
			result[fqn] = e
		}
	}
	return result, nil
}
