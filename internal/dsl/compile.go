package dsl

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"unicode"

	"github.com/bendichter/aind-data-schema/internal/reference"
	"github.com/bendichter/aind-data-schema/internal/schema"
	"github.com/bendichter/aind-data-schema/internal/vocab"
)

var (
	ErrUnknownName = errors.New("unknown name")
	ErrCycle       = errors.New("reference cycle")
)

const (
	stateVisiting = 1
	stateDone     = 2
)

type compiler struct {
	raw   map[string]*Entity
	cat   *reference.Catalog
	done  map[string]*schema.Entity
	state map[string]int
	stack []string

	enums      []*vocab.Enum
	quantities map[string]*schema.Entity
	qorder     []string
}

// Compile превращает разобранные сущности в описания schema.Entity.
// Ссылки ищутся сначала среди raw, потом в cat. Результат — новый каталог:
// содержимое cat плюс скомпилированные сущности, встроенные справочники и величины.
func Compile(raw map[string]*Entity, cat *reference.Catalog) (*reference.Catalog, error) {
	if cat == nil {
		cat, _ = reference.NewCatalog()
	}
	c := &compiler{
		raw:        raw,
		cat:        cat,
		done:       make(map[string]*schema.Entity, len(raw)),
		state:      make(map[string]int, len(raw)),
		quantities: make(map[string]*schema.Entity),
	}
	fqns := make([]string, 0, len(raw))
	for fqn := range raw {
		fqns = append(fqns, fqn)
	}
	sort.Strings(fqns)
	for _, fqn := range fqns {
		if _, err := c.entity(fqn); err != nil {
			return nil, err
		}
	}

	opts := []reference.Option{reference.WithEnums(c.enums...)}
	if len(c.qorder) > 0 {
		qs := make([]*schema.Entity, len(c.qorder))
		for i, n := range c.qorder {
			qs[i] = c.quantities[n]
		}
		opts = append(opts, reference.WithQuantities(qs...))
	}
	byModule := map[string][]*schema.Entity{}
	var modules []string
	for _, fqn := range fqns {
		mod := raw[fqn].Module
		if _, ok := byModule[mod]; !ok {
			modules = append(modules, mod)
		}
		byModule[mod] = append(byModule[mod], c.done[fqn])
	}
	sort.Strings(modules)
	for _, mod := range modules {
		opts = append(opts, reference.WithEntities(mod, byModule[mod]...))
	}
	return cat.With(opts...)
}

func (c *compiler) entity(fqn string) (*schema.Entity, error) {
	if e, ok := c.done[fqn]; ok {
		return e, nil
	}
	if c.state[fqn] == stateVisiting {
		return nil, fmt.Errorf("%w: %s -> %s", ErrCycle, strings.Join(c.stack, " -> "), fqn)
	}
	c.state[fqn] = stateVisiting
	c.stack = append(c.stack, fqn)
	defer func() { c.stack = c.stack[:len(c.stack)-1] }()

	re := c.raw[fqn]
	built, err := c.build(re)
	if err != nil {
		if errors.Is(err, ErrCycle) {
			return nil, err
		}
		return nil, fmt.Errorf("%s: entity %s: %w", re.Source, re.Name, err)
	}
	c.done[fqn] = built
	c.state[fqn] = stateDone
	return built, nil
}

func (c *compiler) build(re *Entity) (*schema.Entity, error) {
	fields := make([]schema.Field, 0, len(re.Fields))
	for _, rf := range re.Fields {
		f, err := c.field(re, rf)
		if err != nil {
			return nil, fmt.Errorf("field %s (line %d): %w", rf.Name, rf.Line, err)
		}
		fields = append(fields, f)
	}

	var base *schema.Entity
	if re.Extends != "" {
		b, err := c.resolve(re, re.Extends)
		if err != nil {
			return nil, fmt.Errorf("extends: %w", err)
		}
		base = b
	}

	switch {
	case re.Version != "" || re.DescribedBy != "":
		all := fields
		if base != nil {
			all = mergeFields(withoutIdentity(base.Fields()), fields)
		}
		return schema.NewCoreEntity(re.Name, re.Version, re.DescribedBy, all...)
	case base != nil:
		return base.Extend(re.Name, fields...)
	}
	return schema.NewEntity(re.Name, fields...)
}

func withoutIdentity(fields []schema.Field) []schema.Field {
	out := fields[:0]
	for _, f := range fields {
		if f.Name == schema.FieldDescribedBy || f.Name == schema.FieldSchemaVersion {
			continue
		}
		out = append(out, f)
	}
	return out
}

func mergeFields(base, own []schema.Field) []schema.Field {
	out := append([]schema.Field(nil), base...)
next:
	for _, f := range own {
		for i := range out {
			if out[i].Name == f.Name {
				out[i] = f
				continue next
			}
		}
		out = append(out, f)
	}
	return out
}

func (c *compiler) resolve(from *Entity, ref string) (*schema.Entity, error) {
	// 1) среди загружаемых сущностей
	if fqn, ok := c.rawName(from.Module, ref); ok {
		return c.entity(fqn)
	}
	// 2) в каталоге
	if _, e, ok := c.cat.Entity(ref); ok {
		return e, nil
	}
	return nil, fmt.Errorf("%w: entity %q", ErrUnknownName, ref)
}

// rawName: module.Name как есть; голое имя — сначала в своём модуле, потом уникальное среди всех.
func (c *compiler) rawName(module, ref string) (string, bool) {
	if strings.Contains(ref, ".") {
		_, ok := c.raw[ref]
		return ref, ok
	}
	if _, ok := c.raw[module+"."+ref]; ok {
		return module + "." + ref, true
	}
	var found string
	for fqn, e := range c.raw {
		if e.Name == ref {
			if found != "" {
				return "", false
			}
			found = fqn
		}
	}
	return found, found != ""
}

func (c *compiler) field(re *Entity, rf Field) (schema.Field, error) {
	f, err := c.typed(re, re.FQN()+"."+rf.Name, rf.Type)
	if err != nil {
		return schema.Field{}, err
	}
	f.Name = rf.Name

	keys := make([]string, 0, len(rf.Options))
	for k := range rf.Options {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		v := rf.Options[k]
		switch k {
		case "required":
			f.Required = isTrue(v)
		case "unique":
			if f.Kind != schema.KindArray {
				return schema.Field{}, fmt.Errorf("unique applies to arrays only")
			}
			f.Unique = isTrue(v)
		case "title":
			f.Title = v
		case "default", "const":
			lit, err := literal(f, v)
			if err != nil {
				return schema.Field{}, fmt.Errorf("%s: %w", k, err)
			}
			f.Default = lit
			if k == "const" {
				f.Const = true
			}
		case "ge", "le":
			x, err := strconv.ParseFloat(v, 64)
			if err != nil {
				return schema.Field{}, fmt.Errorf("%s=%q is not a number", k, v)
			}
			if k == "ge" {
				f.Ge = &x
			} else {
				f.Le = &x
			}
		default:
			return schema.Field{}, fmt.Errorf("unknown option %q", k)
		}
	}
	return f, nil
}

func isTrue(v string) bool {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "true", "1", "yes", "y", "on":
		return true
	}
	return false
}

// literal: составные типы задаются JSON, остальные — строкой, которую нормализует NewEntity.
func literal(f schema.Field, v string) (any, error) {
	switch f.Kind {
	case schema.KindArray, schema.KindDict, schema.KindRecord, schema.KindOneOf:
		dec := json.NewDecoder(bytes.NewReader([]byte(v)))
		dec.UseNumber()
		var out any
		if err := dec.Decode(&out); err != nil {
			return nil, fmt.Errorf("expected a JSON literal: %v", err)
		}
		return out, nil
	}
	return v, nil
}

func (c *compiler) typed(re *Entity, owner string, ts TypeSpec) (schema.Field, error) {
	switch ts.Base {
	case "string", "int", "decimal", "float", "bool", "date", "datetime", "dict":
		k, _ := schema.ParseKind(ts.Base)
		return schema.Field{Kind: k}, nil

	case "enum":
		if ts.Family == "" {
			e, err := c.inlineEnum(owner, ts.Values)
			if err != nil {
				return schema.Field{}, err
			}
			return schema.EnumOf("", "", e), nil
		}
		e, err := c.enum(ts.Family)
		if err != nil {
			return schema.Field{}, err
		}
		return schema.EnumOf("", "", e), nil

	case "subset":
		e, err := c.enum(ts.Family)
		if err != nil {
			return schema.Field{}, err
		}
		members := make([]vocab.Member, 0, len(ts.Values))
		for _, v := range ts.Values {
			m, err := member(e, v)
			if err != nil {
				return schema.Field{}, err
			}
			members = append(members, m)
		}
		s, err := e.Restrict(members...)
		if err != nil {
			return schema.Field{}, err
		}
		return schema.SubsetOf("", "", s), nil

	case "quantity":
		q, err := c.quantity(ts)
		if err != nil {
			return schema.Field{}, err
		}
		return schema.Nested("", "", q), nil

	case "ref":
		e, err := c.resolve(re, ts.Targets[0])
		if err != nil {
			return schema.Field{}, err
		}
		return schema.Nested("", "", e), nil

	case "oneof":
		alts := make([]*schema.Entity, 0, len(ts.Targets))
		for _, t := range ts.Targets {
			e, err := c.resolve(re, t)
			if err != nil {
				return schema.Field{}, err
			}
			alts = append(alts, e)
		}
		return schema.OneOf("", "", alts...), nil

	case "array":
		elem, err := c.typed(re, owner, *ts.Elem)
		if err != nil {
			return schema.Field{}, err
		}
		return schema.ListOf("", "", elem), nil
	}
	return schema.Field{}, fmt.Errorf("unsupported type %q", ts.Base)
}

func (c *compiler) enum(name string) (*vocab.Enum, error) {
	if e, ok := c.cat.Enum(name); ok {
		return e, nil
	}
	for _, e := range c.enums {
		if e.Name() == name {
			return e, nil
		}
	}
	return nil, fmt.Errorf("%w: enumeration %q", ErrUnknownName, name)
}

// member принимает тег, а если такого нет — каноническое имя.
func member(e *vocab.Enum, v string) (vocab.Member, error) {
	if m, err := e.ByTag(v); err == nil {
		return m, nil
	}
	m, err := e.ResolveByName(v)
	if err != nil {
		return vocab.Member{}, fmt.Errorf("%s has no member %q", e.Name(), v)
	}
	return m, nil
}

// inlineEnum строит справочник из enum["a","b"]; имя — module.Entity.field.
func (c *compiler) inlineEnum(owner string, values []string) (*vocab.Enum, error) {
	defs := make([]vocab.Def, 0, len(values))
	used := map[string]int{}
	for _, v := range values {
		tag := tagOf(v)
		if n := used[tag]; n > 0 {
			used[tag] = n + 1
			tag = fmt.Sprintf("%s_%d", tag, n+1)
		} else {
			used[tag] = 1
		}
		defs = append(defs, vocab.Label(tag, v))
	}
	e, err := vocab.NewEnum(owner, defs...)
	if err != nil {
		return nil, err
	}
	c.enums = append(c.enums, e)
	return e, nil
}

func tagOf(v string) string {
	var b strings.Builder
	for _, r := range strings.TrimSpace(v) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(unicode.ToUpper(r))
		} else {
			b.WriteByte('_')
		}
	}
	if b.Len() == 0 {
		return "EMPTY"
	}
	return b.String()
}

func (c *compiler) quantity(ts TypeSpec) (*schema.Entity, error) {
	fam, err := c.enum(ts.Family)
	if err != nil {
		return nil, err
	}
	def, err := member(fam, ts.Unit)
	if err != nil {
		return nil, err
	}
	var scalar []schema.Kind
	if ts.Scalar != "" {
		k, ok := schema.ParseKind(ts.Scalar)
		if !ok || !k.Numeric() {
			return nil, fmt.Errorf("quantity scalar %q is not numeric", ts.Scalar)
		}
		scalar = append(scalar, k)
	}
	name := fmt.Sprintf("Quantity[%s:%s;%s", fam.Name(), def.Tag(), strings.Join(ts.Fields, ","))
	if ts.Scalar != "" {
		name += ";" + ts.Scalar
	}
	name += "]"

	if q, ok := c.quantities[name]; ok {
		return q, nil
	}
	if _, q, ok := c.cat.Entity(reference.QuantityModule + "." + name); ok {
		return q, nil
	}
	q, err := schema.NewQuantity(name, schema.Names(ts.Fields...), fam, def, scalar...)
	if err != nil {
		return nil, err
	}
	c.quantities[name] = q
	c.qorder = append(c.qorder, name)
	return q, nil
}
