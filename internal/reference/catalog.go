package reference

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/bendichter/aind-data-schema/internal/schema"
	"github.com/bendichter/aind-data-schema/internal/vocab"
)

var (
	ErrDuplicate = errors.New("duplicate name")
	ErrAmbiguous = errors.New("ambiguous name")
)

// QuantityModule — модуль, под которым регистрируются типы величин.
const QuantityModule = "units"

// Catalog — неизменяемый реестр справочников и типов записей по именам.
// Сущности адресуются FQN "module.Name".
type Catalog struct {
	enums    map[string]*vocab.Enum
	entities map[string]*schema.Entity
}

type Option func(*Catalog) error

func WithEnums(enums ...*vocab.Enum) Option {
	return func(c *Catalog) error {
		for _, e := range enums {
			if _, dup := c.enums[e.Name()]; dup {
				return fmt.Errorf("%w: enum %q", ErrDuplicate, e.Name())
			}
			c.enums[e.Name()] = e
		}
		return nil
	}
}

func WithEntities(module string, entities ...*schema.Entity) Option {
	return func(c *Catalog) error {
		module = strings.TrimSpace(module)
		if module == "" || strings.Contains(module, ".") {
			return fmt.Errorf("invalid module name %q", module)
		}
		for _, e := range entities {
			fqn := module + "." + e.Name()
			if _, dup := c.entities[fqn]; dup {
				return fmt.Errorf("%w: entity %q", ErrDuplicate, fqn)
			}
			c.entities[fqn] = e
		}
		return nil
	}
}

// WithQuantities регистрирует типы величин в модуле units.
func WithQuantities(qs ...*schema.Entity) Option {
	return func(c *Catalog) error {
		for _, q := range qs {
			if !q.IsQuantity() {
				return fmt.Errorf("%s is not a quantity type", q.Name())
			}
		}
		return WithEntities(QuantityModule, qs...)(c)
	}
}

func NewCatalog(opts ...Option) (*Catalog, error) {
	c := &Catalog{
		enums:    make(map[string]*vocab.Enum),
		entities: make(map[string]*schema.Entity),
	}
	for _, opt := range opts {
		if err := opt(c); err != nil {
			return nil, err
		}
	}
	return c, nil
}

// With возвращает новый каталог: содержимое c плюс opts. Сам c не меняется.
func (c *Catalog) With(opts ...Option) (*Catalog, error) {
	out := &Catalog{
		enums:    make(map[string]*vocab.Enum, len(c.enums)),
		entities: make(map[string]*schema.Entity, len(c.entities)),
	}
	for k, v := range c.enums {
		out.enums[k] = v
	}
	for k, v := range c.entities {
		out.entities[k] = v
	}
	for _, opt := range opts {
		if err := opt(out); err != nil {
			return nil, err
		}
	}
	return out, nil
}

// Enum ищет справочник: сначала точное имя, потом без учёта регистра.
func (c *Catalog) Enum(name string) (*vocab.Enum, bool) {
	name = strings.TrimSpace(name)
	if e, ok := c.enums[name]; ok {
		return e, true
	}
	var found *vocab.Enum
	for k, e := range c.enums {
		if strings.EqualFold(k, name) {
			if found != nil {
				return nil, false
			}
			found = e
		}
	}
	return found, found != nil
}

// Enums — все справочники, по имени.
func (c *Catalog) Enums() []*vocab.Enum {
	out := make([]*vocab.Enum, 0, len(c.enums))
	for _, e := range c.enums {
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name() < out[j].Name() })
	return out
}

// NormalizeEntityName возвращает FQN ("module.name") по паре {module, entity}.
// Если module пустой, ищет уникальную сущность с таким именем среди всех модулей.
func (c *Catalog) NormalizeEntityName(module, name string) (string, bool) {
	if name == "" {
		return "", false
	}
	ml := strings.ToLower(strings.TrimSpace(module))
	nl := strings.ToLower(strings.TrimSpace(name))

	// 1) есть модуль — точное, потом регистронезависимое совпадение FQN
	if ml != "" {
		if _, ok := c.entities[module+"."+name]; ok {
			return module + "." + name, true
		}
		for fqn := range c.entities {
			fm, fn := SplitFQN(fqn)
			if strings.ToLower(fm) == ml && strings.ToLower(fn) == nl {
				return fqn, true
			}
		}
		return "", false
	}

	// 2) модуля нет — имя должно быть уникальным среди всех
	var found string
	for fqn := range c.entities {
		_, fn := SplitFQN(fqn)
		if fn == name {
			if found != "" {
				return "", false
			}
			found = fqn
		}
	}
	if found != "" {
		return found, true
	}
	for fqn := range c.entities {
		_, fn := SplitFQN(fqn)
		if strings.ToLower(fn) == nl {
			if found != "" {
				return "", false
			}
			found = fqn
		}
	}
	return found, found != ""
}

// Entity ищет тип записи по "module.Name" или по уникальному "Name".
func (c *Catalog) Entity(ref string) (string, *schema.Entity, bool) {
	mod, name := SplitFQN(strings.TrimSpace(ref))
	fqn, ok := c.NormalizeEntityName(mod, name)
	if !ok {
		return "", nil, false
	}
	return fqn, c.entities[fqn], true
}

// Entities — копия реестра сущностей по FQN.
func (c *Catalog) Entities() map[string]*schema.Entity {
	out := make(map[string]*schema.Entity, len(c.entities))
	for k, v := range c.entities {
		out[k] = v
	}
	return out
}

// FQNs — отсортированные имена сущностей.
func (c *Catalog) FQNs() []string {
	out := make([]string, 0, len(c.entities))
	for k := range c.entities {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// FQNOf ищет, под каким именем зарегистрирован именно этот тип.
func (c *Catalog) FQNOf(e *schema.Entity) (string, bool) {
	for fqn, v := range c.entities {
		if v == e {
			return fqn, true
		}
	}
	return "", false
}

// SplitFQN("module.entity") -> ("module","entity")
func SplitFQN(fqn string) (string, string) {
	i := strings.IndexByte(fqn, '.')
	if i <= 0 || i >= len(fqn)-1 {
		return "", fqn
	}
	return fqn[:i], fqn[i+1:]
}
