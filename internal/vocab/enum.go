package vocab

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Def — объявление одного элемента справочника: символьный тег и идентичность.
type Def struct {
	Tag string
	ID  PIDName
}

// Label объявляет обычный элемент: тег и человекочитаемое имя.
func Label(tag, label string) Def {
	return Def{Tag: tag, ID: PIDName{Name: label}}
}

// Entry объявляет обогащённый элемент с полной идентичностью (аббревиатура, реестр).
func Entry(tag string, id PIDName) Def {
	return Def{Tag: tag, ID: id}
}

// Enum — закрытый справочник. После NewEnum не меняется, безопасен для конкурентного чтения.
type Enum struct {
	name    string
	defs    []Def
	byTag   map[string]int
	byName  map[string]int
	byAbbr  map[string]int
	members []Member
}

// NewEnum строит справочник и обратные индексы. Дубли тегов, имён и аббревиатур — ошибка объявления.
func NewEnum(name string, defs ...Def) (*Enum, error) {
	if strings.TrimSpace(name) == "" {
		return nil, fmt.Errorf("enum: %w", ErrEmptyMember)
	}
	e := &Enum{
		name:    name,
		defs:    make([]Def, 0, len(defs)),
		byTag:   make(map[string]int, len(defs)),
		byName:  make(map[string]int, len(defs)),
		byAbbr:  make(map[string]int),
		members: make([]Member, 0, len(defs)),
	}
	for _, d := range defs {
		if d.Tag == "" || d.ID.Name == "" {
			return nil, fmt.Errorf("%s: %w (tag %q, name %q)", name, ErrEmptyMember, d.Tag, d.ID.Name)
		}
		if _, ok := e.byTag[d.Tag]; ok {
			return nil, fmt.Errorf("%s: %w %q", name, ErrDuplicateTag, d.Tag)
		}
		if prev, ok := e.byName[d.ID.Name]; ok {
			return nil, fmt.Errorf("%s: %w %q (%s and %s)", name, ErrDuplicateName, d.ID.Name, e.defs[prev].Tag, d.Tag)
		}
		if d.ID.RegistryIdentifier != "" && d.ID.Registry.IsZero() {
			return nil, fmt.Errorf("%s.%s: %w", name, d.Tag, ErrIncompleteIdentity)
		}
		i := len(e.defs)
		if a := d.ID.Abbreviation; a != "" {
			if prev, ok := e.byAbbr[a]; ok {
				return nil, fmt.Errorf("%s: %w: abbreviation %q (%s and %s)", name, ErrDuplicateName, a, e.defs[prev].Tag, d.Tag)
			}
			e.byAbbr[a] = i
		}
		e.defs = append(e.defs, d)
		e.byTag[d.Tag] = i
		e.byName[d.ID.Name] = i
		e.members = append(e.members, Member{enum: e, idx: i})
	}
	return e, nil
}

// MustEnum — для справочников уровня пакета; паникует на ошибке объявления.
func MustEnum(name string, defs ...Def) *Enum {
	e, err := NewEnum(name, defs...)
	if err != nil {
		panic(err)
	}
	return e
}

func (e *Enum) Name() string { return e.name }

func (e *Enum) Len() int { return len(e.defs) }

// Members возвращает элементы в порядке объявления.
func (e *Enum) Members() []Member {
	return append([]Member(nil), e.members...)
}

// Names — канонические имена в порядке объявления.
func (e *Enum) Names() []string {
	out := make([]string, len(e.defs))
	for i, d := range e.defs {
		out[i] = d.ID.Name
	}
	return out
}

// ByTag ищет элемент по символьному тегу.
func (e *Enum) ByTag(tag string) (Member, error) {
	if i, ok := e.byTag[tag]; ok {
		return e.members[i], nil
	}
	return Member{}, &NotFoundError{Enum: e.name, Key: tag, Kind: ErrTagNotFound}
}

func (e *Enum) MustTag(tag string) Member {
	m, err := e.ByTag(tag)
	if err != nil {
		panic(err)
	}
	return m
}

// ResolveByName ищет элемент по каноническому имени идентичности (регистрозависимо, точное совпадение).
func (e *Enum) ResolveByName(name string) (Member, error) {
	if i, ok := e.byName[name]; ok {
		return e.members[i], nil
	}
	return Member{}, &NotFoundError{Enum: e.name, Key: name, Kind: ErrNameNotFound}
}

// ResolveByAbbreviation ищет элемент по аббревиатуре.
func (e *Enum) ResolveByAbbreviation(abbr string) (Member, error) {
	if i, ok := e.byAbbr[abbr]; ok {
		return e.members[i], nil
	}
	return Member{}, &NotFoundError{Enum: e.name, Key: abbr, Kind: ErrAbbreviationNotFound}
}

// Contains — принадлежит ли m этому справочнику.
func (e *Enum) Contains(m Member) bool {
	return m.enum == e && m.idx >= 0 && m.idx < len(e.defs)
}

// Member — элемент справочника. Сравнивается через == : равны, если справочник и тег совпадают.
// Идентичность (PIDName) — описательная нагрузка, в равенстве не участвует.
type Member struct {
	enum *Enum
	idx  int
}

func (m Member) IsZero() bool { return m.enum == nil }

func (m Member) Enum() *Enum { return m.enum }

func (m Member) Tag() string {
	if m.enum == nil {
		return ""
	}
	return m.enum.defs[m.idx].Tag
}

// Name — каноническое имя; именно оно пишется в JSON.
func (m Member) Name() string {
	if m.enum == nil {
		return ""
	}
	return m.enum.defs[m.idx].ID.Name
}

func (m Member) Identity() PIDName {
	if m.enum == nil {
		return PIDName{}
	}
	return m.enum.defs[m.idx].ID
}

func (m Member) String() string {
	if m.enum == nil {
		return "<none>"
	}
	return m.enum.name + "." + m.Tag()
}

func (m Member) MarshalJSON() ([]byte, error) {
	if m.enum == nil {
		return []byte("null"), nil
	}
	return json.Marshal(m.Name())
}
