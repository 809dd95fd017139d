package schema

import (
	"fmt"
	"strings"

	"github.com/bendichter/aind-data-schema/internal/vocab"
)

// Kind — тип значения поля.
type Kind int

const (
	KindString Kind = iota + 1
	KindInt
	KindDecimal
	KindFloat
	KindBool
	KindDate
	KindDateTime
	KindEnum
	KindRecord
	KindOneOf
	KindArray
	KindDict
)

var kindNames = map[Kind]string{
	KindString:   "string",
	KindInt:      "int",
	KindDecimal:  "decimal",
	KindFloat:    "float",
	KindBool:     "bool",
	KindDate:     "date",
	KindDateTime: "datetime",
	KindEnum:     "enum",
	KindRecord:   "record",
	KindOneOf:    "oneof",
	KindArray:    "array",
	KindDict:     "dict",
}

func (k Kind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// Numeric — int, decimal или float.
func (k Kind) Numeric() bool {
	return k == KindInt || k == KindDecimal || k == KindFloat
}

// ParseKind распознаёт имена скалярных типов: string, int, decimal, float, bool, date, datetime, dict.
func ParseKind(s string) (Kind, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "string", "str", "text":
		return KindString, true
	case "int", "integer":
		return KindInt, true
	case "decimal":
		return KindDecimal, true
	case "float":
		return KindFloat, true
	case "bool", "boolean":
		return KindBool, true
	case "date":
		return KindDate, true
	case "datetime":
		return KindDateTime, true
	case "dict", "object":
		return KindDict, true
	}
	return 0, false
}

// Field описывает поле записи.
type Field struct {
	Name     string
	Kind     Kind
	Title    string
	Required bool
	Const    bool // значение зафиксировано в Default, переопределить нельзя
	Default  any

	Enum    *vocab.Enum   // KindEnum
	Allowed *vocab.Subset // KindEnum: разрешённое подмножество Enum
	Entity  *Entity       // KindRecord (в т.ч. величины с единицей)
	OneOf   []*Entity     // KindOneOf: первая подошедшая альтернатива
	Elem    *Field        // KindArray
	Unique  bool          // KindArray: элементы без повторов

	Ge, Le *float64 // границы для числовых полей
}

func Text(name, title string) Field     { return Field{Name: name, Kind: KindString, Title: title} }
func Int(name, title string) Field      { return Field{Name: name, Kind: KindInt, Title: title} }
func Decimal(name, title string) Field  { return Field{Name: name, Kind: KindDecimal, Title: title} }
func Float(name, title string) Field    { return Field{Name: name, Kind: KindFloat, Title: title} }
func Bool(name, title string) Field     { return Field{Name: name, Kind: KindBool, Title: title} }
func Date(name, title string) Field     { return Field{Name: name, Kind: KindDate, Title: title} }
func DateTime(name, title string) Field { return Field{Name: name, Kind: KindDateTime, Title: title} }
func Dict(name, title string) Field     { return Field{Name: name, Kind: KindDict, Title: title} }

// EnumOf — поле со значением из справочника.
func EnumOf(name, title string, e *vocab.Enum) Field {
	return Field{Name: name, Kind: KindEnum, Title: title, Enum: e}
}

// SubsetOf — поле со значением из справочника, ограниченное подмножеством.
func SubsetOf(name, title string, s *vocab.Subset) Field {
	return Field{Name: name, Kind: KindEnum, Title: title, Enum: s.Base(), Allowed: s}
}

func Nested(name, title string, e *Entity) Field {
	return Field{Name: name, Kind: KindRecord, Title: title, Entity: e}
}

func OneOf(name, title string, alts ...*Entity) Field {
	return Field{Name: name, Kind: KindOneOf, Title: title, OneOf: alts}
}

// ListOf — массив; имя элемента игнорируется.
func ListOf(name, title string, elem Field) Field {
	elem.Name = ""
	return Field{Name: name, Kind: KindArray, Title: title, Elem: &elem}
}

func (f Field) Req() Field { f.Required = true; return f }

func (f Field) WithDefault(v any) Field { f.Default = v; return f }

// Fixed делает поле константой со значением v.
func (f Field) Fixed(v any) Field { f.Const = true; f.Default = v; return f }

func (f Field) Min(v float64) Field { f.Ge = &v; return f }

func (f Field) Max(v float64) Field { f.Le = &v; return f }

func (f Field) UniqueItems() Field { f.Unique = true; return f }

// Описание типа записи. Не меняется после построения.
type Entity struct {
	name          string
	fields        []Field
	index         map[string]int
	schemaVersion string
	describedBy   string
	unit          *vocab.Enum // не nil — тип величины с единицей
	defaultUnit   vocab.Member
}

// Имена полей идентичности core-записей.
const (
	FieldDescribedBy   = "describedBy"
	FieldSchemaVersion = "schema_version"
)

// NewEntity строит описание записи: проверяет поля и нормализует значения по умолчанию.
func NewEntity(name string, fields ...Field) (*Entity, error) {
	if strings.TrimSpace(name) == "" {
		return nil, fmt.Errorf("%w: empty entity name", ErrInvalidSchema)
	}
	e := &Entity{
		name:   name,
		fields: make([]Field, 0, len(fields)),
		index:  make(map[string]int, len(fields)),
	}
	for _, f := range fields {
		if err := e.addField(f); err != nil {
			return nil, err
		}
	}
	return e, nil
}

func MustEntity(name string, fields ...Field) *Entity {
	e, err := NewEntity(name, fields...)
	if err != nil {
		panic(err)
	}
	return e
}

// NewCoreEntity — запись верхнего уровня: поля describedBy и schema_version
// идут первыми и зафиксированы.
func NewCoreEntity(name, version, describedBy string, fields ...Field) (*Entity, error) {
	if version == "" || describedBy == "" {
		return nil, fmt.Errorf("%w: %s: core entity needs schema version and describedBy", ErrInvalidSchema, name)
	}
	all := make([]Field, 0, len(fields)+2)
	all = append(all,
		Text(FieldDescribedBy, "Described by").Fixed(describedBy),
		Text(FieldSchemaVersion, "Version").Fixed(version),
	)
	all = append(all, fields...)
	e, err := NewEntity(name, all...)
	if err != nil {
		return nil, err
	}
	e.schemaVersion = version
	e.describedBy = describedBy
	return e, nil
}

func MustCoreEntity(name, version, describedBy string, fields ...Field) *Entity {
	e, err := NewCoreEntity(name, version, describedBy, fields...)
	if err != nil {
		panic(err)
	}
	return e
}

// Extend — новый тип с полями базового: поля с тем же именем заменяются на месте, новые добавляются в конец.
func (e *Entity) Extend(name string, fields ...Field) (*Entity, error) {
	all := append([]Field(nil), e.fields...)
	for _, f := range fields {
		if i, ok := e.index[f.Name]; ok {
			all[i] = f
			continue
		}
		all = append(all, f)
	}
	out, err := NewEntity(name, all...)
	if err != nil {
		return nil, err
	}
	out.schemaVersion = e.schemaVersion
	out.describedBy = e.describedBy
	return out, nil
}

func (e *Entity) MustExtend(name string, fields ...Field) *Entity {
	out, err := e.Extend(name, fields...)
	if err != nil {
		panic(err)
	}
	return out
}

func (e *Entity) addField(f Field) error {
	if strings.TrimSpace(f.Name) == "" {
		return fmt.Errorf("%w: %s: empty field name", ErrInvalidSchema, e.name)
	}
	if _, dup := e.index[f.Name]; dup {
		return fmt.Errorf("%w: %s: duplicate field %q", ErrInvalidSchema, e.name, f.Name)
	}
	if err := checkField(f); err != nil {
		return fmt.Errorf("%w: %s.%s: %v", ErrInvalidSchema, e.name, f.Name, err)
	}
	if f.Const && f.Default == nil {
		return fmt.Errorf("%w: %s.%s: const field without value", ErrInvalidSchema, e.name, f.Name)
	}
	if f.Default != nil {
		norm, errs := coerceField(f, f.Default, f.Name)
		if len(errs) > 0 {
			return fmt.Errorf("%w: %s.%s: bad default: %s", ErrInvalidSchema, e.name, f.Name, errs[0].Message)
		}
		f.Default = norm
	}
	e.index[f.Name] = len(e.fields)
	e.fields = append(e.fields, f)
	return nil
}

func checkField(f Field) error {
	switch f.Kind {
	case KindString, KindInt, KindDecimal, KindFloat, KindBool, KindDate, KindDateTime, KindDict:
	case KindEnum:
		if f.Enum == nil {
			return fmt.Errorf("enum field without enumeration")
		}
		if f.Allowed != nil && f.Allowed.Base() != f.Enum {
			return fmt.Errorf("subset of %s on %s field", f.Allowed.Base().Name(), f.Enum.Name())
		}
	case KindRecord:
		if f.Entity == nil {
			return fmt.Errorf("record field without entity")
		}
	case KindOneOf:
		if len(f.OneOf) == 0 {
			return fmt.Errorf("oneof field without alternatives")
		}
		for _, alt := range f.OneOf {
			if alt == nil {
				return fmt.Errorf("nil oneof alternative")
			}
		}
	case KindArray:
		if f.Elem == nil {
			return fmt.Errorf("array field without element type")
		}
		if err := checkField(*f.Elem); err != nil {
			return fmt.Errorf("element: %v", err)
		}
	default:
		return fmt.Errorf("unknown kind %s", f.Kind)
	}
	if (f.Ge != nil || f.Le != nil) && !f.Kind.Numeric() {
		return fmt.Errorf("bounds on non-numeric %s field", f.Kind)
	}
	return nil
}

func (e *Entity) Name() string { return e.name }

// Fields возвращает копию полей в порядке объявления.
func (e *Entity) Fields() []Field { return append([]Field(nil), e.fields...) }

func (e *Entity) Field(name string) (Field, bool) {
	i, ok := e.index[name]
	if !ok {
		return Field{}, false
	}
	return e.fields[i], true
}

// IsCore — запись верхнего уровня (есть schema_version и describedBy).
func (e *Entity) IsCore() bool { return e.schemaVersion != "" }

func (e *Entity) SchemaVersion() string { return e.schemaVersion }

func (e *Entity) DescribedBy() string { return e.describedBy }

// IsQuantity — тип построен фабрикой величин.
func (e *Entity) IsQuantity() bool { return e.unit != nil }

func (e *Entity) UnitEnum() *vocab.Enum { return e.unit }

func (e *Entity) DefaultUnit() vocab.Member { return e.defaultUnit }

func (e *Entity) String() string { return e.name }
