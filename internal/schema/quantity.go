package schema

import (
	"fmt"

	"github.com/bendichter/aind-data-schema/internal/vocab"
)

// NumericField — числовое поле величины. Kind 0 — тип берётся из общего скаляра фабрики.
type NumericField struct {
	Name string
	Kind Kind
}

// Names — поля величины без собственного типа.
func Names(names ...string) []NumericField {
	out := make([]NumericField, len(names))
	for i, n := range names {
		out[i] = NumericField{Name: n}
	}
	return out
}

// NewQuantity строит тип величины: обязательные числовые поля плюс поле unit
// из unitEnum со значением по умолчанию defaultUnit. Собственный Kind поля
// важнее общего scalar; без обоих поле получает decimal.
// Повторные вызовы с одинаковыми аргументами дают структурно равные описания.
func NewQuantity(name string, fields []NumericField, unitEnum *vocab.Enum, defaultUnit vocab.Member, scalar ...Kind) (*Entity, error) {
	if unitEnum == nil {
		return nil, fmt.Errorf("%w: quantity %s: no unit enumeration", ErrInvalidSchema, name)
	}
	if !unitEnum.Contains(defaultUnit) {
		return nil, fmt.Errorf("quantity %s: default unit: %w", name,
			&vocab.InvalidMemberError{Enum: unitEnum.Name(), Value: defaultUnit.String(), Allowed: unitEnum.Names()})
	}
	if len(fields) == 0 {
		return nil, fmt.Errorf("%w: quantity %s: no numeric fields", ErrInvalidSchema, name)
	}
	common := KindDecimal
	switch len(scalar) {
	case 0:
	case 1:
		if !scalar[0].Numeric() {
			return nil, fmt.Errorf("%w: quantity %s: scalar %s is not numeric", ErrInvalidSchema, name, scalar[0])
		}
		common = scalar[0]
	default:
		return nil, fmt.Errorf("%w: quantity %s: more than one scalar kind", ErrInvalidSchema, name)
	}
	all := make([]Field, 0, len(fields)+1)
	for _, nf := range fields {
		k := nf.Kind
		if k == 0 {
			k = common
		}
		if !k.Numeric() {
			return nil, fmt.Errorf("%w: quantity %s: field %q has no numeric type", ErrInvalidSchema, name, nf.Name)
		}
		all = append(all, Field{Name: nf.Name, Kind: k, Title: nf.Name, Required: true})
	}
	if _, clash := findField(all, "unit"); clash {
		return nil, fmt.Errorf("%w: quantity %s: field name \"unit\" is reserved", ErrInvalidSchema, name)
	}
	all = append(all, EnumOf("unit", "Unit", unitEnum).WithDefault(defaultUnit))

	e, err := NewEntity(name, all...)
	if err != nil {
		return nil, err
	}
	e.unit = unitEnum
	e.defaultUnit = defaultUnit
	return e, nil
}

func MustQuantity(name string, fields []NumericField, unitEnum *vocab.Enum, defaultUnit vocab.Member, scalar ...Kind) *Entity {
	e, err := NewQuantity(name, fields, unitEnum, defaultUnit, scalar...)
	if err != nil {
		panic(err)
	}
	return e
}

func findField(fields []Field, name string) (int, bool) {
	for i, f := range fields {
		if f.Name == name {
			return i, true
		}
	}
	return -1, false
}
