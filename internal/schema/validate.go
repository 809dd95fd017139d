package schema

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"reflect"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/bendichter/aind-data-schema/internal/vocab"
)

const (
	dateLayout          = "2006-01-02"
	naiveDateTimeLayout = "2006-01-02T15:04:05.999999999"
)

// New валидирует и НОРМАЛИЗУЕТ values под описание e.
// Все ошибки полей собираются в один *ValidationError.
func (e *Entity) New(values map[string]any) (*Record, error) {
	rec, errs := e.construct(values, "")
	if len(errs) > 0 {
		return nil, &ValidationError{Entity: e.name, Errors: errs}
	}
	return rec, nil
}

// MustNew — для записей, собираемых в коде; паникует на ошибке валидации.
func (e *Entity) MustNew(values map[string]any) *Record {
	r, err := e.New(values)
	if err != nil {
		panic(err)
	}
	return r
}

func (e *Entity) construct(obj map[string]any, path string) (*Record, []FieldError) {
	var errs []FieldError

	// 1) неизвестные поля
	keys := make([]string, 0, len(obj))
	for k := range obj {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		if _, ok := e.index[k]; !ok {
			errs = append(errs, ferr(CodeUnknownField, joinPath(path, k), "unknown field '"+k+"' for "+e.name))
		}
	}

	// 2) объявленные поля: required, типы, константы, границы
	vals := make(map[string]any, len(e.fields))
	for _, f := range e.fields {
		p := joinPath(path, f.Name)
		v, ok := obj[f.Name]
		if ok && v == nil {
			ok = false // null равносилен отсутствию
		}
		if !ok {
			if f.Default != nil {
				vals[f.Name] = f.Default
			} else if f.Required {
				errs = append(errs, ferr(CodeRequired, p, "field '"+p+"' is required"))
			}
			continue
		}
		norm, ferrs := coerceField(f, v, p)
		if len(ferrs) > 0 {
			errs = append(errs, ferrs...)
			continue
		}
		if f.Const && !valuesEqual(norm, f.Default) {
			errs = append(errs, ferr(CodeReadOnly, p, fmt.Sprintf("field '%s' is fixed to %s", p, displayValue(f.Default))))
			continue
		}
		vals[f.Name] = norm
	}
	if len(errs) > 0 {
		return nil, errs
	}
	return &Record{entity: e, values: vals}, nil
}

func joinPath(path, name string) string {
	if path == "" {
		return name
	}
	return path + "." + name
}

// coerceField приводит v к нормальной форме поля f.
func coerceField(f Field, v any, path string) (any, []FieldError) {
	mismatch := func(msg string) []FieldError {
		return []FieldError{ferr(CodeTypeMismatch, path, "field '"+path+"' "+msg)}
	}
	switch f.Kind {
	case KindString:
		s, ok := v.(string)
		if !ok {
			return nil, mismatch("must be string")
		}
		return s, nil
	case KindInt:
		n, err := toInt(v)
		if err != nil {
			return nil, mismatch(err.Error())
		}
		if fe := checkRange(f, float64(n), path); fe != nil {
			return nil, []FieldError{*fe}
		}
		return n, nil
	case KindDecimal:
		d, err := toDecimal(v)
		if err != nil {
			return nil, mismatch(err.Error())
		}
		if fe := checkRange(f, d.InexactFloat64(), path); fe != nil {
			return nil, []FieldError{*fe}
		}
		return d, nil
	case KindFloat:
		x, err := toFloat(v)
		if err != nil {
			return nil, mismatch(err.Error())
		}
		if fe := checkRange(f, x, path); fe != nil {
			return nil, []FieldError{*fe}
		}
		return x, nil
	case KindBool:
		b, err := toBool(v)
		if err != nil {
			return nil, mismatch(err.Error())
		}
		return b, nil
	case KindDate:
		t, err := toDate(v)
		if err != nil {
			return nil, mismatch(err.Error())
		}
		return t, nil
	case KindDateTime:
		t, err := toDateTime(v)
		if err != nil {
			return nil, mismatch(err.Error())
		}
		return t, nil
	case KindEnum:
		return toMember(f, v, path)
	case KindRecord:
		return toRecord(f.Entity, v, path)
	case KindOneOf:
		for _, alt := range f.OneOf {
			if r, errs := toRecord(alt, v, path); len(errs) == 0 {
				return r, nil
			}
		}
		names := make([]string, len(f.OneOf))
		for i, alt := range f.OneOf {
			names[i] = alt.name
		}
		return nil, mismatch("does not match any of " + strings.Join(names, ", "))
	case KindArray:
		return toArray(f, v, path)
	case KindDict:
		m, err := toDict(v)
		if err != nil {
			return nil, mismatch(err.Error())
		}
		return m, nil
	}
	return nil, mismatch("has unsupported kind " + f.Kind.String())
}

func checkRange(f Field, x float64, path string) *FieldError {
	if f.Ge != nil && x < *f.Ge {
		fe := ferr(CodeOutOfRange, path, fmt.Sprintf("field '%s' must be >= %v", path, *f.Ge))
		return &fe
	}
	if f.Le != nil && x > *f.Le {
		fe := ferr(CodeOutOfRange, path, fmt.Sprintf("field '%s' must be <= %v", path, *f.Le))
		return &fe
	}
	return nil
}

func toMember(f Field, v any, path string) (any, []FieldError) {
	var m vocab.Member
	switch t := v.(type) {
	case vocab.Member:
		if !f.Enum.Contains(t) {
			return nil, []FieldError{ferr(CodeTypeMismatch, path,
				fmt.Sprintf("field '%s' expects %s, got %s", path, f.Enum.Name(), t))}
		}
		m = t
	case string:
		r, err := f.Enum.ResolveByName(t)
		if err != nil {
			fe := ferr(CodeEnumInvalid, path, fmt.Sprintf("value '%s' is not a valid %s", t, f.Enum.Name()))
			fe.Allowed = allowedNames(f)
			return nil, []FieldError{fe}
		}
		m = r
	default:
		return nil, []FieldError{ferr(CodeTypeMismatch, path,
			fmt.Sprintf("field '%s' must be a %s name", path, f.Enum.Name()))}
	}
	if f.Allowed != nil {
		if err := f.Allowed.Check(m); err != nil {
			var inv *vocab.InvalidMemberError
			if errors.As(err, &inv) {
				fe := ferr(CodeEnumInvalid, path, fmt.Sprintf("value '%s' is not allowed here", m.Name()))
				fe.Allowed = inv.Allowed
				return nil, []FieldError{fe}
			}
			return nil, []FieldError{ferr(CodeTypeMismatch, path, "field '"+path+"' "+err.Error())}
		}
	}
	return m, nil
}

func allowedNames(f Field) []string {
	if f.Allowed != nil {
		return f.Allowed.Names()
	}
	return f.Enum.Names()
}

func toRecord(ent *Entity, v any, path string) (any, []FieldError) {
	switch t := v.(type) {
	case *Record:
		if t == nil {
			break
		}
		if t.entity == ent {
			return t, nil
		}
		// запись другого типа пересобираем по полям
		r, errs := ent.construct(t.values, path)
		if len(errs) > 0 {
			return nil, errs
		}
		return r, nil
	case map[string]any:
		r, errs := ent.construct(t, path)
		if len(errs) > 0 {
			return nil, errs
		}
		return r, nil
	}
	return nil, []FieldError{ferr(CodeTypeMismatch, path, "field '"+path+"' must be an object ("+ent.name+")")}
}

func toArray(f Field, v any, path string) (any, []FieldError) {
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
		return nil, []FieldError{ferr(CodeTypeMismatch, path, "field '"+path+"' must be array")}
	}
	var errs []FieldError
	out := make([]any, 0, rv.Len())
	for i := 0; i < rv.Len(); i++ {
		p := fmt.Sprintf("%s[%d]", path, i)
		norm, ferrs := coerceField(*f.Elem, rv.Index(i).Interface(), p)
		if len(ferrs) > 0 {
			errs = append(errs, ferrs...)
			continue
		}
		out = append(out, norm)
	}
	if len(errs) > 0 {
		return nil, errs
	}
	if f.Unique {
		for j := 1; j < len(out); j++ {
			for i := 0; i < j; i++ {
				if valuesEqual(out[i], out[j]) {
					p := fmt.Sprintf("%s[%d]", path, j)
					errs = append(errs, ferr(CodeUniqueViolation, p,
						fmt.Sprintf("item %d of '%s' duplicates item %d", j, path, i)))
					break
				}
			}
		}
		if len(errs) > 0 {
			return nil, errs
		}
	}
	return out, nil
}

func toInt(v any) (int64, error) {
	switch t := v.(type) {
	case int:
		return int64(t), nil
	case int8:
		return int64(t), nil
	case int16:
		return int64(t), nil
	case int32:
		return int64(t), nil
	case int64:
		return t, nil
	case uint:
		return int64(t), nil
	case uint8:
		return int64(t), nil
	case uint16:
		return int64(t), nil
	case uint32:
		return int64(t), nil
	case uint64:
		if t > math.MaxInt64 {
			return 0, errors.New("is out of int64 range")
		}
		return int64(t), nil
	case float32:
		return floatToInt(float64(t))
	case float64:
		return floatToInt(t)
	case json.Number:
		if n, err := t.Int64(); err == nil {
			return n, nil
		}
		d, err := decimal.NewFromString(t.String())
		if err != nil {
			return 0, errors.New("must be integer")
		}
		return decimalToInt(d)
	case decimal.Decimal:
		return decimalToInt(t)
	case string:
		n, err := strconv.ParseInt(strings.TrimSpace(t), 10, 64)
		if err != nil {
			return 0, errors.New("must be integer")
		}
		return n, nil
	}
	return 0, errors.New("must be integer")
}

func floatToInt(x float64) (int64, error) {
	if math.IsNaN(x) || math.IsInf(x, 0) || x != math.Trunc(x) {
		return 0, errors.New("must be integer")
	}
	// float64(math.MaxInt64) округляется вверх до 2^63, поэтому граница строгая
	if x < -(1<<63) || x >= 1<<63 {
		return 0, errors.New("is out of int64 range")
	}
	return int64(x), nil
}

var (
	minInt64 = decimal.NewFromInt(math.MinInt64)
	maxInt64 = decimal.NewFromInt(math.MaxInt64)
)

func decimalToInt(d decimal.Decimal) (int64, error) {
	if !d.IsInteger() {
		return 0, errors.New("must be integer")
	}
	if d.LessThan(minInt64) || d.GreaterThan(maxInt64) {
		return 0, errors.New("is out of int64 range")
	}
	return d.IntPart(), nil
}

func toDecimal(v any) (decimal.Decimal, error) {
	switch t := v.(type) {
	case decimal.Decimal:
		return t, nil
	case *decimal.Decimal:
		if t != nil {
			return *t, nil
		}
	case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64:
		n, err := toInt(t)
		if err != nil {
			return decimal.Decimal{}, err
		}
		return decimal.NewFromInt(n), nil
	case float32:
		if math.IsNaN(float64(t)) || math.IsInf(float64(t), 0) {
			return decimal.Decimal{}, errors.New("must be a finite decimal")
		}
		return decimal.NewFromFloat32(t), nil
	case float64:
		if math.IsNaN(t) || math.IsInf(t, 0) {
			return decimal.Decimal{}, errors.New("must be a finite decimal")
		}
		return decimal.NewFromFloat(t), nil
	case json.Number:
		d, err := decimal.NewFromString(t.String())
		if err != nil {
			return decimal.Decimal{}, errors.New("must be decimal")
		}
		return d, nil
	case string:
		d, err := decimal.NewFromString(strings.TrimSpace(t))
		if err != nil {
			return decimal.Decimal{}, errors.New("must be decimal")
		}
		return d, nil
	}
	return decimal.Decimal{}, errors.New("must be decimal")
}

// toFloat принимает только конечные значения: NaN и ±Inf не записываются в JSON.
func toFloat(v any) (float64, error) {
	x, err := parseFloat(v)
	if err != nil {
		return 0, err
	}
	if math.IsNaN(x) || math.IsInf(x, 0) {
		return 0, errors.New("must be a finite float")
	}
	return x, nil
}

func parseFloat(v any) (float64, error) {
	switch t := v.(type) {
	case float64:
		return t, nil
	case float32:
		return float64(t), nil
	case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64:
		n, err := toInt(t)
		if err != nil {
			return 0, err
		}
		return float64(n), nil
	case json.Number:
		x, err := t.Float64()
		if err != nil {
			return 0, errors.New("must be float")
		}
		return x, nil
	case decimal.Decimal:
		return t.InexactFloat64(), nil
	case string:
		x, err := strconv.ParseFloat(strings.TrimSpace(t), 64)
		if err != nil {
			return 0, errors.New("must be float")
		}
		return x, nil
	}
	return 0, errors.New("must be float")
}

func toBool(v any) (bool, error) {
	switch t := v.(type) {
	case bool:
		return t, nil
	case string:
		switch strings.ToLower(strings.TrimSpace(t)) {
		case "true", "1", "yes", "y", "on":
			return true, nil
		case "false", "0", "no", "n", "off":
			return false, nil
		}
	}
	return false, errors.New("must be boolean")
}

func toDate(v any) (time.Time, error) {
	switch t := v.(type) {
	case time.Time:
		y, m, d := t.Date()
		return time.Date(y, m, d, 0, 0, 0, 0, time.UTC), nil
	case string:
		d, err := time.Parse(dateLayout, strings.TrimSpace(t))
		if err != nil {
			return time.Time{}, errors.New("must match YYYY-MM-DD")
		}
		return d, nil
	}
	return time.Time{}, errors.New("must be a date")
}

func toDateTime(v any) (time.Time, error) {
	switch t := v.(type) {
	case time.Time:
		return t, nil
	case string:
		s := strings.TrimSpace(t)
		if ts, err := time.Parse(time.RFC3339Nano, s); err == nil {
			return ts, nil
		}
		// без зоны считаем UTC
		if ts, err := time.Parse(naiveDateTimeLayout, s); err == nil {
			return ts, nil
		}
		return time.Time{}, errors.New("must be RFC3339 datetime")
	}
	return time.Time{}, errors.New("must be a datetime")
}

// toDict приводит значение к виду, который дал бы json.Decoder с UseNumber.
func toDict(v any) (map[string]any, error) {
	switch v.(type) {
	case map[string]any, map[string]string:
	default:
		rv := reflect.ValueOf(v)
		if rv.Kind() != reflect.Map || rv.Type().Key().Kind() != reflect.String {
			return nil, errors.New("must be an object")
		}
	}
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, errors.New("must be JSON-encodable: " + err.Error())
	}
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	var out map[string]any
	if err := dec.Decode(&out); err != nil {
		return nil, errors.New("must be an object")
	}
	return out, nil
}

// valuesEqual сравнивает нормализованные значения.
func valuesEqual(a, b any) bool {
	switch x := a.(type) {
	case nil:
		return b == nil
	case decimal.Decimal:
		y, ok := b.(decimal.Decimal)
		return ok && x.Equal(y)
	case time.Time:
		y, ok := b.(time.Time)
		return ok && x.Equal(y)
	case *Record:
		y, ok := b.(*Record)
		return ok && x.Equal(y)
	case []any:
		y, ok := b.([]any)
		if !ok || len(x) != len(y) {
			return false
		}
		for i := range x {
			if !valuesEqual(x[i], y[i]) {
				return false
			}
		}
		return true
	}
	return reflect.DeepEqual(a, b)
}

func displayValue(v any) string {
	switch t := v.(type) {
	case string:
		return "'" + t + "'"
	case vocab.Member:
		return "'" + t.Name() + "'"
	}
	return fmt.Sprintf("%v", v)
}
