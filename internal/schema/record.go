package schema

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/shopspring/decimal"

	"github.com/bendichter/aind-data-schema/internal/vocab"
)

// Record — провалидированный экземпляр Entity. Значения хранятся в нормальной форме:
// string, int64, decimal.Decimal, float64, bool, time.Time, vocab.Member, *Record, []any, map[string]any.
type Record struct {
	entity *Entity
	values map[string]any
}

func (r *Record) Entity() *Entity { return r.entity }

// Get возвращает значение поля; ok=false, если поле не задано.
func (r *Record) Get(name string) (any, bool) {
	v, ok := r.values[name]
	return v, ok
}

// Fields — копия заданных полей.
func (r *Record) Fields() map[string]any {
	out := make(map[string]any, len(r.values))
	for k, v := range r.values {
		out[k] = v
	}
	return out
}

// Equal — одинаковый тип и равные значения всех объявленных полей.
func (r *Record) Equal(o *Record) bool {
	if r == nil || o == nil {
		return r == o
	}
	if r.entity.name != o.entity.name || len(r.entity.fields) != len(o.entity.fields) {
		return false
	}
	for _, f := range r.entity.fields {
		if !valuesEqual(r.values[f.Name], o.values[f.Name]) {
			return false
		}
	}
	return true
}

// MarshalJSON пишет поля в порядке объявления; незаданные необязательные поля — null.
func (r *Record) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, f := range r.entity.fields {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, _ := json.Marshal(f.Name)
		buf.Write(key)
		buf.WriteByte(':')
		if err := encodeValue(&buf, f, r.values[f.Name]); err != nil {
			return nil, fmt.Errorf("%s.%s: %w", r.entity.name, f.Name, err)
		}
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

func encodeValue(buf *bytes.Buffer, f Field, v any) error {
	if v == nil {
		buf.WriteString("null")
		return nil
	}
	switch t := v.(type) {
	case decimal.Decimal:
		buf.WriteString(t.String())
		return nil
	case time.Time:
		layout := time.RFC3339Nano
		if f.Kind == KindDate {
			layout = dateLayout
		}
		b, _ := json.Marshal(t.Format(layout))
		buf.Write(b)
		return nil
	case vocab.Member:
		b, _ := json.Marshal(t.Name())
		buf.Write(b)
		return nil
	case *Record:
		b, err := t.MarshalJSON()
		if err != nil {
			return err
		}
		buf.Write(b)
		return nil
	case []any:
		buf.WriteByte('[')
		for i, it := range t {
			if i > 0 {
				buf.WriteByte(',')
			}
			if err := encodeValue(buf, *f.Elem, it); err != nil {
				return fmt.Errorf("[%d]: %w", i, err)
			}
		}
		buf.WriteByte(']')
		return nil
	}
	b, err := json.Marshal(v)
	if err != nil {
		return err
	}
	buf.Write(b)
	return nil
}

// ToJSON — каноническое представление с отступом в три пробела.
func (r *Record) ToJSON() ([]byte, error) {
	raw, err := r.MarshalJSON()
	if err != nil {
		return nil, err
	}
	var out bytes.Buffer
	if err := json.Indent(&out, raw, "", "   "); err != nil {
		return nil, err
	}
	return out.Bytes(), nil
}

// FromJSON разбирает JSON-объект и валидирует его под e. Числа не теряют точность.
func (e *Entity) FromJSON(data []byte) (*Record, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var obj map[string]any
	if err := dec.Decode(&obj); err != nil {
		return nil, &ValidationError{Entity: e.name, Errors: []FieldError{
			ferr(CodeTypeMismatch, "", "invalid JSON object: "+err.Error()),
		}}
	}
	if obj == nil {
		return nil, &ValidationError{Entity: e.name, Errors: []FieldError{
			ferr(CodeTypeMismatch, "", "expected a JSON object, got null"),
		}}
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, &ValidationError{Entity: e.name, Errors: []FieldError{
			ferr(CodeTypeMismatch, "", "unexpected data after the JSON object"),
		}}
	}
	return e.New(obj)
}
