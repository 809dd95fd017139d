package pg

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/bendichter/aind-data-schema/internal/reference"
	"github.com/bendichter/aind-data-schema/internal/schema"
	"github.com/bendichter/aind-data-schema/internal/vocab"
)

// Ключи фаз в карте DDL; ApplyDDL выполняет их в лексикографическом порядке.
const (
	PhaseTables   = "000_schemas_and_tables"
	PhaseComments = "200_comments"
)

var reserved = map[string]struct{}{
	"user": {}, "select": {}, "table": {}, "insert": {}, "update": {}, "delete": {},
	"where": {}, "join": {}, "group": {}, "order": {}, "limit": {}, "offset": {},
	"primary": {}, "foreign": {}, "key": {}, "constraint": {}, "default": {},
	"from": {}, "into": {}, "values": {}, "unique": {}, "index": {}, "create": {},
	"drop": {}, "alter": {}, "schema": {}, "grant": {}, "revoke": {},
}

func isReserved(s string) bool { _, ok := reserved[strings.ToLower(s)]; return ok }

// элементарная плюрализация: rig -> rigs, lens -> lens
func plural(s string) string {
	s = strings.ToLower(s)
	if strings.HasSuffix(s, "s") {
		return s
	}
	return s + "s"
}

func safeSchema(module string) string { return strings.ToLower(module) }

func safeTable(entity string) string {
	t := plural(entity)
	if isReserved(t) || isReserved(entity) {
		t = "e_" + t
	}
	return t
}

func sqlIdent(s string) string { return `"` + strings.ToLower(s) + `"` }

func sqlString(s string) string { return "'" + strings.ReplaceAll(s, "'", "''") + "'" }

func mapType(f schema.Field) (string, error) {
	switch f.Kind {
	case schema.KindString, schema.KindEnum:
		return "text", nil
	case schema.KindInt:
		return "bigint", nil
	case schema.KindDecimal:
		return "numeric", nil
	case schema.KindFloat:
		return "double precision", nil
	case schema.KindBool:
		return "boolean", nil
	case schema.KindDate:
		return "date", nil
	case schema.KindDateTime:
		return "timestamp with time zone", nil
	case schema.KindRecord, schema.KindOneOf, schema.KindArray, schema.KindDict:
		// вложенные записи хранятся целиком в каноническом JSON
		return "jsonb", nil
	default:
		return "", fmt.Errorf("unknown kind: %s", f.Kind)
	}
}

// sqlLiteral — литерал значения по умолчанию; ok=false для составных значений.
func sqlLiteral(f schema.Field, v any) (string, bool) {
	switch t := v.(type) {
	case string:
		return sqlString(t), true
	case int64:
		return strconv.FormatInt(t, 10), true
	case float64:
		return strconv.FormatFloat(t, 'g', -1, 64), true
	case decimal.Decimal:
		return t.String(), true
	case bool:
		return strconv.FormatBool(t), true
	case vocab.Member:
		return sqlString(t.Name()), true
	case time.Time:
		if f.Kind == schema.KindDate {
			return sqlString(t.Format(time.DateOnly)), true
		}
		return sqlString(t.Format(time.RFC3339Nano)), true
	}
	return "", false
}

func allowed(f schema.Field) []string {
	if f.Allowed != nil {
		return f.Allowed.Names()
	}
	return f.Enum.Names()
}

func column(f schema.Field) (string, error) {
	typ, err := mapType(f)
	if err != nil {
		return "", err
	}
	col := sqlIdent(f.Name) + " " + typ
	if f.Required {
		col += " not null"
	} else {
		col += " null"
	}
	if f.Default != nil {
		if lit, ok := sqlLiteral(f, f.Default); ok {
			col += " default " + lit
		}
	}
	if f.Kind == schema.KindEnum {
		names := allowed(f)
		quoted := make([]string, len(names))
		for i, n := range names {
			quoted[i] = sqlString(n)
		}
		col += fmt.Sprintf(" check (%s in (%s))", sqlIdent(f.Name), strings.Join(quoted, ", "))
	}
	return col, nil
}

// GenerateDDL строит DDL для сущностей каталога (FQN -> *Entity): схема на модуль,
// таблица на сущность. Типы величин в таблицы не выносятся, они живут внутри jsonb.
func GenerateDDL(entities map[string]*schema.Entity) (map[string]string, error) {
	out := make(map[string]string, 2)

	keys := make([]string, 0, len(entities))
	for k := range entities {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var tables, comments strings.Builder
	seenSchemas := map[string]struct{}{}
	seenTables := map[string]string{}

	for _, fqnKey := range keys {
		e := entities[fqnKey]
		if e.IsQuantity() {
			continue
		}
		module, name := reference.SplitFQN(fqnKey)
		if module == "" {
			return nil, fmt.Errorf("%s: entity key is not module.Name", fqnKey)
		}
		mod := safeSchema(module)
		tbl := safeTable(name)
		target := mod + "." + tbl
		if prev, dup := seenTables[target]; dup {
			return nil, fmt.Errorf("%s and %s map to the same table %s", prev, fqnKey, target)
		}
		seenTables[target] = fqnKey

		if _, ok := seenSchemas[mod]; !ok {
			fmt.Fprintf(&tables, "create schema if not exists %s;\n", sqlIdent(mod))
			seenSchemas[mod] = struct{}{}
		}

		// системные колонки
		cols := []string{
			`"id" text primary key`,
			`"created_at" timestamp with time zone not null default now()`,
		}
		seen := map[string]struct{}{"id": {}, "created_at": {}}

		for _, f := range e.Fields() {
			nameLower := strings.ToLower(f.Name)
			if _, exists := seen[nameLower]; exists {
				return nil, fmt.Errorf("%s: field %q duplicates a system or another column", fqnKey, f.Name)
			}
			seen[nameLower] = struct{}{}

			col, err := column(f)
			if err != nil {
				return nil, fmt.Errorf("%s.%s: %w", fqnKey, f.Name, err)
			}
			cols = append(cols, col)

			if f.Title != "" {
				fmt.Fprintf(&comments, "comment on column %s.%s.%s is %s;\n",
					sqlIdent(mod), sqlIdent(tbl), sqlIdent(f.Name), sqlString(f.Title))
			}
		}

		fmt.Fprintf(&tables, "create table if not exists %s.%s (\n  %s\n);\n",
			sqlIdent(mod), sqlIdent(tbl), strings.Join(cols, ",\n  "))
		if e.IsCore() {
			fmt.Fprintf(&comments, "comment on table %s.%s is %s;\n",
				sqlIdent(mod), sqlIdent(tbl), sqlString(e.Name()+" "+e.SchemaVersion()))
		}
	}

	out[PhaseTables] = tables.String()
	if comments.Len() > 0 {
		out[PhaseComments] = comments.String()
	}
	return out, nil
}
