package reference

import (
	"fmt"
	"regexp"
	"sort"

	"github.com/bendichter/aind-data-schema/internal/schema"
)

// Issue — противоречие в наборе схем.
type Issue struct {
	Entity  string `json:"entity"` // FQN: module.Entity
	Field   string `json:"field"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

var semverRe = regexp.MustCompile(`^\d+\.\d+\.\d+$`)

// Lint проверяет, что всё, на что ссылаются поля, зарегистрировано в каталоге,
// и что версии core-записей имеют вид X.Y.Z.
func (c *Catalog) Lint() []Issue {
	var issues []Issue
	for _, fqn := range c.FQNs() {
		e := c.entities[fqn]
		if e.IsCore() && !semverRe.MatchString(e.SchemaVersion()) {
			issues = append(issues, Issue{
				Entity:  fqn,
				Field:   schema.FieldSchemaVersion,
				Code:    "schema_version_format",
				Message: fmt.Sprintf("schema version %q is not X.Y.Z", e.SchemaVersion()),
			})
		}
		for _, f := range e.Fields() {
			issues = append(issues, c.lintField(fqn, f.Name, f)...)
		}
	}
	return issues
}

func (c *Catalog) lintField(fqn, path string, f schema.Field) []Issue {
	var issues []Issue
	switch f.Kind {
	case schema.KindEnum:
		if got, ok := c.enums[f.Enum.Name()]; !ok || got != f.Enum {
			issues = append(issues, Issue{
				Entity: fqn, Field: path, Code: "enum_unregistered",
				Message: fmt.Sprintf("enumeration %s is not in the catalog", f.Enum.Name()),
			})
		}
		if f.Allowed != nil && len(f.Allowed.Members()) == f.Enum.Len() {
			issues = append(issues, Issue{
				Entity: fqn, Field: path, Code: "subset_covers_enum",
				Message: fmt.Sprintf("subset allows every member of %s", f.Enum.Name()),
			})
		}
	case schema.KindRecord:
		issues = append(issues, c.lintTarget(fqn, path, f.Entity)...)
	case schema.KindOneOf:
		seen := map[string]bool{}
		for _, alt := range f.OneOf {
			issues = append(issues, c.lintTarget(fqn, path, alt)...)
			if seen[alt.Name()] {
				issues = append(issues, Issue{
					Entity: fqn, Field: path, Code: "oneof_duplicate",
					Message: fmt.Sprintf("alternative %s listed twice", alt.Name()),
				})
			}
			seen[alt.Name()] = true
		}
	case schema.KindArray:
		issues = append(issues, c.lintField(fqn, path+"[]", *f.Elem)...)
	}
	return issues
}

func (c *Catalog) lintTarget(fqn, path string, target *schema.Entity) []Issue {
	if _, ok := c.FQNOf(target); ok {
		return nil
	}
	return []Issue{{
		Entity: fqn, Field: path, Code: "ref_target_unregistered",
		Message: fmt.Sprintf("nested type %s is not in the catalog", target.Name()),
	}}
}

// SortIssues упорядочивает по сущности, полю и коду.
func SortIssues(issues []Issue) {
	sort.Slice(issues, func(i, j int) bool {
		a, b := issues[i], issues[j]
		if a.Entity != b.Entity {
			return a.Entity < b.Entity
		}
		if a.Field != b.Field {
			return a.Field < b.Field
		}
		return a.Code < b.Code
	})
}
