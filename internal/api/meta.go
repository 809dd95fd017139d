package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/bendichter/aind-data-schema/internal/reference"
	"github.com/bendichter/aind-data-schema/internal/schema"
)

type metaEntityListItem struct {
	Module        string `json:"module"`
	Entity        string `json:"entity"`
	Core          bool   `json:"core,omitempty"`
	SchemaVersion string `json:"schemaVersion,omitempty"`
	Quantity      bool   `json:"quantity,omitempty"`
}

func MetaListHandler(s *Server) gin.HandlerFunc {
	return func(c *gin.Context) {
		cat := s.Catalog()
		all := cat.Entities()
		out := make([]metaEntityListItem, 0, len(all))
		for _, fqn := range cat.FQNs() {
			e := all[fqn]
			mod, ent := reference.SplitFQN(fqn)
			out = append(out, metaEntityListItem{
				Module:        mod,
				Entity:        ent,
				Core:          e.IsCore(),
				SchemaVersion: e.SchemaVersion(),
				Quantity:      e.IsQuantity(),
			})
		}
		c.JSON(http.StatusOK, out)
	}
}

type metaField struct {
	Name     string     `json:"name"`
	Type     string     `json:"type"`
	Title    string     `json:"title,omitempty"`
	Required bool       `json:"required,omitempty"`
	Const    bool       `json:"const,omitempty"`
	Default  any        `json:"default,omitempty"`
	Enum     string     `json:"enum,omitempty"`
	Allowed  []string   `json:"allowed,omitempty"`
	RefFQN   string     `json:"refFQN,omitempty"`
	OneOf    []string   `json:"oneOf,omitempty"`
	Elem     *metaField `json:"elem,omitempty"`
	Unique   bool       `json:"unique,omitempty"`
	Ge       *float64   `json:"ge,omitempty"`
	Le       *float64   `json:"le,omitempty"`
}

type metaEntity struct {
	Module        string      `json:"module"`
	Entity        string      `json:"entity"`
	SchemaVersion string      `json:"schemaVersion,omitempty"`
	DescribedBy   string      `json:"describedBy,omitempty"`
	UnitEnum      string      `json:"unitEnum,omitempty"`
	DefaultUnit   string      `json:"defaultUnit,omitempty"`
	Fields        []metaField `json:"fields"`
}

func MetaEntityHandler(s *Server) gin.HandlerFunc {
	return func(c *gin.Context) {
		cat := s.Catalog()
		fqn, ok := cat.NormalizeEntityName(c.Param("module"), c.Param("entity"))
		if !ok {
			c.JSON(http.StatusNotFound, gin.H{"error": "Entity not found"})
			return
		}
		e := cat.Entities()[fqn]
		mod, ent := reference.SplitFQN(fqn)
		out := metaEntity{
			Module:        mod,
			Entity:        ent,
			SchemaVersion: e.SchemaVersion(),
			DescribedBy:   e.DescribedBy(),
		}
		if e.IsQuantity() {
			out.UnitEnum = e.UnitEnum().Name()
			out.DefaultUnit = e.DefaultUnit().Name()
		}
		for _, f := range e.Fields() {
			out.Fields = append(out.Fields, describeField(cat, f))
		}
		c.JSON(http.StatusOK, out)
	}
}

func describeField(cat *reference.Catalog, f schema.Field) metaField {
	mf := metaField{
		Name:     f.Name,
		Type:     f.Kind.String(),
		Title:    f.Title,
		Required: f.Required,
		Const:    f.Const,
		Default:  f.Default,
		Unique:   f.Unique,
		Ge:       f.Ge,
		Le:       f.Le,
	}
	if f.Enum != nil {
		mf.Enum = f.Enum.Name()
	}
	if f.Allowed != nil {
		mf.Allowed = f.Allowed.Names()
	}
	if f.Entity != nil {
		mf.RefFQN = refName(cat, f.Entity)
	}
	for _, alt := range f.OneOf {
		mf.OneOf = append(mf.OneOf, refName(cat, alt))
	}
	if f.Elem != nil {
		elem := describeField(cat, *f.Elem)
		mf.Elem = &elem
	}
	return mf
}

// Незарегистрированный тип отдаём по голому имени; такое отловит Lint.
func refName(cat *reference.Catalog, e *schema.Entity) string {
	if fqn, ok := cat.FQNOf(e); ok {
		return fqn
	}
	return e.Name()
}
