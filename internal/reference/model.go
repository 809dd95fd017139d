package reference

import (
	"fmt"
	"sort"
	"strings"

	"github.com/bendichter/aind-data-schema/internal/vocab"
)

// EnumDirectory описывает один справочник типа enum
type EnumDirectory struct {
	Name  string     `yaml:"name" json:"name"`
	Items []EnumItem `yaml:"items" json:"items"`
}

type EnumItem struct {
	Code string `yaml:"code" json:"code"`
	Name string `yaml:"name" json:"name"`
	// Идентичность: аббревиатура и запись во внешнем реестре (ROR, RRID, ...)
	Abbreviation       string `yaml:"abbreviation,omitempty" json:"abbreviation,omitempty"`
	Registry           string `yaml:"registry,omitempty" json:"registry,omitempty"`
	RegistryIdentifier string `yaml:"registry_identifier,omitempty" json:"registry_identifier,omitempty"`
	Order              int    `yaml:"order,omitempty" json:"order,omitempty"`
}

// Build строит справочник. Элементы с order идут по возрастанию, остальные — в порядке файла.
func (d EnumDirectory) Build() (*vocab.Enum, error) {
	items := append([]EnumItem(nil), d.Items...)
	sort.SliceStable(items, func(i, j int) bool {
		return orderKey(items[i]) < orderKey(items[j])
	})
	defs := make([]vocab.Def, 0, len(items))
	for _, it := range items {
		id := vocab.PIDName{
			Name:               strings.TrimSpace(it.Name),
			Abbreviation:       strings.TrimSpace(it.Abbreviation),
			RegistryIdentifier: strings.TrimSpace(it.RegistryIdentifier),
		}
		if r := strings.TrimSpace(it.Registry); r != "" {
			m, err := resolveRegistry(r)
			if err != nil {
				return nil, fmt.Errorf("%s.%s: %w", d.Name, it.Code, err)
			}
			id.Registry = m
		}
		defs = append(defs, vocab.Entry(strings.TrimSpace(it.Code), id))
	}
	return vocab.NewEnum(d.Name, defs...)
}

func orderKey(it EnumItem) int {
	if it.Order == 0 {
		return int(^uint(0) >> 1)
	}
	return it.Order
}

// Реестр задаётся тегом (ROR), аббревиатурой или полным именем.
func resolveRegistry(s string) (vocab.Member, error) {
	if m, err := vocab.Registry.ByTag(strings.ToUpper(s)); err == nil {
		return m, nil
	}
	if m, err := vocab.Registry.ResolveByAbbreviation(s); err == nil {
		return m, nil
	}
	return vocab.Registry.ResolveByName(s)
}

// Directory — обратное преобразование для выдачи справочника наружу.
func Directory(e *vocab.Enum) EnumDirectory {
	out := EnumDirectory{Name: e.Name(), Items: make([]EnumItem, 0, e.Len())}
	for _, m := range e.Members() {
		id := m.Identity()
		it := EnumItem{
			Code:               m.Tag(),
			Name:               id.Name,
			Abbreviation:       id.Abbreviation,
			RegistryIdentifier: id.RegistryIdentifier,
		}
		if !id.Registry.IsZero() {
			it.Registry = id.Registry.Tag()
		}
		out.Items = append(out.Items, it)
	}
	return out
}
