package vocab

import "encoding/json"

// PIDName — структурированное описание внешней именованной сущности,
// опционально со ссылкой на внешний реестр (ROR, RRID, ...).
type PIDName struct {
	Name               string
	Abbreviation       string
	Registry           Member // элемент справочника Registry; нулевое значение — реестра нет
	RegistryIdentifier string
}

type pidNameJSON struct {
	Name               string  `json:"name"`
	Abbreviation       *string `json:"abbreviation"`
	Registry           *string `json:"registry"`
	RegistryIdentifier *string `json:"registry_identifier"`
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func (p PIDName) MarshalJSON() ([]byte, error) {
	return json.Marshal(pidNameJSON{
		Name:               p.Name,
		Abbreviation:       optional(p.Abbreviation),
		Registry:           optional(p.Registry.Name()),
		RegistryIdentifier: optional(p.RegistryIdentifier),
	})
}

// Registry — реестры постоянных идентификаторов.
var Registry = MustEnum("Registry",
	Entry("ADDGENE", PIDName{Name: "Addgene (ADDGENE)", Abbreviation: "ADDGENE"}),
	Entry("EMAPA", PIDName{Name: "Edinburgh Mouse Atlas Project (EMAPA)", Abbreviation: "EMAPA"}),
	Entry("MGI", PIDName{Name: "Mouse Genome Informatics (MGI)", Abbreviation: "MGI"}),
	Entry("NCBI", PIDName{Name: "National Center for Biotechnology Information (NCBI)", Abbreviation: "NCBI"}),
	Entry("ORCID", PIDName{Name: "Open Researcher and Contributor ID (ORCID)", Abbreviation: "ORCID"}),
	Entry("ROR", PIDName{Name: "Research Organization Registry (ROR)", Abbreviation: "ROR"}),
	Entry("RRID", PIDName{Name: "Research Resource Identifiers (RRID)", Abbreviation: "RRID"}),
)

var (
	ADDGENE = Registry.MustTag("ADDGENE")
	EMAPA   = Registry.MustTag("EMAPA")
	MGI     = Registry.MustTag("MGI")
	NCBI    = Registry.MustTag("NCBI")
	ORCID   = Registry.MustTag("ORCID")
	ROR     = Registry.MustTag("ROR")
	RRID    = Registry.MustTag("RRID")
)
