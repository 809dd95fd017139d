package dsl

// Entity описывает структуру сущности из DSL (до разрешения ссылок)
type Entity struct {
	Name        string
	Module      string
	Extends     string // базовая сущность: Name или module.Name
	Version     string // @version — делает сущность core-записью
	DescribedBy string // @described_by
	Fields      []Field
	Source      string // файл:строка заголовка
}

// FQN — "module.Name".
func (e *Entity) FQN() string { return e.Module + "." + e.Name }

// Field описывает поле сущности
type Field struct {
	Name    string
	Type    TypeSpec
	Options map[string]string // required, unique, default, const, title, ge, le
	Line    int
}

// TypeSpec — разобранное выражение типа.
type TypeSpec struct {
	Base string // string,int,decimal,float,bool,date,datetime,dict,enum,subset,quantity,ref,oneof,array

	Family string   // enum/subset/quantity: имя справочника
	Values []string // enum["a","b"]: встроенные значения; subset: теги

	Unit   string   // quantity: тег единицы по умолчанию
	Fields []string // quantity: числовые поля
	Scalar string   // quantity: общий скалярный тип

	Targets []string  // ref: одна цель; oneof: альтернативы
	Elem    *TypeSpec // array
}
