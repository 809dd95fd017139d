package vocab

import "fmt"

// Subset — ограничение поля: элемент базового справочника из фиксированного списка разрешённых.
// Значение при этом остаётся обычным элементом базового справочника.
type Subset struct {
	base    *Enum
	allowed []Member
	set     map[Member]struct{}
}

// Restrict строит подмножество. Элементы из чужого справочника — ошибка объявления.
func (e *Enum) Restrict(members ...Member) (*Subset, error) {
	if len(members) == 0 {
		return nil, fmt.Errorf("%s: empty subset", e.name)
	}
	s := &Subset{base: e, set: make(map[Member]struct{}, len(members))}
	for _, m := range members {
		if !e.Contains(m) {
			return nil, fmt.Errorf("%s: restrict %s: %w", e.name, m, ErrWrongEnum)
		}
		if _, dup := s.set[m]; dup {
			continue
		}
		s.set[m] = struct{}{}
		s.allowed = append(s.allowed, m)
	}
	return s, nil
}

func (e *Enum) MustRestrict(members ...Member) *Subset {
	s, err := e.Restrict(members...)
	if err != nil {
		panic(err)
	}
	return s
}

func (s *Subset) Base() *Enum { return s.base }

func (s *Subset) Members() []Member { return append([]Member(nil), s.allowed...) }

func (s *Subset) Names() []string {
	out := make([]string, len(s.allowed))
	for i, m := range s.allowed {
		out[i] = m.Name()
	}
	return out
}

func (s *Subset) Contains(m Member) bool {
	_, ok := s.set[m]
	return ok
}

// Check: nil — элемент разрешён; ErrWrongEnum — элемент другого справочника;
// *InvalidMemberError — элемент базового справочника вне списка.
func (s *Subset) Check(m Member) error {
	if !s.base.Contains(m) {
		return fmt.Errorf("%s: %s: %w", s.base.name, m, ErrWrongEnum)
	}
	if !s.Contains(m) {
		return &InvalidMemberError{Enum: s.base.name, Value: m.Name(), Allowed: s.Names()}
	}
	return nil
}
