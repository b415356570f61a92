package session

import "encoding/json"

// WeightSet is an insertion-ordered map of weight values keyed by instance
// id. Upserting an existing id keeps its position. The zero value is ready
// to use.
type WeightSet struct {
	order  []string
	values map[string]WeightValue
}

func (s *WeightSet) Len() int {
	return len(s.order)
}

func (s *WeightSet) Get(id string) (WeightValue, bool) {
	v, ok := s.values[id]
	return v, ok
}

// Upsert stores v under v.ID
func (s *WeightSet) Upsert(v WeightValue) {
	if s.values == nil {
		s.values = make(map[string]WeightValue)
	}
	if _, ok := s.values[v.ID]; !ok {
		s.order = append(s.order, v.ID)
	}
	s.values[v.ID] = v
}

// Delete removes id and reports whether it was present
func (s *WeightSet) Delete(id string) bool {
	return s.DeleteWhere(func(v WeightValue) bool { return v.ID == id }) > 0
}

// DeleteWhere removes every value matching pred and returns how many went
func (s *WeightSet) DeleteWhere(pred func(WeightValue) bool) int {
	kept := s.order[:0]
	removed := 0
	for _, id := range s.order {
		if pred(s.values[id]) {
			delete(s.values, id)
			removed++
			continue
		}
		kept = append(kept, id)
	}
	s.order = kept
	return removed
}

// Values returns every value in insertion order
func (s *WeightSet) Values() []WeightValue {
	out := make([]WeightValue, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, s.values[id])
	}
	return out
}

// Committed returns committed values in insertion order
func (s *WeightSet) Committed() []WeightValue {
	var out []WeightValue
	for _, id := range s.order {
		if v := s.values[id]; v.Committed {
			out = append(out, v)
		}
	}
	return out
}

// FindDraft returns the uncommitted value for a definition id
func (s *WeightSet) FindDraft(definitionID string) (WeightValue, bool) {
	for _, id := range s.order {
		if v := s.values[id]; !v.Committed && v.DefinitionID == definitionID {
			return v, true
		}
	}
	return WeightValue{}, false
}

func (s *WeightSet) clone() WeightSet {
	out := WeightSet{
		order:  append([]string(nil), s.order...),
		values: make(map[string]WeightValue, len(s.values)),
	}
	for id, v := range s.values {
		v.Tags = append([]string(nil), v.Tags...)
		out.values[id] = v
	}
	return out
}

func (s WeightSet) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.Values())
}

func (s *WeightSet) UnmarshalJSON(data []byte) error {
	var values []WeightValue
	if err := json.Unmarshal(data, &values); err != nil {
		return err
	}
	*s = WeightSet{}
	for _, v := range values {
		s.Upsert(v)
	}
	return nil
}
