package filter

// DistinctValues returns the distinct non-empty values of field across records, in order of
// first occurrence. Used to populate option lists.
func DistinctValues(field string, records []Record) []string {
	seen := make(map[string]struct{})
	out := make([]string, 0)
	for _, r := range records {
		v, ok := r.Text(field)
		if !ok || v == "" {
			continue
		}
		if _, dup := seen[v]; dup {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}

// EntityRef names the identity and label fields of an entity referenced from records
// (e.g. user_id and user_name on audit entries).
type EntityRef struct {
	IDField    string
	LabelField string
}

// Entity is one logical entity collected from records.
type Entity struct {
	ID    string `json:"id"`
	Label string `json:"label"`
}

// UniqueEntities collects one Entity per distinct id across all collections, keyed by the
// entity id rather than by record. Order and label come from the first occurrence; an empty
// first label is filled from the first later record that has one. Records without an id are
// skipped.
func UniqueEntities(ref EntityRef, collections ...[]Record) []Entity {
	index := make(map[string]int)
	out := make([]Entity, 0)
	for _, records := range collections {
		for _, r := range records {
			id, ok := r.Text(ref.IDField)
			if !ok || id == "" {
				continue
			}
			label, _ := r.Text(ref.LabelField)
			if i, dup := index[id]; dup {
				if out[i].Label == "" {
					out[i].Label = label
				}
				continue
			}
			index[id] = len(out)
			out = append(out, Entity{ID: id, Label: label})
		}
	}
	return out
}
