package document

// MergeInto overlays fragment onto base. For every key of fragment:
// when both sides hold a mapping the two are merged recursively, otherwise
// the fragment value replaces the base value outright. Existing keys keep
// their position in base and new keys are appended in fragment order.
// Values taken from fragment are deep copies, so fragment stays untouched.
func MergeInto(base, fragment *Mapping) {
	if base == nil || fragment == nil {
		return
	}
	for _, e := range fragment.entries {
		if current, ok := base.Get(e.Key.Text); ok {
			cm, baseIsMap := current.(*Mapping)
			fm, fragIsMap := e.Value.(*Mapping)
			if baseIsMap && fragIsMap {
				MergeInto(cm, fm)
				continue
			}
		}
		key := *e.Key
		base.SetEntry(&key, Clone(e.Value))
	}
}
