package i18nsync

// DiffResult describes how a dictionary differs from the canonical mapping.
type DiffResult struct {
	// Missing contains canonical keys with non-empty text that the dictionary lacks.
	Missing []string

	// Empty contains canonical keys the dictionary lacks whose text is empty.
	// They are never added.
	Empty []string

	// Stale contains dictionary keys absent from the canonical mapping.
	Stale []string

	// Unchanged contains keys present in both.
	Unchanged []string

	// Reordered is true when the shared keys appear in a different order than
	// in the canonical mapping.
	Reordered bool
}

// DiffStats contains summary statistics for a diff.
type DiffStats struct {
	Missing   int
	Empty     int
	Stale     int
	Unchanged int
}

// Stats returns summary statistics for the diff.
func (d *DiffResult) Stats() DiffStats {
	return DiffStats{
		Missing:   len(d.Missing),
		Empty:     len(d.Empty),
		Stale:     len(d.Stale),
		Unchanged: len(d.Unchanged),
	}
}

// HasChanges reports whether reconciling with flags would modify the dictionary.
func (d *DiffResult) HasChanges(flags Flags) bool {
	if flags.AutoAdd && len(d.Missing) > 0 {
		return true
	}
	if flags.AutoRemove && len(d.Stale) > 0 {
		return true
	}
	return flags.SortKeys && d.Reordered
}

// Diff compares a dictionary with the canonical mapping. Key lists follow the
// canonical order for Missing/Empty/Unchanged and dictionary order for Stale.
func Diff(dict, canonical *Mapping) *DiffResult {
	result := &DiffResult{}

	for _, key := range canonical.keys {
		if dict.Has(key) {
			result.Unchanged = append(result.Unchanged, key)
			continue
		}
		if canonical.values[key] == "" {
			result.Empty = append(result.Empty, key)
		} else {
			result.Missing = append(result.Missing, key)
		}
	}

	shared := make([]string, 0, len(result.Unchanged))
	for _, key := range dict.keys {
		if canonical.Has(key) {
			shared = append(shared, key)
		} else {
			result.Stale = append(result.Stale, key)
		}
	}

	for i, key := range shared {
		if result.Unchanged[i] != key {
			result.Reordered = true
			break
		}
	}

	return result
}
