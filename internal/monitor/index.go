package monitor

// Index builds a name-keyed view of records. When two records share a name
// the later one wins; duplicates are not reported.
func Index(records []Record) map[string]Record {
	index := make(map[string]Record, len(records))
	for _, r := range records {
		index[r.Name] = r
	}
	return index
}

// Names returns the record names in sequence order.
func Names(records []Record) []string {
	names := make([]string, 0, len(records))
	for _, r := range records {
		names = append(names, r.Name)
	}
	return names
}
