package monitor

import (
	"slices"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

// Projection is the reduced view of a record used for semantic comparison.
type Projection struct {
	Message  string
	Name     string
	Priority *int64
	Query    string
	Tags     []string
	Type     string
}

// projectionOptions makes tag order irrelevant and treats nil and empty tag
// lists as equal.
var projectionOptions = cmp.Options{
	cmpopts.SortSlices(func(a, b string) bool { return a < b }),
	cmpopts.EquateEmpty(),
}

// Project builds the projection of r. Options are left out on purpose.
// Tags are a set: the projection holds them sorted and without repeats.
func Project(r Record) Projection {
	return Projection{
		Message:  r.Message,
		Name:     r.Name,
		Priority: r.Priority,
		Query:    r.Query,
		Tags:     tagSet(r.Tags),
		Type:     r.Type,
	}
}

func tagSet(tags []string) []string {
	if len(tags) == 0 {
		return nil
	}
	set := slices.Clone(tags)
	slices.Sort(set)
	return slices.Compact(set)
}

// Differs reports whether declared must be pushed over remote.
func Differs(declared, remote Record) bool {
	return !cmp.Equal(Project(remote), Project(declared), projectionOptions)
}

// Diff returns a human readable diff from remote to declared, or an empty
// string when both projections are equal. Lines prefixed with "-" are the
// remote values, "+" the declared ones.
func Diff(declared, remote Record) string {
	return cmp.Diff(Project(remote), Project(declared), projectionOptions)
}

// ChangedFields names the projected fields that differ, in projection order.
func ChangedFields(declared, remote Record) []string {
	d, r := Project(declared), Project(remote)

	var fields []string
	if d.Message != r.Message {
		fields = append(fields, "message")
	}
	if d.Name != r.Name {
		fields = append(fields, "name")
	}
	if !cmp.Equal(d.Priority, r.Priority) {
		fields = append(fields, "priority")
	}
	if d.Query != r.Query {
		fields = append(fields, "query")
	}
	if !cmp.Equal(d.Tags, r.Tags, projectionOptions) {
		fields = append(fields, "tags")
	}
	if d.Type != r.Type {
		fields = append(fields, "type")
	}
	return fields
}
