package report

import (
	"sort"

	"github.com/lookerci/contentcheck/internal/content"
)

// Groups maps an error message to every record carrying exactly that message.
type Groups map[string][]content.Record

// Group buckets records by byte-exact message. Messages that differ only in
// case or whitespace stay in separate groups.
func Group(records []content.Record) Groups {
	g := make(Groups)
	for _, r := range records {
		g[r.Message] = append(g[r.Message], r)
	}
	return g
}

// Total returns the number of records across all groups.
func (g Groups) Total() int {
	n := 0
	for _, members := range g {
		n += len(members)
	}
	return n
}

// Messages returns the group keys in ascending order.
func (g Groups) Messages() []string {
	msgs := make([]string, 0, len(g))
	for m := range g {
		msgs = append(msgs, m)
	}
	sort.Strings(msgs)
	return msgs
}

// Sorted returns a copy of a group's members in record order.
func (g Groups) Sorted(message string) []content.Record {
	members := append([]content.Record(nil), g[message]...)
	sort.SliceStable(members, func(i, j int) bool {
		return members[i].Less(members[j])
	})
	return members
}
