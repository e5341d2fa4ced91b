package catalog

import (
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"
)

// GroupMode selects how entries are grouped.
type GroupMode string

const (
	GroupBySemester GroupMode = "semester"
	GroupByType     GroupMode = "type"
)

// ParseGroupMode accepts "semester" or "type"; anything else is an error.
func ParseGroupMode(s string) (GroupMode, error) {
	switch m := GroupMode(strings.ToLower(strings.TrimSpace(s))); m {
	case GroupBySemester, GroupByType:
		return m, nil
	case "":
		return GroupBySemester, nil
	}
	return "", fmt.Errorf("unknown group mode %q (want semester or type)", s)
}

// Toggle flips between the two modes.
func (m GroupMode) Toggle() GroupMode {
	if m == GroupByType {
		return GroupBySemester
	}
	return GroupByType
}

// Group is a labeled run of entries with its totals.
type Group struct {
	Label   string
	Entries []Entry
	Totals
}

const otherLabel = "Other"

var (
	typePattern     = regexp.MustCompile(`^(\d{3})`)
	semesterPattern = regexp.MustCompile(`SEMESTER\s*(\d)`)
)

// Label computes the group an entry falls into.
func (m GroupMode) Label(e Entry) string {
	if m == GroupByType {
		if match := typePattern.FindStringSubmatch(e.Code); match != nil {
			return "Type " + match[1]
		}
		return otherLabel
	}
	if e.Section == "" {
		return otherLabel
	}
	return e.Section
}

type semesterKey struct {
	current bool
	year    int
	sem     int
	label   string
}

func semesterSortKey(label string) semesterKey {
	up := strings.ToUpper(label)
	if strings.Contains(up, "CURRENT") || strings.Contains(up, "SCHEDULE") {
		return semesterKey{current: true, label: label}
	}
	k := semesterKey{label: label}
	if m := yearPattern.FindString(up); m != "" {
		k.year, _ = strconv.Atoi(m)
	}
	if m := semesterPattern.FindStringSubmatch(up); m != nil {
		k.sem, _ = strconv.Atoi(m[1])
	}
	return k
}

func (m GroupMode) less(a, b string) bool {
	if m == GroupByType {
		return strings.ToLower(a) < strings.ToLower(b)
	}
	ka, kb := semesterSortKey(a), semesterSortKey(b)
	if ka.current != kb.current {
		return ka.current
	}
	if ka.year != kb.year {
		return ka.year > kb.year
	}
	if ka.sem != kb.sem {
		return ka.sem > kb.sem
	}
	return ka.label < kb.label
}

// GroupBy splits entries into ordered groups with per-group totals. Entry
// order within a group is preserved.
func GroupBy(entries []Entry, mode GroupMode) []Group {
	index := map[string]int{}
	var groups []Group
	for _, e := range entries {
		label := mode.Label(e)
		i, ok := index[label]
		if !ok {
			i = len(groups)
			index[label] = i
			groups = append(groups, Group{Label: label})
		}
		groups[i].Entries = append(groups[i].Entries, e)
	}
	sort.SliceStable(groups, func(i, j int) bool {
		return mode.less(groups[i].Label, groups[j].Label)
	})
	for i := range groups {
		groups[i].Totals = Sum(groups[i].Entries)
	}
	return groups
}
