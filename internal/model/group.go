package model

import (
	"math"
	"sort"
	"strings"

	pkgmodel "github.com/goliatone/go-modelform/pkg/model"
)

// unordered is the sort key used for fields without a declared order.
const unordered = math.MaxInt

// groupFields partitions descriptors by exact group key. Groups are ordered by
// the smallest order among their fields, fields by their own order; both sorts
// are stable so ties keep declaration order. Fields without a group key are
// returned separately, in the same order.
func groupFields(fields []*pkgmodel.FieldDescriptor, defaults pkgmodel.Defaults, label func(string) string) ([]pkgmodel.DisplayGroup, []*pkgmodel.FieldDescriptor) {
	var (
		groups    []pkgmodel.DisplayGroup
		positions = make(map[string]int)
		ungrouped []*pkgmodel.FieldDescriptor
	)

	for _, field := range fields {
		key := strings.TrimSpace(field.Display.Group)
		if key == "" {
			ungrouped = append(ungrouped, field)
			continue
		}
		idx, ok := positions[key]
		if !ok {
			idx = len(groups)
			positions[key] = idx
			groups = append(groups, pkgmodel.DisplayGroup{
				Key:      key,
				Name:     label(key),
				ShowName: defaults.ShowGroupName,
				CSSClass: defaults.GroupClass,
				Order:    unordered,
			})
		}
		group := &groups[idx]
		group.Fields = append(group.Fields, field)
		if order := field.Display.OrderValue(unordered); order < group.Order {
			group.Order = order
		}
	}

	for i := range groups {
		sortByOrder(groups[i].Fields)
	}
	sort.SliceStable(groups, func(i, j int) bool {
		return groups[i].Order < groups[j].Order
	})
	sortByOrder(ungrouped)

	return groups, ungrouped
}

func sortByOrder(fields []*pkgmodel.FieldDescriptor) {
	sort.SliceStable(fields, func(i, j int) bool {
		return fields[i].Display.OrderValue(unordered) < fields[j].Display.OrderValue(unordered)
	})
}
