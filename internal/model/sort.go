package model

import (
	"cmp"
	"fmt"
	"log"
	"slices"
	"strings"

	"classmate/pkg/types"
)

// Sort metrics accepted by SortStudents.
const (
	MetricPerformance = "performance"
	MetricName        = "name"
)

// SortMetrics is the allow-list of sort metrics.
var SortMetrics = []string{MetricPerformance, MetricName}

// IsSortMetric reports whether metric is in the allow-list.
func IsSortMetric(metric string) bool {
	return slices.Contains(SortMetrics, strings.ToLower(metric))
}

// compareStudents returns a total order on students: the metric first, then
// name, phone and ID as tie-breakers. Because the order is total, sorting
// descending yields the exact reverse of sorting ascending.
func compareStudents(metric string) (func(a, b *types.Student) int, error) {
	var primary func(a, b *types.Student) int
	switch strings.ToLower(metric) {
	case MetricPerformance:
		primary = func(a, b *types.Student) int { return cmp.Compare(a.Performance, b.Performance) }
	case MetricName:
		primary = func(a, b *types.Student) int {
			return cmp.Compare(strings.ToLower(a.Name), strings.ToLower(b.Name))
		}
	default:
		return nil, fmt.Errorf("%w: unknown sort metric %q (expected one of %s)",
			types.ErrInvalidArgument, metric, strings.Join(SortMetrics, ", "))
	}
	return func(a, b *types.Student) int {
		return cmp.Or(
			primary(a, b),
			cmp.Compare(a.Name, b.Name),
			cmp.Compare(a.Phone, b.Phone),
			cmp.Compare(a.ID, b.ID),
		)
	}, nil
}

// SortStudents reorders the roster of the session named group, searching
// tutorials, then labs, then consultations. When no session has that name,
// group is only a label and the master list is sorted.
func (m *Model) SortStudents(group, metric string, ascending bool) (string, error) {
	compare, err := compareStudents(metric)
	if err != nil {
		return "", err
	}
	order := compare
	if !ascending {
		order = func(a, b *types.Student) int { return compare(b, a) }
	}

	for _, kind := range types.SessionKinds {
		sess, ok := m.find(kind, group)
		if !ok {
			continue
		}
		roster := make([]*types.Student, 0, sess.Count())
		for _, id := range sess.Students() {
			roster = append(roster, m.byID[id])
		}
		slices.SortFunc(roster, order)
		ids := make([]types.StudentID, 0, len(roster))
		for _, s := range roster {
			ids = append(ids, s.ID)
		}
		if err := sess.SortRoster(ids); err != nil {
			return "", err
		}
		m.changed()
		target := fmt.Sprintf("%s %s", kind, group)
		log.Printf("Sorted roster: %s metric=%s ascending=%t", target, metric, ascending)
		return target, nil
	}

	slices.SortFunc(m.students, order)
	m.changed()
	log.Printf("Sorted master list: group=%s metric=%s ascending=%t", group, metric, ascending)
	return "all students", nil
}
