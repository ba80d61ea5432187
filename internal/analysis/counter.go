package analysis

import (
	"sort"

	"github.com/skywatch/sightings-etl/internal/domain"
)

// counter tallies string categories while remembering first-encountered
// order, so rankings can break count ties deterministically by original
// ordering instead of map iteration order.
type counter struct {
	counts map[string]int
	order  []string
}

func newCounter() *counter {
	return &counter{counts: map[string]int{}}
}

func (c *counter) add(label string) {
	if _, seen := c.counts[label]; !seen {
		c.order = append(c.order, label)
	}
	c.counts[label]++
}

// top returns up to n labels ordered by descending count; ties keep
// first-encountered order.
func (c *counter) top(n int) domain.CountList {
	ranked := make(domain.CountList, 0, len(c.order))
	for _, label := range c.order {
		ranked = append(ranked, domain.LabelCount{Label: label, Count: c.counts[label]})
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Count > ranked[j].Count
	})
	if len(ranked) > n {
		ranked = ranked[:n]
	}
	return ranked
}
