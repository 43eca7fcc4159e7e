package invoice

import "sort"

// DayStat aggregates the invoices saved on one UTC calendar day.
type DayStat struct {
	Date  string
	Total int64
	Count int
}

// ComputeDayStats groups invoices by calendar day and sums their totals.
// Days are ordered most recent first; the fixed-width day key makes the
// lexicographic sort chronological.
func ComputeDayStats(invoices []Invoice) []DayStat {
	byDay := make(map[string]*DayStat)

	for _, inv := range invoices {
		day := inv.Day()

		stat, ok := byDay[day]
		if !ok {
			stat = &DayStat{Date: day}
			byDay[day] = stat
		}

		stat.Total += inv.TotalAmount
		stat.Count++
	}

	stats := make([]DayStat, 0, len(byDay))
	for _, stat := range byDay {
		stats = append(stats, *stat)
	}

	sort.Slice(stats, func(i, j int) bool {
		return stats[i].Date > stats[j].Date
	})

	return stats
}
