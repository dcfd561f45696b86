package aggregate

import "sort"

// Bucket is one tally row: a normalized field value and how many records
// carried it.
type Bucket struct {
	Key   string
	Count int
}

// Counts is an ordered tally. Ordering is deterministic: count descending,
// then key ascending, so identical inputs always produce identical output
// artifacts.
type Counts []Bucket

// Tally counts the occurrences of each value.
func Tally(values []string) Counts {
	totals := make(map[string]int, len(values))
	for _, value := range values {
		totals[value]++
	}

	counts := make(Counts, 0, len(totals))
	for key, count := range totals {
		counts = append(counts, Bucket{Key: key, Count: count})
	}

	sort.Slice(counts, func(i, j int) bool {
		if counts[i].Count != counts[j].Count {
			return counts[i].Count > counts[j].Count
		}
		return counts[i].Key < counts[j].Key
	})

	return counts
}

// Top returns the first n buckets, or all of them when fewer exist.
func (c Counts) Top(n int) Counts {
	if n < 0 || n >= len(c) {
		return c
	}
	return c[:n]
}

// Total returns the sum of all bucket counts.
func (c Counts) Total() int {
	total := 0
	for _, bucket := range c {
		total += bucket.Count
	}
	return total
}

// WithoutKey returns the counts excluding buckets with the given key. Charts
// drop the "absent" bucket so real values are not dwarfed by missing data.
func (c Counts) WithoutKey(key string) Counts {
	out := make(Counts, 0, len(c))
	for _, bucket := range c {
		if bucket.Key == key {
			continue
		}
		out = append(out, bucket)
	}
	return out
}
