package main

import (
	"sort"

	"github.com/carbocation/genostat/tabular"
)

// Observation is one row of the long-format value table.
type Observation struct {
	Feature string  `csv:"Feature"`
	Group   string  `csv:"Group"`
	Value   float64 `csv:"Value"`
}

// Feature holds the values of one feature, keyed by group, in file order.
type Feature struct {
	Name   string
	Groups map[string][]float64
}

func ReadObservations(fileBytes []byte) ([]*Observation, error) {
	records := []*Observation{}
	if err := tabular.UnmarshalBytes(fileBytes, &records); err != nil {
		return nil, err
	}

	return records, nil
}

// GroupByFeature collects observations per feature. Features are returned
// sorted by name.
func GroupByFeature(records []*Observation) []*Feature {
	byName := make(map[string]*Feature)
	for _, rec := range records {
		f, exists := byName[rec.Feature]
		if !exists {
			f = &Feature{Name: rec.Feature, Groups: make(map[string][]float64)}
			byName[rec.Feature] = f
		}
		f.Groups[rec.Group] = append(f.Groups[rec.Group], rec.Value)
	}

	out := make([]*Feature, 0, len(byName))
	for _, f := range byName {
		out = append(out, f)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })

	return out
}
