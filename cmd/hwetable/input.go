package main

import (
	"fmt"

	"github.com/carbocation/genostat/hwe"
	"github.com/carbocation/genostat/tabular"
)

// Site is one row of the genotype count table.
type Site struct {
	SNP string `csv:"SNP"`
	AA  int    `csv:"AA"`
	AB  int    `csv:"AB"`
	BB  int    `csv:"BB"`
}

func (s Site) Counts() hwe.GenotypeCounts {
	return hwe.GenotypeCounts{AA: s.AA, AB: s.AB, BB: s.BB}
}

func ReadSites(fileBytes []byte) ([]*Site, error) {
	sites := []*Site{}
	if err := tabular.UnmarshalBytes(fileBytes, &sites); err != nil {
		return nil, err
	}

	for i, site := range sites {
		if site.AA < 0 || site.AB < 0 || site.BB < 0 {
			return nil, fmt.Errorf("row %d (%s): %w", i+1, site.SNP, hwe.ErrNegativeCount)
		}
	}

	return sites, nil
}
