package main

import (
	"flag"
	"fmt"
	"log"

	_ "github.com/carbocation/genostat/compileinfoprint"
	"github.com/carbocation/genostat/hwe"
	"github.com/carbocation/genostat/tabular"
	"github.com/carbocation/pfx"
)

// Compute HWE chi square and exact p-values for every site in a delimited
// table with columns SNP, AA, AB and BB.
func main() {
	var input string
	var fastCutoff float64
	flag.StringVar(&input, "counts", "", "Delimited (tab or comma, optionally compressed) file with a header row and columns SNP, AA, AB, BB (genotype counts).")
	flag.Float64Var(&fastCutoff, "fast", 0, "If positive, only compute the exact p-value for sites whose chi square p-value is below this cutoff; other sites report the chi square p-value in the exact column.")
	flag.Parse()

	if input == "" {
		flag.PrintDefaults()
		log.Fatalln()
	}

	fileBytes, err := tabular.ReadFile(input)
	if err != nil {
		log.Fatalln(err)
	}

	sites, err := ReadSites(fileBytes)
	if err != nil {
		log.Fatalln(err)
	}
	log.Println("Read", len(sites), "sites from", input)

	fmt.Printf("SNP\tAA\tAB\tBB\tMAF\tHWE_ChiSq\tHWE_ChiSq_P\tHWE_Exact_P\n")

	for _, site := range sites {
		if err := handleSite(site, fastCutoff); err != nil {
			log.Fatalln(err)
		}
	}
}

func handleSite(site *Site, fastCutoff float64) error {
	counts := site.Counts()

	chiP, err := counts.ChiSquarePValue()
	if err != nil {
		return pfx.Err(fmt.Errorf("%s: %w", site.SNP, err))
	}

	var exactP float64
	if fastCutoff > 0 {
		exactP, err = hwe.Fast(counts, fastCutoff)
	} else {
		exactP, err = hwe.Exact(counts)
	}
	if err != nil {
		return pfx.Err(fmt.Errorf("%s: %w", site.SNP, err))
	}

	p, q := counts.AlleleFrequencies()
	maf := q
	if p < q {
		maf = p
	}

	fmt.Printf("%s\t%d\t%d\t%d\t%.3e\t%.3e\t%.3e\t%.3e\n", site.SNP, site.AA, site.AB, site.BB, maf, counts.ChiSquare(), chiP, exactP)

	return nil
}
