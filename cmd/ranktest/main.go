package main

import (
	"flag"
	"fmt"
	"log"

	_ "github.com/carbocation/genostat/compileinfoprint"
	"github.com/carbocation/genostat/specfun"
	"github.com/carbocation/genostat/tabular"
	"github.com/carbocation/genostat/wilcoxon"
	"github.com/carbocation/pfx"
)

const (
	ModeRankSum    = "ranksum"
	ModeSignedRank = "signedrank"
)

type config struct {
	Mode   string
	Group1 string
	Group2 string
	Tail   wilcoxon.TailType
	Scale  specfun.Scale
}

// Run a Wilcoxon test per feature of a delimited table with columns
// Feature, Group and Value.
func main() {
	var input, tail string
	var logP bool
	cfg := config{}

	flag.StringVar(&input, "values", "", "Delimited (tab or comma, optionally compressed) file with a header row and columns Feature, Group, Value.")
	flag.StringVar(&cfg.Mode, "mode", ModeRankSum, fmt.Sprintf("%q compares group1 against group2 within each feature. %q tests whether group1's values are centered on zero.", ModeRankSum, ModeSignedRank))
	flag.StringVar(&cfg.Group1, "group1", "", "Name of the first (or only) group.")
	flag.StringVar(&cfg.Group2, "group2", "", "Name of the second group. Required for ranksum mode.")
	flag.StringVar(&tail, "tail", wilcoxon.TwoSided.String(), "Alternative hypothesis: lower, upper or two-sided.")
	flag.BoolVar(&logP, "log", false, "Report natural-log p-values.")
	flag.Parse()

	if input == "" || cfg.Group1 == "" || (cfg.Mode == ModeRankSum && cfg.Group2 == "") {
		flag.PrintDefaults()
		log.Fatalln()
	}
	if cfg.Mode != ModeRankSum && cfg.Mode != ModeSignedRank {
		log.Fatalf("Unknown mode %q\n", cfg.Mode)
	}

	var err error
	cfg.Tail, err = wilcoxon.ParseTailType(tail)
	if err != nil {
		log.Fatalln(pfx.Err(err))
	}
	if logP {
		cfg.Scale = specfun.Log
	}

	fileBytes, err := tabular.ReadFile(input)
	if err != nil {
		log.Fatalln(err)
	}

	records, err := ReadObservations(fileBytes)
	if err != nil {
		log.Fatalln(err)
	}
	features := GroupByFeature(records)
	log.Println("Read", len(records), "observations of", len(features), "features")

	fmt.Println(header(cfg.Mode))

	counts := &wilcoxon.TieCounts{}
	skipped := 0
	for _, feature := range features {
		line, err := testFeature(feature, cfg, counts)
		if err != nil {
			log.Println("Skipping", feature.Name, ":", err)
			skipped++
			continue
		}
		fmt.Println(line)
	}

	log.Printf("Tested %d features (%d skipped). With ties: %d. With zeros: %d. With ties and zeros: %d.\n", len(features)-skipped, skipped, counts.Tied, counts.Zero, counts.TiedAndZero)
}

func header(mode string) string {
	if mode == ModeSignedRank {
		return "Feature\tN\tMean\tSD\tNonZero\tV\tP\tMethod\tPseudoMedian"
	}
	return "Feature\tN1\tMean1\tSD1\tN2\tMean2\tSD2\tW\tP\tMethod\tMedianDifference"
}

func testFeature(feature *Feature, cfg config, counts *wilcoxon.TieCounts) (string, error) {
	x := feature.Groups[cfg.Group1]
	s1 := Summarize(x)

	if cfg.Mode == ModeSignedRank {
		res, err := wilcoxon.SignedRankTestFull(x, cfg.Tail, cfg.Scale)
		if err != nil {
			return "", err
		}
		counts.Add(res)

		return fmt.Sprintf("%s\t%d\t%.6g\t%.6g\t%d\t%g\t%.6e\t%s\t%.6g",
			feature.Name, s1.N, s1.Mean(), s1.StandardDeviation(), res.N,
			res.Statistic, res.PValue, res.Method, wilcoxon.PseudoMedian(x)), nil
	}

	y := feature.Groups[cfg.Group2]
	s2 := Summarize(y)

	res, err := wilcoxon.RankSumTestFull(x, y, cfg.Tail, cfg.Scale)
	if err != nil {
		return "", err
	}
	counts.Add(res)

	diff, err := wilcoxon.MedianDifference(x, y)
	if err != nil {
		return "", err
	}

	return fmt.Sprintf("%s\t%d\t%.6g\t%.6g\t%d\t%.6g\t%.6g\t%g\t%.6e\t%s\t%.6g",
		feature.Name, s1.N, s1.Mean(), s1.StandardDeviation(),
		s2.N, s2.Mean(), s2.StandardDeviation(),
		res.Statistic, res.PValue, res.Method, diff), nil
}
