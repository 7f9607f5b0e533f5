package main

import (
	"github.com/carbocation/runningvariance"
)

// Summary is the running mean and standard deviation of one group.
type Summary struct {
	runningvariance.RunningStat
}

func Summarize(x []float64) *Summary {
	s := &Summary{*runningvariance.NewRunningStat()}
	for _, v := range x {
		s.Push(v)
	}
	return s
}
