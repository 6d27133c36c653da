/*
Copyright IBM Corp. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package prime

import "github.com/hyperledger/fabric-lib-go/common/metrics"

var (
	candidatesTestedOpts = metrics.CounterOpts{
		Namespace:    "bigcrypto",
		Subsystem:    "prime",
		Name:         "candidates_tested",
		Help:         "Number of candidates run through the primality tester during search.",
		LabelNames:   []string{"outcome"},
		StatsdFormat: "%{#fqname}.%{outcome}",
	}

	searchesCompletedOpts = metrics.CounterOpts{
		Namespace:    "bigcrypto",
		Subsystem:    "prime",
		Name:         "searches_completed",
		Help:         "Number of prime searches resolved with a probable prime.",
		LabelNames:   []string{"mode"},
		StatsdFormat: "%{#fqname}.%{mode}",
	}

	searchDurationOpts = metrics.HistogramOpts{
		Namespace:    "bigcrypto",
		Subsystem:    "prime",
		Name:         "search_duration",
		Help:         "Time taken to find a probable prime, in seconds.",
		StatsdFormat: "%{#fqname}",
	}
)

// Metrics encapsulates the prime search metrics.
type Metrics struct {
	CandidatesTested  metrics.Counter
	SearchesCompleted metrics.Counter
	SearchDuration    metrics.Histogram
}

// NewMetrics creates the search metrics against the supplied provider.
func NewMetrics(p metrics.Provider) *Metrics {
	return &Metrics{
		CandidatesTested:  p.NewCounter(candidatesTestedOpts),
		SearchesCompleted: p.NewCounter(searchesCompletedOpts),
		SearchDuration:    p.NewHistogram(searchDurationOpts),
	}
}
