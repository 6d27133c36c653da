/*
Copyright IBM Corp. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package prime

import (
	"context"
	"crypto/rand"
	"io"
	"math/big"
	"runtime"
	"sync"

	"code.cloudfoundry.org/clock"
	"github.com/hyperledger-labs/bigcrypto/random"
	"github.com/hyperledger/fabric-lib-go/common/flogging"
	"github.com/hyperledger/fabric-lib-go/common/metrics"
	"github.com/hyperledger/fabric-lib-go/common/metrics/disabled"
	"github.com/pkg/errors"
)

var logger = flogging.MustGetLogger("bigcrypto.prime")

// GeneratorOpts configures a Generator. The zero value selects sane
// defaults for every field.
type GeneratorOpts struct {
	// Parallelism is the number of concurrent candidate testers. A value
	// of 1 forces the sequential search loop; zero or negative selects
	// runtime.NumCPU()-1, reserving one unit for coordination.
	Parallelism int
	// Rand is the entropy source for candidates and witnesses, defaulting
	// to crypto/rand.Reader. It must be safe for concurrent use when
	// Parallelism exceeds 1.
	Rand io.Reader
	// MetricsProvider records search metrics; defaults to disabled.
	MetricsProvider metrics.Provider
	// Clock times searches; defaults to the wall clock.
	Clock clock.Clock
}

// Generator coordinates a pool of concurrent candidate testers racing to
// find the first probable prime of a requested bit length.
type Generator struct {
	parallelism int
	rand        io.Reader
	metrics     *Metrics
	clock       clock.Clock
}

// NewGenerator creates a Generator from opts.
func NewGenerator(opts GeneratorOpts) *Generator {
	g := &Generator{
		parallelism: opts.Parallelism,
		rand:        opts.Rand,
		clock:       opts.Clock,
	}
	if g.parallelism < 1 {
		g.parallelism = runtime.NumCPU() - 1
		if g.parallelism < 1 {
			g.parallelism = 1
		}
	}
	if g.rand == nil {
		g.rand = rand.Reader
	}
	if g.clock == nil {
		g.clock = clock.NewClock()
	}
	provider := opts.MetricsProvider
	if provider == nil {
		provider = &disabled.Provider{}
	}
	g.metrics = NewMetrics(provider)
	return g
}

// Generate returns a probable prime occupying exactly bitLength bits (top
// bit set) that passes iterations rounds of Miller-Rabin testing. The
// supplied context cancels the search. There is no internal timeout: a
// degenerate search space, such as bitLength 1, loops until cancelled.
func (g *Generator) Generate(ctx context.Context, bitLength, iterations int) (*big.Int, error) {
	if bitLength < 1 {
		return nil, errors.Errorf("bitLength must be >= 1, got %d", bitLength)
	}
	if iterations < 1 {
		iterations = DefaultIterations
	}

	start := g.clock.Now()
	mode := "parallel"
	var p *big.Int
	var err error
	if g.parallelism == 1 {
		mode = "sequential"
		p, err = g.searchSequential(ctx, bitLength, iterations)
	} else {
		p, err = g.search(ctx, bitLength, iterations)
	}
	if err != nil {
		return nil, err
	}

	elapsed := g.clock.Since(start)
	g.metrics.SearchesCompleted.With("mode", mode).Add(1)
	g.metrics.SearchDuration.Observe(elapsed.Seconds())
	logger.Debugf("found %d-bit probable prime after %s (%s search, %d witness rounds)", bitLength, elapsed, mode, iterations)
	return p, nil
}

// search races g.parallelism candidate testers. The first tester to confirm
// a probable prime claims the single result slot; the others observe the
// cancelled context and drop their in-flight candidates without reporting.
func (g *Generator) search(ctx context.Context, bitLength, iterations int) (*big.Int, error) {
	var wg sync.WaitGroup
	searchCtx, cancel := context.WithCancel(ctx)
	defer wg.Wait()
	defer cancel()

	results := make(chan *big.Int, 1)
	errs := make(chan error, g.parallelism)
	logger.Debugf("racing %d candidate testers for a %d-bit prime", g.parallelism, bitLength)

	for i := 0; i < g.parallelism; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			g.testCandidates(searchCtx, bitLength, iterations, results, errs)
		}()
	}

	select {
	case p := <-results:
		return p, nil
	case err := <-errs:
		return nil, err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// testCandidates owns one candidate at a time: draw, test, and either claim
// the result or draw a fresh candidate of the same length. A composite
// candidate is regenerated rather than adjusted so the distribution of
// accepted primes is untouched.
func (g *Generator) testCandidates(ctx context.Context, bitLength, iterations int, results chan<- *big.Int, errs chan<- error) {
	for {
		select {
		case <-ctx.Done():
			return
		default:
		}

		candidate, err := g.draw(bitLength)
		if err == nil {
			var probablyPrime bool
			probablyPrime, err = millerRabin(g.rand, candidate, iterations)
			if err == nil && !probablyPrime {
				g.metrics.CandidatesTested.With("outcome", "composite").Add(1)
				continue
			}
		}
		if err != nil {
			select {
			case errs <- err:
			case <-ctx.Done():
			}
			return
		}

		g.metrics.CandidatesTested.With("outcome", "prime").Add(1)
		// First writer wins; a late winner sees the cancelled context and
		// its result is discarded.
		select {
		case results <- candidate:
		case <-ctx.Done():
		}
		return
	}
}

func (g *Generator) searchSequential(ctx context.Context, bitLength, iterations int) (*big.Int, error) {
	for {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		candidate, err := g.draw(bitLength)
		if err != nil {
			return nil, err
		}
		probablyPrime, err := millerRabin(g.rand, candidate, iterations)
		if err != nil {
			return nil, err
		}
		if probablyPrime {
			g.metrics.CandidatesTested.With("outcome", "prime").Add(1)
			return candidate, nil
		}
		g.metrics.CandidatesTested.With("outcome", "composite").Add(1)
	}
}

// draw produces a fresh candidate of exactly bitLength bits, top bit set.
func (g *Generator) draw(bitLength int) (*big.Int, error) {
	buf, err := random.Bits(g.rand, bitLength, true)
	if err != nil {
		return nil, err
	}
	return new(big.Int).SetBytes(buf), nil
}

// GeneratePrime finds a probable prime of exactly bitLength bits with a
// default-configured parallel generator.
func GeneratePrime(ctx context.Context, bitLength, iterations int) (*big.Int, error) {
	return NewGenerator(GeneratorOpts{}).Generate(ctx, bitLength, iterations)
}

// GeneratePrimeSync is the forced-sequential equivalent of GeneratePrime.
func GeneratePrimeSync(bitLength, iterations int) (*big.Int, error) {
	g := NewGenerator(GeneratorOpts{Parallelism: 1})
	return g.Generate(context.Background(), bitLength, iterations)
}
