/*
Copyright IBM Corp. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

// Package primegen wires the prime search coordinator into the primegen
// command line tool.
package primegen

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"strings"

	"github.com/hyperledger-labs/bigcrypto/prime"
	"github.com/hyperledger/fabric-lib-go/common/flogging"
	"github.com/hyperledger/fabric-lib-go/common/metrics"
	"github.com/hyperledger/fabric-lib-go/common/metrics/disabled"
	"github.com/hyperledger/fabric-lib-go/common/metrics/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var logger = flogging.MustGetLogger("primegen")

const envPrefix = "PRIMEGEN"

type options struct {
	Bits        int
	Iterations  int
	Parallelism int
	Count       int
	Hex         bool
	MetricsAddr string
	LogSpec     string
}

// Command builds the primegen root command. Flags may also be supplied via
// PRIMEGEN_* environment variables.
func Command() *cobra.Command {
	opts := &options{}
	cmd := &cobra.Command{
		Use:          "primegen",
		Short:        "Generate probable primes for public-key parameters",
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		PreRunE: func(cmd *cobra.Command, args []string) error {
			v := viper.New()
			v.SetEnvPrefix(envPrefix)
			v.AutomaticEnv()
			v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
			if err := v.BindPFlags(cmd.Flags()); err != nil {
				return err
			}
			opts.Bits = v.GetInt("bits")
			opts.Iterations = v.GetInt("iterations")
			opts.Parallelism = v.GetInt("parallelism")
			opts.Count = v.GetInt("count")
			opts.Hex = v.GetBool("hex")
			opts.MetricsAddr = v.GetString("metrics-listen-address")
			opts.LogSpec = v.GetString("logspec")
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, opts)
		},
	}

	flags := cmd.Flags()
	flags.IntVarP(&opts.Bits, "bits", "b", 2048, "bit length of the generated primes")
	flags.IntVar(&opts.Iterations, "iterations", prime.DefaultIterations, "Miller-Rabin witness rounds per candidate")
	flags.IntVar(&opts.Parallelism, "parallelism", 0, "concurrent candidate testers (0 selects cores-1, 1 forces sequential)")
	flags.IntVar(&opts.Count, "count", 1, "number of primes to generate")
	flags.BoolVar(&opts.Hex, "hex", false, "print primes in hexadecimal instead of decimal")
	flags.StringVar(&opts.MetricsAddr, "metrics-listen-address", "", "serve prometheus metrics on this address (disabled when empty)")
	flags.StringVar(&opts.LogSpec, "logspec", "info", "logging specification, e.g. debug or bigcrypto.prime=debug:info")
	return cmd
}

func run(cmd *cobra.Command, opts *options) error {
	flogging.Init(flogging.Config{
		LogSpec: opts.LogSpec,
		Writer:  os.Stderr,
	})

	var provider metrics.Provider = &disabled.Provider{}
	if opts.MetricsAddr != "" {
		provider = &prometheus.Provider{}
		go func() {
			logger.Infof("serving metrics on %s", opts.MetricsAddr)
			mux := http.NewServeMux()
			mux.Handle("/metrics", promhttp.Handler())
			if err := http.ListenAndServe(opts.MetricsAddr, mux); err != nil {
				logger.Warnf("metrics listener stopped: %s", err)
			}
		}()
	}

	gen := prime.NewGenerator(prime.GeneratorOpts{
		Parallelism:     opts.Parallelism,
		MetricsProvider: provider,
	})

	for i := 0; i < opts.Count; i++ {
		p, err := gen.Generate(context.Background(), opts.Bits, opts.Iterations)
		if err != nil {
			return err
		}
		if opts.Hex {
			fmt.Fprintf(cmd.OutOrStdout(), "%x\n", p)
		} else {
			fmt.Fprintln(cmd.OutOrStdout(), p.String())
		}
	}
	return nil
}
