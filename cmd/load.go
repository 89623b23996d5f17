package cmd

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"time"

	"aqwari.net/xml/xmltree"
	"golang.org/x/time/rate"

	"github.com/khanhnv2901/sds-cli/internal/scap"
	"github.com/khanhnv2901/sds-cli/internal/xccdf"
)

func loadCollection(path string) (*scap.Collection, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	root, err := xmltree.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return scap.ParseCollection(root)
}

func newResolver() *scap.Resolver {
	r := &scap.Resolver{
		Strict: cliConfig.Strict,
		Logger: logger,
	}
	if cliConfig.Fetch.Enabled {
		r.Fetcher = &scap.HTTPFetcher{
			Client:  &http.Client{Timeout: time.Duration(cliConfig.Fetch.TimeoutSecs) * time.Second},
			Limiter: rate.NewLimiter(rate.Limit(cliConfig.Fetch.RateLimit), cliConfig.Fetch.RateLimit),
		}
	}
	return r
}

// loadBenchmark runs the full pipeline for one file: parse the collection,
// resolve the selected stream, and parse its checklist into a benchmark.
func loadBenchmark(ctx context.Context, path string) (*xccdf.Benchmark, *scap.Bundle, error) {
	col, err := loadCollection(path)
	if err != nil {
		return nil, nil, err
	}
	bundle, err := newResolver().Resolve(ctx, col, cliConfig.Stream)
	if err != nil {
		return nil, nil, err
	}
	chk := bundle.Checklist()
	if chk == nil {
		return nil, nil, fmt.Errorf("data stream %s declares no checklist component", bundle.Stream().ID())
	}
	benchmark, err := xccdf.ParseBenchmark(chk)
	if err != nil {
		return nil, nil, err
	}
	return benchmark, bundle, nil
}
