package main

import (
	"context"
	"fmt"
	"time"

	"github.com/pressly/sqlturso"
	"go.uber.org/multierr"
	"golang.org/x/sync/errgroup"
)

type pingResult struct {
	url     string
	elapsed time.Duration
	err     error
}

func runPing(ctx context.Context, env *cliEnv, args []string) error {
	urls, err := urlsFromArgs(args)
	if err != nil {
		return err
	}
	results := make([]pingResult, len(urls))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(4)
	for i, raw := range urls {
		i, raw := i, raw
		g.Go(func() error {
			results[i] = ping(ctx, env, raw)
			// Keep going on failure so that every URL gets reported.
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}
	var retErr error
	for _, res := range results {
		if res.err != nil {
			fmt.Fprintf(env.stdout, "FAIL %s: %v\n", res.url, res.err)
			retErr = multierr.Append(retErr, fmt.Errorf("%s: %w", res.url, res.err))
			continue
		}
		fmt.Fprintf(env.stdout, "OK   %s (%s)\n", res.url, res.elapsed.Round(time.Millisecond))
	}
	return retErr
}

func ping(ctx context.Context, env *cliEnv, raw string) (res pingResult) {
	res.url = raw
	u, err := resolveURL(raw, env.options)
	if err != nil {
		res.err = err
		return res
	}
	res.url = u.Redacted()
	start := time.Now()
	defer func() { res.elapsed = time.Since(start) }()

	s, err := sqlturso.Open(ctx, u.String(),
		sqlturso.WithLogger(slogPrinter{env.logger}),
		sqlturso.WithVerbose(env.verbose),
	)
	if err != nil {
		res.err = err
		return res
	}
	var one int
	err = s.Conn.DB.QueryRowContext(ctx, "SELECT 1").Scan(&one)
	res.err = multierr.Append(err, s.Close())
	return res
}
