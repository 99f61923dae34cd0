package main

import (
	"context"
	"fmt"
	"sort"
	"text/tabwriter"

	"github.com/pressly/sqlturso/database"
)

func runArgs(_ context.Context, env *cliEnv, args []string) error {
	urls, err := urlsFromArgs(args)
	if err != nil {
		return err
	}
	for i, raw := range urls {
		u, err := resolveURL(raw, env.options)
		if err != nil {
			return err
		}
		dialect, err := database.Load(u.DialectName())
		if err != nil {
			return err
		}
		connectArgs, err := dialect.CreateConnectArgs(u)
		if err != nil {
			return err
		}
		api := dialect.DBAPI()
		env.logger.Debug("translated url", "url", u.Redacted(), "dialect", dialect.Name())

		if i > 0 {
			fmt.Fprintln(env.stdout)
		}
		tw := tabwriter.NewWriter(env.stdout, 0, 4, 1, ' ', 0)
		fmt.Fprintf(tw, "url:\t%s\n", u.Redacted())
		fmt.Fprintf(tw, "dialect:\t%s\n", dialect.Name())
		fmt.Fprintf(tw, "async:\t%t\n", dialect.IsAsync())
		fmt.Fprintf(tw, "statement cache:\t%t\n", dialect.SupportsStatementCache())
		fmt.Fprintf(tw, "paramstyle:\t%s\n", api.Paramstyle)
		fmt.Fprintf(tw, "sqlite version:\t%s\n", api.SQLiteVersion())
		for _, target := range connectArgs.Positional {
			fmt.Fprintf(tw, "target:\t%s\n", redactTarget(target))
		}
		keys := make([]string, 0, len(connectArgs.Keyword))
		for k := range connectArgs.Keyword {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			fmt.Fprintf(tw, "keyword:\t%s=%v\n", k, connectArgs.Keyword[k])
		}
		if err := tw.Flush(); err != nil {
			return err
		}
	}
	return nil
}
