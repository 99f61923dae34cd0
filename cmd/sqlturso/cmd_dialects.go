package main

import (
	"context"
	"fmt"

	"github.com/pressly/sqlturso/database"
)

func runDialects(_ context.Context, env *cliEnv, _ []string) error {
	for _, name := range database.Dialects() {
		d, err := database.Load(name)
		if err != nil {
			return err
		}
		mode := "sync"
		if d.IsAsync() {
			mode = "async"
		}
		fmt.Fprintf(env.stdout, "%-16s driver=%s %s\n", name, d.Driver(), mode)
	}
	return nil
}
