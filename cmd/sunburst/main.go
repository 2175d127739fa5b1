// Command sunburst lays out hierarchies as sunburst charts.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/matzehuels/sunburst/internal/cli"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := cli.New(os.Stderr, cli.LogInfo).RootCommand().ExecuteContext(ctx)
	stop()

	cli.ReportError(os.Stderr, err)
	os.Exit(cli.ExitCode(err))
}
