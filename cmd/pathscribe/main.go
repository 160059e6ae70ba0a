// Command pathscribe annotates functional-pathway feature tables with
// human-readable descriptions, locally or from KEGG.
package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/rshade/pathscribe/internal/annotate"
	"github.com/rshade/pathscribe/internal/cli"
	"github.com/rshade/pathscribe/pkg/version"
)

// Exit codes. Remote exhaustion gets its own code so pipelines can
// distinguish "KEGG was down" from bad input.
const (
	exitOK                = 0
	exitError             = 1
	exitRemoteUnavailable = 2
)

func main() {
	os.Exit(run())
}

func run() int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	root := cli.NewRootCmd(version.GetVersion())
	if err := root.ExecuteContext(ctx); err != nil {
		if errors.Is(err, annotate.ErrRemoteUnavailable) {
			return exitRemoteUnavailable
		}
		return exitError
	}
	return exitOK
}
