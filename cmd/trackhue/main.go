package main

import (
	"context"
	"os"

	"github.com/charmbracelet/fang"

	"github.com/macropower/trackhue/internal/cli"
	"github.com/macropower/trackhue/pkg/version"
)

func main() {
	err := fang.Execute(
		context.Background(),
		cli.NewRootCmd(),
		fang.WithVersion(version.GetVersion()),
		fang.WithCommit(version.Revision),
		fang.WithErrorHandler(cli.ErrorHandler),
		fang.WithNotifySignal(os.Interrupt),
	)
	if err != nil {
		os.Exit(1)
	}
}
