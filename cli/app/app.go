package app

import (
	"fmt"
	"os"
	"runtime"

	"github.com/nspcc-dev/near-go/cli/console"
	"github.com/nspcc-dev/near-go/cli/query"
	"github.com/nspcc-dev/near-go/cli/tx"
	"github.com/nspcc-dev/near-go/pkg/config"
	"github.com/urfave/cli"
)

func versionPrinter(c *cli.Context) {
	_, _ = fmt.Fprintf(c.App.Writer, "NearGo\nVersion: %s\nGoVersion: %s\n",
		config.Version,
		runtime.Version(),
	)
}

// New creates a NearGo instance of [cli.App] with all commands included.
func New() *cli.App {
	ctl := NewShell()
	ctl.Commands = append(ctl.Commands, console.NewCommands(NewShell)...)
	return ctl
}

// NewShell creates a NearGo instance of [cli.App] with all commands that
// can be used from the interactive console.
func NewShell() *cli.App {
	cli.VersionPrinter = versionPrinter
	ctl := cli.NewApp()
	ctl.Name = "near-go"
	ctl.Version = config.Version
	ctl.Usage = "Go client for NEAR Protocol JSON-RPC nodes"
	ctl.ErrWriter = os.Stdout

	ctl.Commands = append(ctl.Commands, query.NewCommands()...)
	ctl.Commands = append(ctl.Commands, tx.NewCommands()...)
	return ctl
}
