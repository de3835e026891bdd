/*
Package console implements an interactive shell running query and
transaction commands against a single RPC node connection.
*/
package console

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/chzyer/readline"
	"github.com/kballard/go-shellquote"
	"github.com/nspcc-dev/near-go/cli/options"
	"github.com/nspcc-dev/near-go/pkg/config"
	"github.com/urfave/cli"
)

const (
	exitFuncKey = "exitFunc"
	prompt      = "NEAR-GO > "
)

// NewCommands returns 'console' command. newShell creates an application
// with the commands available from the console.
func NewCommands(newShell func() *cli.App) []cli.Command {
	flags := make([]cli.Flag, 0, len(options.Client)+1)
	flags = append(flags, options.Client...)
	flags = append(flags, cli.StringFlag{
		Name:  "history",
		Usage: "File to keep command history in",
	})
	return []cli.Command{{
		Name:  "console",
		Usage: "Start interactive console connected to the RPC node",
		Description: `All query and tx commands are available in the console, they use the
   connection configured for the console, so there is no need to repeat
   endpoint flags for each of them.`,
		Action: func(ctx *cli.Context) error {
			return startConsole(ctx, newShell())
		},
		Flags: flags,
	}}
}

func startConsole(ctx *cli.Context, shell *cli.App) error {
	c, closer, exitErr := options.GetRPCClient(ctx)
	if exitErr != nil {
		return exitErr
	}
	defer closer()
	options.SetRPCClient(shell, c)

	con, err := New(shell, &readline.Config{
		Prompt:      prompt,
		HistoryFile: ctx.String("history"),
	})
	if err != nil {
		return cli.NewExitError(err, 1)
	}
	fmt.Fprintf(con.shell.Writer, "Connected to %s, type 'help' for the list of commands\n", c.Endpoint())
	if err := con.Run(); err != nil {
		return cli.NewExitError(err, 1)
	}
	return nil
}

// Console reads commands from the user and runs them with the shell
// application.
type Console struct {
	shell *cli.App
	rl    *readline.Instance
	done  bool
}

// New returns a Console running commands of the given shell application.
// Shell output is redirected to readline, shell errors don't cause exit.
func New(shell *cli.App, c *readline.Config) (*Console, error) {
	con := &Console{shell: shell}

	shell.Commands = append(shell.Commands, cli.Command{
		Name:   "exit",
		Usage:  "Exit the console",
		Action: handleExit,
	})
	if c.AutoComplete == nil {
		// Autocomplete commands/flags on TAB.
		c.AutoComplete = newCompleter(shell.Commands)
	}
	l, err := readline.NewEx(c)
	if err != nil {
		return nil, fmt.Errorf("failed to create readline instance: %w", err)
	}
	con.rl = l

	// Note: need to set empty `HelpName` and `UsageText`, otherwise
	// `filepath.Base(os.Args[0])` will be used.
	shell.HelpName = ""
	shell.UsageText = ""
	shell.Version = config.Version
	shell.HideVersion = true
	shell.Writer = l.Stdout()
	shell.ErrWriter = l.Stderr()
	// Override default error handler in order not to exit on error.
	shell.ExitErrHandler = func(context *cli.Context, err error) {}
	if shell.Metadata == nil {
		shell.Metadata = make(map[string]any)
	}
	shell.Metadata[exitFuncKey] = func() { con.done = true }
	return con, nil
}

func newCompleter(cmds []cli.Command) *readline.PrefixCompleter {
	return readline.NewPrefixCompleter(completerItems(cmds)...)
}

func completerItems(cmds []cli.Command) []readline.PrefixCompleterInterface {
	var items []readline.PrefixCompleterInterface
	for _, c := range cmds {
		if c.Hidden {
			continue
		}
		var children []readline.PrefixCompleterInterface
		if len(c.Subcommands) > 0 {
			children = completerItems(c.Subcommands)
		} else {
			for _, f := range c.Flags {
				names := strings.SplitN(f.GetName(), ", ", 2) // only long name will be offered
				children = append(children, readline.PcItem("--"+names[0]))
			}
		}
		items = append(items, readline.PcItem(c.Name, children...))
	}
	return items
}

func handleExit(c *cli.Context) error {
	fmt.Fprintln(c.App.Writer, "Bye!")
	if exit, ok := c.App.Metadata[exitFuncKey].(func()); ok {
		exit()
	}
	return nil
}

// Run waits for user input and executes the commands until 'exit' command
// or the end of input.
func (c *Console) Run() error {
	defer c.rl.Close()
	for !c.done {
		line, err := c.rl.Readline()
		if errors.Is(err, io.EOF) || errors.Is(err, readline.ErrInterrupt) {
			return nil // OK, stop execution.
		}
		if err != nil {
			return fmt.Errorf("failed to read input: %w", err) // Critical error, stop execution.
		}

		args, err := shellquote.Split(line)
		if err != nil {
			writeErr(c.shell.ErrWriter, fmt.Errorf("failed to parse arguments: %w", err))
			continue // Not a critical error, continue execution.
		}
		if len(args) == 0 {
			continue
		}

		err = c.shell.Run(append([]string{"near-go"}, args...))
		if err != nil {
			writeErr(c.shell.ErrWriter, err) // Various command/flags parsing errors and execution errors.
		}
	}
	return nil
}

func writeErr(w io.Writer, err error) {
	fmt.Fprintf(w, "Error: %s\n", err)
}
