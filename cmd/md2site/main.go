package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	flag "github.com/spf13/pflag"

	"github.com/alnah/go-md2site/internal/fileutil"
)

// Version is set at build time via ldflags.
var Version = "dev"

// Command names.
const (
	cmdBuild   = "build"
	cmdConvert = "convert"
	cmdInit    = "init"
	cmdVersion = "version"
	cmdHelp    = "help"
)

// ErrUnknownCommand is returned for an unrecognized command name.
var ErrUnknownCommand = errors.New("unknown command")

func main() {
	ctx, stop := notifyContext(context.Background())
	code := runMain(ctx, os.Args, DefaultEnv())
	stop()
	os.Exit(code)
}

// runMain dispatches args to a command and maps its error to an exit code.
// With no command, or only flags, the site is built. A Markdown file as
// first argument is converted.
func runMain(ctx context.Context, args []string, env *Environment) int {
	err := dispatch(ctx, args[1:], env)
	if err != nil && !errors.Is(err, flag.ErrHelp) {
		fmt.Fprintf(env.Stderr, "error: %v%s\n", err, hintFor(err))
	}
	return exitCodeFor(err)
}

func dispatch(ctx context.Context, args []string, env *Environment) error {
	if len(args) == 0 {
		return runBuild(ctx, nil, env)
	}

	cmd, rest := args[0], args[1:]
	switch {
	case cmd == cmdVersion || cmd == "--version":
		fmt.Fprintf(env.Stdout, "md2site %s\n", Version)
		return nil
	case cmd == cmdHelp || isHelpFlag(cmd):
		return runHelp(rest, env)
	case cmd == cmdBuild:
		return runBuild(ctx, rest, env)
	case strings.HasPrefix(cmd, "-"):
		return runBuild(ctx, args, env)
	case cmd == cmdConvert:
		return runConvert(ctx, rest, env)
	case cmd == cmdInit:
		return runInit(rest, env)
	case looksLikeMarkdown(cmd):
		return runConvert(ctx, args, env)
	default:
		printUsage(env.Stderr)
		return fmt.Errorf("%w: %s", ErrUnknownCommand, cmd)
	}
}

// isCommand reports whether arg names a command.
func isCommand(arg string) bool {
	switch arg {
	case cmdBuild, cmdConvert, cmdInit, cmdVersion, cmdHelp:
		return true
	}
	return false
}

// looksLikeMarkdown reports whether arg is a Markdown file rather than a command.
func looksLikeMarkdown(arg string) bool {
	return !isCommand(arg) && fileutil.IsMarkdown(arg)
}

func isHelpFlag(arg string) bool {
	return arg == "-h" || arg == "--help"
}
