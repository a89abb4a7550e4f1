// Package commands is the subcommand registry behind cmd/viewer.
package commands

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"sort"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"text-stage/internal/config"
	"text-stage/internal/fontfetch"
	"text-stage/internal/fonts"
	"text-stage/internal/params"
)

// DefaultCommand runs when no subcommand is given or the first argument is a flag.
const DefaultCommand = "run"

// ErrUnknownCommand is returned by Execute for names that were never registered.
var ErrUnknownCommand = errors.New("unknown command")

// Command is a subcommand with its own flags and a Run function.
// Flags are defined on FlagSet; Run is called after Parse and can read flag state.
type Command struct {
	Name    string
	Usage   string
	FlagSet *flag.FlagSet
	Run     func() error
}

// Registry holds subcommands by name. Add commands with Register; run with Execute.
type Registry struct {
	cmds map[string]*Command
	out  io.Writer
}

// NewRegistry returns an empty command registry printing to out.
func NewRegistry(out io.Writer) *Registry {
	return &Registry{cmds: make(map[string]*Command), out: out}
}

// Register adds a subcommand. run is called after fs.Parse(args[1:]) succeeds.
func (r *Registry) Register(name, usage string, fs *flag.FlagSet, run func() error) {
	fs.SetOutput(r.out)
	r.cmds[name] = &Command{Name: name, Usage: usage, FlagSet: fs, Run: run}
}

// Names returns the registered command names in sorted order.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.cmds))
	for n := range r.cmds {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// Execute runs the subcommand in args[0] with args[1:] as flag/positional arguments.
// Empty args, or args starting with a flag, run DefaultCommand.
func (r *Registry) Execute(args []string) error {
	if len(args) == 0 || len(args[0]) > 0 && args[0][0] == '-' {
		args = append([]string{DefaultCommand}, args...)
	}
	name := args[0]
	if name == "help" {
		r.PrintUsage()
		return nil
	}
	cmd, ok := r.cmds[name]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownCommand, name)
	}
	if err := cmd.FlagSet.Parse(args[1:]); err != nil {
		return err
	}
	return cmd.Run()
}

// PrintUsage lists the commands.
func (r *Registry) PrintUsage() {
	fmt.Fprintln(r.out, "usage: viewer [command] [flags]")
	for _, n := range r.Names() {
		fmt.Fprintf(r.out, "  %-10s %s\n", n, r.cmds[n].Usage)
	}
}

// Fetcher downloads fonts for fetch-font.
var Fetcher interface {
	Fetch(ctx context.Context, family, destDir string) (string, error)
} = fontfetch.New(nil)

// RunFunc starts the viewer with the resolved configuration.
type RunFunc func(cfg config.Config) error

// Default registers run, defaults and schema. run receives the config resolved from -config
// and -env.
func Default(out io.Writer, run RunFunc) *Registry {
	r := NewRegistry(out)

	runFS := flag.NewFlagSet("run", flag.ContinueOnError)
	cfgPath := runFS.String("config", config.DefaultPath, "path to the YAML config file")
	envPath := runFS.String("env", config.DotEnvPath, "path to a .env file")
	r.Register("run", "open the viewer window", runFS, func() error {
		cfg, err := config.Resolve(*cfgPath, *envPath)
		if err != nil {
			return err
		}
		return run(cfg)
	})

	defFS := flag.NewFlagSet("defaults", flag.ContinueOnError)
	full := defFS.Bool("config", false, "print the whole default config instead of the parameters")
	r.Register("defaults", "print the default parameters as YAML", defFS, func() error {
		if *full {
			return writeYAML(out, config.Default())
		}
		return writeYAML(out, params.Default())
	})

	fetchFS := flag.NewFlagSet("fetch-font", flag.ContinueOnError)
	fetchDir := fetchFS.String("dir", fonts.BaseDirs()[0], "directory to save into")
	timeout := fetchFS.Duration("timeout", 2*time.Minute, "give up after this long")
	r.Register("fetch-font", "download a Google Fonts family: fetch-font [-dir d] <family>", fetchFS, func() error {
		family := strings.Join(fetchFS.Args(), " ")
		if family == "" {
			return errors.New("fetch-font: missing family name")
		}
		ctx, cancel := context.WithTimeout(context.Background(), *timeout)
		defer cancel()
		saved, err := Fetcher.Fetch(ctx, family, *fetchDir)
		if err != nil {
			return err
		}
		fmt.Fprintln(out, saved)
		return nil
	})

	schemaFS := flag.NewFlagSet("schema", flag.ContinueOnError)
	r.Register("schema", "print the panel schema as YAML", schemaFS, func() error {
		return writeYAML(out, params.Schema())
	})
	return r
}

func writeYAML(w io.Writer, v any) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return err
	}
	return enc.Close()
}
