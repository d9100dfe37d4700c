package cli

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/babarot/rsycle/internal/config"
	"github.com/babarot/rsycle/internal/debug"
	"github.com/babarot/rsycle/internal/engine"
	"github.com/babarot/rsycle/internal/env"
	"github.com/babarot/rsycle/internal/log"
	"github.com/babarot/rsycle/internal/ui"
	"github.com/jessevdk/go-flags"
	"github.com/mattn/go-isatty"
)

type Option struct {
	Restore bool   `short:"b" long:"restore" description:"Restore TARGET, or choose what to restore when no TARGET is given"`
	List    bool   `short:"l" long:"list" description:"List recycled files"`
	Empty   bool   `long:"empty" description:"Permanently delete everything in the bin"`
	Prune   string `long:"prune" value-name:"AGE" description:"Permanently delete entries recycled more than AGE ago (e.g. \"30 days\")"`
	Config  string `long:"config" description:"Path to config file" default:""`

	Meta MetaOption `group:"Meta Options"`
	Rm   RmOption   `group:"Compatible (rm) Options"`
}

type MetaOption struct {
	Version bool   `short:"V" long:"version" description:"Show version"`
	Debug   string `long:"debug" description:"View debug logs (default: \"full\")" optional-value:"full" optional:"yes" choice:"full" choice:"live"`
}

// RmOption provides compatibility with rm command options
type RmOption struct {
	Interactive bool `short:"i" description:"(dummy) prompt before every removal"`
	Recursive   bool `short:"r" long:"recursive" description:"(dummy) remove directories and their contents recursively"`
	Recursive2  bool `short:"R" description:"(dummy) same as -r"`
	Force       bool `short:"f" long:"force" description:"ignore nonexistent files, never prompt"`
	Directory   bool `short:"d" long:"dir" description:"(dummy) remove empty directories"`
	Verbose     bool `short:"v" long:"verbose" description:"explain what is being done"`
}

type CLI struct {
	version Version
	option  Option
	config  config.Config
	engine  *engine.Engine

	chooser     engine.Chooser
	confirm     func(prompt string) (bool, error)
	interactive func() bool

	stdout io.Writer
	stderr io.Writer
}

type cliOption func(*CLI)

func Run(v Version) error {
	return run(v, os.Args[1:], os.Stdout, os.Stderr)
}

func run(v Version, argv []string, stdout, stderr io.Writer, opts ...cliOption) error {
	var opt Option
	parser := flags.NewParser(&opt, flags.HelpFlag|flags.PassDoubleDash)
	parser.Name = v.AppName
	parser.Usage = "[--restore [TARGET] | --list | --empty | --prune AGE | TARGET...]"
	args, err := parser.ParseArgs(argv)
	if err != nil {
		if flags.WroteHelp(err) {
			fmt.Fprintln(stdout, err)
			return nil
		}
		return err
	}

	if opt.Meta.Version {
		fmt.Fprint(stdout, v.Print())
		return nil
	}

	if err := checkModes(opt, args); err != nil {
		if errors.Is(err, errNoTarget) {
			parser.WriteHelp(stderr)
		}
		return err
	}

	cfg, err := config.Parse(opt.Config)
	if err != nil {
		return err
	}

	closeLog, err := setupLogging(cfg.Core.Logging)
	if err != nil {
		return err
	}
	defer closeLog()

	defer slog.Debug("main function finished")
	slog.Debug("main function started", "version", v.Version, "revision", v.Revision, "buildDate", v.BuildDate)

	if opt.Meta.Debug != "" {
		return debug.Logs(stdout, env.RSYCLE_LOG_PATH, cfg.Core.Logging.Enabled, opt.Meta.Debug == "live")
	}

	e, err := engine.New(engine.Config{
		BinDir:           cfg.Core.BinDir,
		AllowCrossDevice: cfg.Core.AllowCrossDevice,
	})
	if err != nil {
		return fmt.Errorf("failed to initialize bin: %w", err)
	}

	c := &CLI{
		version: v,
		option:  opt,
		config:  cfg,
		engine:  e,
		chooser: ui.NewChooser(cfg.UI),
		confirm: func(prompt string) (bool, error) { return ui.Confirm(prompt) },
		interactive: func() bool {
			fd := os.Stdin.Fd()
			return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
		},
		stdout: stdout,
		stderr: stderr,
	}
	for _, o := range opts {
		o(c)
	}

	if err := c.Run(args); err != nil {
		slog.Error("exit", "error", fmt.Errorf("cli.run failed: %w", err))
		return err
	}
	return nil
}

func (c *CLI) Run(args []string) error {
	switch {
	case c.option.Empty:
		return c.Empty()
	case c.option.Prune != "":
		return c.Prune(c.option.Prune)
	case c.option.List:
		return c.List()
	case c.option.Restore:
		return c.Restore(args)
	default:
		return c.Recycle(args)
	}
}

var errNoTarget = errors.New("no target given")

// checkModes rejects flag combinations that ask for more than one operation
func checkModes(opt Option, args []string) error {
	if opt.Meta.Debug != "" {
		return nil
	}
	modes := 0
	for _, on := range []bool{opt.Restore, opt.List, opt.Empty, opt.Prune != ""} {
		if on {
			modes++
		}
	}
	switch {
	case modes > 1:
		return errors.New("only one of --restore, --list, --empty or --prune can be given")
	case (opt.List || opt.Empty || opt.Prune != "") && len(args) > 0:
		return errors.New("--list, --empty and --prune take no target")
	case opt.Restore && len(args) > 1:
		return errors.New("--restore takes at most one target")
	case modes == 0 && len(args) == 0:
		return errNoTarget
	}
	return nil
}

func setupLogging(cfg config.LoggingConfig) (func(), error) {
	if !cfg.Enabled {
		log.New(log.UseOutput(io.Discard), log.AsDefault())
		return func() {}, nil
	}

	level, err := log.ParseLevel(cfg.Level)
	if err != nil {
		return nil, err
	}
	formatter, err := log.ParseFormatter(cfg.Format)
	if err != nil {
		return nil, err
	}
	w, err := log.NewRotateWriter(env.RSYCLE_LOG_PATH, cfg.Rotation.MaxSize, cfg.Rotation.MaxFiles)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %w", err)
	}
	log.New(
		log.UseOutput(w),
		log.UseLevel(level),
		log.UseReportCaller(true),
		log.UseReportTimestamp(true),
		log.UseTimeFormat(time.DateTime),
		log.UseFormatter(formatter),
		log.WithRunID(),
		log.AsDefault(),
	)
	return func() { w.Close() }, nil
}

// multiError collects per-target failures
type multiError []error

func (m multiError) Error() string {
	if len(m) == 1 {
		return m[0].Error()
	}
	msg := fmt.Sprintf("%d errors occurred:", len(m))
	for _, err := range m {
		msg += fmt.Sprintf("\n  * %v", err)
	}
	return msg
}

func (m multiError) Unwrap() []error {
	return m
}
