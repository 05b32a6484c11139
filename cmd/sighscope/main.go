// sighscope builds the scope tree of Starlark program descriptions and
// reports how every name resolves.
//
//	sighscope [-config FILE] [-log_level LEVEL] [-index_file FILE] [-dump] check [PATTERN...]
//	sighscope [flags] lookup [-at PATH] [-func] NAME [TYPE...] FILE
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"io/fs"
	"log"
	"os"

	"github.com/rs/zerolog"

	"github.com/stackb/sigh-scope/pkg/config"
)

// errFailed is returned when the tool ran but found errors it already
// printed.
var errFailed = errors.New("failed")

func main() {
	log.SetPrefix("sighscope: ")
	log.SetFlags(0) // don't print timestamps

	if err := run(os.Args[1:], os.DirFS("."), os.Stdout, os.Stderr); err != nil {
		if errors.Is(err, errFailed) {
			os.Exit(1)
		}
		log.Fatal(err)
	}
}

// app carries what every subcommand needs.
type app struct {
	cfg    *config.Config
	logger zerolog.Logger
	fsys   fs.FS
	stdout io.Writer
	stderr io.Writer
	dump   bool
}

func run(args []string, fsys fs.FS, stdout, stderr io.Writer) error {
	var configFile, logLevel, indexFile string
	var dump bool

	flags := flag.NewFlagSet("sighscope", flag.ContinueOnError)
	flags.SetOutput(stderr)
	flags.StringVar(&configFile, "config", "", "the config file to read (default "+config.DefaultFilename+" if present)")
	flags.StringVar(&logLevel, "log_level", "", "override the configured log level")
	flags.StringVar(&indexFile, "index_file", "", "write the scope index here (.json for protojson, anything else for binary)")
	flags.BoolVar(&dump, "dump", false, "dump the scope index of every program")

	if err := flags.Parse(args); err != nil {
		return err
	}

	cfg, err := loadConfig(fsys, configFile)
	if err != nil {
		return err
	}
	if logLevel != "" {
		cfg.LogLevel = logLevel
	}
	if indexFile != "" {
		cfg.IndexFile = indexFile
	}
	level, err := cfg.Level()
	if err != nil {
		return err
	}

	a := &app{
		cfg:    cfg,
		logger: zerolog.New(zerolog.ConsoleWriter{Out: stderr, NoColor: true}).Level(level).With().Timestamp().Logger(),
		fsys:   fsys,
		stdout: stdout,
		stderr: stderr,
		dump:   dump,
	}

	if flags.NArg() == 0 {
		return fmt.Errorf("missing command: want check or lookup")
	}
	switch cmd := flags.Arg(0); cmd {
	case "check":
		return a.check(flags.Args()[1:])
	case "lookup":
		return a.lookup(flags.Args()[1:])
	default:
		return fmt.Errorf("unknown command %q: want check or lookup", cmd)
	}
}

// loadConfig reads the named config file, or the default file when it
// exists, or falls back to the default configuration.
func loadConfig(fsys fs.FS, filename string) (*config.Config, error) {
	if filename != "" {
		return config.Load(filename)
	}
	data, err := fs.ReadFile(fsys, config.DefaultFilename)
	if errors.Is(err, fs.ErrNotExist) {
		return config.Default(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("read config %q: %w", config.DefaultFilename, err)
	}
	return config.Parse(config.DefaultFilename, string(data))
}
