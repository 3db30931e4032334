// asctool is a CLI utility for converting ESRI ASCII grids into point streams.
package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/Faultbox/gridpoints/internal/config"
	"github.com/Faultbox/gridpoints/internal/logger"
	"github.com/Faultbox/gridpoints/pkg/asc"
	"github.com/Faultbox/gridpoints/pkg/source"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	command := os.Args[1]
	args := os.Args[2:]

	switch command {
	case "info":
		cmdInfo(args)
	case "convert", "c":
		cmdConvert(args)
	case "config":
		cmdConfig(args)
	case "help", "-h", "--help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", command)
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println(`asctool - ESRI ASCII grid to point converter

Usage:
  asctool <command> [options]

Commands:
  info [options] <grid>              Show header, quantization and bounds as YAML
  convert [options] <grid> [output]  Write "x y z" lines (stdout when output is omitted)
  config [options] [-save [-o file]] Print the effective config, or save it

Options:
  -config <file>        Config file (default ./asctool.yaml, then user config dir)
  -debug                Enable debug logging
  -comma                Read ',' as the decimal separator
  -encoding <name>      Source code page (windows-1252, latin1, euc-kr, ...)
  -rescale "x,y,z"      Explicit scale factors
  -reoffset "x,y,z"     Explicit offsets
  -offset-adjust        Quantize against the selected parameters only
  -precision <n>        Decimals per output coordinate

Inputs may be plain, .gz, .zst, .zz or .zip; .7z and .rar are read through
the 7z and unrar commands.

Examples:
  asctool info dem.asc
  asctool convert -rescale 0.1,0.1,0.01 dem.asc.gz dem.xyz
  asctool config -comma -encoding latin1 -save`)
}

// setup parses flags, loads the config and starts logging. It returns the
// positional arguments. bind may register command-specific flags.
func setup(name string, args []string, bind func(*flag.FlagSet)) (*config.Config, []string) {
	fs := flag.NewFlagSet(name, flag.ExitOnError)
	flags := config.BindFlags(fs)
	if bind != nil {
		bind(fs)
	}
	fs.Parse(args)

	cfg, err := config.Load(flags)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if err := logger.Init(cfg.Logging.Level, cfg.Logging.LogFile); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	logger.Debug("config loaded",
		zap.String("command", name),
		zap.String("file", flags.Config),
		zap.Bool("commaDecimal", cfg.Input.CommaDecimal),
		zap.String("encoding", cfg.Input.Encoding),
		zap.Float64s("scale", cfg.Quantization.Scale),
		zap.Float64s("offset", cfg.Quantization.Offset),
		zap.Bool("offsetAdjust", cfg.Quantization.OffsetAdjust))
	return cfg, fs.Args()
}

// readerOptions maps the config onto reader options.
func readerOptions(cfg *config.Config, log *zap.Logger) asc.Options {
	return asc.Options{
		CommaDecimal: cfg.Input.CommaDecimal,
		Scale:        cfg.Quantization.ScaleTriple(),
		Offset:       cfg.Quantization.OffsetTriple(),
		OffsetAdjust: cfg.Quantization.OffsetAdjust,
		MaxLineBytes: cfg.Input.MaxLineBytes,
		Opener: source.FileOpener{
			Encoding: cfg.Input.Encoding,
			Pipes:    source.DefaultPipes(),
		},
		Logger: log,
	}
}

func cmdInfo(args []string) {
	cfg, rest := setup("info", args, nil)
	defer logger.Sync()

	if len(rest) < 1 {
		fmt.Fprintln(os.Stderr, "Usage: asctool info [options] <grid>")
		os.Exit(1)
	}

	r, err := asc.Open(rest[0], readerOptions(cfg, logger.Named("asc")))
	if err != nil {
		logger.Error("open grid", zap.Error(err))
		os.Exit(1)
	}
	defer r.Close()

	if err := writeReport(os.Stdout, rest[0], r); err != nil {
		logger.Error("write report", zap.Error(err))
		os.Exit(1)
	}
}

func cmdConvert(args []string) {
	cfg, rest := setup("convert", args, nil)
	defer logger.Sync()

	if len(rest) < 1 {
		fmt.Fprintln(os.Stderr, "Usage: asctool convert [options] <grid> [output]")
		os.Exit(1)
	}
	output := cfg.Output.Path
	if len(rest) > 1 {
		output = rest[1]
	}

	r, err := asc.Open(rest[0], readerOptions(cfg, logger.Named("asc")))
	if err != nil {
		logger.Error("open grid", zap.Error(err))
		os.Exit(1)
	}

	var (
		n   int64
		out *os.File
	)
	if output == "" || output == "-" {
		n, err = convert(r, os.Stdout, cfg.Output.Precision)
	} else {
		out, err = os.Create(output)
		if err != nil {
			r.Close()
			logger.Error("create output", zap.Error(err))
			os.Exit(1)
		}
		n, err = convertFile(r, out, cfg.Output.Precision)
	}
	if err != nil {
		logger.Error("convert", zap.String("grid", rest[0]), zap.Error(err))
		os.Exit(1)
	}

	if warnings := r.Warnings(); len(warnings) > 0 {
		logger.Warn("grid converted with warnings",
			zap.String("grid", rest[0]),
			zap.Int("warnings", len(warnings)))
	}
	logger.Info("converted grid",
		zap.String("grid", rest[0]),
		zap.String("output", output),
		zap.Int64("points", n))
}

func cmdConfig(args []string) {
	var (
		save bool
		path string
	)
	cfg, _ := setup("config", args, func(fs *flag.FlagSet) {
		fs.BoolVar(&save, "save", false, "Write the effective config instead of printing it")
		fs.StringVar(&path, "o", "", "Destination for -save (default: user config dir)")
	})
	defer logger.Sync()

	if !save {
		if err := writeConfig(os.Stdout, cfg); err != nil {
			logger.Error("write config", zap.Error(err))
			os.Exit(1)
		}
		return
	}

	var err error
	if path == "" {
		path = filepath.Join(config.ConfigDir(), config.FileName)
		err = cfg.Save()
	} else {
		err = cfg.SaveTo(path)
	}
	if err != nil {
		logger.Error("save config", zap.Error(err))
		os.Exit(1)
	}
	logger.Sugar.Infof("config saved to %s", path)
}
