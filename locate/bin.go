package main

import (
	"fmt"
	"os"
	"strings"

	. "github.com/ZenLiuCN/jvmgetter"
	"github.com/ZenLiuCN/jvmgetter/elfimage"
	"github.com/ZenLiuCN/jvmgetter/modules"
	"github.com/davecgh/go-spew/spew"
	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/expfmt"
	"github.com/spf13/afero"
	"github.com/urfave/cli/v2"
)

var registry = prometheus.NewRegistry()

// hostImage is set by builds with the goloader tag.
var hostImage Strategy

func findFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{Name: "library", Aliases: []string{"l"}, Usage: "runtime library file name, skips the system property"},
		&cli.BoolFlag{Name: "host-image", Usage: "also search the executable symbol table"},
		&cli.IntFlag{Name: "invoke", Usage: "call the symbol with room for N VMs"},
	}
}

func main() {
	app := cli.NewApp()
	app.Usage = "JNI_GetCreatedJavaVMs locator"
	app.Action = action
	app.Name = "locate"
	app.Description = "locate JNI_GetCreatedJavaVMs in the current process, list loaded modules or inspect a library file"
	app.Flags = append([]cli.Flag{
		&cli.BoolFlag{Name: "debug", Aliases: []string{"d"}},
		&cli.BoolFlag{Name: "metrics", Usage: "print strategy metrics on exit"},
	}, findFlags()...)
	app.Commands = []*cli.Command{
		{Name: "find",
			Action: action,
			Usage:  "resolve the symbol address (default)",
			Flags:  findFlags(),
		},
		{Name: "modules",
			Action: listModules,
			Usage:  "display loaded modules with their load bias",
			Flags: []cli.Flag{
				&cli.StringFlag{Name: "match", Aliases: []string{"m"}, Usage: "only paths ending with this suffix"},
			},
		},
		{Name: "inspect",
			Action: inspect,
			Usage:  "display the value of a symbol inside ELF files",
			Flags: []cli.Flag{
				&cli.StringFlag{Name: "symbol", Aliases: []string{"s"}, Value: SymbolName},
				&cli.BoolFlag{Name: "dump", Usage: "dump the whole symbol entry"},
			},
			Args: true,
		},
	}
	app.After = func(ctx *cli.Context) error {
		if !ctx.Bool("metrics") {
			return nil
		}
		return printMetrics()
	}
	if err := app.Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "failure %s\n", err)
		os.Exit(1)
	}
}

func logger(ctx *cli.Context) log.Logger {
	l := log.NewLogfmtLogger(log.NewSyncWriter(os.Stderr))
	l = log.With(l, "ts", log.DefaultTimestampUTC)
	if ctx.Bool("debug") {
		return level.NewFilter(l, level.AllowDebug())
	}
	return level.NewFilter(l, level.AllowInfo())
}

func action(ctx *cli.Context) error {
	l := logger(ctx)
	opts := []Option{WithLogger(l), WithMetrics(NewMetrics(registry))}
	if lib := ctx.String("library"); lib != "" {
		opts = append(opts, WithLibrary(lib))
	}
	if ctx.Bool("host-image") {
		if hostImage == nil {
			return errors.New("host-image needs a build with -tags goloader")
		}
		opts = append(opts, WithStrategy(hostImage))
	}
	r := NewResolver(opts...)
	level.Debug(l).Log("msg", "resolving", "strategies", strings.Join(r.Strategies(), ","))
	sym, ok := r.Resolve()
	if !ok {
		return errors.Wrap(ErrSymbolNotFound, SymbolName)
	}
	fmt.Printf("%s 0x%x\n", SymbolName, uintptr(sym))
	if n := ctx.Int("invoke"); n > 0 {
		vms, err := CreatedJavaVMs(sym.GetCreatedJavaVMs(), n)
		if err != nil {
			return err
		}
		for i, vm := range vms {
			fmt.Printf("vm[%d] 0x%x\n", i, uintptr(vm))
		}
	}
	return nil
}

func listModules(ctx *cli.Context) error {
	match := ctx.String("match")
	n := 0
	err := modules.Default().Walk(func(m modules.Module) bool {
		if match == "" || strings.HasSuffix(m.Path, match) {
			fmt.Printf("0x%016x %s\n", m.LoadBias, m.Path)
			n++
		}
		return false
	})
	if err != nil {
		return err
	}
	level.Debug(logger(ctx)).Log("msg", "modules listed", "count", n)
	return nil
}

func inspect(ctx *cli.Context) (err error) {
	files := ctx.Args().Slice()
	if len(files) == 0 {
		return fmt.Errorf("missing library files")
	}
	fs := afero.NewOsFs()
	name := ctx.String("symbol")
	for _, file := range files {
		var data []byte
		if data, _, err = elfimage.ReadFile(fs, file); err != nil {
			return
		}
		var img *elfimage.Image
		if img, err = elfimage.Parse(data); err != nil {
			return errors.Wrap(err, file)
		}
		var e elfimage.Entry
		if e, err = img.Lookup(name); err != nil {
			return errors.Wrap(err, file)
		}
		fmt.Printf("%s %s 0x%x\n", file, name, e.Value)
		if ctx.Bool("dump") {
			spew.Dump(e)
		}
	}
	return
}

func printMetrics() error {
	mfs, err := registry.Gather()
	if err != nil {
		return err
	}
	for _, mf := range mfs {
		if _, err = expfmt.MetricFamilyToText(os.Stdout, mf); err != nil {
			return err
		}
	}
	return nil
}
