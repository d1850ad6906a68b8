// Command superast lowers C++ translation units into Superast JSON.
//
// Usage:
//
//	superast [flags] file...
//
// A file is a C++ source (.cpp, .cc, .cxx), compiled with clang to obtain
// its AST, a clang JSON AST dump (.json), or a txtar archive of dumps
// (.txtar). "-" reads a JSON dump from standard input. Documents are
// written to standard output in argument order.
package main

import (
	"bytes"
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/tenntenn/superast-cpp/backend/api"
	"github.com/tenntenn/superast-cpp/backend/lower"
	"github.com/tenntenn/superast-cpp/backend/model"
	"github.com/tenntenn/superast-cpp/backend/parser"
)

var (
	flagClang   = flag.String("clang", parser.DefaultClang, "clang driver used for C++ sources")
	flagStd     = flag.String("std", "c++17", "C++ language standard passed to clang")
	flagCompact = flag.Bool("compact", false, "write compact JSON")
	flagVerbose = flag.Bool("v", false, "report dropped constructs to standard error")
	flagVersion = flag.Bool("version", false, "print the Superast schema version and exit")
)

func main() {
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "usage: superast [flags] file...\n")
		flag.PrintDefaults()
	}
	flag.Parse()

	if *flagVersion {
		fmt.Println(model.SchemaVersion)
		return
	}
	if flag.NArg() == 0 {
		flag.Usage()
		os.Exit(2)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	var opts []lower.Option
	if *flagVerbose {
		opts = append(opts, lower.WithLogger(log.New(os.Stderr, "superast: ", 0)))
	}

	if !run(ctx, os.Stdout, flag.Args(), opts) {
		os.Exit(1)
	}
}

// run lowers every file concurrently and writes the outputs in argument
// order. It reports whether all files succeeded.
func run(ctx context.Context, w io.Writer, files []string, opts []lower.Option) bool {
	outputs := make([][]byte, len(files))
	errs := make([]error, len(files))

	var g errgroup.Group
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i, file := range files {
		g.Go(func() error {
			v, err := lowerFile(ctx, file, opts)
			if err != nil {
				errs[i] = err
				return nil
			}
			var buf bytes.Buffer
			if err := model.Encode(&buf, v, *flagCompact); err != nil {
				errs[i] = err
				return nil
			}
			outputs[i] = buf.Bytes()
			return nil
		})
	}
	g.Wait()

	ok := true
	for i, file := range files {
		if errs[i] != nil {
			fmt.Fprintf(os.Stderr, "superast: %s: %v\n", file, errs[i])
			ok = false
			continue
		}
		if _, err := w.Write(outputs[i]); err != nil {
			fmt.Fprintf(os.Stderr, "superast: %v\n", err)
			return false
		}
	}
	return ok
}

func lowerFile(ctx context.Context, file string, opts []lower.Option) (any, error) {
	if file == "-" {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return nil, err
		}
		return parser.LowerDump(data, opts...)
	}

	switch filepath.Ext(file) {
	case ".cpp", ".cc", ".cxx":
		data, err := parser.DumpClangAST(ctx, *flagClang, file, "-std="+*flagStd)
		if err != nil {
			return nil, err
		}
		return parser.LowerDump(data, opts...)

	case ".txtar":
		data, err := os.ReadFile(file)
		if err != nil {
			return nil, err
		}
		return api.Lower(ctx, &model.LowerRequest{
			Source: string(data),
			Format: model.FormatTxtar,
		}, opts...)
	}

	data, err := os.ReadFile(file)
	if err != nil {
		return nil, err
	}
	return parser.LowerDump(data, opts...)
}
