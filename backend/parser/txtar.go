package parser

import (
	"context"
	"path"
	"runtime"

	"golang.org/x/sync/errgroup"
	"golang.org/x/tools/txtar"

	"github.com/tenntenn/superast-cpp/backend/lower"
	"github.com/tenntenn/superast-cpp/backend/model"
)

// DumpExt is the extension of the archive members holding clang JSON dumps.
const DumpExt = ".json"

// ParseTxtar splits a txtar archive into the clang JSON dumps to lower and
// the listing of all its files. Files other than dumps, such as the C++
// sources, are listed with their content.
func ParseTxtar(txtarContent string) ([]txtar.File, []model.FileInfo, []model.ParseError) {
	var errors []model.ParseError
	var files []model.FileInfo
	var dumps []txtar.File

	archive := txtar.Parse([]byte(txtarContent))

	for _, file := range archive.Files {
		info := model.FileInfo{Name: file.Name}
		if path.Ext(file.Name) == DumpExt {
			dumps = append(dumps, file)
		} else {
			info.Content = string(file.Data)
		}
		files = append(files, info)
	}

	switch {
	case len(files) == 0:
		errors = append(errors, model.ParseError{
			Message:  "No files found in txtar archive",
			Position: model.Position{Line: 1, Column: 1},
			Severity: "error",
		})
	case len(dumps) == 0:
		errors = append(errors, model.ParseError{
			Message:  "No clang AST dumps (*" + DumpExt + ") found in txtar archive",
			Position: model.Position{Line: 1, Column: 1},
			Severity: "error",
		})
	}

	return dumps, files, errors
}

// LowerDump lowers a single clang JSON dump into a document.
func LowerDump(data []byte, opts ...lower.Option) (*model.Document, error) {
	tu, err := ParseClangJSON(data)
	if err != nil {
		return nil, err
	}
	return lower.New(opts...).Document(tu)
}

// FileResult is the outcome of lowering one archive member.
type FileResult struct {
	Name     string
	Document *model.Document
	Err      error
}

// LowerArchive lowers the dumps concurrently, each with its own Lowerer,
// so every document is numbered from 0. Results are in archive order. A
// failing file does not stop the others; only cancellation of ctx is
// returned as an error.
func LowerArchive(ctx context.Context, dumps []txtar.File, opts ...lower.Option) ([]FileResult, error) {
	results := make([]FileResult, len(dumps))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i, dump := range dumps {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			doc, err := LowerDump(dump.Data, opts...)
			results[i] = FileResult{Name: dump.Name, Document: doc, Err: err}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return results, nil
}
