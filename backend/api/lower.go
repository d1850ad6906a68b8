package api

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/mod/semver"

	"github.com/tenntenn/superast-cpp/backend/lower"
	"github.com/tenntenn/superast-cpp/backend/model"
	"github.com/tenntenn/superast-cpp/backend/parser"
)

var (
	ErrEmptySource   = errors.New("source is required")
	ErrFormat        = errors.New("unsupported format")
	ErrSchemaVersion = errors.New("unsupported schema version")
)

// Lower lowers the clang JSON dump, or the txtar archive of dumps, held by
// req. Failures of individual archive members are reported in the
// response; any other failure is returned.
func Lower(ctx context.Context, req *model.LowerRequest, opts ...lower.Option) (*model.LowerResponse, error) {
	if req.Source == "" {
		return nil, ErrEmptySource
	}

	// Default format to "clang-json" if not specified
	format := req.Format
	if format == "" {
		format = model.FormatClangJSON
	}

	if err := checkSchemaVersion(req.SchemaVersion); err != nil {
		return nil, err
	}

	response := &model.LowerResponse{SchemaVersion: model.SchemaVersion}

	switch format {
	case model.FormatClangJSON:
		doc, err := parser.LowerDump([]byte(req.Source), opts...)
		if err != nil {
			return nil, err
		}
		response.Document = doc

	case model.FormatTxtar:
		dumps, files, errs := parser.ParseTxtar(req.Source)
		results, err := parser.LowerArchive(ctx, dumps, opts...)
		if err != nil {
			return nil, err
		}
		for _, r := range results {
			response.Documents = append(response.Documents, model.FileDocument{
				Name:     r.Name,
				Document: r.Document,
			})
			if r.Err != nil {
				errs = append(errs, parseError(r.Name, r.Err))
			}
		}
		response.Files = files
		response.Errors = errs

	default:
		return nil, fmt.Errorf("%w: %q", ErrFormat, format)
	}

	return response, nil
}

// checkSchemaVersion accepts an empty version, or a version this server can
// produce: same major version, not newer.
func checkSchemaVersion(v string) error {
	if v == "" {
		return nil
	}
	if !semver.IsValid(v) {
		return fmt.Errorf("%w: %q is not a semantic version", ErrSchemaVersion, v)
	}
	if semver.Major(v) != semver.Major(model.SchemaVersion) || semver.Compare(v, model.SchemaVersion) > 0 {
		return fmt.Errorf("%w: %s requested, %s served", ErrSchemaVersion, v, model.SchemaVersion)
	}
	return nil
}

func parseError(file string, err error) model.ParseError {
	pe := model.ParseError{
		File:     file,
		Message:  err.Error(),
		Position: model.Position{Line: 1, Column: 1},
		Severity: "error",
	}
	var unsupported *lower.UnsupportedError
	if errors.As(err, &unsupported) && unsupported.Pos.IsValid() {
		pe.Position = model.Position{Line: unsupported.Pos.Line, Column: unsupported.Pos.Column}
	}
	return pe
}
