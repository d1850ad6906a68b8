package parser

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strings"
)

// DefaultClang is the compiler driver used when none is configured.
const DefaultClang = "clang++"

// DumpClangAST runs clang on file and returns its JSON AST dump. flags are
// passed to clang before the dump options, e.g. "-std=c++17".
func DumpClangAST(ctx context.Context, clang, file string, flags ...string) ([]byte, error) {
	if clang == "" {
		clang = DefaultClang
	}

	args := append([]string{}, flags...)
	args = append(args, "-fsyntax-only", "-Xclang", "-ast-dump=json", file)

	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, clang, args...)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		if msg := strings.TrimSpace(stderr.String()); msg != "" {
			return nil, fmt.Errorf("%s %s: %w\n%s", clang, file, err, msg)
		}
		return nil, fmt.Errorf("%s %s: %w", clang, file, err)
	}
	return stdout.Bytes(), nil
}
