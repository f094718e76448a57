// Command qwikfold runs the fold/code-move transform over a single JS/TS
// source file and writes the rewritten host module plus every extracted
// hook module alongside it.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	pathpkg "path"
	"path/filepath"

	"github.com/viant/afs"

	"github.com/viant/qwikfold/codemove"
	"github.com/viant/qwikfold/inventory"
	"github.com/viant/qwikfold/project"
	"github.com/viant/qwikfold/transform"
)

// writeFile persists generated source to disk. The teacher repo reads
// through afs.Service (DownloadWithURL) everywhere but never writes through
// it — no Service.Upload call site exists anywhere in the inspected corpus
// — so the write side of this command uses os.WriteFile directly rather
// than guessing at an ungrounded afs call (see DESIGN.md).
func writeFile(path string, data []byte) error {
	return os.WriteFile(path, data, 0644)
}

func main() {
	dev := flag.Bool("dev", false, "emit development-mode (display-name-prefixed) hook symbol names")
	out := flag.String("out", "", "output directory (defaults to the input file's own directory)")
	flag.Parse()

	if flag.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "usage: qwikfold [-dev] [-out dir] <file.tsx>")
		os.Exit(2)
	}

	if err := run(flag.Arg(0), *out, *dev); err != nil {
		fmt.Fprintf(os.Stderr, "qwikfold: %v\n", err)
		os.Exit(1)
	}
}

func run(path, outDir string, dev bool) error {
	ctx := context.Background()
	fs := afs.New()

	source, err := fs.DownloadWithURL(ctx, path)
	if err != nil {
		return fmt.Errorf("reading %s: %w", path, err)
	}

	info, err := project.New().Detect(path)
	if err != nil {
		return fmt.Errorf("detecting project root for %s: %w", path, err)
	}

	// A from-scratch pass would resolve the module's own import/export
	// statements into an Inventory here; this command accepts an empty one
	// so it can round-trip any file with no top-level marker usage, and
	// documents the gap rather than faking a resolver (see DESIGN.md).
	inv := inventory.New()

	opts := transform.DefaultOptions()
	opts.Origin = info.RelativePath
	opts.Dev = dev

	result, err := transform.Transform(path, source, inv, opts)
	if err != nil {
		return fmt.Errorf("transforming %s: %w", path, err)
	}

	dir := outDir
	if dir == "" {
		dir = filepath.Dir(path)
	}

	hostOut := filepath.Join(dir, filepath.Base(path))
	if err := writeFile(hostOut, []byte(result.Source)); err != nil {
		return fmt.Errorf("writing %s: %w", hostOut, err)
	}
	fmt.Printf("wrote %s\n", hostOut)

	cmOpts := codemove.DefaultOptions()
	hostDir := pathpkg.Dir(info.RelativePath)

	for _, h := range result.Hooks {
		destPath := pathpkg.Join(hostDir, h.CanonicalFilename+"."+h.Data.Extension)
		text, err := codemove.NewModule(h, inv, info.RelativePath, destPath, cmOpts)
		if err != nil {
			return fmt.Errorf("materializing hook %s: %w", h.Name, err)
		}
		hookPath := filepath.Join(dir, h.CanonicalFilename+"."+h.Data.Extension)
		if err := writeFile(hookPath, []byte(text)); err != nil {
			return fmt.Errorf("writing %s: %w", hookPath, err)
		}
		fmt.Printf("wrote %s\n", hookPath)
	}

	entries := codemove.GenerateEntries(result.Hooks)
	for tag, text := range entries {
		entryPath := filepath.Join(dir, tag+"."+cmOpts.Extension)
		if err := writeFile(entryPath, []byte(text)); err != nil {
			return fmt.Errorf("writing %s: %w", entryPath, err)
		}
		fmt.Printf("wrote %s\n", entryPath)
	}

	return nil
}
