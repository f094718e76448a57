// Package project resolves a JS/TS source file's project root and its
// slash-normalized path relative to that root — the "origin" fold.Options
// needs and the anchor codemove.FixPath measures every hook module's
// import specifier against.
//
// Adapted from inspector/repository/detector.go's marker-file walk-up
// search; the teacher's version also detects Maven/Gradle/Cargo/pip/Bundler
// projects, which have no role in a JS/TS-only optimizer core, so this
// package keeps only the package.json/go.mod/.git markers relevant to a
// repo this tool would plausibly run inside (see DESIGN.md).
package project

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"github.com/viant/afs"
	"golang.org/x/mod/modfile"
)

// Info describes the project a source file was found within.
type Info struct {
	Type     string
	Name     string
	RootPath string
	// RelativePath is the file's path relative to RootPath, slash-
	// normalized — suitable to pass straight through as fold.Options.Origin.
	RelativePath string
}

// Detector walks a file's ancestor directories looking for project root
// markers.
type Detector struct {
	fs      afs.Service
	markers []string
}

// New constructs a Detector with the conventional marker set.
func New() *Detector {
	return &Detector{
		fs: afs.New(),
		markers: []string{
			"package.json",
			"go.mod",
			".git",
		},
	}
}

// Detect locates the project root containing filePath and returns its Info,
// including filePath's RelativePath within that root.
func (d *Detector) Detect(filePath string) (*Info, error) {
	absPath, err := filepath.Abs(filePath)
	if err != nil {
		return nil, err
	}

	startDir := absPath
	if fi, err := os.Stat(absPath); err == nil && !fi.IsDir() {
		startDir = filepath.Dir(absPath)
	}

	rootPath, marker := d.findRoot(startDir)
	info := &Info{Type: "unknown", RootPath: startDir}
	if rootPath != "" {
		info.RootPath = rootPath
		info.Type = projectTypeFor(marker)
		info.Name = d.extractName(rootPath, marker)
	}

	relPath, err := filepath.Rel(info.RootPath, absPath)
	if err != nil {
		relPath = filepath.Base(absPath)
	}
	info.RelativePath = filepath.ToSlash(relPath)
	return info, nil
}

func (d *Detector) findRoot(startDir string) (string, string) {
	dir := startDir
	for {
		for _, marker := range d.markers {
			if _, err := os.Stat(filepath.Join(dir, marker)); err == nil {
				return dir, marker
			}
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", ""
		}
		dir = parent
	}
}

func projectTypeFor(marker string) string {
	switch marker {
	case "package.json":
		return "javascript"
	case "go.mod":
		return "go"
	case ".git":
		return "git"
	default:
		return "unknown"
	}
}

func (d *Detector) extractName(rootPath, marker string) string {
	switch marker {
	case "package.json":
		return d.extractPackageName(filepath.Join(rootPath, "package.json"))
	case "go.mod":
		return d.extractGoModuleName(filepath.Join(rootPath, "go.mod"))
	default:
		return filepath.Base(rootPath)
	}
}

func (d *Detector) extractPackageName(path string) string {
	content, err := d.fs.DownloadWithURL(context.Background(), path)
	if err != nil || len(content) == 0 {
		return ""
	}
	var pkg struct {
		Name string `json:"name"`
	}
	if err := json.Unmarshal(content, &pkg); err != nil {
		return ""
	}
	return pkg.Name
}

func (d *Detector) extractGoModuleName(path string) string {
	content, err := d.fs.DownloadWithURL(context.Background(), path)
	if err != nil || len(content) == 0 {
		return ""
	}
	mod, err := modfile.Parse(path, content, nil)
	if err != nil || mod.Module == nil {
		return ""
	}
	return mod.Module.Mod.Path
}

// Origin is a convenience combining Detect with the relative-path slash
// normalization fold.Options.Origin expects, for callers that only need
// the origin string.
func Origin(filePath string) (string, error) {
	info, err := New().Detect(filePath)
	if err != nil {
		return "", err
	}
	return strings.TrimPrefix(info.RelativePath, "./"), nil
}
