package project

import (
	"context"
	"errors"
	"io/fs"
	"path"

	"github.com/dmitrymomot/jsonloc/pkg/logger"
)

// skippedDirs are never searched for source files.
var skippedDirs = map[string]bool{
	"node_modules": true,
	".git":         true,
	".svn":         true,
}

// Discover returns the handled source files below the project root in
// lexical order. Dependency directories, version control metadata and
// resource directories are not searched.
func (p *Project) Discover(ctx context.Context) ([]string, error) {
	resDir := path.Base(p.cfg.ResourceDir)

	var found []string
	err := fs.WalkDir(p.source, ".", func(name string, d fs.DirEntry, err error) error {
		if err != nil {
			if name == "." {
				return err
			}
			p.logger.WarnContext(ctx, "could not read directory", logger.Path(name), logger.Error(err))
			return nil
		}
		if err := ctx.Err(); err != nil {
			return err
		}

		if d.IsDir() {
			if name != "." && (skippedDirs[d.Name()] || d.Name() == resDir) {
				return fs.SkipDir
			}
			return nil
		}
		if p.typ.Handles(name) {
			found = append(found, name)
		}
		return nil
	})
	if err != nil {
		return nil, errors.Join(ErrDiscover, err)
	}

	p.logger.DebugContext(ctx, "source files discovered", logger.Count(len(found)))
	return found, nil
}
