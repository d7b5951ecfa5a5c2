package appinfo

import (
	"context"

	"github.com/dmitrymomot/jsonloc/pkg/logger"
	"github.com/dmitrymomot/jsonloc/pkg/resource"
)

// loadCommon merges the common translation pool into pool once per
// document. The project and datatype of the first non-empty pool file
// become the scope of CommonPoolStrategy.
func (f *File) loadCommon(ctx context.Context, pool *resource.Set) {
	f.commonOnce.Do(func() {
		docs := f.typ.commonPool(ctx)
		total := 0
		for _, doc := range docs {
			if len(doc.Resources) == 0 {
				continue
			}
			if !f.commonLoaded {
				f.commonProject = doc.Resources[0].Project
				f.commonType = doc.Resources[0].DataType
				f.commonLoaded = true
			}
			pool.Add(doc.Resources...)
			total += len(doc.Resources)
		}
		if f.commonLoaded {
			f.typ.logger.DebugContext(ctx, "common translations loaded",
				logger.Project(f.commonProject),
				logger.Count(total),
			)
		}
	})
}

// CommonScope returns the project and datatype of the loaded common pool.
func (f *File) CommonScope() (project, dataType string, ok bool) {
	return f.commonProject, f.commonType, f.commonLoaded
}
