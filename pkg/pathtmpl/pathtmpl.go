// Package pathtmpl expands output path templates and selects templates by
// glob pattern.
//
// A template is literal text with bracketed placeholders:
//
//	[dir]       directory of the source path
//	[filename]  base name of the source path (also used for unknown keywords)
//	[resDir]    configured resource directory, "." when unset
//	[locale]    locale path fragment, e.g. "de" or "de/CH"
//
// The expanded path is cleaned, so empty fragments collapse.
package pathtmpl

import (
	"path"
	"strings"
)

// DefaultTemplate places localized copies under the resource directory
// next to the source file.
const DefaultTemplate = "[dir]/[resDir]/[locale]/[filename]"

// Params are the values substituted into a template.
type Params struct {
	SourcePath  string
	LocalePath  string
	ResourceDir string
}

// Expand substitutes params into template and returns the cleaned path.
func Expand(template string, params Params) string {
	resDir := params.ResourceDir
	if resDir == "" {
		resDir = "."
	}

	var b strings.Builder
	for i := 0; i < len(template); i++ {
		if template[i] != '[' {
			b.WriteByte(template[i])
			continue
		}
		start := i + 1
		end := strings.IndexByte(template[start:], ']')
		var keyword string
		if end < 0 {
			keyword = template[start:]
			i = len(template)
		} else {
			keyword = template[start : start+end]
			i = start + end
		}

		switch keyword {
		case "dir":
			b.WriteString(path.Dir(params.SourcePath))
		case "resDir":
			b.WriteString(resDir)
		case "locale":
			b.WriteString(params.LocalePath)
		default:
			b.WriteString(path.Base(params.SourcePath))
		}
	}

	return path.Clean(b.String())
}
