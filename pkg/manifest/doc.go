// Package manifest writes the ilibmanifest.json index of a localized
// resource tree.
//
// The manifest lists every .json file below the resource root, relative to
// it, in lexical order:
//
//	{
//	    "files": [
//	        "de/appinfo.json",
//	        "fr/CA/appinfo.json"
//	    ],
//	    "l10n_timestamp": "1700000000000",
//	    "generated": true
//	}
//
// A manifest that already carries a "generated" marker is left untouched,
// and nothing is written when the tree holds no .json files.
//
// Usage:
//
//	written, err := manifest.Write(ctx, storage, "resources",
//		manifest.WithLogger(log),
//	)
package manifest
