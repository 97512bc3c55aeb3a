// Package artifact persists a built catalog and its feature matrix so the
// serving process can load them without rebuilding.
//
// An artifact directory holds three files:
//
//	manifest.json     shape and file names
//	archetypes.jsonl  one archetype per line, in catalog order
//	matrix.bin        row-major feature matrix, one byte per cell
package artifact

import "github.com/spigell/mentor-match/internal/career"

const (
	FormatVersion = 1

	ManifestFile          = "manifest.json"
	DefaultArchetypesFile = "archetypes.jsonl"
	DefaultMatrixFile     = "matrix.bin"
)

// Manifest describes an artifact and how to interpret its files.
type Manifest struct {
	FormatVersion  int    `json:"format_version"`
	CreatedAt      string `json:"created_at"`
	Archetypes     int    `json:"archetypes"`
	Dim            int    `json:"dim"`
	ArchetypesFile string `json:"archetypes_file"`
	MatrixFile     string `json:"matrix_file"`
}

// Artifact is a loaded catalog together with its feature matrix.
type Artifact struct {
	Manifest Manifest
	Catalog  *career.Catalog
	Matrix   career.FeatureMatrix
}
