package artifact

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"

	"github.com/spigell/mentor-match/internal/career"
)

// Load reads an artifact from dir and checks that its files agree in shape.
func Load(dir string) (*Artifact, error) {
	manifestPath := filepath.Join(dir, ManifestFile)
	b, err := os.ReadFile(manifestPath)
	if err != nil {
		return nil, fmt.Errorf("cannot read manifest %s: %w", manifestPath, err)
	}

	var m Manifest
	if err := json.Unmarshal(b, &m); err != nil {
		return nil, fmt.Errorf("invalid manifest JSON %s: %w", manifestPath, err)
	}
	if m.FormatVersion != FormatVersion {
		return nil, fmt.Errorf("unsupported artifact format version %d", m.FormatVersion)
	}
	if m.ArchetypesFile == "" {
		m.ArchetypesFile = DefaultArchetypesFile
	}
	if m.MatrixFile == "" {
		m.MatrixFile = DefaultMatrixFile
	}

	archetypes, err := loadArchetypes(filepath.Join(dir, m.ArchetypesFile))
	if err != nil {
		return nil, err
	}

	if len(archetypes) != m.Archetypes {
		return nil, &career.InconsistentCatalogError{Archetypes: len(archetypes), Rows: m.Archetypes, Row: -1}
	}
	if m.Dim != 4*len(archetypes) {
		return nil, fmt.Errorf("%w: manifest dim %d for %d archetypes", career.ErrInconsistentCatalog, m.Dim, len(archetypes))
	}

	matrix, err := loadMatrix(filepath.Join(dir, m.MatrixFile), len(archetypes), m.Dim)
	if err != nil {
		return nil, err
	}

	return &Artifact{
		Manifest: m,
		Catalog:  career.NewCatalog(archetypes),
		Matrix:   matrix,
	}, nil
}

// LoadModel loads the artifact in dir, re-encodes its catalog to make sure the
// stored matrix was built from it, and returns the resulting model.
func LoadModel(dir string) (*career.Model, error) {
	a, err := Load(dir)
	if err != nil {
		return nil, err
	}

	expected, err := career.EncodeCatalog(a.Catalog)
	if err != nil {
		return nil, err
	}

	for i := range expected {
		if !slices.Equal(expected[i], a.Matrix[i]) {
			return nil, fmt.Errorf("%w: matrix row %d does not encode archetype %q",
				career.ErrInconsistentCatalog, i, a.Catalog.At(i).Career)
		}
	}

	return career.NewModel(a.Catalog, a.Matrix)
}

func loadArchetypes(path string) ([]career.Archetype, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("cannot open archetypes file %s: %w", path, err)
	}
	defer f.Close()

	var out []career.Archetype
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}
		var a career.Archetype
		if err := json.Unmarshal(line, &a); err != nil {
			return nil, fmt.Errorf("invalid archetypes JSONL %s: %w", path, err)
		}
		out = append(out, a)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("cannot read archetypes file %s: %w", path, err)
	}
	return out, nil
}

func loadMatrix(path string, rows, dim int) (career.FeatureMatrix, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("cannot open matrix file %s: %w", path, err)
	}
	defer f.Close()

	st, err := f.Stat()
	if err != nil {
		return nil, fmt.Errorf("cannot stat matrix file %s: %w", path, err)
	}

	expected := int64(rows * dim)
	if st.Size() != expected {
		return nil, fmt.Errorf("%w: matrix file size mismatch: got %d want %d (archetypes=%d dim=%d)",
			career.ErrInconsistentCatalog, st.Size(), expected, rows, dim)
	}

	buf := make([]byte, expected)
	if _, err := io.ReadFull(f, buf); err != nil {
		return nil, fmt.Errorf("cannot read matrix from %s: %w", path, err)
	}

	matrix := make(career.FeatureMatrix, rows)
	for i := range matrix {
		row := career.FeatureVector(buf[i*dim : (i+1)*dim : (i+1)*dim])
		for j, cell := range row {
			if cell > 1 {
				return nil, fmt.Errorf("%w: matrix cell (%d,%d) is %d", career.ErrInconsistentCatalog, i, j, cell)
			}
		}
		matrix[i] = row
	}
	return matrix, nil
}
