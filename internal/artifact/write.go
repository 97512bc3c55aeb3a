package artifact

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spigell/mentor-match/internal/career"
)

// Write persists catalog and matrix into dir. The files are written into a
// temporary sibling directory first and swapped in once complete, while an
// exclusive lock on "<dir>.lock" keeps concurrent builders apart.
func Write(ctx context.Context, dir string, catalog *career.Catalog, matrix career.FeatureMatrix) (*Manifest, error) {
	if dir == "" {
		return nil, fmt.Errorf("artifact dir is required")
	}

	if len(matrix) != catalog.Len() {
		return nil, &career.InconsistentCatalogError{Archetypes: catalog.Len(), Rows: len(matrix), Row: -1}
	}

	dim := 4 * catalog.Len()
	for i, row := range matrix {
		if len(row) != dim {
			return nil, &career.InconsistentCatalogError{
				Archetypes: catalog.Len(),
				Rows:       len(matrix),
				Row:        i,
				Width:      len(row),
				Want:       dim,
			}
		}
	}

	dir = filepath.Clean(dir)
	parent := filepath.Dir(dir)
	if err := os.MkdirAll(parent, 0o755); err != nil {
		return nil, fmt.Errorf("cannot create parent dir: %w", err)
	}

	unlock, err := Lock(ctx, dir+".lock")
	if err != nil {
		return nil, err
	}
	defer unlock()

	tmp, err := os.MkdirTemp(parent, filepath.Base(dir)+".tmp-*")
	if err != nil {
		return nil, fmt.Errorf("cannot create temp dir: %w", err)
	}
	defer os.RemoveAll(tmp)

	manifest := Manifest{
		FormatVersion:  FormatVersion,
		CreatedAt:      time.Now().UTC().Format(time.RFC3339),
		Archetypes:     catalog.Len(),
		Dim:            dim,
		ArchetypesFile: DefaultArchetypesFile,
		MatrixFile:     DefaultMatrixFile,
	}

	if err := writeFiles(tmp, manifest, catalog, matrix); err != nil {
		return nil, err
	}

	if err := AtomicSwap(tmp, dir); err != nil {
		return nil, fmt.Errorf("cannot swap artifact into %s: %w", dir, err)
	}

	return &manifest, nil
}

func writeFiles(dir string, m Manifest, catalog *career.Catalog, matrix career.FeatureMatrix) error {
	if err := writeArchetypes(filepath.Join(dir, m.ArchetypesFile), catalog); err != nil {
		return err
	}
	if err := writeMatrix(filepath.Join(dir, m.MatrixFile), matrix); err != nil {
		return err
	}

	b, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return fmt.Errorf("cannot encode manifest: %w", err)
	}
	if err := os.WriteFile(filepath.Join(dir, ManifestFile), append(b, '\n'), 0o644); err != nil {
		return fmt.Errorf("cannot write manifest: %w", err)
	}
	return nil
}

func writeArchetypes(path string, catalog *career.Catalog) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("cannot create archetypes file: %w", err)
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	enc := json.NewEncoder(w)
	for _, a := range catalog.Archetypes() {
		if err := enc.Encode(a); err != nil {
			return fmt.Errorf("cannot encode archetype %q: %w", a.Career, err)
		}
	}
	if err := w.Flush(); err != nil {
		return fmt.Errorf("cannot write archetypes file: %w", err)
	}
	return f.Sync()
}

func writeMatrix(path string, matrix career.FeatureMatrix) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("cannot create matrix file: %w", err)
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	for _, row := range matrix {
		if _, err := w.Write(row); err != nil {
			return fmt.Errorf("cannot write matrix file: %w", err)
		}
	}
	if err := w.Flush(); err != nil {
		return fmt.Errorf("cannot write matrix file: %w", err)
	}
	return f.Sync()
}

// AtomicSwap replaces destDir with srcDir by renaming.
func AtomicSwap(srcDir, destDir string) error {
	backup := destDir + ".bak"
	_ = os.RemoveAll(backup)
	if _, err := os.Stat(destDir); err == nil {
		if err := os.Rename(destDir, backup); err != nil {
			return err
		}
	}
	if err := os.Rename(srcDir, destDir); err != nil {
		// rollback best-effort
		if _, stErr := os.Stat(backup); stErr == nil {
			_ = os.Rename(backup, destDir)
		}
		return err
	}
	_ = os.RemoveAll(backup)
	return nil
}
