package artifact

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"slices"
	"testing"
	"time"

	"github.com/spigell/mentor-match/internal/career"
)

func writeDefault(t *testing.T, dir string) *Manifest {
	t.Helper()

	catalog, matrix, err := career.Build(career.DefaultSeed())
	if err != nil {
		t.Fatalf("build: %v", err)
	}

	m, err := Write(context.Background(), dir, catalog, matrix)
	if err != nil {
		t.Fatalf("write: %v", err)
	}
	return m
}

func TestWriteLoad(t *testing.T) {
	t.Parallel()

	dir := filepath.Join(t.TempDir(), "model")
	m := writeDefault(t, dir)

	if m.Archetypes != 3 || m.Dim != 12 {
		t.Fatalf("unexpected manifest: %+v", m)
	}

	loaded, err := Load(dir)
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	seed := career.DefaultSeed()
	_, matrix, _ := career.Build(seed)

	if loaded.Catalog.Len() != len(seed) {
		t.Fatalf("expected %d archetypes, got %d", len(seed), loaded.Catalog.Len())
	}
	for i := range seed {
		got := loaded.Catalog.At(i)
		if got.Career != seed[i].Career || got.Mentor != seed[i].Mentor || !slices.Equal(got.Skills, seed[i].Skills) {
			t.Fatalf("archetype %d changed: %+v", i, got)
		}
		if !slices.Equal(loaded.Matrix[i], matrix[i]) {
			t.Fatalf("row %d changed: %v vs %v", i, loaded.Matrix[i], matrix[i])
		}
	}

	model, err := LoadModel(dir)
	if err != nil {
		t.Fatalf("load model: %v", err)
	}

	rec, err := model.Recommend(career.Profile{
		Skills:     []string{"Python"},
		Interests:  []string{"AI"},
		Education:  "BSc CS",
		Experience: "2 years",
	})
	if err != nil {
		t.Fatalf("recommend: %v", err)
	}
	if rec.Career != "Data Scientist" || rec.Mentor != "Dr. AI Expert" {
		t.Fatalf("unexpected recommendation: %+v", rec)
	}
}

func TestWriteReplacesExisting(t *testing.T) {
	t.Parallel()

	dir := filepath.Join(t.TempDir(), "model")
	writeDefault(t, dir)

	catalog, matrix, err := career.Build(career.DefaultSeed()[:1])
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	if _, err := Write(context.Background(), dir, catalog, matrix); err != nil {
		t.Fatalf("write: %v", err)
	}

	loaded, err := Load(dir)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if loaded.Catalog.Len() != 1 {
		t.Fatalf("expected replaced artifact with 1 archetype, got %d", loaded.Catalog.Len())
	}

	if _, err := os.Stat(dir + ".bak"); !os.IsNotExist(err) {
		t.Fatalf("expected backup dir to be removed, got %v", err)
	}
}

func TestWriteRejectsInconsistentMatrix(t *testing.T) {
	t.Parallel()

	catalog, matrix, err := career.Build(career.DefaultSeed())
	if err != nil {
		t.Fatalf("build: %v", err)
	}

	_, err = Write(context.Background(), filepath.Join(t.TempDir(), "model"), catalog, matrix[:2])
	if !errors.Is(err, career.ErrInconsistentCatalog) {
		t.Fatalf("expected ErrInconsistentCatalog, got %v", err)
	}
}

func TestLoadDetectsDamage(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		damage func(t *testing.T, dir string)
	}{
		{
			name: "truncated matrix",
			damage: func(t *testing.T, dir string) {
				if err := os.Truncate(filepath.Join(dir, DefaultMatrixFile), 10); err != nil {
					t.Fatalf("truncate: %v", err)
				}
			},
		},
		{
			name: "missing archetype line",
			damage: func(t *testing.T, dir string) {
				path := filepath.Join(dir, DefaultArchetypesFile)
				b, err := os.ReadFile(path)
				if err != nil {
					t.Fatalf("read: %v", err)
				}
				lines := slices.DeleteFunc(bytes.Split(b, []byte("\n")), func(l []byte) bool { return len(l) == 0 })
				out := []byte{}
				for _, l := range lines[:2] {
					out = append(out, l...)
					out = append(out, '\n')
				}
				if err := os.WriteFile(path, out, 0o644); err != nil {
					t.Fatalf("write: %v", err)
				}
			},
		},
		{
			name: "non binary cell",
			damage: func(t *testing.T, dir string) {
				path := filepath.Join(dir, DefaultMatrixFile)
				b, err := os.ReadFile(path)
				if err != nil {
					t.Fatalf("read: %v", err)
				}
				b[5] = 7
				if err := os.WriteFile(path, b, 0o644); err != nil {
					t.Fatalf("write: %v", err)
				}
			},
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			dir := filepath.Join(t.TempDir(), "model")
			writeDefault(t, dir)
			tt.damage(t, dir)

			if _, err := Load(dir); !errors.Is(err, career.ErrInconsistentCatalog) {
				t.Fatalf("expected ErrInconsistentCatalog, got %v", err)
			}
		})
	}
}

func TestLoadModelDetectsForeignMatrix(t *testing.T) {
	t.Parallel()

	dir := filepath.Join(t.TempDir(), "model")
	writeDefault(t, dir)

	path := filepath.Join(dir, DefaultMatrixFile)
	b, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	// flip a bit of the first row
	b[0] ^= 1
	if err := os.WriteFile(path, b, 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	if _, err := Load(dir); err != nil {
		t.Fatalf("shape is still valid, got %v", err)
	}
	if _, err := LoadModel(dir); !errors.Is(err, career.ErrInconsistentCatalog) {
		t.Fatalf("expected ErrInconsistentCatalog, got %v", err)
	}
}

func TestLoadMissingDir(t *testing.T) {
	t.Parallel()

	if _, err := Load(filepath.Join(t.TempDir(), "absent")); err == nil {
		t.Fatalf("expected error for missing artifact")
	}
}

func TestLockWaitsForRelease(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "model.lock")

	unlock, err := Lock(context.Background(), path)
	if err != nil {
		t.Fatalf("lock: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 250*time.Millisecond)
	defer cancel()

	if _, err := Lock(ctx, path); !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("expected deadline exceeded while lock is held, got %v", err)
	}

	unlock()

	unlockAgain, err := Lock(context.Background(), path)
	if err != nil {
		t.Fatalf("lock after release: %v", err)
	}
	unlockAgain()
}
