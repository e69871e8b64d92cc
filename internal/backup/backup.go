// Package backup archives the database file together with a metadata
// snapshot (merged settings and category list) into a zip, and restores
// from such archives. It never touches transaction rows directly; the
// database file itself carries them.
package backup

import (
	"archive/zip"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"compta/internal/ledger"
)

const metadataName = "metadata.json"

type metadata struct {
	Settings   map[string]string `json:"settings"`
	Categories []categoryMeta    `json:"categories"`
}

type categoryMeta struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
	Kind string `json:"kind"`
}

type Service struct {
	store  ledger.Store
	dbPath string
	dir    string
}

func New(store ledger.Store, dbPath, dir string) *Service {
	return &Service{store: store, dbPath: dbPath, dir: dir}
}

// Auto creates a timestamped archive in the configured backup directory and
// returns its path.
func (s *Service) Auto(ctx context.Context) (string, error) {
	target := filepath.Join(s.dir, "backup-"+time.Now().Format("20060102-1504")+".zip")
	if err := s.Create(ctx, target); err != nil {
		return "", err
	}
	return target, nil
}

// Create writes a zip archive holding the database file and metadata.json.
func (s *Service) Create(ctx context.Context, path string) error {
	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create backup directory: %w", err)
		}
	}

	settings, err := s.store.ExportSettings(ctx)
	if err != nil {
		return fmt.Errorf("export settings: %w", err)
	}
	categories, err := s.store.ListCategories(ctx)
	if err != nil {
		return fmt.Errorf("list categories: %w", err)
	}

	meta := metadata{Settings: settings}
	for _, c := range categories {
		meta.Categories = append(meta.Categories, categoryMeta{ID: c.ID, Name: c.Name, Kind: string(c.Kind)})
	}

	out, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create archive: %w", err)
	}
	defer out.Close()

	zw := zip.NewWriter(out)
	if err := s.addDatabase(zw); err != nil {
		zw.Close()
		return err
	}
	if err := addJSON(zw, metadataName, meta); err != nil {
		zw.Close()
		return err
	}
	if err := zw.Close(); err != nil {
		return fmt.Errorf("finalize archive: %w", err)
	}

	slog.InfoContext(ctx, "Backup created", "path", path, "categories", len(meta.Categories))
	return nil
}

// Restore copies the archived database file over the current one and
// re-imports the archived settings. The caller must reopen the store
// afterwards to see the restored rows.
func (s *Service) Restore(ctx context.Context, archive string) error {
	zr, err := zip.OpenReader(archive)
	if err != nil {
		return fmt.Errorf("open archive: %w", err)
	}
	defer zr.Close()

	dbName := filepath.Base(s.dbPath)
	var meta *metadata
	restoredDB := false

	for _, f := range zr.File {
		switch f.Name {
		case dbName:
			if err := extractFile(f, s.dbPath); err != nil {
				return err
			}
			restoredDB = true
		case metadataName:
			rc, err := f.Open()
			if err != nil {
				return fmt.Errorf("open metadata: %w", err)
			}
			meta = &metadata{}
			err = json.NewDecoder(rc).Decode(meta)
			rc.Close()
			if err != nil {
				return fmt.Errorf("decode metadata: %w", err)
			}
		}
	}

	if !restoredDB {
		return fmt.Errorf("archive %s does not contain database file %s", archive, dbName)
	}
	if meta != nil {
		if err := s.store.ImportSettings(ctx, meta.Settings); err != nil {
			return fmt.Errorf("restore settings: %w", err)
		}
	}

	slog.InfoContext(ctx, "Backup restored", "archive", archive)
	return nil
}

func (s *Service) addDatabase(zw *zip.Writer) error {
	src, err := os.Open(s.dbPath)
	if err != nil {
		return fmt.Errorf("open database file: %w", err)
	}
	defer src.Close()

	w, err := zw.Create(filepath.Base(s.dbPath))
	if err != nil {
		return fmt.Errorf("add database to archive: %w", err)
	}
	if _, err := io.Copy(w, src); err != nil {
		return fmt.Errorf("copy database into archive: %w", err)
	}
	return nil
}

func addJSON(zw *zip.Writer, name string, v any) error {
	w, err := zw.Create(name)
	if err != nil {
		return fmt.Errorf("add %s to archive: %w", name, err)
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encode %s: %w", name, err)
	}
	return nil
}

func extractFile(f *zip.File, dest string) error {
	rc, err := f.Open()
	if err != nil {
		return fmt.Errorf("open archived %s: %w", f.Name, err)
	}
	defer rc.Close()

	out, err := os.Create(dest)
	if err != nil {
		return fmt.Errorf("create %s: %w", dest, err)
	}
	defer out.Close()

	if _, err := io.Copy(out, rc); err != nil {
		return fmt.Errorf("extract %s: %w", f.Name, err)
	}
	return nil
}
