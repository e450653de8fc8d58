// Package services – BackupService
//
// BackupService snapshots every stored row to a JSON document and restores
// such a document by atomically replacing all stored data. Destinations and
// sources are picked by a Chooser; a chooser that declines yields a
// cancelled result, which is neither a success nor an error.
//
// Chooser paths are confined to the backup directory.
//
// Once the replace transaction has begun it runs to completion (commit or
// rollback) regardless of the caller's context, and no other write can
// interleave with it.
package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/tbourn/juris-ledger/internal/domain"
	"github.com/tbourn/juris-ledger/internal/events"
	"github.com/tbourn/juris-ledger/internal/repo"
)

// maxBackupBytes caps the size of a snapshot read by Restore.
const maxBackupBytes = 64 << 20

// Chooser picks a backup destination or restore source. ok is false when
// the user declined to choose.
type Chooser interface {
	Choose(ctx context.Context) (path string, ok bool, err error)
}

// ChooserFunc adapts a function to Chooser.
type ChooserFunc func(ctx context.Context) (string, bool, error)

// Choose calls f.
func (f ChooserFunc) Choose(ctx context.Context) (string, bool, error) { return f(ctx) }

// FixedPath is a Chooser that always returns its path; an empty path counts
// as a cancelled choice.
type FixedPath string

// Choose implements Chooser.
func (p FixedPath) Choose(context.Context) (string, bool, error) {
	if p == "" {
		return "", false, nil
	}
	return string(p), true, nil
}

// BackupResult reports the outcome of Backup.
type BackupResult struct {
	Cancelled bool   `json:"cancelled"`
	Location  string `json:"location,omitempty"`
	Clients   int    `json:"clients"`
	Actions   int    `json:"actions"`
	Payments  int    `json:"payments"`
}

// RestoreResult reports the outcome of Restore.
type RestoreResult struct {
	Cancelled bool   `json:"cancelled"`
	Source    string `json:"source,omitempty"`
	Clients   int    `json:"clients"`
	Actions   int    `json:"actions"`
	Payments  int    `json:"payments"`
}

// BackupService implements backup and restore.
type BackupService struct {
	Store  *repo.Store
	Events events.Publisher

	// Dir resolves relative destinations and sources. Empty means the
	// working directory.
	Dir string
	// Now stamps default file names.
	Now func() time.Time
}

// NewBackupService constructs a BackupService.
func NewBackupService(st *repo.Store, pub events.Publisher, dir string) *BackupService {
	return &BackupService{Store: st, Events: pub, Dir: dir, Now: time.Now}
}

// DefaultBackupName is the file name used when the destination is a directory.
func DefaultBackupName(t time.Time) string {
	return fmt.Sprintf("juris-payment-backup-%s.json", t.Format(domain.DateLayout))
}

// Snapshot reads every row of every table.
func (s *BackupService) Snapshot(ctx context.Context) (*domain.Snapshot, error) {
	snap, err := repo.DumpAll(ctx, s.Store.DB)
	if err != nil {
		return nil, &StorageError{Op: "snapshot", Err: err}
	}
	return snap, nil
}

// WriteSnapshot encodes a fresh snapshot as indented JSON to w.
func (s *BackupService) WriteSnapshot(ctx context.Context, w io.Writer) (*domain.Snapshot, error) {
	snap, err := s.Snapshot(ctx)
	if err != nil {
		return nil, err
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(snap); err != nil {
		return nil, &StorageError{Op: "encode snapshot", Err: err}
	}
	return snap, nil
}

// Backup writes a snapshot to the destination picked by choose. A directory
// destination receives DefaultBackupName. The file is written to a
// temporary name first and renamed into place.
func (s *BackupService) Backup(ctx context.Context, choose Chooser) (BackupResult, error) {
	tr := otel.Tracer("services/BackupService")
	ctx, span := tr.Start(ctx, "Backup")
	defer span.End()

	dest, ok, err := choose.Choose(ctx)
	if err != nil {
		return BackupResult{}, err
	}
	if !ok {
		return BackupResult{Cancelled: true}, nil
	}
	dest, err = s.resolve(dest)
	if err != nil {
		return BackupResult{}, err
	}
	if fi, err := os.Stat(dest); err == nil && fi.IsDir() {
		dest = filepath.Join(dest, DefaultBackupName(s.now()))
	}
	span.SetAttributes(attribute.String("backup.location", dest))

	var buf bytes.Buffer
	snap, err := s.WriteSnapshot(ctx, &buf)
	if err != nil {
		return BackupResult{}, err
	}
	if err := writeFileAtomic(dest, buf.Bytes()); err != nil {
		return BackupResult{}, &StorageError{Op: "write backup", Err: err}
	}

	res := BackupResult{
		Location: dest,
		Clients:  len(snap.Clients),
		Actions:  len(snap.Actions),
		Payments: len(snap.Payments),
	}
	log.Info().
		Str("location", dest).
		Int("clients", res.Clients).
		Int("actions", res.Actions).
		Int("payments", res.Payments).
		Msg("backup written")
	return res, nil
}

// Restore replaces all stored data with the snapshot at the source picked
// by choose.
func (s *BackupService) Restore(ctx context.Context, choose Chooser) (RestoreResult, error) {
	src, ok, err := choose.Choose(ctx)
	if err != nil {
		return RestoreResult{}, err
	}
	if !ok {
		return RestoreResult{Cancelled: true}, nil
	}
	src, err = s.resolve(src)
	if err != nil {
		return RestoreResult{}, err
	}

	f, err := os.Open(src)
	if err != nil {
		return RestoreResult{}, &StorageError{Op: "open backup", Err: err}
	}
	defer f.Close()

	res, err := s.RestoreFrom(ctx, f)
	if err != nil {
		return RestoreResult{}, err
	}
	res.Source = src
	return res, nil
}

// RestoreFrom reads a snapshot document from r and applies it.
func (s *BackupService) RestoreFrom(ctx context.Context, r io.Reader) (RestoreResult, error) {
	raw, err := io.ReadAll(io.LimitReader(r, maxBackupBytes+1))
	if err != nil {
		return RestoreResult{}, &StorageError{Op: "read backup", Err: err}
	}
	if len(raw) > maxBackupBytes {
		return RestoreResult{}, &FormatError{Reason: "file too large"}
	}
	return s.Apply(ctx, raw)
}

// Apply validates raw and, when it is a well-formed snapshot, replaces all
// stored data with it. Validation failures are *FormatError and leave the
// data untouched; failures of the replace are *RestoreError after rollback.
func (s *BackupService) Apply(ctx context.Context, raw []byte) (RestoreResult, error) {
	tr := otel.Tracer("services/BackupService")
	ctx, span := tr.Start(ctx, "Restore")
	defer span.End()

	snap, err := domain.DecodeSnapshot(raw)
	if err != nil {
		return RestoreResult{}, err
	}
	span.SetAttributes(
		attribute.Int("restore.clients", len(snap.Clients)),
		attribute.Int("restore.actions", len(snap.Actions)),
		attribute.Int("restore.payments", len(snap.Payments)),
	)
	if err := ctx.Err(); err != nil {
		return RestoreResult{}, err
	}

	// Past this point the caller can no longer cancel.
	txCtx := context.WithoutCancel(ctx)
	err = s.Store.Exclusive(func() error {
		return repo.ReplaceAll(txCtx, s.Store.DB, s.Store.Dialect, snap)
	})
	if err != nil {
		span.RecordError(err, trace.WithStackTrace(false))
		log.Error().Err(err).Msg("restore rolled back")
		return RestoreResult{}, &RestoreError{Err: err}
	}

	publish(s.Events, events.DataImported, 0)
	res := RestoreResult{
		Clients:  len(snap.Clients),
		Actions:  len(snap.Actions),
		Payments: len(snap.Payments),
	}
	log.Info().
		Int("clients", res.Clients).
		Int("actions", res.Actions).
		Int("payments", res.Payments).
		Msg("restore committed")
	return res, nil
}

// resolve maps a chooser path into Dir. Relative paths are taken from Dir;
// any path that leaves Dir is rejected. An empty Dir leaves p unrestricted.
func (s *BackupService) resolve(p string) (string, error) {
	if s.Dir == "" {
		return p, nil
	}
	dir, err := filepath.Abs(s.Dir)
	if err != nil {
		return "", &StorageError{Op: "resolve backup dir", Err: err}
	}
	full := p
	if !filepath.IsAbs(full) {
		full = filepath.Join(dir, full)
	}
	full = filepath.Clean(full)
	rel, err := filepath.Rel(dir, full)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", &ValidationError{Field: "path", Reason: "must be inside the backup directory"}
	}
	return full, nil
}

func (s *BackupService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

// writeFileAtomic writes data next to path and renames it over path.
func writeFileAtomic(path string, data []byte) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), ".juris-backup-*")
	if err != nil {
		return err
	}
	name := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(name)
		return err
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		_ = os.Remove(name)
		return err
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(name)
		return err
	}
	if err := os.Rename(name, path); err != nil {
		_ = os.Remove(name)
		return err
	}
	return nil
}
