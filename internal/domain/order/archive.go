// internal/domain/order/archive.go
package order

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"
)

// ArchiveResult reports the outcome of an archive batch
type ArchiveResult struct {
	Archived int `json:"archived"`
	Skipped  int `json:"skipped"`
}

// Archiver moves completed orders out of the live tables
type Archiver struct {
	repo Repository
}

// NewArchiver creates a new order archiver
func NewArchiver(repo Repository) *Archiver {
	return &Archiver{repo: repo}
}

// Archive moves the given orders into the archive tables and deletes
// the originals. IDs that match no live order are counted as skipped,
// not errors; running the same batch twice archives nothing the second
// time. An empty batch is a no-op.
func (a *Archiver) Archive(ctx context.Context, ids []uint) (*ArchiveResult, error) {
	unique := dedupe(ids)
	if len(unique) == 0 {
		return &ArchiveResult{}, nil
	}

	orders, err := a.repo.FindWithDetails(ctx, unique)
	if err != nil {
		return nil, err
	}

	result := &ArchiveResult{
		Archived: len(orders),
		Skipped:  len(unique) - len(orders),
	}

	if len(orders) == 0 {
		return result, nil
	}

	if err := a.repo.MoveToArchive(ctx, orders, time.Now().UTC()); err != nil {
		return nil, err
	}

	logrus.WithFields(logrus.Fields{
		"archived": result.Archived,
		"skipped":  result.Skipped,
	}).Info("Archived orders")

	return result, nil
}

// ListArchived lists archived orders, newest archive date first
func (a *Archiver) ListArchived(ctx context.Context) ([]ArchivedOrder, error) {
	return a.repo.ListArchived(ctx)
}

// dedupe drops duplicate IDs while preserving order
func dedupe(ids []uint) []uint {
	seen := make(map[uint]bool, len(ids))
	unique := make([]uint, 0, len(ids))
	for _, id := range ids {
		if seen[id] {
			continue
		}
		seen[id] = true
		unique = append(unique, id)
	}
	return unique
}
