package snapshot

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/samsimpson1/stonks/core/storage"

	"github.com/minio/minio-go/v7"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Prefix is the object key prefix of every snapshot.
const Prefix = "snapshots/stonks-"

// ErrUnsupportedDriver is returned when the database is not SQLite.
var ErrUnsupportedDriver = errors.New("snapshots require the sqlite driver")

// ObjectName returns the object key of a snapshot taken at t.
// Keys sort in the order the snapshots were taken.
func ObjectName(t time.Time) string {
	return Prefix + t.UTC().Format("20060102T150405Z") + ".db"
}

// Snapshotter copies the live database into object storage.
type Snapshotter struct {
	db     *gorm.DB
	client storage.Client
	cfg    storage.Config
	logger *zap.Logger
	now    func() time.Time
}

// NewSnapshotter creates a new snapshotter.
func NewSnapshotter(db *gorm.DB, client storage.Client, cfg storage.Config, logger *zap.Logger) *Snapshotter {
	return &Snapshotter{
		db:     db,
		client: client,
		cfg:    cfg,
		logger: logger,
		now:    time.Now,
	}
}

// Create writes a consistent copy of the database with VACUUM INTO, uploads it and
// prunes snapshots beyond the retention count. It returns the uploaded object key.
func (s *Snapshotter) Create(ctx context.Context) (string, error) {
	if s.db.Dialector.Name() != "sqlite" {
		return "", fmt.Errorf("%w: got %s", ErrUnsupportedDriver, s.db.Dialector.Name())
	}

	dir, err := os.MkdirTemp("", "stonks-snapshot-")
	if err != nil {
		return "", fmt.Errorf("failed to create snapshot dir: %w", err)
	}
	defer os.RemoveAll(dir)

	path := filepath.Join(dir, "stonks.db")
	if err := s.db.WithContext(ctx).Exec("VACUUM INTO ?", path).Error; err != nil {
		return "", fmt.Errorf("failed to copy database: %w", err)
	}

	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("failed to open snapshot: %w", err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return "", fmt.Errorf("failed to stat snapshot: %w", err)
	}

	if err := storage.EnsureBucket(ctx, s.client, s.cfg.Bucket, s.cfg.Region); err != nil {
		return "", err
	}

	name := ObjectName(s.now())
	_, err = s.client.PutObject(ctx, s.cfg.Bucket, name, f, info.Size(), minio.PutObjectOptions{
		ContentType: "application/vnd.sqlite3",
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload snapshot %s: %w", name, err)
	}
	s.logger.Info("Snapshot uploaded",
		zap.String("bucket", s.cfg.Bucket),
		zap.String("object", name),
		zap.Int64("size", info.Size()),
	)

	if err := s.prune(ctx); err != nil {
		return name, err
	}
	return name, nil
}

func (s *Snapshotter) prune(ctx context.Context) error {
	if s.cfg.KeepSnapshots <= 0 {
		return nil
	}

	var keys []string
	for obj := range s.client.ListObjects(ctx, s.cfg.Bucket, minio.ListObjectsOptions{Prefix: Prefix, Recursive: true}) {
		if obj.Err != nil {
			return fmt.Errorf("failed to list snapshots: %w", obj.Err)
		}
		if strings.HasPrefix(obj.Key, Prefix) {
			keys = append(keys, obj.Key)
		}
	}
	if len(keys) <= s.cfg.KeepSnapshots {
		return nil
	}

	slices.Sort(keys)
	for _, key := range keys[:len(keys)-s.cfg.KeepSnapshots] {
		if err := s.client.RemoveObject(ctx, s.cfg.Bucket, key, minio.RemoveObjectOptions{}); err != nil {
			return fmt.Errorf("failed to remove snapshot %s: %w", key, err)
		}
		s.logger.Info("Snapshot pruned", zap.String("object", key))
	}
	return nil
}
