package snapshot

import (
	"bytes"
	"context"
	"errors"
	"io"
	"path/filepath"
	"testing"
	"time"

	"github.com/samsimpson1/stonks/core/database"
	"github.com/samsimpson1/stonks/core/storage"
	"github.com/samsimpson1/stonks/core/storage/mocks"
	"github.com/samsimpson1/stonks/feature/records"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/minio/minio-go/v7"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

var takenAt = time.Date(2026, 3, 14, 9, 26, 53, 0, time.UTC)

func newSnapshotter(t *testing.T, client storage.Client, keep int) *Snapshotter {
	t.Helper()

	db, err := database.Connect(database.Config{
		Driver: database.DriverSQLite,
		Path:   filepath.Join(t.TempDir(), "live.db"),
	}, zap.NewNop())
	require.NoError(t, err)
	t.Cleanup(func() { _ = database.Close(db) })

	store := records.NewStore(db, zap.NewNop())
	require.NoError(t, store.Migrate(context.Background()))
	require.NoError(t, store.RegisterWorld(context.Background(), 402, "Alpha"))

	s := NewSnapshotter(db, client, storage.Config{Bucket: "stonks", KeepSnapshots: keep}, zap.NewNop())
	s.now = func() time.Time { return takenAt }
	return s
}

func listing(keys ...string) <-chan minio.ObjectInfo {
	ch := make(chan minio.ObjectInfo, len(keys))
	for _, k := range keys {
		ch <- minio.ObjectInfo{Key: k}
	}
	close(ch)
	return ch
}

func TestObjectName(t *testing.T) {
	local := time.Date(2026, 3, 14, 10, 26, 53, 0, time.FixedZone("CET", 3600))
	assert.Equal(t, "snapshots/stonks-20260314T092653Z.db", ObjectName(local))
}

func TestCreate(t *testing.T) {
	ctx := context.Background()
	client := new(mocks.Client)
	s := newSnapshotter(t, client, 2)

	var uploaded []byte
	client.On("BucketExists", ctx, "stonks").Return(true, nil)
	client.On("PutObject", ctx, "stonks", "snapshots/stonks-20260314T092653Z.db", mock.Anything, mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) {
			data, err := io.ReadAll(args.Get(3).(io.Reader))
			require.NoError(t, err)
			uploaded = data
		}).
		Return(minio.UploadInfo{}, nil)
	client.On("ListObjects", ctx, "stonks", minio.ListObjectsOptions{Prefix: Prefix, Recursive: true}).
		Return(listing(
			"snapshots/stonks-20260312T000000Z.db",
			"snapshots/stonks-20260314T092653Z.db",
			"snapshots/stonks-20260313T000000Z.db",
		))
	client.On("RemoveObject", ctx, "stonks", "snapshots/stonks-20260312T000000Z.db", minio.RemoveObjectOptions{}).Return(nil)

	name, err := s.Create(ctx)
	require.NoError(t, err)
	assert.Equal(t, "snapshots/stonks-20260314T092653Z.db", name)
	assert.True(t, bytes.HasPrefix(uploaded, []byte("SQLite format 3\x00")))

	client.AssertExpectations(t)
	client.AssertNumberOfCalls(t, "RemoveObject", 1)
}

func TestCreateKeepAll(t *testing.T) {
	ctx := context.Background()
	client := new(mocks.Client)
	s := newSnapshotter(t, client, 0)

	client.On("BucketExists", ctx, "stonks").Return(false, nil)
	client.On("MakeBucket", ctx, "stonks", minio.MakeBucketOptions{}).Return(nil)
	client.On("PutObject", ctx, "stonks", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(minio.UploadInfo{}, nil)

	_, err := s.Create(ctx)
	require.NoError(t, err)
	client.AssertNotCalled(t, "ListObjects", mock.Anything, mock.Anything, mock.Anything)
}

func TestCreateUploadFailure(t *testing.T) {
	ctx := context.Background()
	client := new(mocks.Client)
	s := newSnapshotter(t, client, 2)

	refused := errors.New("connection refused")
	client.On("BucketExists", ctx, "stonks").Return(true, nil)
	client.On("PutObject", ctx, "stonks", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(minio.UploadInfo{}, refused)

	_, err := s.Create(ctx)
	assert.ErrorIs(t, err, refused)
	client.AssertNotCalled(t, "ListObjects", mock.Anything, mock.Anything, mock.Anything)
}

func TestCreateRequiresSQLite(t *testing.T) {
	sqlDB, _, err := sqlmock.New()
	require.NoError(t, err)
	defer sqlDB.Close()

	db, err := gorm.Open(mysql.New(mysql.Config{Conn: sqlDB, SkipInitializeWithVersion: true}), &gorm.Config{})
	require.NoError(t, err)

	client := new(mocks.Client)
	s := NewSnapshotter(db, client, storage.Config{Bucket: "stonks"}, zap.NewNop())

	_, err = s.Create(context.Background())
	assert.ErrorIs(t, err, ErrUnsupportedDriver)
	client.AssertNotCalled(t, "PutObject", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}
