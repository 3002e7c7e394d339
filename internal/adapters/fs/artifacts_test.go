package fs_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/bob-agent/internal/adapters/cas"
	"go.trai.ch/bob-agent/internal/adapters/fs"
	"go.trai.ch/bob-agent/internal/core/domain"
	"go.trai.ch/bob-agent/internal/core/ports/mocks"
	"go.uber.org/mock/gomock"
)

var testJob = domain.JobIdentifier{Pipeline: "api", Counter: 7, Stage: "build", Job: "compile"}

func newPublisher(t *testing.T, artifactDir string) (*fs.Publisher, *cas.Store) {
	t.Helper()
	ctrl := gomock.NewController(t)
	mockLogger := mocks.NewMockLogger(ctrl)
	mockLogger.EXPECT().Info(gomock.Any()).AnyTimes()

	store, err := cas.NewStore(filepath.Join(t.TempDir(), "manifest.json"))
	require.NoError(t, err)

	walker := fs.NewWalker()
	return fs.NewPublisher(artifactDir, testJob, store, walker, fs.NewHasher(walker), mockLogger), store
}

func TestPublisher_Publish(t *testing.T) {
	workDir := t.TempDir()
	writeFile(t, filepath.Join(workDir, "bin", "server"), "server binary")
	writeFile(t, filepath.Join(workDir, "bin", "cli"), "cli binary")
	writeFile(t, filepath.Join(workDir, "reports", "unit.xml"), "<testsuite/>")
	writeFile(t, filepath.Join(workDir, "reports", "nested", "it.xml"), "<testsuite/>")

	artifactDir := t.TempDir()
	publisher, store := newPublisher(t, artifactDir)

	err := publisher.Publish(context.Background(), workDir, []domain.ArtifactPlan{
		{Source: "bin/*", Dest: "dist"},
		{Source: "reports"},
	})
	require.NoError(t, err)

	root := filepath.Join(artifactDir, "api", "7", "build", "compile")
	assert.Equal(t, root, publisher.Root())
	assert.FileExists(t, filepath.Join(root, "dist", "server"))
	assert.FileExists(t, filepath.Join(root, "dist", "cli"))
	assert.FileExists(t, filepath.Join(root, "reports", "unit.xml"))
	assert.FileExists(t, filepath.Join(root, "reports", "nested", "it.xml"))

	records, err := store.Get(testJob.String())
	require.NoError(t, err)
	require.Len(t, records, 4)

	destinations := make([]string, 0, len(records))
	for _, r := range records {
		destinations = append(destinations, r.Destination)
		assert.Len(t, r.Digest, 16)
		assert.Positive(t, r.Size)
		assert.False(t, r.Timestamp.IsZero())
	}
	assert.ElementsMatch(t, []string{"dist/cli", "dist/server", "reports/nested/it.xml", "reports/unit.xml"}, destinations)
}

func TestPublisher_Publish_MissingSource(t *testing.T) {
	workDir := t.TempDir()
	writeFile(t, filepath.Join(workDir, "bin", "server"), "server binary")

	publisher, store := newPublisher(t, t.TempDir())

	err := publisher.Publish(context.Background(), workDir, []domain.ArtifactPlan{
		{Source: "bin/server", Dest: "dist"},
		{Source: "coverage/*.out"},
		{Source: "bin/server", Dest: "never"},
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrArtifactPublish)
	assert.Contains(t, err.Error(), domain.ErrArtifactNotFound.Error())

	records, err := store.Get(testJob.String())
	require.NoError(t, err)
	require.Len(t, records, 1, "files published before the failure are recorded")
	assert.Equal(t, "dist/server", records[0].Destination)
}

func TestPublisher_Publish_NoPlans(t *testing.T) {
	artifactDir := t.TempDir()
	publisher, store := newPublisher(t, artifactDir)

	require.NoError(t, publisher.Publish(context.Background(), t.TempDir(), nil))

	records, err := store.Get(testJob.String())
	require.NoError(t, err)
	assert.Empty(t, records)

	entries, err := os.ReadDir(artifactDir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestPublisher_Publish_ManifestFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockLogger := mocks.NewMockLogger(ctrl)
	mockLogger.EXPECT().Info(gomock.Any()).AnyTimes()
	mockStore := mocks.NewMockManifestStore(ctrl)

	workDir := t.TempDir()
	writeFile(t, filepath.Join(workDir, "bin", "server"), "server binary")

	mockStore.EXPECT().
		Put(testJob.String(), gomock.Any()).
		Return(errors.New("read-only file system"))

	walker := fs.NewWalker()
	publisher := fs.NewPublisher(t.TempDir(), testJob, mockStore, walker, fs.NewHasher(walker), mockLogger)

	err := publisher.Publish(context.Background(), workDir, []domain.ArtifactPlan{{Source: "bin/server"}})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrArtifactPublish)
	assert.Contains(t, err.Error(), "read-only file system")
}
