package fs_test

import (
	"context"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/bob-agent/internal/adapters/fs"
	"go.trai.ch/bob-agent/internal/core/domain"
	"go.trai.ch/bob-agent/internal/core/ports/fakes"
)

func TestProperties_Generate_Content(t *testing.T) {
	workDir := t.TempDir()
	writeFile(t, filepath.Join(workDir, "VERSION"), "  1.4.2  \nsecond line\n")

	sink := &fakes.Sink{}
	plan := domain.PropertyPlan{Name: "version", Source: "VERSION", Kind: domain.PropertyContent}

	err := fs.NewProperties(fs.NewHasher(fs.NewWalker())).Generate(context.Background(), plan, sink, workDir)
	require.NoError(t, err)

	assert.Equal(t, []fakes.Event{{Kind: "line", Text: "property 'version' = '1.4.2'"}}, sink.Events())
}

func TestProperties_Generate_ContentTruncated(t *testing.T) {
	workDir := t.TempDir()
	writeFile(t, filepath.Join(workDir, "long"), strings.Repeat("x", 300))

	sink := &fakes.Sink{}
	plan := domain.PropertyPlan{Name: "long", Source: "long", Kind: domain.PropertyContent}

	require.NoError(t, fs.NewProperties(fs.NewHasher(fs.NewWalker())).Generate(context.Background(), plan, sink, workDir))
	assert.Equal(t, "property 'long' = '"+strings.Repeat("x", 255)+"'", sink.Events()[0].Text)
}

func TestProperties_Generate_Checksum(t *testing.T) {
	workDir := t.TempDir()
	writeFile(t, filepath.Join(workDir, "bin", "server"), "hello world")

	sink := &fakes.Sink{}
	plan := domain.PropertyPlan{Name: "server.checksum", Source: "bin/server", Kind: domain.PropertyChecksum}

	require.NoError(t, fs.NewProperties(fs.NewHasher(fs.NewWalker())).Generate(context.Background(), plan, sink, workDir))
	assert.Equal(t, "property 'server.checksum' = '45ab6734b21e6968'", sink.Events()[0].Text)
}

func TestProperties_Generate_Errors(t *testing.T) {
	generator := fs.NewProperties(fs.NewHasher(fs.NewWalker()))

	t.Run("MissingFile", func(t *testing.T) {
		sink := &fakes.Sink{}
		plan := domain.PropertyPlan{Name: "version", Source: "VERSION", Kind: domain.PropertyContent}

		err := generator.Generate(context.Background(), plan, sink, t.TempDir())
		require.Error(t, err)
		assert.Empty(t, sink.Events())
	})

	t.Run("UnknownKind", func(t *testing.T) {
		plan := domain.PropertyPlan{Name: "x", Source: "x", Kind: "sha1"}

		err := generator.Generate(context.Background(), plan, &fakes.Sink{}, t.TempDir())
		require.Error(t, err)
		assert.ErrorIs(t, err, domain.ErrUnknownPropertyKind)
	})
}
