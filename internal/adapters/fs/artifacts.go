package fs

import (
	"context"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"go.trai.ch/bob-agent/internal/core/domain"
	"go.trai.ch/bob-agent/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.ArtifactPublisher = (*Publisher)(nil)

// Publisher copies artifacts into a per-job folder of the artifact directory, verifies every
// copy and records it in the manifest store.
type Publisher struct {
	root     string
	job      domain.JobIdentifier
	store    ports.ManifestStore
	walker   *Walker
	resolver *Resolver
	verifier *Verifier
	logger   ports.Logger
	now      func() time.Time
}

// NewPublisher creates a Publisher for one job. Artifacts land in
// <artifactDir>/<pipeline>/<counter>/<stage>/<job>.
func NewPublisher(
	artifactDir string,
	job domain.JobIdentifier,
	store ports.ManifestStore,
	walker *Walker,
	hasher *Hasher,
	logger ports.Logger,
) *Publisher {
	return &Publisher{
		root:     filepath.Join(artifactDir, job.Pipeline, strconv.Itoa(job.Counter), job.Stage, job.Job),
		job:      job,
		store:    store,
		walker:   walker,
		resolver: NewResolver(),
		verifier: NewVerifier(hasher),
		logger:   logger,
		now:      time.Now,
	}
}

// Root returns the folder the job's artifacts are published into.
func (p *Publisher) Root() string {
	return p.root
}

// Publish copies the files matched by every plan. The first failing plan aborts the
// publication; records of the files copied so far are still written to the manifest.
func (p *Publisher) Publish(ctx context.Context, workingDir string, plans []domain.ArtifactPlan) error {
	var records []domain.ArtifactRecord
	var publishErr error

	for _, plan := range plans {
		planRecords, err := p.publishPlan(ctx, workingDir, plan)
		records = append(records, planRecords...)
		if err != nil {
			publishErr = zerr.With(zerr.Wrap(domain.ErrArtifactPublish, err.Error()), "source", plan.Source)
			break
		}
	}

	if len(records) > 0 {
		if err := p.store.Put(p.job.String(), records...); err != nil && publishErr == nil {
			publishErr = zerr.Wrap(domain.ErrArtifactPublish, "failed to record artifacts: "+err.Error())
		}
	}
	return publishErr
}

func (p *Publisher) publishPlan(ctx context.Context, workingDir string, plan domain.ArtifactPlan) ([]domain.ArtifactRecord, error) {
	matches, err := p.resolver.Resolve(workingDir, plan.Source)
	if err != nil {
		return nil, err
	}

	var records []domain.ArtifactRecord
	for _, rel := range matches {
		src := filepath.Join(workingDir, rel)
		destRel := filepath.Join(plan.Dest, filepath.Base(rel))

		info, err := os.Stat(src)
		if err != nil {
			return records, zerr.With(zerr.Wrap(err, "failed to stat artifact"), "path", src)
		}

		if !info.IsDir() {
			record, err := p.publishFile(src, rel, destRel)
			if err != nil {
				return records, err
			}
			records = append(records, record)
			continue
		}

		copied, err := copyTree(ctx, p.walker, src, filepath.Join(p.root, destRel))
		for _, c := range copied {
			dst := filepath.Join(destRel, c.rel)
			if verifyErr := p.verifier.Verify(filepath.Join(p.root, dst), c.digest); verifyErr != nil {
				return records, verifyErr
			}
			records = append(records, p.record(filepath.Join(rel, c.rel), dst, c.digest, c.size))
		}
		if err != nil {
			return records, err
		}
	}
	p.logger.Info("published " + strconv.Itoa(len(records)) + " files for " + plan.Source)
	return records, nil
}

func (p *Publisher) publishFile(src, rel, destRel string) (domain.ArtifactRecord, error) {
	dst := filepath.Join(p.root, destRel)
	digest, size, err := copyFile(src, dst)
	if err != nil {
		return domain.ArtifactRecord{}, err
	}
	if err := p.verifier.Verify(dst, digest); err != nil {
		return domain.ArtifactRecord{}, err
	}
	return p.record(rel, destRel, digest, size), nil
}

func (p *Publisher) record(source, destination string, digest uint64, size int64) domain.ArtifactRecord {
	return domain.ArtifactRecord{
		Job:         p.job.String(),
		Source:      filepath.ToSlash(source),
		Destination: filepath.ToSlash(destination),
		Digest:      FormatDigest(digest),
		Size:        size,
		Timestamp:   p.now().UTC(),
	}
}
