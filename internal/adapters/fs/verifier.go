package fs

import (
	"go.trai.ch/zerr"
)

// Verifier checks that a copied file matches the digest of its source.
type Verifier struct {
	hasher *Hasher
}

// NewVerifier creates a new Verifier.
func NewVerifier(hasher *Hasher) *Verifier {
	return &Verifier{hasher: hasher}
}

// Verify returns an error when the file at path does not have the expected digest.
func (v *Verifier) Verify(path string, expected uint64) error {
	actual, err := v.hasher.ComputeFileHash(path)
	if err != nil {
		return err
	}
	if actual != expected {
		err := zerr.With(zerr.New("digest mismatch"), "path", path)
		return zerr.With(zerr.With(err, "expected", FormatDigest(expected)), "actual", FormatDigest(actual))
	}
	return nil
}
