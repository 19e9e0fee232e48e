package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
)

const sceneKeyPrefix = "scene:"

// SceneKeyOpts are the run parameters that affect an augmented document.
type SceneKeyOpts struct {
	Seed       uint64
	ConfigHash string
	Sorted     bool
}

// Keyer generates cache keys.
type Keyer interface {
	// SceneKey identifies the augmentation of the document whose content
	// hash is inputHash.
	SceneKey(inputHash string, opts SceneKeyOpts) string
}

// DefaultKeyer digests the input hash and run options into a fixed-length
// key.
type DefaultKeyer struct{}

func NewDefaultKeyer() Keyer {
	return DefaultKeyer{}
}

// SceneKey implements Keyer. Fields are NUL-separated so that no two
// option sets produce the same digest input.
func (DefaultKeyer) SceneKey(inputHash string, opts SceneKeyOpts) string {
	h := sha256.New()
	fmt.Fprintf(h, "%s\x00%d\x00%s\x00%t", inputHash, opts.Seed, opts.ConfigHash, opts.Sorted)
	return sceneKeyPrefix + hex.EncodeToString(h.Sum(nil))
}

// Hash returns the hex SHA-256 digest of data, 64 characters long.
func Hash(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}
