// Released under an MIT license. See LICENSE.

// Package buildcache persists, across process runs, the checksum of the
// exact command line that last produced each build artifact. A rebuild
// is only worth skipping when the command that would produce it hasn't
// changed since last time; comparing checksums lets the module manager
// tell "nothing changed" apart from "the toolchain flags changed" without
// re-running anything. Storage is go.etcd.io/bbolt, the same embedded
// key/value store elves-elvish uses for its own persistent local state.
package buildcache

import (
	"fmt"

	bolt "go.etcd.io/bbolt"

	"github.com/symc-lang/symc/internal/crc32c"
)

var bucketArtifacts = []byte("artifact-command-crcs")

// Cache maps an artifact name to the CRC of the command line that most
// recently built it.
type Cache struct {
	db *bolt.DB
}

// Open opens (creating if necessary) the bbolt database at path.
func Open(path string) (*Cache, error) {
	db, err := bolt.Open(path, 0o600, nil)
	if err != nil {
		return nil, fmt.Errorf("buildcache: opening %q: %w", path, err)
	}

	err = db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(bucketArtifacts)
		return err
	})
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("buildcache: initializing %q: %w", path, err)
	}

	return &Cache{db: db}, nil
}

// Close closes the underlying database.
func (c *Cache) Close() error {
	return c.db.Close()
}

// UpToDate reports whether artifact's last recorded command CRC matches
// crc — true means the artifact does not need to be rebuilt.
func (c *Cache) UpToDate(artifact string, crc uint32) (bool, error) {
	var stored uint32
	var found bool

	err := c.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucketArtifacts)

		v := b.Get([]byte(artifact))
		if v == nil {
			return nil
		}

		found = true
		stored = decodeCrc(v)

		return nil
	})
	if err != nil {
		return false, fmt.Errorf("buildcache: reading %q: %w", artifact, err)
	}

	return found && stored == crc, nil
}

// Record stores crc as artifact's current command CRC, overwriting
// whatever was recorded before.
func (c *Cache) Record(artifact string, crc uint32) error {
	err := c.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucketArtifacts)
		return b.Put([]byte(artifact), encodeCrc(crc))
	})
	if err != nil {
		return fmt.Errorf("buildcache: recording %q: %w", artifact, err)
	}

	return nil
}

// CommandCrc is a convenience wrapper computing an artifact's command
// checksum via crc32c.Sum.
func CommandCrc(commandLine ...string) uint32 {
	return crc32c.Sum(commandLine...)
}

func encodeCrc(crc uint32) []byte {
	return []byte{
		byte(crc >> 24),
		byte(crc >> 16),
		byte(crc >> 8),
		byte(crc),
	}
}

func decodeCrc(b []byte) uint32 {
	if len(b) != 4 {
		return 0
	}

	return uint32(b[0])<<24 | uint32(b[1])<<16 | uint32(b[2])<<8 | uint32(b[3])
}
