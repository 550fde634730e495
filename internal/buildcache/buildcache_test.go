// Released under an MIT license. See LICENSE.

package buildcache

import (
	"path/filepath"
	"testing"
)

func openTestCache(t *testing.T) *Cache {
	t.Helper()

	c, err := Open(filepath.Join(t.TempDir(), "cache.db"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}

	t.Cleanup(func() { c.Close() })

	return c
}

func TestUpToDateReportsFalseForUnknownArtifact(t *testing.T) {
	c := openTestCache(t)

	upToDate, err := c.UpToDate("libfoo.so", 42)
	if err != nil {
		t.Fatal(err)
	}

	if upToDate {
		t.Fatal("expected an unrecorded artifact to be out of date")
	}
}

func TestRecordThenUpToDateRoundTrips(t *testing.T) {
	c := openTestCache(t)

	crc := CommandCrc("go", "build", "-buildmode=plugin", "-o", "libfoo.so", "foo.go")

	if err := c.Record("libfoo.so", crc); err != nil {
		t.Fatal(err)
	}

	upToDate, err := c.UpToDate("libfoo.so", crc)
	if err != nil {
		t.Fatal(err)
	}

	if !upToDate {
		t.Fatal("expected artifact to be up to date after recording its crc")
	}
}

func TestUpToDateReportsFalseAfterCommandChanges(t *testing.T) {
	c := openTestCache(t)

	first := CommandCrc("go", "build", "-o", "libfoo.so", "foo.go")
	if err := c.Record("libfoo.so", first); err != nil {
		t.Fatal(err)
	}

	second := CommandCrc("go", "build", "-gcflags=-m", "-o", "libfoo.so", "foo.go")

	upToDate, err := c.UpToDate("libfoo.so", second)
	if err != nil {
		t.Fatal(err)
	}

	if upToDate {
		t.Fatal("expected a changed command line to invalidate the cache entry")
	}
}

func TestRecordOverwritesPreviousCrc(t *testing.T) {
	c := openTestCache(t)

	if err := c.Record("libfoo.so", 1); err != nil {
		t.Fatal(err)
	}

	if err := c.Record("libfoo.so", 2); err != nil {
		t.Fatal(err)
	}

	upToDate, err := c.UpToDate("libfoo.so", 1)
	if err != nil {
		t.Fatal(err)
	}

	if upToDate {
		t.Fatal("expected the newer recorded crc to win")
	}

	upToDate, err = c.UpToDate("libfoo.so", 2)
	if err != nil {
		t.Fatal(err)
	}

	if !upToDate {
		t.Fatal("expected the newer recorded crc to be reported up to date")
	}
}
