// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// +build aix darwin dragonfly freebsd linux netbsd openbsd solaris

package build

import (
	"os"
	"strconv"
	"sync"
	"time"

	"golang.org/x/sys/unix"
)

var (
	rand   uint32
	randmu sync.Mutex
)

func reseed() uint32 {
	return uint32(time.Now().UnixNano() + int64(os.Getpid()))
}

// nextSuffix returns a pseudo-random decimal suffix unique enough to
// avoid collisions between two plugin artifacts built in the same
// directory during one process's lifetime.
func nextSuffix() string {
	randmu.Lock()
	r := rand
	if r == 0 {
		r = reseed()
	}
	r = r*1664525 + 1013904223 // constants from Numerical Recipes
	rand = r
	randmu.Unlock()
	return strconv.Itoa(int(1e9 + r%1e9))[1:]
}

// prepareBuildDir creates dir (if it doesn't already exist) with
// permissions restricted to the current user, mirroring the umask
// discipline compile-time artifacts are written under elsewhere in
// this build.
func prepareBuildDir(dir string) error {
	old := unix.Umask(0o077)
	defer unix.Umask(old)

	return os.MkdirAll(dir, 0o700)
}
