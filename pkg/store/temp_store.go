package store

import (
	"os"
	"path/filepath"

	"src.elv.sh/rangebar/pkg/must"
	"src.elv.sh/rangebar/pkg/testutil"
)

// MustTempStore returns a Store backed by a file in a temporary directory. The
// Store and the directory are removed when c is cleaned up.
func MustTempStore(c testutil.Cleanuper) DBStore {
	dir := must.OK1(os.MkdirTemp("", "rangebar.test"))
	st := must.OK1(NewStore(filepath.Join(dir, "cache.db")))
	c.Cleanup(func() {
		st.Close()
		os.RemoveAll(dir)
	})
	return st
}
