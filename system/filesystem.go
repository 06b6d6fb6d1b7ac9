// Package system abstracts the file access used to load documents and the files they reference.
package system

import (
	"io/fs"
	"os"
	"path/filepath"
)

// VirtualFS is the read-only file access documents are loaded through.
type VirtualFS interface {
	fs.FS
}

// FileSystem is a VirtualFS over the host file system. Names are host paths, absolute or
// relative to the working directory.
type FileSystem struct{}

var _ VirtualFS = (*FileSystem)(nil)

func (fs *FileSystem) Open(name string) (fs.File, error) {
	return os.Open(filepath.FromSlash(name))
}

// ReadFile reads the named file from fsys.
func ReadFile(fsys VirtualFS, name string) ([]byte, error) {
	return fs.ReadFile(fsys, name)
}

// DirFS returns a VirtualFS rooted at dir. Names must be slash separated and relative.
func DirFS(dir string) VirtualFS {
	return os.DirFS(dir)
}
