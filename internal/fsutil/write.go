package fsutil

import (
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/google/renameio/v2"
)

// WriteAtomic streams content produced by write into path. The data lands in
// a pending file that replaces path only after write succeeds, so a failed
// write never leaves a truncated file behind. An existing file at path is
// overwritten.
func WriteAtomic(path string, perm fs.FileMode, write func(io.Writer) error) (err error) {
	pending, err := renameio.NewPendingFile(path,
		renameio.WithTempDir(filepath.Dir(path)),
		renameio.WithPermissions(perm.Perm()),
	)
	if err != nil {
		return fmt.Errorf("create pending file %s: %w", path, err)
	}
	defer func() {
		// no-op once the file has been committed
		if cerr := pending.Cleanup(); cerr != nil && err == nil {
			err = fmt.Errorf("cleanup pending file %s: %w", path, cerr)
		}
	}()

	if err := write(pending); err != nil {
		return err
	}

	if err := pending.CloseAtomicallyReplace(); err != nil {
		return fmt.Errorf("atomically replace %s: %w", path, err)
	}
	return nil
}

// CopyFile copies src byte for byte into dstDir, keeping its base name and
// permission bits. It returns the destination path.
func CopyFile(src, dstDir string) (string, error) {
	in, err := os.Open(src)
	if err != nil {
		return "", fmt.Errorf("open %s: %w", src, err)
	}
	defer in.Close()

	info, err := in.Stat()
	if err != nil {
		return "", fmt.Errorf("stat %s: %w", src, err)
	}

	dst := filepath.Join(dstDir, filepath.Base(src))
	err = WriteAtomic(dst, info.Mode(), func(w io.Writer) error {
		if _, err := io.Copy(w, in); err != nil {
			return fmt.Errorf("copy %s: %w", src, err)
		}
		return nil
	})
	if err != nil {
		return "", err
	}
	return dst, nil
}
