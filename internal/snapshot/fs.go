package snapshot

import "os"

// FS is the raw byte store underneath the snapshot file. Kept minimal so
// tests can inject write failures without touching the disk.
type FS interface {
	ReadFile(path string) ([]byte, error)
	WriteFile(path string, data []byte, mode os.FileMode) error
	Rename(oldPath, newPath string) error
	Remove(path string) error
}

type osFS struct{}

func NewOsFS() FS {
	return &osFS{}
}

func (osFS) ReadFile(path string) ([]byte, error) {
	return os.ReadFile(path)
}

func (osFS) WriteFile(path string, data []byte, mode os.FileMode) error {
	file, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, mode)
	if err != nil {
		return err
	}

	if _, err = file.Write(data); err != nil {
		file.Close()
		return err
	}

	if err = file.Sync(); err != nil {
		file.Close()
		return err
	}

	return file.Close()
}

func (osFS) Rename(oldPath, newPath string) error {
	return os.Rename(oldPath, newPath)
}

func (osFS) Remove(path string) error {
	return os.Remove(path)
}
