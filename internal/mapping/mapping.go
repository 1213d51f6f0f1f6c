// Package mapping maps files and DAX devices into memory with MAP_SHARED,
// so that stores to the returned bytes reach the backing file and msync can
// make them durable.
package mapping

import (
	"errors"
	"fmt"
	"os"

	"golang.org/x/sys/unix"
)

// ErrSizeRequired is returned when neither the caller nor the file provides
// a mapping length. DAX character devices report a size of zero.
var ErrSizeRequired = errors.New("mapping: size required")

// Region is a shared, writable mapping of a file.
type Region struct {
	path string
	file *os.File
	data []byte
}

// Open maps path read-write. A regular file is created if missing and grown
// to size; size 0 maps the whole existing file.
func Open(path string, size int) (*Region, error) {
	file, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}

	stat, err := file.Stat()
	if err != nil {
		file.Close()
		return nil, fmt.Errorf("stat %s: %w", path, err)
	}

	if size <= 0 {
		size = int(stat.Size())
	}
	if size <= 0 {
		file.Close()
		return nil, fmt.Errorf("%w: %s", ErrSizeRequired, path)
	}
	if stat.Mode().IsRegular() && stat.Size() < int64(size) {
		if err := file.Truncate(int64(size)); err != nil {
			file.Close()
			return nil, fmt.Errorf("grow %s to %d bytes: %w", path, size, err)
		}
	}

	data, err := unix.Mmap(int(file.Fd()), 0, size, unix.PROT_READ|unix.PROT_WRITE, unix.MAP_SHARED)
	if err != nil {
		file.Close()
		return nil, fmt.Errorf("mmap %s: %w", path, err)
	}

	return &Region{path: path, file: file, data: data}, nil
}

// Bytes returns the mapped memory. It is invalid after Close.
func (r *Region) Bytes() []byte {
	return r.data
}

// Len returns the mapping length.
func (r *Region) Len() int {
	return len(r.data)
}

// Path returns the mapped file path.
func (r *Region) Path() string {
	return r.path
}

// Close unmaps the region and closes the file. Unsynced stores are left to
// the kernel's writeback.
func (r *Region) Close() error {
	var errs []error
	if r.data != nil {
		if err := unix.Munmap(r.data); err != nil {
			errs = append(errs, fmt.Errorf("munmap %s: %w", r.path, err))
		}
		r.data = nil
	}
	if r.file != nil {
		if err := r.file.Close(); err != nil {
			errs = append(errs, err)
		}
		r.file = nil
	}
	return errors.Join(errs...)
}
