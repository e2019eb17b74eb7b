// Package mapper reads and writes flat binary record files: fixed-width
// records in host byte order with no header, so a sample file is exactly its
// records back to back. Reads go through a memory mapping, which keeps random
// access over large datasets cheap.
package mapper

import (
	"errors"
	"fmt"
	"os"
	"sync"
	"unsafe"

	"golang.org/x/exp/mmap"
)

// ErrEOF marks a read past the last record.
var ErrEOF = errors.New("mapper: end of data")

// Reader provides indexed access to the records of one file. T must be a
// fixed-size type without padding.
type Reader[T any] struct {
	path       string
	reader     *mmap.ReaderAt
	bufferPool *sync.Pool
}

func NewReader[T any](path string) *Reader[T] {
	return &Reader[T]{
		path: path,
		bufferPool: &sync.Pool{
			New: func() interface{} {
				buffer := make([]byte, int(unsafe.Sizeof(*new(T))))
				return &buffer
			},
		},
	}
}

func (r *Reader[T]) Open() error {
	var err error
	r.reader, err = mmap.Open(r.path)
	if err != nil {
		return fmt.Errorf("unable to open data source %q: %w", r.path, err)
	}
	return nil
}

func (r *Reader[T]) Close() {
	_ = r.reader.Close()
}

// Read fills rec with the record at index, or returns ErrEOF past the end.
func (r *Reader[T]) Read(index int64, rec *T) error {
	buffer := r.bufferPool.Get().(*[]byte)
	defer r.bufferPool.Put(buffer)

	offset := index * int64(len(*buffer))
	if offset+int64(len(*buffer)) > int64(r.reader.Len()) {
		return ErrEOF
	}

	if _, err := r.reader.ReadAt(*buffer, offset); err != nil {
		return fmt.Errorf("unable to read: %w", err)
	}

	*rec = *(*T)(unsafe.Pointer(&(*buffer)[0])) // T must not be padded
	return nil
}

// EntryCount derives the record count from the file size.
func (r *Reader[T]) EntryCount() (int64, error) {
	var rec T
	recSize := int64(unsafe.Sizeof(rec))
	if recSize == 0 {
		return 0, fmt.Errorf("size of T is zero")
	}

	fileInfo, err := os.Stat(r.path)
	if err != nil {
		return 0, fmt.Errorf("unable to get data source %q stats: %w", r.path, err)
	}

	totalSize := fileInfo.Size()
	if totalSize%recSize != 0 {
		return 0, fmt.Errorf("file size is not a multiple of record size")
	}

	return totalSize / recSize, nil
}

// WriteFile writes records back to back in host byte order, the layout Reader
// expects.
func WriteFile[T any](path string, records []T) error {
	size := int(unsafe.Sizeof(*new(T)))
	buf := make([]byte, 0, size*len(records))
	for i := range records {
		buf = append(buf, unsafe.Slice((*byte)(unsafe.Pointer(&records[i])), size)...)
	}
	if err := os.WriteFile(path, buf, 0o644); err != nil {
		return fmt.Errorf("unable to write data file %q: %w", path, err)
	}
	return nil
}

// LoadSamples reads a whole int16 sample file into memory.
func LoadSamples(path string) ([]int16, error) {
	r := NewReader[int16](path)
	if err := r.Open(); err != nil {
		return nil, err
	}
	defer r.Close()

	count, err := r.EntryCount()
	if err != nil {
		return nil, err
	}

	samples := make([]int16, count)
	for i := int64(0); i < count; i++ {
		if err := r.Read(i, &samples[i]); err != nil {
			return nil, err
		}
	}
	return samples, nil
}
