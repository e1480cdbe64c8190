package files

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

type (
	// File - price list picked up from the watched directory.
	File struct {
		Path string
		Name string
	}

	// Queue - price lists waiting for the processor.
	// Put blocks while the queue is full, a closed queue rejects new files.
	Queue struct {
		mu     sync.RWMutex
		closed bool
		files  chan File
	}
)

func (f File) String() string {
	return f.Path
}

func NewQueue(size int) *Queue {
	return &Queue{
		files: make(chan File, size),
	}
}

func (q *Queue) Put(file File) error {
	q.mu.RLock()
	defer q.mu.RUnlock()
	if q.closed {
		return fmt.Errorf("can't queue price list=%s, queue is closed", file)
	}
	q.files <- file
	return nil
}

// Files is drained by the processor, it is closed by Close.
func (q *Queue) Files() <-chan File {
	return q.files
}

func (q *Queue) Len() int {
	return len(q.files)
}

// Close is safe to call more than once.
func (q *Queue) Close() {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.closed {
		return
	}
	q.closed = true
	close(q.files)
}

// moveFile moves file into dir keeping its name, dir is created when missing.
func moveFile(file File, dir string) (File, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return File{}, fmt.Errorf("can't create directory=%s: %w", dir, err)
	}
	newPath := filepath.Join(dir, file.Name)
	if err := os.Rename(file.Path, newPath); err != nil {
		return File{}, fmt.Errorf("can't move file=%s to=%s: %w", file, newPath, err)
	}
	return File{Path: newPath, Name: file.Name}, nil
}
