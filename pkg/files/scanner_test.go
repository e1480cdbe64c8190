package files

import (
	"fmt"
	"os"
	"path/filepath"
	"pharmacy/pkg/config"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func newTestScanner(t *testing.T) (*scanner, chan bool) {
	dir := t.TempDir()

	queue := NewQueue(0)

	wg := &sync.WaitGroup{}
	log := zap.NewNop()

	cfg := &config.Watcher{
		FilesDir:         filepath.Join(dir, "incoming"),
		FilesErrorsDir:   filepath.Join(dir, "errors"),
		MaxFileSizeBytes: 1 << 20,
		FileScanner: config.FileScanner{
			CheckEveryDuration: time.Millisecond,
		},
	}
	assert.NoError(t, os.MkdirAll(cfg.FilesDir, 0o755))

	stop := make(chan bool)

	scnnr := NewScanner(wg, log, cfg, queue, stop)
	s, ok := scnnr.(*scanner)
	assert.True(t, ok)

	return s, stop
}

func TestScanner_GetPath(t *testing.T) {
	scnnr, _ := newTestScanner(t)
	dir := scnnr.config.FilesDir
	file, err := os.CreateTemp(dir, "*.csv")
	assert.NoError(t, err)

	entries, err := os.ReadDir(dir)
	assert.NoError(t, err)
	assert.Len(t, entries, 1)

	expected := file.Name()
	path := scnnr.getPath(entries[0])
	assert.Equal(t, expected, path)
}

func TestScanner_Valid(t *testing.T) {
	tests := []struct {
		pattern string
		valid   bool
	}{
		{pattern: "*.csv", valid: true},
		{pattern: "*.xlsx", valid: true},
		{pattern: "*.CSV", valid: true},
		{pattern: "*.txt", valid: false},
		{pattern: "*.pdf", valid: false},
	}
	for _, tt := range tests {
		t.Run(tt.pattern, func(t *testing.T) {
			scnnr, _ := newTestScanner(t)
			dir := scnnr.config.FilesDir
			_, err := os.CreateTemp(dir, tt.pattern)
			assert.NoError(t, err)

			entries, err := os.ReadDir(dir)
			assert.NoError(t, err)
			assert.Len(t, entries, 1)

			assert.Equal(t, tt.valid, scnnr.valid(entries[0]))
		})
	}
}

func TestScanner_Valid_DIR(t *testing.T) {
	scnnr, _ := newTestScanner(t)
	dir := scnnr.config.FilesDir
	_, err := os.MkdirTemp(dir, "*.csv")
	assert.NoError(t, err)

	entries, err := os.ReadDir(dir)
	assert.NoError(t, err)
	assert.Len(t, entries, 1)

	assert.False(t, scnnr.valid(entries[0]))
}

func newTestPriceList(t *testing.T, dir string, name string, size int64) string {
	path := filepath.Join(dir, name)
	data := []byte("codigo,producto,costo\nA1,Ibuprofeno,100\n")
	assert.NoError(t, os.WriteFile(path, data, 0o644))
	if size > 0 {
		assert.NoError(t, os.Truncate(path, size))
	}
	return path
}

func TestScanner_Add_NewFile(t *testing.T) {
	scnnr, _ := newTestScanner(t)
	dir := scnnr.config.FilesDir
	path := newTestPriceList(t, dir, "lista.csv", 0)

	entries, err := os.ReadDir(dir)
	assert.NoError(t, err)
	assert.Len(t, entries, 1)

	testWg := &sync.WaitGroup{}
	testWg.Add(1)
	go func() {
		scnnr.add(entries[0])
		testWg.Done()
	}()

	queued := <-scnnr.queue.Files()
	testWg.Wait()

	assert.Contains(t, scnnr.seen, queued.Path)
	assert.True(t, strings.HasSuffix(queued.Name, "_lista.csv"))
	assert.Equal(t, filepath.Join(dir, queued.Name), queued.Path)

	_, err = os.Stat(path)
	assert.True(t, os.IsNotExist(err))
	_, err = os.Stat(queued.Path)
	assert.NoError(t, err)
}

func TestScanner_Add_OversizedFile(t *testing.T) {
	scnnr, _ := newTestScanner(t)
	dir := scnnr.config.FilesDir
	newTestPriceList(t, dir, "lista.xlsx", 2<<20)

	entries, err := os.ReadDir(dir)
	assert.NoError(t, err)
	assert.Len(t, entries, 1)

	scnnr.add(entries[0])

	assert.Equal(t, 0, scnnr.queue.Len())

	entries, err = os.ReadDir(dir)
	assert.NoError(t, err)
	assert.Len(t, entries, 0)

	moved, err := os.ReadDir(scnnr.config.FilesErrorsDir)
	assert.NoError(t, err)
	assert.Len(t, moved, 1)
	assert.True(t, strings.HasSuffix(moved[0].Name(), "_lista.xlsx"))
}

func TestScanner_Add_AlreadyQueued(t *testing.T) {
	scnnr, _ := newTestScanner(t)
	dir := scnnr.config.FilesDir
	path := newTestPriceList(t, dir, "1700000000_lista.csv", 0)
	scnnr.seen[path] = struct{}{}

	entries, err := os.ReadDir(dir)
	assert.NoError(t, err)
	assert.Len(t, entries, 1)

	scnnr.add(entries[0])

	assert.Equal(t, 0, scnnr.queue.Len())
	_, err = os.Stat(path)
	assert.NoError(t, err)
}

func TestScanner_ScanDir_ForgetsMovedFiles(t *testing.T) {
	scnnr, _ := newTestScanner(t)
	gone := filepath.Join(scnnr.config.FilesDir, "1700000000_lista.csv")
	scnnr.seen[gone] = struct{}{}

	scnnr.scanDir()

	assert.NotContains(t, scnnr.seen, gone)
}

func TestScanner_Scan(t *testing.T) {
	scnnr, stop := newTestScanner(t)
	dir := scnnr.config.FilesDir

	wg := scnnr.wg

	wg.Add(1)
	go scnnr.Scan()

	numFiles := 10
	go func() {
		for i := 0; i < numFiles; i++ {
			newTestPriceList(t, dir, fmt.Sprintf("lista-%d.csv", i), 0)
			time.Sleep(time.Microsecond)
		}
	}()

	names := make(map[string]struct{})
	for len(names) < numFiles {
		f := <-scnnr.queue.Files()
		names[f.Name] = struct{}{}
	}

	stop <- true
	wg.Wait()

	assert.Len(t, names, numFiles)
	assert.Len(t, scnnr.seen, numFiles)
}

func TestScanner_Scan_Stop(t *testing.T) {
	scnnr, stop := newTestScanner(t)
	dir := scnnr.config.FilesDir

	wg := scnnr.wg

	wg.Add(1)
	go scnnr.Scan()

	stop <- true
	wg.Wait()

	newTestPriceList(t, dir, "lista.csv", 0)
	time.Sleep(10 * time.Millisecond)

	assert.Equal(t, 0, scnnr.queue.Len())
	assert.Len(t, scnnr.seen, 0)

	entries, err := os.ReadDir(dir)
	assert.NoError(t, err)
	assert.Len(t, entries, 1)
	assert.Equal(t, "lista.csv", entries[0].Name())
}
