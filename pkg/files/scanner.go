package files

import (
	"fmt"
	"os"
	"path/filepath"
	"pharmacy/pkg/config"
	"pharmacy/pkg/pricelist"
	"sync"
	"time"

	"go.uber.org/zap"
)

type (
	Scanner interface {
		Scan()
	}

	scanner struct {
		wg     *sync.WaitGroup
		config *config.Watcher
		stop   <-chan bool
		queue  *Queue
		logger *zap.Logger
		// paths of queued files still in the directory, only touched by Scan
		seen map[string]struct{}
	}
)

// NewScanner returns a Scanner that queues price lists found in config.FilesDir.
// Callers add to wg before starting Scan, Scan marks it done on stop.
func NewScanner(wg *sync.WaitGroup, logger *zap.Logger, config *config.Watcher, queue *Queue, stop <-chan bool) Scanner {
	log := logger.Named("FileScanner")
	s := &scanner{
		wg:     wg,
		config: config,
		stop:   stop,
		queue:  queue,
		logger: log,
		seen:   make(map[string]struct{}),
	}
	return s
}

func (s *scanner) Scan() {
	defer s.wg.Done()
	s.logger.Sugar().Infof("try to start scanning files in directory=%s", s.config.FilesDir)
	if _, err := os.Stat(s.config.FilesDir); os.IsNotExist(err) {
		s.logger.Sugar().Errorf("can't open directory=%s: (%s)", s.config.FilesDir, err.Error())
	}
	ticker := time.NewTicker(s.config.FileScanner.CheckEveryDuration)
	defer ticker.Stop()
	s.scanDir()
	for {
		select {
		case <-ticker.C:
			s.logger.Sugar().Debugf("rescan directory=%s", s.config.FilesDir)
			s.scanDir()
		case <-s.stop:
			s.logger.Sugar().Infof("stop scanning files in directory=%s", s.config.FilesDir)
			return
		}
	}
}

func (s *scanner) scanDir() {
	dir, err := os.ReadDir(s.config.FilesDir)
	if err != nil {
		s.logger.Sugar().Errorf("can't open directory=%s: (%s)", s.config.FilesDir, err.Error())
		return
	}
	var entries []os.DirEntry
	present := make(map[string]struct{}, len(dir))
	for _, entry := range dir {
		if s.valid(entry) {
			entries = append(entries, entry)
			present[s.getPath(entry)] = struct{}{}
		}
	}
	// processed files are moved away, forget them
	for path := range s.seen {
		if _, ok := present[path]; !ok {
			delete(s.seen, path)
		}
	}
	for _, entry := range entries {
		s.add(entry)
	}
}

func (s *scanner) valid(entry os.DirEntry) bool {
	if entry.IsDir() {
		return false
	}
	return pricelist.Supported(entry.Name())
}

func (s *scanner) getPath(entry os.DirEntry) string {
	return filepath.Join(s.config.FilesDir, entry.Name())
}

func (s *scanner) add(entry os.DirEntry) {
	path := s.getPath(entry)
	if _, ok := s.seen[path]; ok {
		return
	}

	s.logger.Sugar().Infof("add entry=%s to files queue", path)

	now := time.Now()
	newName := fmt.Sprintf("%d_%s", now.UnixNano(), entry.Name())
	newPath := filepath.Join(s.config.FilesDir, newName)
	if err := os.Rename(path, newPath); err != nil {
		s.logger.Sugar().Errorf("can't rename entry=%s to=%s: (%s)", path, newPath, err.Error())
		return
	}
	newFile := File{Path: newPath, Name: newName}

	newFileInfo, err := os.Stat(newFile.Path)
	if err != nil {
		s.logger.Sugar().Errorf("can't get file=%s info: (%s)", newFile, err.Error())
		return
	}

	s.seen[newFile.Path] = struct{}{}

	if s.config.MaxFileSizeBytes > 0 && newFileInfo.Size() > s.config.MaxFileSizeBytes {
		s.logger.Sugar().Errorf("file=%s size=%d is over limit=%d", newFile, newFileInfo.Size(), s.config.MaxFileSizeBytes)
		if _, err := moveFile(newFile, s.config.FilesErrorsDir); err != nil {
			s.logger.Sugar().Errorf("can't move file=%s to errors: (%s)", newFile, err.Error())
		}
		return
	}

	if err := s.queue.Put(newFile); err != nil {
		s.logger.Sugar().Errorf("can't add entry=%s to files queue: (%s)", newFile, err.Error())
		return
	}
}
