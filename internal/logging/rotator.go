package logging

import (
	"compress/gzip"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"
)

// LogRotator is an io.Writer over a log file that is moved aside once it
// grows past maxSize. At most maxBackups rotated files are kept.
type LogRotator struct {
	mu          sync.Mutex
	baseDir     string
	baseName    string
	maxSize     int64 // bytes
	maxBackups  int
	compress    bool
	currentFile *os.File
	currentSize int64
	now         func() time.Time
}

func NewLogRotator(path string, maxSizeMB, maxBackups int, compress bool) (*LogRotator, error) {
	if maxSizeMB <= 0 {
		maxSizeMB = 10
	}
	r := &LogRotator{
		baseDir:    filepath.Dir(path),
		baseName:   filepath.Base(path),
		maxSize:    int64(maxSizeMB) * 1024 * 1024,
		maxBackups: maxBackups,
		compress:   compress,
		now:        time.Now,
	}

	if err := os.MkdirAll(r.baseDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create log directory: %w", err)
	}
	if err := r.openCurrentFile(); err != nil {
		return nil, err
	}

	return r, nil
}

func (r *LogRotator) openCurrentFile() error {
	logPath := filepath.Join(r.baseDir, r.baseName)

	r.currentSize = 0
	if info, err := os.Stat(logPath); err == nil {
		r.currentSize = info.Size()
	}

	file, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0600)
	if err != nil {
		return fmt.Errorf("failed to open log file: %w", err)
	}

	r.currentFile = file
	return nil
}

func (r *LogRotator) Write(p []byte) (n int, err error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.currentFile == nil {
		if err := r.openCurrentFile(); err != nil {
			return 0, err
		}
	}

	if r.currentSize > 0 && r.currentSize+int64(len(p)) > r.maxSize {
		if err := r.rotate(); err != nil {
			return 0, err
		}
	}

	n, err = r.currentFile.Write(p)
	r.currentSize += int64(n)
	return n, err
}

func (r *LogRotator) rotate() error {
	if r.currentFile != nil {
		if err := r.currentFile.Close(); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: failed to close current log file: %v\n", err)
		}
		r.currentFile = nil
	}

	backupName := fmt.Sprintf("%s.%s", r.baseName, r.now().Format("2006-01-02-15-04-05.000"))
	currentPath := filepath.Join(r.baseDir, r.baseName)
	backupPath := filepath.Join(r.baseDir, backupName)

	if err := os.Rename(currentPath, backupPath); err != nil {
		return fmt.Errorf("failed to rotate log file: %w", err)
	}

	if r.compress {
		if err := compressFile(backupPath); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: failed to compress log file %s: %v\n", backupPath, err)
		} else if err := os.Remove(backupPath); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: failed to remove uncompressed log file %s: %v\n", backupPath, err)
		}
	}

	r.cleanup()
	return r.openCurrentFile()
}

func compressFile(filePath string) error {
	in, err := os.Open(filePath)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(filePath + ".gz")
	if err != nil {
		return err
	}
	defer out.Close()

	gz := gzip.NewWriter(out)
	if _, err := io.Copy(gz, in); err != nil {
		_ = gz.Close()
		return err
	}
	return gz.Close()
}

func (r *LogRotator) cleanup() {
	if r.maxBackups <= 0 {
		return
	}
	entries, err := os.ReadDir(r.baseDir)
	if err != nil {
		return
	}

	var backups []os.FileInfo
	for _, e := range entries {
		if e.IsDir() || !strings.HasPrefix(e.Name(), r.baseName+".") {
			continue
		}
		info, err := e.Info()
		if err != nil {
			continue
		}
		backups = append(backups, info)
	}
	if len(backups) <= r.maxBackups {
		return
	}

	sort.Slice(backups, func(i, j int) bool {
		return backups[i].Name() < backups[j].Name()
	})
	for _, info := range backups[:len(backups)-r.maxBackups] {
		if err := os.Remove(filepath.Join(r.baseDir, info.Name())); err != nil {
			fmt.Fprintf(os.Stderr, "warning: failed to remove excess backup file: %v\n", err)
		}
	}
}

func (r *LogRotator) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.currentFile != nil {
		err := r.currentFile.Close()
		r.currentFile = nil
		return err
	}
	return nil
}
