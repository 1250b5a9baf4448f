package workspace

import (
	"os"
	"path/filepath"
	"strings"
	"time"
)

// FileWatcher polls the workspace root and keeps the workspace in sync with
// the source files on disk.
type FileWatcher struct {
	workspace    *Workspace
	stopCh       chan struct{}
	pollInterval time.Duration
	modTimes     map[string]time.Time
	// OnChange, if set, is called after a file was parsed again or removed.
	OnChange func(path string, removed bool)
}

func NewFileWatcher(w *Workspace) *FileWatcher {
	return &FileWatcher{
		workspace:    w,
		stopCh:       make(chan struct{}),
		pollInterval: w.project.Config.Watch.Interval.Duration,
		modTimes:     make(map[string]time.Time),
	}
}

func (fw *FileWatcher) Start() {
	go fw.run()
}

func (fw *FileWatcher) Stop() {
	close(fw.stopCh)
}

func (fw *FileWatcher) run() {
	ticker := time.NewTicker(fw.pollInterval)
	defer ticker.Stop()

	fw.scan()

	for {
		select {
		case <-fw.stopCh:
			return
		case <-ticker.C:
			fw.scan()
		}
	}
}

func (fw *FileWatcher) scan() {
	proj := fw.workspace.project
	currentFiles := make(map[string]bool)

	for _, src := range proj.Config.Sources {
		filepath.Walk(filepath.Join(proj.RootDir, src), func(path string, info os.FileInfo, err error) error {
			if err != nil {
				return nil
			}
			if info.IsDir() {
				if info.Name() != "." && strings.HasPrefix(info.Name(), ".") {
					return filepath.SkipDir
				}
				return nil
			}
			if !proj.IsSource(path) {
				return nil
			}

			currentFiles[path] = true

			lastMod, known := fw.modTimes[path]
			if !known || info.ModTime().After(lastMod) {
				fw.modTimes[path] = info.ModTime()
				if err := fw.workspace.ScanFile(path); err == nil && fw.OnChange != nil {
					fw.OnChange(path, false)
				}
			}
			return nil
		})
	}

	for path := range fw.modTimes {
		if !currentFiles[path] {
			delete(fw.modTimes, path)
			fw.workspace.RemoveFile(path)
			if fw.OnChange != nil {
				fw.OnChange(path, true)
			}
		}
	}
}
