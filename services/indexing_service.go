package services

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"log"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/fsnotify/fsnotify"
)

// DirectoryIndexer feeds documents dropped into a watched directory through
// the ingestion pipeline. Stored records are immutable, so a file is only
// re-ingested when its content hash changes; there is no delete path.
type DirectoryIndexer struct {
	ragService RAGService

	mu       sync.Mutex
	ingested map[string]string // path -> content hash
}

// NewDirectoryIndexer creates an indexer on top of the ingestion pipeline.
func NewDirectoryIndexer(ragService RAGService) *DirectoryIndexer {
	return &DirectoryIndexer{
		ragService: ragService,
		ingested:   make(map[string]string),
	}
}

// ScanDirectory ingests every supported file currently in the directory.
func (s *DirectoryIndexer) ScanDirectory(ctx context.Context, dirPath string) {
	log.Printf("INDEXER: Starting directory scan for: %s", dirPath)

	err := filepath.Walk(dirPath, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if !info.IsDir() && isSupportedFile(path) {
			if err := s.ingestFile(ctx, path); err != nil {
				log.Printf("INDEXER ERROR: Failed to ingest file %s: %v", path, err)
			}
		}
		return nil
	})
	if err != nil {
		log.Printf("INDEXER ERROR: Error walking the path %s: %v", dirPath, err)
	}
	log.Println("INDEXER: Directory scan finished.")
}

// WatchDirectory blocks, ingesting supported files as they are created or
// written, until the context is cancelled.
func (s *DirectoryIndexer) WatchDirectory(ctx context.Context, dirPath string) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		log.Printf("WATCHER ERROR: Failed to create file watcher: %v", err)
		return
	}
	defer watcher.Close()

	go func() {
		for {
			select {
			case event, ok := <-watcher.Events:
				if !ok {
					return
				}
				if !isSupportedFile(event.Name) {
					continue
				}
				// Many editors write via a temp file plus rename, which fires
				// several events; Create and Write are handled the same way.
				if event.Has(fsnotify.Write) || event.Has(fsnotify.Create) {
					log.Printf("WATCHER: File created/modified: %s. Ingesting...", event.Name)
					if err := s.ingestFile(ctx, event.Name); err != nil {
						log.Printf("WATCHER ERROR: Failed to ingest file %s: %v", event.Name, err)
					}
				}

			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				log.Printf("WATCHER ERROR: %v", err)
			case <-ctx.Done():
				log.Println("WATCHER: Context cancelled, shutting down watcher.")
				return
			}
		}
	}()

	log.Printf("WATCHER: Watching directory: %s", dirPath)
	if err := watcher.Add(dirPath); err != nil {
		log.Printf("WATCHER ERROR: Failed to add path to watcher: %v", err)
	}

	<-ctx.Done()
}

// ingestFile reads the file and runs it through the pipeline, skipping files
// whose content was already stored.
func (s *DirectoryIndexer) ingestFile(ctx context.Context, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	sum := sha256.Sum256(data)
	hash := hex.EncodeToString(sum[:])

	s.mu.Lock()
	if s.ingested[path] == hash {
		s.mu.Unlock()
		return nil
	}
	s.mu.Unlock()

	result, err := s.ragService.IngestDocument(ctx, filepath.Base(path), data)
	if err != nil {
		return err
	}

	s.mu.Lock()
	s.ingested[path] = hash
	s.mu.Unlock()

	log.Printf("INDEXER: Ingested %s (%d/%d chunks stored)", path, result.Stored, result.Total)
	return nil
}

func isSupportedFile(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".pdf", ".txt", ".docx":
		return true
	default:
		return false
	}
}
