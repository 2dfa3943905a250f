package sync

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"golang.org/x/exp/slog"
)

// Extractor получает локальную копию базы устройства на время одного прохода
type Extractor struct {
	puller     Puller
	validate   Validator
	scratchDir string
	log        *slog.Logger
}

// NewExtractor создает Extractor. Пустой scratchDir означает временный каталог ОС.
func NewExtractor(puller Puller, validate Validator, scratchDir string, log *slog.Logger) *Extractor {
	if scratchDir == "" {
		scratchDir = os.TempDir()
	}
	return &Extractor{
		puller:     puller,
		validate:   validate,
		scratchDir: scratchDir,
		log:        log.With(slog.String("component", "extractor")),
	}
}

// Extract копирует удаленную базу во временный файл и проверяет его.
// Владение файлом переходит к вызывающему. При ошибке файл удаляется.
func (e *Extractor) Extract(ctx context.Context, deviceID, remotePath string) (localPath string, err error) {
	localPath = e.scratchPath()

	defer func() {
		if err != nil {
			removeScratch(e.log, localPath)
			localPath = ""
		}
	}()

	outcome := e.puller.PullFile(ctx, deviceID, remotePath, localPath)
	if !outcome.Success {
		reason := outcome.Error
		if reason == "" {
			reason = outcome.Message
		}
		return localPath, fmt.Errorf("%w: %s", ErrExtractionFailed, reason)
	}

	info, err := os.Stat(localPath)
	if err != nil {
		return localPath, fmt.Errorf("%w: %v", ErrEmptyExtraction, err)
	}
	if info.Size() == 0 {
		return localPath, ErrEmptyExtraction
	}

	if err := e.validate(localPath); err != nil {
		return localPath, fmt.Errorf("%w: %v", ErrCorruptExtraction, err)
	}

	e.log.Debug("remote database extracted", "device_id", deviceID, "remote", remotePath, "local", localPath, "bytes", info.Size())
	return localPath, nil
}

func (e *Extractor) scratchPath() string {
	return filepath.Join(e.scratchDir, "stockbridge-"+uuid.NewString()+".db")
}

// removeScratch удаляет временный файл и служебные файлы журнала sqlite
func removeScratch(log *slog.Logger, path string) {
	if path == "" {
		return
	}
	for _, p := range []string{path, path + "-journal", path + "-wal", path + "-shm"} {
		if err := os.Remove(p); err != nil && !os.IsNotExist(err) {
			log.Warn("failed to remove scratch file", "path", p, "error", err)
		}
	}
}
