package store

import (
	"os"

	json "github.com/goccy/go-json"

	"crewops/internal/models"
	"crewops/internal/providers"
	"crewops/internal/services"
	"crewops/internal/store/interfaces"
)

// FileManager snapshots the whole session store to a single compressed
// file and restores it on startup. A missing or malformed file is never
// fatal: the engine simply starts with no active sessions.
type FileManager struct {
	service    services.SessionServiceInterface
	compressor interfaces.CompressorInterface
	logger     providers.Logger
}

func NewFileManager(compressor interfaces.CompressorInterface, service services.SessionServiceInterface, logger providers.Logger) *FileManager {
	return &FileManager{
		compressor: compressor,
		service:    service,
		logger:     logger,
	}
}

func (f *FileManager) SaveToFile(fileName string) error {
	snapshot := f.service.Snapshot()

	jsonData, err := json.Marshal(snapshot)
	if err != nil {
		return err
	}
	data, err := f.compressor.Compress(jsonData)
	if err != nil {
		return err
	}

	tmpFile := fileName + ".tmp"
	file, err := os.Create(tmpFile)
	if err != nil {
		return err
	}

	_, err = file.Write(data)
	if err != nil {
		file.Close()
		os.Remove(tmpFile)
		return err
	}

	if err = file.Sync(); err != nil {
		file.Close()
		os.Remove(tmpFile)
		return err
	}

	if err = file.Close(); err != nil {
		os.Remove(tmpFile)
		return err
	}

	return os.Rename(tmpFile, fileName)
}

// LoadFromFile restores sessions from a snapshot file. Malformed payloads
// are logged and treated as "no active sessions" rather than surfaced.
func (f *FileManager) LoadFromFile(fileName string) error {
	data, err := os.ReadFile(fileName)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}

	decompressedData, err := f.compressor.Decompress(data)
	if err != nil {
		f.logger.Warnf(providers.TypeApp, "Session snapshot is not a valid archive, starting empty: %s", err)
		return nil
	}

	var snapshot models.StoreSnapshot
	if err := json.Unmarshal(decompressedData, &snapshot); err != nil {
		f.logger.Warnf(providers.TypeApp, "Session snapshot is not valid JSON, starting empty: %s", err)
		return nil
	}
	if snapshot.Version != models.SnapshotVersion || snapshot.Sessions == nil {
		f.logger.Warnf(providers.TypeApp, "Unsupported session snapshot (version %d), starting empty", snapshot.Version)
		return nil
	}

	f.service.PutSnapshot(&snapshot)
	return nil
}
