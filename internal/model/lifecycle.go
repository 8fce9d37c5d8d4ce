package model

import "time"

// ModelStatus is the lifecycle state of an installed on-device model.
type ModelStatus string

// Installed model states.
const (
	ModelStatusReady           ModelStatus = "READY"
	ModelStatusCorrupted       ModelStatus = "CORRUPTED"
	ModelStatusUpdateAvailable ModelStatus = "UPDATE_AVAILABLE"
)

// ModelConfig is a catalog entry describing a downloadable on-device model.
type ModelConfig struct {
	ID        string
	Name      string
	URL       string
	Checksum  string
	SizeBytes int64
}

// InstalledModel is a downloaded model artifact. The on-device provider
// consults Status before lazily loading the model on first use.
type InstalledModel struct {
	InstalledAt time.Time
	Config      ModelConfig
	Path        string
	Status      ModelStatus
}

// DownloadState is the state machine position of a model download.
type DownloadState string

// Download states.
const (
	DownloadPending    DownloadState = "pending"
	DownloadInProgress DownloadState = "downloading"
	DownloadVerifying  DownloadState = "verifying"
	DownloadDone       DownloadState = "done"
	DownloadFailed     DownloadState = "failed"
)

// DownloadProgress reports progress of a model download.
type DownloadProgress struct {
	ModelID    string
	Error      string
	State      DownloadState
	BytesDone  int64
	BytesTotal int64
}
