package domain

import "time"

// DispatchRecord is the persisted trace of one dispatch. Unlike the
// in-memory ResolvedRequest it survives the invocation, so past runs can
// be listed and counted.
type DispatchRecord struct {
	ID           string     `json:"id" gorm:"primaryKey"`
	URL          string     `json:"url" gorm:"not null"`
	Platform     string     `json:"platform" gorm:"index"`
	MediaID      string     `json:"media_id,omitempty"`
	State        string     `json:"state" gorm:"not null;index"`
	ErrorMessage string     `json:"error_message,omitempty"`
	FilePath     string     `json:"file_path,omitempty"`
	CreatedAt    time.Time  `json:"created_at" gorm:"autoCreateTime"`
	FinishedAt   *time.Time `json:"finished_at,omitempty"`
}

// NewDispatchRecord snapshots a finished request into a record.
func NewDispatchRecord(req *ResolvedRequest) *DispatchRecord {
	record := &DispatchRecord{
		ID:        req.ID,
		URL:       req.SourceURL,
		Platform:  req.Platform,
		MediaID:   req.MediaID,
		State:     string(req.State),
		FilePath:  req.FilePath,
		CreatedAt: req.CreatedAt,
	}
	if req.Err != nil {
		record.ErrorMessage = req.Err.Error()
	}
	now := time.Now()
	record.FinishedAt = &now
	return record
}

// HistoryStats aggregates dispatch outcomes.
type HistoryStats struct {
	Total     int64 `json:"total"`
	Succeeded int64 `json:"succeeded"`
	Failed    int64 `json:"failed"`
}

// HistoryRepository stores dispatch records.
type HistoryRepository interface {
	Create(record *DispatchRecord) error
	FindByID(id string) (*DispatchRecord, error)
	FindRecent(limit int) ([]*DispatchRecord, error)
	GetStats() (*HistoryStats, error)
	Close() error
}
