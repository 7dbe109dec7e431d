package internal

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

const cacheVersion = "1.0"

// CacheManager stores analysis reports on disk: one JSON file per report and
// a YAML index describing them
type CacheManager struct {
	cacheDir string
}

// CacheMetadata stores metadata about the cache
type CacheMetadata struct {
	CacheVersion string    `yaml:"cache_version"`
	CreatedAt    time.Time `yaml:"created_at"`
	UpdatedAt    time.Time `yaml:"updated_at"`
}

// ReportIndexEntry describes one cached report
type ReportIndexEntry struct {
	ID            string      `yaml:"id"`
	Title         string      `yaml:"title,omitempty"`
	Sources       []string    `yaml:"sources"`
	SourceModTime []time.Time `yaml:"source_mod_times"`
	Fingerprint   string      `yaml:"fingerprint"`
	GeneratedAt   time.Time   `yaml:"generated_at"`
	Year          int         `yaml:"year"`
	MessageCount  int         `yaml:"message_count"`
	Participants  int         `yaml:"participants"`
}

// ReportIndex is the YAML index of all cached reports
type ReportIndex struct {
	Reports  []ReportIndexEntry `yaml:"reports"`
	Metadata CacheMetadata      `yaml:"metadata"`
}

// NewCacheManager creates a new cache manager
func NewCacheManager(cacheDir string) *CacheManager {
	return &CacheManager{cacheDir: cacheDir}
}

// EnsureCacheDir ensures the cache directory exists
func (cm *CacheManager) EnsureCacheDir() error {
	if err := os.MkdirAll(cm.cacheDir, 0755); err != nil {
		return &StorageError{Path: cm.cacheDir, Op: "write", Err: err}
	}
	return nil
}

// GetCacheDir returns the cache directory path
func (cm *CacheManager) GetCacheDir() string {
	return cm.cacheDir
}

// GetIndexPath returns the path to the report index YAML file
func (cm *CacheManager) GetIndexPath() string {
	return filepath.Join(cm.cacheDir, "reports.yaml")
}

// GetReportPath returns the path to a report's cache file
func (cm *CacheManager) GetReportPath(reportID string) string {
	return filepath.Join(cm.cacheDir, fmt.Sprintf("report_%s.json", reportID))
}

// LoadIndex loads the report index; a missing index is an empty one
func (cm *CacheManager) LoadIndex() (*ReportIndex, error) {
	data, err := os.ReadFile(cm.GetIndexPath())
	if errors.Is(err, os.ErrNotExist) {
		return &ReportIndex{Metadata: CacheMetadata{CacheVersion: cacheVersion}}, nil
	}
	if err != nil {
		return nil, &StorageError{Path: cm.GetIndexPath(), Op: "read", Err: err}
	}

	var index ReportIndex
	if err := yaml.Unmarshal(data, &index); err != nil {
		return nil, &StorageError{Path: cm.GetIndexPath(), Op: "read", Err: fmt.Errorf("failed to unmarshal index: %w", err)}
	}
	return &index, nil
}

// SaveIndex saves the report index
func (cm *CacheManager) SaveIndex(index *ReportIndex) error {
	if err := cm.EnsureCacheDir(); err != nil {
		return err
	}
	data, err := yaml.Marshal(index)
	if err != nil {
		return fmt.Errorf("failed to marshal index: %w", err)
	}
	if err := os.WriteFile(cm.GetIndexPath(), data, 0644); err != nil {
		return &StorageError{Path: cm.GetIndexPath(), Op: "write", Err: err}
	}
	return nil
}

// SaveReport writes report and records it in the index
func (cm *CacheManager) SaveReport(report *Report, fingerprint string) error {
	if err := cm.EnsureCacheDir(); err != nil {
		return err
	}

	modTimes, err := sourceModTimes(report.Sources)
	if err != nil {
		return err
	}

	path := cm.GetReportPath(report.ID)
	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal report: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return &StorageError{Path: path, Op: "write", Err: err}
	}

	index, err := cm.LoadIndex()
	if err != nil {
		LogWarn("Rebuilding unreadable cache index: %v", err)
		index = &ReportIndex{}
	}
	now := time.Now()
	if index.Metadata.CreatedAt.IsZero() {
		index.Metadata.CreatedAt = now
	}
	index.Metadata.CacheVersion = cacheVersion
	index.Metadata.UpdatedAt = now

	entry := ReportIndexEntry{
		ID:            report.ID,
		Title:         report.Title,
		Sources:       report.Sources,
		SourceModTime: modTimes,
		Fingerprint:   fingerprint,
		GeneratedAt:   report.GeneratedAt,
	}
	if report.Stats != nil {
		entry.Year = report.Stats.Year
		entry.MessageCount = report.Stats.TotalMessages
		entry.Participants = len(report.Stats.Participants)
	}

	found := false
	for i := range index.Reports {
		if index.Reports[i].ID == report.ID {
			index.Reports[i] = entry
			found = true
			break
		}
	}
	if !found {
		index.Reports = append(index.Reports, entry)
	}
	return cm.SaveIndex(index)
}

// LoadReport loads a report by ID
func (cm *CacheManager) LoadReport(reportID string) (*Report, error) {
	path := cm.GetReportPath(reportID)
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &StorageError{Path: path, Op: "read", Err: err}
	}
	var report Report
	if err := json.Unmarshal(data, &report); err != nil {
		return nil, &StorageError{Path: path, Op: "read", Err: fmt.Errorf("failed to unmarshal report: %w", err)}
	}
	return &report, nil
}

// Lookup returns the cached report for sources analyzed with fingerprint,
// provided no source changed since it was written
func (cm *CacheManager) Lookup(sources []string, fingerprint string) (*Report, bool) {
	index, err := cm.LoadIndex()
	if err != nil {
		return nil, false
	}
	id := ReportID(sources, fingerprint)
	for _, entry := range index.Reports {
		if entry.ID != id || entry.Fingerprint != fingerprint {
			continue
		}
		if !cm.isEntryValid(entry) {
			LogDebug("cached report %s is stale", id)
			return nil, false
		}
		report, err := cm.LoadReport(id)
		if err != nil {
			LogDebug("cached report %s unreadable: %v", id, err)
			return nil, false
		}
		return report, true
	}
	return nil, false
}

// isEntryValid checks that every source still has the recorded mod time
func (cm *CacheManager) isEntryValid(entry ReportIndexEntry) bool {
	current, err := sourceModTimes(entry.Sources)
	if err != nil || len(current) != len(entry.SourceModTime) {
		return false
	}
	for i := range current {
		if !current[i].Equal(entry.SourceModTime[i]) {
			return false
		}
	}
	return true
}

// FindReport resolves a full ID or a unique ID prefix to an index entry
func (cm *CacheManager) FindReport(idOrPrefix string) (*ReportIndexEntry, error) {
	index, err := cm.LoadIndex()
	if err != nil {
		return nil, err
	}
	var match *ReportIndexEntry
	for i := range index.Reports {
		e := &index.Reports[i]
		if e.ID == idOrPrefix {
			return e, nil
		}
		if len(idOrPrefix) > 0 && len(e.ID) >= len(idOrPrefix) && e.ID[:len(idOrPrefix)] == idOrPrefix {
			if match != nil {
				return nil, fmt.Errorf("report id %q is ambiguous", idOrPrefix)
			}
			match = e
		}
	}
	if match == nil {
		return nil, fmt.Errorf("report %q not found in cache", idOrPrefix)
	}
	return match, nil
}

// ClearCache removes every cached report and the index
func (cm *CacheManager) ClearCache() error {
	index, err := cm.LoadIndex()
	if err == nil {
		for _, entry := range index.Reports {
			_ = os.Remove(cm.GetReportPath(entry.ID))
		}
	}
	if err := os.Remove(cm.GetIndexPath()); err != nil && !os.IsNotExist(err) {
		return &StorageError{Path: cm.GetIndexPath(), Op: "write", Err: err}
	}
	return nil
}

func sourceModTimes(sources []string) ([]time.Time, error) {
	times := make([]time.Time, 0, len(sources))
	for _, src := range sources {
		info, err := os.Stat(src)
		if err != nil {
			return nil, &StorageError{Path: src, Op: "open", Err: err}
		}
		times = append(times, info.ModTime())
	}
	return times, nil
}
