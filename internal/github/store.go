package github

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"slices"

	"github.com/rs/zerolog/log"

	"issueflow/internal/tracker"
)

// SnapshotStore persists issue snapshots as JSONL, one issue per line. A
// snapshot decouples analysis runs from the API: fetch once, analyze many
// times.
type SnapshotStore struct{}

// Load reads a snapshot file. Invalid lines are skipped with a warning rather
// than failing the whole load; a partially readable snapshot is still useful.
func (SnapshotStore) Load(path string) ([]tracker.Issue, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open snapshot: %w", err)
	}
	defer file.Close()

	var issues []tracker.Issue
	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 0, 1024*1024), 16*1024*1024)
	for scanner.Scan() {
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}
		var issue tracker.Issue
		if err := json.Unmarshal(line, &issue); err != nil {
			log.Warn().Err(err).Str("path", path).Msg("Skipping invalid JSON line in snapshot")
			continue
		}
		issues = append(issues, issue)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading snapshot: %w", err)
	}

	log.Info().Str("path", path).Int("count", len(issues)).Msg("Loaded issue snapshot")
	return issues, nil
}

// Save writes a snapshot file atomically: the data lands in a temp file first
// and replaces the target with a rename, so a crash mid-write never leaves a
// truncated snapshot behind. Issues are deduplicated by number (last write
// wins) and stored in ascending number order for deterministic snapshots.
func (SnapshotStore) Save(path string, issues []tracker.Issue) error {
	issues = dedupe(issues)
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create snapshot dir: %w", err)
		}
	}

	tmpPath := path + ".tmp"
	file, err := os.Create(tmpPath)
	if err != nil {
		return fmt.Errorf("failed to create temp snapshot file: %w", err)
	}

	writer := bufio.NewWriter(file)
	encoder := json.NewEncoder(writer)
	for _, issue := range issues {
		if err := encoder.Encode(issue); err != nil {
			file.Close()
			os.Remove(tmpPath)
			return fmt.Errorf("failed to encode issue: %w", err)
		}
	}

	if err := writer.Flush(); err != nil {
		file.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("failed to flush writer: %w", err)
	}
	if err := file.Close(); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to close file: %w", err)
	}

	if err := os.Rename(tmpPath, path); err != nil {
		return fmt.Errorf("failed to rename snapshot file: %w", err)
	}

	log.Info().Str("path", path).Int("count", len(issues)).Msg("Issue snapshot saved")
	return nil
}

func dedupe(issues []tracker.Issue) []tracker.Issue {
	byNumber := make(map[int]tracker.Issue, len(issues))
	for _, issue := range issues {
		byNumber[issue.Number] = issue
	}
	out := make([]tracker.Issue, 0, len(byNumber))
	for _, issue := range byNumber {
		out = append(out, issue)
	}
	slices.SortFunc(out, func(a, b tracker.Issue) int {
		return a.Number - b.Number
	})
	return out
}
