package analytics

import (
	"fmt"
	"os"
	"sort"

	"smartlink/pkg/errors"
	"smartlink/pkg/format"

	"gopkg.in/yaml.v3"
)

// LinkStats is the click count recorded for one short link.
type LinkStats struct {
	Name   string `yaml:"name" json:"name"`
	URL    string `yaml:"url" json:"url"`
	Clicks int64  `yaml:"clicks" json:"clicks"`
}

// Snapshot is a click export as read from disk.
type Snapshot struct {
	Links []LinkStats `yaml:"links" json:"links"`
}

// Row is a display-ready line of the statistics table.
type Row struct {
	Name   string  `yaml:"name" json:"name"`
	URL    string  `yaml:"url" json:"url"`
	Clicks int64   `yaml:"clicks" json:"clicks"`
	Share  float64 `yaml:"share" json:"share"`
	// Display forms
	ClicksText string `yaml:"clicks_text" json:"clicks_text"`
	ShareText  string `yaml:"share_text" json:"share_text"`
}

// LoadSnapshot reads a YAML click export.
func LoadSnapshot(path string) (*Snapshot, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.NewWithError(errors.ExitCodeFileOperation, fmt.Sprintf("failed to read stats file %s", path), err)
	}

	var snap Snapshot
	if err := yaml.Unmarshal(data, &snap); err != nil {
		return nil, errors.NewWithError(errors.ExitCodeValidation, "failed to parse stats file", err)
	}
	for _, l := range snap.Links {
		if l.Clicks < 0 {
			return nil, errors.ValidationError(fmt.Sprintf("link %q has a negative click count", l.Name))
		}
	}
	return &snap, nil
}

// Total returns the sum of clicks across links.
func (s *Snapshot) Total() int64 {
	var total int64
	for _, l := range s.Links {
		total += l.Clicks
	}
	return total
}

// Rows returns the links ordered by clicks, busiest first, with each link's
// share of total.
func (s *Snapshot) Rows() []Row {
	total := s.Total()
	rows := make([]Row, 0, len(s.Links))
	for _, l := range s.Links {
		share := 0.0
		if total > 0 {
			share = float64(l.Clicks) / float64(total) * 100
		}
		rows = append(rows, Row{
			Name:       l.Name,
			URL:        l.URL,
			Clicks:     l.Clicks,
			Share:      share,
			ClicksText: format.FormatNumber(l.Clicks),
			ShareText:  format.FormatPercentage(float64(l.Clicks), float64(total)),
		})
	}
	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].Clicks > rows[j].Clicks
	})
	return rows
}
