// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) The goldchart authors

package memory

import (
	"encoding/json"
	"log"
	"sync"
	"time"

	"github.com/lotodore/localcache"
)

const (
	maxPatterns   = 100
	patternsKey   = "patterns"
	patternMaxAge = time.Hour * 24 * 30
)

// Pattern is one remembered market structure observation, fed back to
// the mentor panel when a similar setup appears again.
type Pattern struct {
	Id          string    `json:"id"`
	Kind        string    `json:"kind"`
	Timeframe   string    `json:"timeframe"`
	Description string    `json:"description"`
	Outcome     string    `json:"outcome"`
	UsageCount  int       `json:"usage_count"`
	CreatedAt   time.Time `json:"created_at"`
	LastUsed    time.Time `json:"last_used"`
}

// PatternMemory is a bounded store of remembered patterns, persisted
// in the local cache directory. The oldest pattern is evicted first
// once the bound is reached.
type PatternMemory struct {
	mu       sync.Mutex
	data     *localcache.Cache
	patterns []Pattern
}

// NewPatternMemory opens the persisted pattern store. Stale entries
// are purged after a month.
func NewPatternMemory(cacheName string) (*PatternMemory, error) {
	data, err := localcache.New(cacheName)
	if err != nil {
		return nil, err
	}
	m := &PatternMemory{data: data}
	err = m.data.PurgeKey(patternsKey, patternMaxAge)
	if err != nil {
		log.Printf("error purging pattern cache: %v", err)
	}
	m.patterns = m.readPatterns()
	return m, nil
}

func (m *PatternMemory) readPatterns() []Pattern {
	raw, err := m.data.ReadFile(patternsKey)
	if err != nil {
		return nil
	}
	var patterns []Pattern
	err = json.Unmarshal(raw, &patterns)
	if err != nil {
		log.Printf("pattern cache contains invalid data")
		err = m.data.Remove(patternsKey)
		if err != nil {
			log.Printf("error deleting pattern cache: %v", err)
		}
		return nil
	}
	if len(patterns) > maxPatterns {
		patterns = patterns[len(patterns)-maxPatterns:]
	}
	return patterns
}

// persist is best effort. Losing the pattern store degrades the mentor
// panel but never the chart.
func (m *PatternMemory) persist() {
	if m.data == nil {
		return
	}
	raw, err := json.Marshal(m.patterns)
	if err != nil {
		log.Printf("error encoding patterns: %v", err)
		return
	}
	err = m.data.WriteFile(patternsKey, raw)
	if err != nil {
		log.Printf("error writing pattern cache: %v", err)
	}
}

// Remember stores a pattern, evicting the oldest one when full.
func (m *PatternMemory) Remember(p Pattern) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if p.CreatedAt.IsZero() {
		p.CreatedAt = time.Now()
	}
	m.patterns = append(m.patterns, p)
	if len(m.patterns) > maxPatterns {
		m.patterns = m.patterns[len(m.patterns)-maxPatterns:]
	}
	m.persist()
}

// MarkUsed bumps the usage counter of the given pattern. Returns false
// if the pattern is no longer remembered.
func (m *PatternMemory) MarkUsed(id string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.patterns {
		if m.patterns[i].Id == id {
			m.patterns[i].UsageCount++
			m.patterns[i].LastUsed = time.Now()
			m.persist()
			return true
		}
	}
	return false
}

// Patterns returns a snapshot, oldest first.
func (m *PatternMemory) Patterns() []Pattern {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]Pattern(nil), m.patterns...)
}

func (m *PatternMemory) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.patterns)
}
