// Package cache stores verification reports keyed by a digest of their
// inputs, so unchanged drafts are not re-verified.
package cache

import (
	"crypto/sha256"
	"encoding/binary"
	"encoding/hex"
	"encoding/json"
	"math"
	"time"

	"github.com/mkrogh/veridoc/internal/model"
)

// Cache is a byte-value cache with TTL.
type Cache interface {
	Get(key string) ([]byte, bool)
	Set(key string, value []byte, ttl time.Duration) error
	Delete(key string) error
	Clear() error
}

// ReportKey derives the cache key for a verification run from everything
// that influences its outcome: the draft, the chunks, the sources and the
// binder settings.
func ReportKey(draft string, chunks []model.EvidenceChunk, sources []model.Source, strategy string, minScore float64) string {
	h := sha256.New()
	h.Write([]byte(draft))
	for _, c := range chunks {
		h.Write([]byte{0})
		h.Write([]byte(c.SourceID))
		h.Write([]byte(c.Text))
	}
	for _, s := range sources {
		h.Write([]byte{1})
		h.Write([]byte(s.ID))
		h.Write([]byte(s.Published))
	}
	h.Write([]byte{2})
	h.Write([]byte(strategy))

	var score [8]byte
	binary.LittleEndian.PutUint64(score[:], math.Float64bits(minScore))
	h.Write(score[:])

	return "veridoc:v1:" + hex.EncodeToString(h.Sum(nil))
}

// GetReport fetches and decodes a cached report.
func GetReport(c Cache, key string) (*model.Report, bool) {
	data, found := c.Get(key)
	if !found {
		return nil, false
	}
	var report model.Report
	if err := json.Unmarshal(data, &report); err != nil {
		// A corrupt entry behaves like a miss
		_ = c.Delete(key)
		return nil, false
	}
	return &report, true
}

// SetReport encodes and stores a report.
func SetReport(c Cache, key string, report *model.Report, ttl time.Duration) error {
	data, err := json.Marshal(report)
	if err != nil {
		return err
	}
	return c.Set(key, data, ttl)
}
