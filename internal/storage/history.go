// Package storage provides local persistence for analysis reports.
package storage

import (
	"context"
	"crypto/rand"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/luwae/permanent/internal/core/domain"
)

// reportPrefix namespaces report keys; the remainder is the run ID.
const reportPrefix = "report/"

// HistoryStore keeps finished reports keyed by run ID.
// Run IDs are ULIDs, so key order is creation order.
type HistoryStore struct {
	kv KVEngine
}

// NewHistoryStore creates a report history over kv.
func NewHistoryStore(kv KVEngine) *HistoryStore {
	return &HistoryStore{kv: kv}
}

// NewRunID generates a time-ordered run identifier.
func NewRunID(now time.Time) (string, error) {
	entropy := ulid.Monotonic(rand.Reader, 0)
	id, err := ulid.New(ulid.Timestamp(now), entropy)
	if err != nil {
		return "", fmt.Errorf("generate run id: %w", err)
	}
	return strings.ToLower(id.String()), nil
}

// Save stores r under its run ID, assigning one if r has none.
func (s *HistoryStore) Save(ctx context.Context, r *domain.Report) error {
	if r.RunID == "" {
		id, err := NewRunID(r.CreatedAt)
		if err != nil {
			return err
		}
		r.RunID = id
	}

	data, err := json.Marshal(r)
	if err != nil {
		return fmt.Errorf("encode report: %w", err)
	}
	if err := s.kv.Set(ctx, reportKey(r.RunID), data); err != nil {
		return fmt.Errorf("save report %s: %w", r.RunID, err)
	}
	return nil
}

// Get loads the report with the given run ID.
func (s *HistoryStore) Get(ctx context.Context, runID string) (*domain.Report, error) {
	data, err := s.kv.Get(ctx, reportKey(runID))
	if err != nil {
		if errors.Is(err, ErrKeyNotFound) {
			return nil, domain.ErrReportNotFound.WithDetails(runID)
		}
		return nil, err
	}
	return decodeReport(data)
}

// List returns up to limit reports, newest first. limit <= 0 means all.
func (s *HistoryStore) List(ctx context.Context, limit int) ([]*domain.Report, error) {
	var (
		reports []*domain.Report
		decErr  error
	)
	err := s.kv.Scan(ctx, []byte(reportPrefix), true, func(key, value []byte) bool {
		r, err := decodeReport(value)
		if err != nil {
			decErr = fmt.Errorf("report %s: %w", strings.TrimPrefix(string(key), reportPrefix), err)
			return false
		}
		reports = append(reports, r)
		return limit <= 0 || len(reports) < limit
	})
	if err != nil {
		return nil, err
	}
	if decErr != nil {
		return nil, decErr
	}
	return reports, nil
}

// Latest returns the most recent report with the given input fingerprint,
// or ErrReportNotFound.
func (s *HistoryStore) Latest(ctx context.Context, fingerprint string) (*domain.Report, error) {
	var found *domain.Report
	err := s.kv.Scan(ctx, []byte(reportPrefix), true, func(key, value []byte) bool {
		r, err := decodeReport(value)
		if err != nil {
			return true
		}
		if r.Fingerprint == fingerprint {
			found = r
			return false
		}
		return true
	})
	if err != nil {
		return nil, err
	}
	if found == nil {
		return nil, domain.ErrReportNotFound.WithDetailsf("no report for fingerprint %s", fingerprint)
	}
	return found, nil
}

// Delete removes the report with the given run ID.
func (s *HistoryStore) Delete(ctx context.Context, runID string) error {
	if _, err := s.kv.Get(ctx, reportKey(runID)); err != nil {
		if errors.Is(err, ErrKeyNotFound) {
			return domain.ErrReportNotFound.WithDetails(runID)
		}
		return err
	}
	return s.kv.Delete(ctx, reportKey(runID))
}

func reportKey(runID string) []byte {
	return []byte(reportPrefix + runID)
}

func decodeReport(data []byte) (*domain.Report, error) {
	var r domain.Report
	if err := json.Unmarshal(data, &r); err != nil {
		return nil, fmt.Errorf("decode report: %w", err)
	}
	return &r, nil
}
