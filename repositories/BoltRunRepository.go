package repositories

import (
	"encoding/json"
	"fmt"
	"sort"
	"time"

	"github.com/reaandrew/rewritestats/core"
	"go.etcd.io/bbolt"
)

const runsBucketName = "Runs"

// BoltRunRepository keeps a history of run summaries in a bbolt file so that
// success rates can be compared across invocations.
type BoltRunRepository struct {
	db *bbolt.DB
}

func NewBoltRunRepository(path string) (*BoltRunRepository, error) {
	db, err := bbolt.Open(path, 0666, &bbolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, fmt.Errorf("failed to open run history at '%s': %w", path, err)
	}
	return &BoltRunRepository{db: db}, nil
}

// AppendRun stores the summary keyed by its timestamp and run id, so keys
// sort chronologically.
func (r *BoltRunRepository) AppendRun(summary *core.Summary) error {
	return r.db.Update(func(tx *bbolt.Tx) error {
		bucket, err := tx.CreateBucketIfNotExists([]byte(runsBucketName))
		if err != nil {
			return err
		}

		value, err := json.Marshal(summary)
		if err != nil {
			return fmt.Errorf("failed to marshal run summary: %w", err)
		}

		key := fmt.Sprintf("%s_%s", summary.GeneratedAt.Format(time.RFC3339Nano), summary.RunID)
		return bucket.Put([]byte(key), value)
	})
}

// ListRuns returns up to limit summaries, most recent first. A limit of zero
// or less returns everything.
func (r *BoltRunRepository) ListRuns(limit int) ([]core.Summary, error) {
	var runs []core.Summary

	err := r.db.View(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket([]byte(runsBucketName))
		if bucket == nil {
			return nil
		}

		return bucket.ForEach(func(k, v []byte) error {
			var summary core.Summary
			if err := json.Unmarshal(v, &summary); err != nil {
				return fmt.Errorf("failed to parse run entry '%s': %w", string(k), err)
			}
			runs = append(runs, summary)
			return nil
		})
	})
	if err != nil {
		return nil, err
	}

	sort.Slice(runs, func(i, j int) bool {
		return runs[i].GeneratedAt.After(runs[j].GeneratedAt)
	})
	if limit > 0 && len(runs) > limit {
		runs = runs[:limit]
	}
	return runs, nil
}

func (r *BoltRunRepository) Close() error {
	return r.db.Close()
}
