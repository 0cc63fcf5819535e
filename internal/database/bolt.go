package database

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/inovacc/autofetch/internal/model"
	"go.etcd.io/bbolt"
)

const (
	boltBucketHistory = "history" // key: path \x00 operation -> SyncOutcome JSON
)

var _ Store = (*Bolt)(nil)

type Bolt struct {
	db *bbolt.DB
}

// NewBolt opens or creates the history database at path.
func NewBolt(path string) (*Bolt, error) {
	db, err := bbolt.Open(path, 0600, &bbolt.Options{Timeout: 1 * time.Second})
	if err != nil {
		return nil, fmt.Errorf("failed to open history database: %w", err)
	}

	if err := db.Update(func(tx *bbolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists([]byte(boltBucketHistory))
		return err
	}); err != nil {
		_ = db.Close()

		return nil, err
	}

	return &Bolt{db: db}, nil
}

func (b *Bolt) Ping() error {
	return b.db.View(func(tx *bbolt.Tx) error {
		return nil
	})
}

func (b *Bolt) Close() error {
	return b.db.Close()
}

func historyKey(project model.ProjectDirectory, op model.Operation) []byte {
	return []byte(string(project) + "\x00" + string(op))
}

// Record stores o as the latest outcome of its operation for its project.
func (b *Bolt) Record(o model.SyncOutcome) error {
	if o.Project == "" {
		return errors.New("project is required")
	}

	data, err := json.Marshal(&o)
	if err != nil {
		return err
	}

	return b.db.Update(func(tx *bbolt.Tx) error {
		return tx.Bucket([]byte(boltBucketHistory)).Put(historyKey(o.Project, o.Operation), data)
	})
}

// Last returns the latest outcomes recorded for project.
func (b *Bolt) Last(project model.ProjectDirectory) ([]model.SyncOutcome, error) {
	var out []model.SyncOutcome

	prefix := []byte(string(project) + "\x00")

	err := b.db.View(func(tx *bbolt.Tx) error {
		c := tx.Bucket([]byte(boltBucketHistory)).Cursor()

		for k, v := c.Seek(prefix); k != nil && bytes.HasPrefix(k, prefix); k, v = c.Next() {
			var o model.SyncOutcome

			if err := json.Unmarshal(v, &o); err != nil {
				return err
			}

			out = append(out, o)
		}

		return nil
	})

	return out, err
}

// List returns every recorded outcome ordered by project then operation.
func (b *Bolt) List() ([]model.SyncOutcome, error) {
	var out []model.SyncOutcome

	err := b.db.View(func(tx *bbolt.Tx) error {
		return tx.Bucket([]byte(boltBucketHistory)).ForEach(func(_, v []byte) error {
			var o model.SyncOutcome

			if err := json.Unmarshal(v, &o); err != nil {
				return err
			}

			out = append(out, o)

			return nil
		})
	})

	return out, err
}

// Prune deletes the history of projects for which keep returns false and
// reports how many records were removed.
func (b *Bolt) Prune(keep func(model.ProjectDirectory) bool) (int, error) {
	removed := 0

	err := b.db.Update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket([]byte(boltBucketHistory))

		var stale [][]byte

		if err := bucket.ForEach(func(k, _ []byte) error {
			project, _, _ := bytes.Cut(k, []byte{0})
			if !keep(model.ProjectDirectory(project)) {
				stale = append(stale, append([]byte(nil), k...))
			}

			return nil
		}); err != nil {
			return err
		}

		for _, k := range stale {
			if err := bucket.Delete(k); err != nil {
				return err
			}
		}

		removed = len(stale)

		return nil
	})

	return removed, err
}
