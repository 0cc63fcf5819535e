package database

import (
	"github.com/inovacc/autofetch/internal/model"
)

// Store defines the history operations used by the app.
type Store interface {
	Ping() error
	Record(outcome model.SyncOutcome) error
	Last(project model.ProjectDirectory) ([]model.SyncOutcome, error)
	List() ([]model.SyncOutcome, error)
	Prune(keep func(model.ProjectDirectory) bool) (int, error)
	Close() error
}
