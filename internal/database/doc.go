// Package database stores the outcome history of sync runs.
//
// The package defines the [Store] interface and a BoltDB implementation. The
// store keeps the most recent outcome of every operation for every
// repository, keyed by repository path and operation name:
//
//	db, err := database.NewBolt(path)
//	defer db.Close()
//	err = db.Record(outcome)
//	records, err := db.List()
//
// [Bolt] satisfies the engine's Recorder interface, so it can be handed to
// the sync engine to record outcomes as they are produced.
package database
