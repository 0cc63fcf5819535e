// Package model defines the data structures shared by the autofetch packages.
//
// # SyncOutcome
//
// A [SyncOutcome] is produced once per git operation per repository by the
// sync engine. It is either a success carrying the captured output of the
// command, or a failure carrying a human readable message:
//
//	type SyncOutcome struct {
//	    Project   ProjectDirectory // Repository working copy
//	    Operation Operation        // fetch, status or pull
//	    Output    string           // Captured stdout on success
//	    Failed    bool             // Set when the operation failed
//	    Message   string           // Human readable failure message
//	    Detail    string           // Underlying error text
//	}
//
// Outcomes are never mutated after creation.
//
// # Config
//
// The [Config] struct holds the user configuration loaded from config.yaml:
//
//	type Config struct {
//	    ProjectsDir     string   // Directory whose children are tracked repositories
//	    Repositories    []string // Extra repositories outside ProjectsDir
//	    Exclude         []string // Directory names to ignore
//	    ScheduleMinutes int      // Interval of the scheduled pull
//	    FetchRetries    int      // Extra fetch attempts on failure
//	}
package model
