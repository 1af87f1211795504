package store

// StoreState represents the initialization state of the datastore.
type StoreState int

const (
	StateMissing         StoreState = iota // File doesn't exist
	StateUninitialized                     // File exists but no schema
	StateVersionMismatch                   // Schema exists but wrong version
	StateReady                             // Initialized and correct version
)

func (s StoreState) String() string {
	switch s {
	case StateMissing:
		return "missing"
	case StateUninitialized:
		return "uninitialized"
	case StateVersionMismatch:
		return "version mismatch"
	case StateReady:
		return "ready"
	}
	return "unknown"
}

// Store defines the apprater datastore contract.
type Store interface {
	// Open opens the datastore connection
	Open() error

	// Close closes the datastore connection
	Close() error

	// InitSchema creates the schema and records its version
	InitSchema(version string) error

	// CheckState returns the current state of the datastore
	CheckState() (StoreState, error)

	// GetSchemaVersion returns the current schema version from the database
	GetSchemaVersion() (string, error)
}

// Preference keys shared by every backend.
const (
	KeyFirstLaunchDate = "first_launch_date"
	KeyLaunchCount     = "launch_count"
	KeyDoNotShowAgain  = "do_not_show_again"
)

// NotSet is the stored value of a field that was never written.
const NotSet = 0

// Settings is the durable record behind the rate prompt.
//
// Getters return the default (0, 0, false) for unset fields. Setters persist
// immediately and field by field; failures are logged by the implementation
// and never reported to the caller.
type Settings interface {
	// FirstLaunchDate returns the first launch time in epoch millis, or NotSet.
	FirstLaunchDate() int64
	SetFirstLaunchDate(ms int64)

	LaunchCount() int
	SetLaunchCount(n int)

	DoNotShowAgain() bool
	SetDoNotShowAgain(v bool)
}
