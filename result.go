package register

import (
	jsoniter "github.com/json-iterator/go"
)

// Result is the outcome of handling a lifecycle event, returned to the trigger platform.
type Result int

const (
	// Skipped means the event was not a transition to running. Nothing was done.
	Skipped Result = iota
	// Finished means the record was registered and the channel notified.
	Finished
	// FinishedUnnotified means the record was registered but the notification was not delivered.
	FinishedUnnotified
)

func (r Result) String() string {
	switch r {
	case Finished:
		return "Finished."
	case FinishedUnnotified:
		return "Finished, but failed to notify to the slack channel."
	}
	return "false"
}

// MarshalJSON encodes Skipped as false and every other result as its message.
func (r Result) MarshalJSON() ([]byte, error) {
	if r == Skipped {
		return []byte("false"), nil
	}
	return jsoniter.Marshal(r.String())
}
