package register

import (
	"fmt"

	"github.com/pkg/errors"
)

var (
	// ErrInstanceNotFound is returned when the compute inventory has no record of the instance.
	ErrInstanceNotFound = errors.New("instance not found")
	// ErrZoneNotFound is returned when no hosted zone is associated with the VPC.
	ErrZoneNotFound = errors.New("no hosted zone associated with vpc")
)

// MissingTagError is returned when an instance lacks a required tag.
type MissingTagError struct {
	InstanceID string
	Key        string
}

func (e *MissingTagError) Error() string {
	return fmt.Sprintf("the tag %q is not defined on the instance %s", e.Key, e.InstanceID)
}
