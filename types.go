package register

import (
	"time"
)

// StateRunning is the EC2 instance state which triggers a registration.
const StateRunning = "running"

// HostNameTagKey is the EC2 tag holding the host part of the record name.
const HostNameTagKey = "HostName"

// LifecycleEvent is the part of an EC2 instance state-change notification
// needed to register the instance.
type LifecycleEvent struct {
	State      string
	InstanceID string
	Region     string
}

// Instance represents the EC2 instance being registered.
type Instance struct {
	ID        string
	VPCID     string
	PrivateIP string
	HostName  string
}

// Zone represents a Route 53 hosted zone associated with a VPC.
type Zone struct {
	ID   string
	Name string
}

// ChangeInfo is the status of a submitted record change.
type ChangeInfo struct {
	ID          string
	Status      string
	SubmittedAt time.Time
}
