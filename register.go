package register

import (
	"context"
)

// InstanceResolver looks up an instance in the compute inventory.
type InstanceResolver interface {
	// Instance returns the instance with the given id.
	// Returns a *MissingTagError if the instance has no HostName tag.
	Instance(ctx context.Context, instanceID string) (*Instance, error)
}

// ZoneResolver finds the hosted zone bound to a network.
type ZoneResolver interface {
	// Zone returns the first hosted zone associated with vpcID in region.
	Zone(ctx context.Context, vpcID, region string) (*Zone, error)
}

// RecordWriter submits record changes to a hosted zone.
type RecordWriter interface {
	WriteRecord(ctx context.Context, zoneID string, batch ChangeBatch) (*ChangeInfo, error)
}

// Notifier posts a text message to a chat channel.
// The returned bool is the service's acknowledgement; transport failures are errors.
type Notifier interface {
	Notify(ctx context.Context, text string) (bool, error)
}
