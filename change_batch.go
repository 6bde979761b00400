package register

const (
	// ChangeActionUpsert creates the record or replaces an existing one.
	ChangeActionUpsert = "UPSERT"
	// RecordTypeA is an IPv4 address record.
	RecordTypeA = "A"
	// RecordTTL is the TTL, in seconds, of registered records.
	RecordTTL = 60
)

// ChangeBatch describes a set of record changes submitted atomically to a hosted zone.
// The json tags follow the Route 53 ChangeBatch document layout.
type ChangeBatch struct {
	Comment string   `json:"Comment"`
	Changes []Change `json:"Changes"`
}

// Change is a single action on a record set.
type Change struct {
	Action            string            `json:"Action"`
	ResourceRecordSet ResourceRecordSet `json:"ResourceRecordSet"`
}

// ResourceRecordSet is a named set of records of one type.
type ResourceRecordSet struct {
	Name            string           `json:"Name"`
	Type            string           `json:"Type"`
	TTL             int64            `json:"TTL"`
	ResourceRecords []ResourceRecord `json:"ResourceRecords"`
}

// ResourceRecord is one value of a record set.
type ResourceRecord struct {
	Value string `json:"Value"`
}

// RecordName returns the fully qualified name registered for the instance in the zone.
func RecordName(instance *Instance, zone *Zone) string {
	return instance.HostName + "." + zone.Name
}

// NewChangeBatch builds the batch that upserts the instance's A record in the zone.
func NewChangeBatch(instance *Instance, zone *Zone) ChangeBatch {
	name := RecordName(instance, zone)
	return ChangeBatch{
		Comment: "CREATE/UPDATE record " + name,
		Changes: []Change{
			{
				Action: ChangeActionUpsert,
				ResourceRecordSet: ResourceRecordSet{
					Name: name,
					Type: RecordTypeA,
					TTL:  RecordTTL,
					ResourceRecords: []ResourceRecord{
						{Value: instance.PrivateIP},
					},
				},
			},
		},
	}
}
