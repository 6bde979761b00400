package fixtures

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	register "github.com/atlassian/route53-register"
)

// MockInstanceResolver implements register.InstanceResolver
type MockInstanceResolver struct {
	TB testing.TB

	FnInstance func(ctx context.Context, instanceID string) (*register.Instance, error)
}

func (m *MockInstanceResolver) Instance(ctx context.Context, instanceID string) (p0 *register.Instance, p1 error) {
	if m.FnInstance != nil {
		return m.FnInstance(ctx, instanceID)
	}
	assert.Fail(m.TB, "InstanceResolver.Instance must not be called")
	return
}

// MockZoneResolver implements register.ZoneResolver
type MockZoneResolver struct {
	TB testing.TB

	FnZone func(ctx context.Context, vpcID, region string) (*register.Zone, error)
}

func (m *MockZoneResolver) Zone(ctx context.Context, vpcID, region string) (p0 *register.Zone, p1 error) {
	if m.FnZone != nil {
		return m.FnZone(ctx, vpcID, region)
	}
	assert.Fail(m.TB, "ZoneResolver.Zone must not be called")
	return
}

// MockRecordWriter implements register.RecordWriter
type MockRecordWriter struct {
	TB testing.TB

	FnWriteRecord func(ctx context.Context, zoneID string, batch register.ChangeBatch) (*register.ChangeInfo, error)
}

func (m *MockRecordWriter) WriteRecord(ctx context.Context, zoneID string, batch register.ChangeBatch) (p0 *register.ChangeInfo, p1 error) {
	if m.FnWriteRecord != nil {
		return m.FnWriteRecord(ctx, zoneID, batch)
	}
	assert.Fail(m.TB, "RecordWriter.WriteRecord must not be called")
	return
}

// MockNotifier implements register.Notifier
type MockNotifier struct {
	TB testing.TB

	FnNotify func(ctx context.Context, text string) (bool, error)
}

func (m *MockNotifier) Notify(ctx context.Context, text string) (p0 bool, p1 error) {
	if m.FnNotify != nil {
		return m.FnNotify(ctx, text)
	}
	assert.Fail(m.TB, "Notifier.Notify must not be called")
	return
}
