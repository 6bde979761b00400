package aws

import (
	"context"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/service/route53"
	"github.com/aws/aws-sdk-go/service/route53/route53iface"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	register "github.com/atlassian/route53-register"
)

// RecordWriter submits change batches to Route 53.
type RecordWriter struct {
	logger  logrus.FieldLogger
	route53 route53iface.Route53API
}

var _ register.RecordWriter = (*RecordWriter)(nil)

func NewRecordWriter(logger logrus.FieldLogger, route53 route53iface.Route53API) *RecordWriter {
	return &RecordWriter{
		logger:  logger,
		route53: route53,
	}
}

// WriteRecord submits the batch to the zone and returns the change status.
// The change is usually PENDING on return; it is not waited on.
func (w *RecordWriter) WriteRecord(ctx context.Context, zoneID string, batch register.ChangeBatch) (*register.ChangeInfo, error) {
	logger := w.logger.WithField("zone", zoneID)

	output, err := w.route53.ChangeResourceRecordSetsWithContext(ctx, &route53.ChangeResourceRecordSetsInput{
		HostedZoneId: aws.String(zoneID),
		ChangeBatch:  toRoute53ChangeBatch(batch),
	})
	if err != nil {
		logger.WithFields(errorFields(err)).WithError(err).Warn("Failed to change record sets")
		return nil, errors.Wrapf(err, "changing record sets in zone %s", zoneID)
	}

	info := &register.ChangeInfo{}
	if output.ChangeInfo != nil {
		info.ID = aws.StringValue(output.ChangeInfo.Id)
		info.Status = aws.StringValue(output.ChangeInfo.Status)
		info.SubmittedAt = aws.TimeValue(output.ChangeInfo.SubmittedAt)
	}
	logger.WithFields(logrus.Fields{
		"change": info.ID,
		"status": info.Status,
	}).Info("Submitted change batch")

	return info, nil
}

func toRoute53ChangeBatch(batch register.ChangeBatch) *route53.ChangeBatch {
	changes := make([]*route53.Change, 0, len(batch.Changes))
	for _, change := range batch.Changes {
		records := make([]*route53.ResourceRecord, 0, len(change.ResourceRecordSet.ResourceRecords))
		for _, record := range change.ResourceRecordSet.ResourceRecords {
			records = append(records, &route53.ResourceRecord{
				Value: aws.String(record.Value),
			})
		}
		changes = append(changes, &route53.Change{
			Action: aws.String(change.Action),
			ResourceRecordSet: &route53.ResourceRecordSet{
				Name:            aws.String(change.ResourceRecordSet.Name),
				Type:            aws.String(change.ResourceRecordSet.Type),
				TTL:             aws.Int64(change.ResourceRecordSet.TTL),
				ResourceRecords: records,
			},
		})
	}

	var comment *string
	if batch.Comment != "" {
		comment = aws.String(batch.Comment)
	}
	return &route53.ChangeBatch{
		Comment: comment,
		Changes: changes,
	}
}
