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

// ZoneResolver finds the Route 53 hosted zone associated with a VPC.
type ZoneResolver struct {
	logger  logrus.FieldLogger
	route53 route53iface.Route53API
}

var _ register.ZoneResolver = (*ZoneResolver)(nil)

func NewZoneResolver(logger logrus.FieldLogger, route53 route53iface.Route53API) *ZoneResolver {
	return &ZoneResolver{
		logger:  logger,
		route53: route53,
	}
}

// Zone returns the first hosted zone in the response order.
// Route 53 gives no ranking, so several associated zones are reported and otherwise ignored.
func (r *ZoneResolver) Zone(ctx context.Context, vpcID, region string) (*register.Zone, error) {
	logger := r.logger.WithFields(logrus.Fields{
		"vpc":    vpcID,
		"region": region,
	})
	logger.Debug("Looking up hosted zones")

	output, err := r.route53.ListHostedZonesByVPCWithContext(ctx, &route53.ListHostedZonesByVPCInput{
		VPCId:     aws.String(vpcID),
		VPCRegion: aws.String(region),
	})
	if err != nil {
		logger.WithFields(errorFields(err)).WithError(err).Warn("Failed to list hosted zones")
		return nil, errors.Wrapf(err, "listing hosted zones for vpc %s in %s", vpcID, region)
	}

	if len(output.HostedZoneSummaries) == 0 {
		return nil, errors.Wrapf(register.ErrZoneNotFound, "%s in %s", vpcID, region)
	}
	if len(output.HostedZoneSummaries) > 1 {
		names := make([]string, 0, len(output.HostedZoneSummaries))
		for _, summary := range output.HostedZoneSummaries {
			names = append(names, aws.StringValue(summary.Name))
		}
		logger.WithField("zones", names).Warnf("Found more than one hosted zone for VPC ID %v. Using first.", vpcID)
	}

	summary := output.HostedZoneSummaries[0]
	return &register.Zone{
		ID:   aws.StringValue(summary.HostedZoneId),
		Name: aws.StringValue(summary.Name),
	}, nil
}
