package aws

import (
	"context"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/awserr"
	"github.com/aws/aws-sdk-go/service/ec2"
	"github.com/aws/aws-sdk-go/service/ec2/ec2iface"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	register "github.com/atlassian/route53-register"
)

// InstanceResolver looks instances up in EC2.
type InstanceResolver struct {
	logger logrus.FieldLogger
	ec2    ec2iface.EC2API
}

var _ register.InstanceResolver = (*InstanceResolver)(nil)

func NewInstanceResolver(logger logrus.FieldLogger, ec2 ec2iface.EC2API) *InstanceResolver {
	return &InstanceResolver{
		logger: logger,
		ec2:    ec2,
	}
}

// Instance describes the instance by id and returns its VPC, private address and host name.
// The first instance of the first reservation is used.
func (r *InstanceResolver) Instance(ctx context.Context, instanceID string) (*register.Instance, error) {
	logger := r.logger.WithField("instance", instanceID)
	logger.Debug("Looking up instance")

	output, err := r.ec2.DescribeInstancesWithContext(ctx, &ec2.DescribeInstancesInput{
		InstanceIds: []*string{aws.String(instanceID)},
	})
	if err != nil {
		logger.WithFields(errorFields(err)).WithError(err).Warn("Failed to describe instance")
		if isInstanceNotFoundErr(err) {
			return nil, errors.Wrapf(register.ErrInstanceNotFound, "%s: %v", instanceID, err)
		}
		return nil, errors.Wrapf(err, "describing instance %s", instanceID)
	}

	if len(output.Reservations) == 0 || len(output.Reservations[0].Instances) == 0 {
		return nil, errors.Wrapf(register.ErrInstanceNotFound, "%s", instanceID)
	}
	if len(output.Reservations) > 1 {
		logger.Warnf("Found more than one reservation for instance ID %v. Using first.", instanceID)
	}
	reservation := output.Reservations[0]
	if len(reservation.Instances) > 1 {
		logger.WithField("reservationId", aws.StringValue(reservation.ReservationId)).
			Warnf("Found more than one instance for instance ID %v. Using first.", instanceID)
	}

	return instanceFromEC2(instanceID, reservation.Instances[0])
}

func instanceFromEC2(instanceID string, instance *ec2.Instance) (*register.Instance, error) {
	hostName, ok := tagValue(instance.Tags, register.HostNameTagKey)
	if !ok {
		return nil, &register.MissingTagError{InstanceID: instanceID, Key: register.HostNameTagKey}
	}
	return &register.Instance{
		ID:        instanceID,
		VPCID:     aws.StringValue(instance.VpcId),
		PrivateIP: aws.StringValue(instance.PrivateIpAddress),
		HostName:  hostName,
	}, nil
}

// tagValue returns the value of the tag with the given key. Empty values count as missing.
func tagValue(tags []*ec2.Tag, key string) (string, bool) {
	for _, tag := range tags {
		if aws.StringValue(tag.Key) == key {
			value := aws.StringValue(tag.Value)
			return value, value != ""
		}
	}
	return "", false
}

func isInstanceNotFoundErr(err error) bool {
	if awsErr, ok := err.(awserr.Error); ok && awsErr.Code() == "InvalidInstanceID.NotFound" {
		return true
	}
	return false
}
