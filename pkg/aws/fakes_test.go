package aws

import (
	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/request"
	"github.com/aws/aws-sdk-go/service/ec2"
	"github.com/aws/aws-sdk-go/service/ec2/ec2iface"
	"github.com/aws/aws-sdk-go/service/route53"
	"github.com/aws/aws-sdk-go/service/route53/route53iface"
)

// fakeEC2 overrides the only EC2 call the resolver makes. Any other call panics on the nil interface.
type fakeEC2 struct {
	ec2iface.EC2API

	inputs []*ec2.DescribeInstancesInput
	output *ec2.DescribeInstancesOutput
	err    error
}

func (f *fakeEC2) DescribeInstancesWithContext(_ aws.Context, input *ec2.DescribeInstancesInput, _ ...request.Option) (*ec2.DescribeInstancesOutput, error) {
	f.inputs = append(f.inputs, input)
	if f.err != nil {
		return nil, f.err
	}
	return f.output, nil
}

type fakeRoute53 struct {
	route53iface.Route53API

	listInputs   []*route53.ListHostedZonesByVPCInput
	listOutput   *route53.ListHostedZonesByVPCOutput
	listErr      error
	changeInputs []*route53.ChangeResourceRecordSetsInput
	changeOutput *route53.ChangeResourceRecordSetsOutput
	changeErr    error
}

func (f *fakeRoute53) ListHostedZonesByVPCWithContext(_ aws.Context, input *route53.ListHostedZonesByVPCInput, _ ...request.Option) (*route53.ListHostedZonesByVPCOutput, error) {
	f.listInputs = append(f.listInputs, input)
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.listOutput, nil
}

func (f *fakeRoute53) ChangeResourceRecordSetsWithContext(_ aws.Context, input *route53.ChangeResourceRecordSetsInput, _ ...request.Option) (*route53.ChangeResourceRecordSetsOutput, error) {
	f.changeInputs = append(f.changeInputs, input)
	if f.changeErr != nil {
		return nil, f.changeErr
	}
	return f.changeOutput, nil
}

func tag(key, value string) *ec2.Tag {
	return &ec2.Tag{Key: aws.String(key), Value: aws.String(value)}
}
