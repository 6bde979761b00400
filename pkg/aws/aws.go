package aws

import (
	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/awserr"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"

	"github.com/atlassian/route53-register/internal/util"
	"github.com/atlassian/route53-register/pkg/transport"
)

const (
	paramMaxRetries = "max-retries"
	paramRegion     = "region"

	// defaultMaxRetries matches the SDK's own default for EC2 and Route 53.
	defaultMaxRetries = 3
)

// NewSessionFromViper returns a session for the EC2 and Route 53 clients.
// The region comes from aws.region, falling back to the SDK's environment lookup (AWS_REGION in Lambda).
func NewSessionFromViper(v *viper.Viper, logger logrus.FieldLogger, pool *transport.Pool) (*session.Session, error) {
	a := util.GetSubViper(v, "aws")
	a.SetDefault(paramMaxRetries, defaultMaxRetries)
	a.SetDefault(paramRegion, "")

	maxRetries := a.GetInt(paramMaxRetries)
	if maxRetries < 0 {
		return nil, errors.New("aws." + paramMaxRetries + " must not be negative")
	}

	client, err := pool.Client(transport.NameAWS)
	if err != nil {
		return nil, err
	}

	config := aws.NewConfig().
		WithHTTPClient(client).
		WithMaxRetries(maxRetries)
	if region := a.GetString(paramRegion); region != "" {
		config = config.WithRegion(region)
	}

	sess, err := session.NewSession(config)
	if err != nil {
		return nil, errors.Wrap(err, "creating AWS session")
	}

	logger.WithFields(logrus.Fields{
		"region":      aws.StringValue(sess.Config.Region),
		"max_retries": maxRetries,
	}).Debug("created AWS session")

	return sess, nil
}

// errorFields describes an AWS API error for logging.
func errorFields(err error) logrus.Fields {
	fields := logrus.Fields{}
	if awsErr, ok := err.(awserr.Error); ok {
		fields["aws_code"] = awsErr.Code()
		if reqErr, ok := err.(awserr.RequestFailure); ok {
			fields["aws_status"] = reqErr.StatusCode()
			fields["aws_request_id"] = reqErr.RequestID()
		}
	}
	return fields
}
