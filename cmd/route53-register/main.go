package main

import (
	"os"
	"runtime/debug"

	"github.com/aws/aws-lambda-go/lambda"
	"github.com/aws/aws-sdk-go/service/ec2"
	"github.com/aws/aws-sdk-go/service/route53"
	"github.com/sirupsen/logrus"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	register "github.com/atlassian/route53-register"
	"github.com/atlassian/route53-register/internal/util"
	"github.com/atlassian/route53-register/pkg/aws"
	"github.com/atlassian/route53-register/pkg/handler"
	"github.com/atlassian/route53-register/pkg/slack"
	"github.com/atlassian/route53-register/pkg/transport"
)

var (
	// BuildDate is the date when the binary was built.
	BuildDate string
	// GitCommit is the commit hash when the binary was built.
	GitCommit string
	// Version is the version of the binary.
	Version string
)

const (
	// ParamVerbose enables verbose logging.
	ParamVerbose = "verbose"
	// ParamJSON makes logger log in JSON format.
	ParamJSON = "json"
	// ParamConfigPath provides file with configuration.
	ParamConfigPath = "config-path"
)

func main() {
	v, err := setupConfiguration(os.Args)
	if err != nil {
		if err == pflag.ErrHelp {
			return
		}
		logrus.Fatalf("Error while parsing configuration: %v", err)
	}

	if Version == "" {
		Version = "unknown"
		if build, ok := debug.ReadBuildInfo(); ok {
			Version = build.Main.Version
		}
	}
	logger := logrus.StandardLogger().WithFields(logrus.Fields{
		"version":   Version,
		"buildDate": BuildDate,
		"gitCommit": GitCommit,
	})

	h, err := constructHandler(v, logger)
	if err != nil {
		logger.WithError(err).Fatal("Failed to construct handler")
	}

	logger.Info("Starting handler")
	lambda.Start(h.HandleCloudWatchEvent)
}

func constructHandler(v *viper.Viper, logger logrus.FieldLogger) (*handler.Handler, error) {
	pool := transport.NewPool(logger, v)

	notifierConfig := slack.NewConfigFromViper(v)
	slackClient, err := pool.Client(transport.NameSlack)
	if err != nil {
		return nil, err
	}
	notifier, err := slack.NewNotifier(logger.WithField("component", "slack"), notifierConfig, slackClient)
	if err != nil {
		return nil, err
	}

	sess, err := aws.NewSessionFromViper(v, logger, pool)
	if err != nil {
		return nil, err
	}
	awsLogger := logger.WithField("component", "aws")
	ec2Client := ec2.New(sess)
	route53Client := route53.New(sess)

	return handler.New(
		logger,
		aws.NewInstanceResolver(awsLogger, ec2Client),
		aws.NewZoneResolver(awsLogger, route53Client),
		aws.NewRecordWriter(awsLogger, route53Client),
		notifier,
		handler.WithDryRun(v.GetBool(register.ParamDryRun)),
	), nil
}

func setupConfiguration(args []string) (*viper.Viper, error) {
	v := viper.New()
	defer setupLogger(v) // Apply logging configuration in case of early exit
	util.InitViper(v, "")

	cmd := pflag.NewFlagSet(args[0], pflag.ContinueOnError)

	cmd.Bool(ParamVerbose, false, "Verbose")
	cmd.Bool(ParamJSON, true, "Log in JSON format")
	cmd.String(ParamConfigPath, "", "Path to the configuration file")

	register.AddFlags(cmd)

	cmd.VisitAll(func(flag *pflag.Flag) {
		if err := v.BindPFlag(flag.Name, flag); err != nil {
			panic(err) // Should never happen
		}
	})

	// The secrets keep the names the function has always been deployed with.
	if err := util.BindEnvAliases(v, register.ParamSlackToken, "SLACK_TOKEN"); err != nil {
		return nil, err
	}
	if err := util.BindEnvAliases(v, register.ParamSlackChannel, "SLACK_CHANNEL"); err != nil {
		return nil, err
	}

	if err := cmd.Parse(args[1:]); err != nil {
		return nil, err
	}

	configPath := v.GetString(ParamConfigPath)
	if configPath != "" {
		v.SetConfigFile(configPath)
		if err := v.ReadInConfig(); err != nil {
			return nil, err
		}
	}

	return v, nil
}

func setupLogger(v *viper.Viper) {
	if v.GetBool(ParamVerbose) {
		logrus.SetLevel(logrus.DebugLevel)
	}
	if v.GetBool(ParamJSON) {
		logrus.SetFormatter(&logrus.JSONFormatter{})
	}
}
