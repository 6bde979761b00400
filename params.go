package register

import (
	"github.com/spf13/pflag"
)

const (
	// DefaultSlackUsername is the sender label of notifications.
	DefaultSlackUsername = "route53-register"
	// DefaultDryRun keeps submission of change batches enabled.
	DefaultDryRun = false
)

const (
	// ParamDryRun is the name of parameter which disables submission of change batches.
	ParamDryRun = "dry-run"
	// ParamSlackToken is the name of parameter with the Slack API token.
	ParamSlackToken = "slack-token"
	// ParamSlackChannel is the name of parameter with the Slack channel id.
	ParamSlackChannel = "slack-channel"
	// ParamSlackUsername is the name of parameter with the Slack sender label.
	ParamSlackUsername = "slack-username"
	// ParamSlackAPIURL is the name of parameter overriding the Slack API base URL.
	ParamSlackAPIURL = "slack-api-url"
)

// AddFlags adds flags to the specified FlagSet.
func AddFlags(fs *pflag.FlagSet) {
	fs.Bool(ParamDryRun, DefaultDryRun, "Log change batches instead of submitting them")
	fs.String(ParamSlackToken, "", "Slack API token")
	fs.String(ParamSlackChannel, "", "Slack channel to notify")
	fs.String(ParamSlackUsername, DefaultSlackUsername, "Sender label of Slack notifications")
	fs.String(ParamSlackAPIURL, "", "Slack API base URL, for testing")
}
