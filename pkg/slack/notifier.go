package slack

import (
	"context"
	"net/http"
	"strings"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/slack-go/slack"
	"github.com/spf13/viper"
	"go.uber.org/multierr"

	register "github.com/atlassian/route53-register"
)

// Config holds everything the notifier needs. It is passed in at construction.
type Config struct {
	// Token is the bot token used for chat.postMessage.
	Token string
	// Channel is the id (or name) of the channel to post to.
	Channel string
	// Username is the sender label shown on messages.
	Username string
	// APIURL overrides the Slack Web API base URL. Empty means the public API.
	APIURL string
}

// NewConfigFromViper reads the notifier configuration. The result is not validated.
func NewConfigFromViper(v *viper.Viper) Config {
	v.SetDefault(register.ParamSlackUsername, register.DefaultSlackUsername)
	return Config{
		Token:    v.GetString(register.ParamSlackToken),
		Channel:  v.GetString(register.ParamSlackChannel),
		Username: v.GetString(register.ParamSlackUsername),
		APIURL:   v.GetString(register.ParamSlackAPIURL),
	}
}

// Validate ensures all required values are set.
// All missing values are reported together.
func (c Config) Validate() (errs error) {
	if c.Token == "" {
		errs = multierr.Append(errs, errors.New("missing `Token` value"))
	}
	if c.Channel == "" {
		errs = multierr.Append(errs, errors.New("missing `Channel` value"))
	}
	if c.Username == "" {
		errs = multierr.Append(errs, errors.New("missing `Username` value"))
	}
	return errs
}

// Notifier posts messages to a fixed Slack channel.
type Notifier struct {
	logger   logrus.FieldLogger
	client   *slack.Client
	channel  string
	username string
}

var _ register.Notifier = (*Notifier)(nil)

// NewNotifier validates the config and returns a notifier using httpClient for requests.
func NewNotifier(logger logrus.FieldLogger, config Config, httpClient *http.Client) (*Notifier, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	opts := []slack.Option{
		slack.OptionHTTPClient(httpClient),
	}
	if config.APIURL != "" {
		apiURL := config.APIURL
		if !strings.HasSuffix(apiURL, "/") {
			apiURL += "/"
		}
		opts = append(opts, slack.OptionAPIURL(apiURL))
	}

	return &Notifier{
		logger:   logger.WithField("channel", config.Channel),
		client:   slack.New(config.Token, opts...),
		channel:  config.Channel,
		username: config.Username,
	}, nil
}

// Notify posts text to the channel. A response with ok=false is reported as false;
// any other failure is returned as an error.
func (n *Notifier) Notify(ctx context.Context, text string) (bool, error) {
	_, timestamp, err := n.client.PostMessageContext(
		ctx,
		n.channel,
		slack.MsgOptionText(text, false),
		slack.MsgOptionUsername(n.username),
	)
	if err != nil {
		var slackErr slack.SlackErrorResponse
		if errors.As(err, &slackErr) {
			n.logger.WithField("error", slackErr.Err).Warn("Slack did not acknowledge the message")
			return false, nil
		}
		return false, errors.Wrap(err, "posting to slack")
	}
	// Slack only returns a timestamp with ok=true.
	if timestamp == "" {
		n.logger.Warn("Slack did not acknowledge the message")
		return false, nil
	}

	n.logger.WithField("ts", timestamp).Debug("Posted message")
	return true, nil
}
