package handler

import (
	"github.com/aws/aws-lambda-go/events"
	jsoniter "github.com/json-iterator/go"
	"github.com/pkg/errors"

	register "github.com/atlassian/route53-register"
)

// instanceStateChange is the detail of an "EC2 Instance State-change Notification".
type instanceStateChange struct {
	InstanceID string `json:"instance-id"`
	State      string `json:"state"`
}

// DecodeEvent extracts the lifecycle event from an EventBridge notification.
// A missing detail decodes to an empty state, which is never acted on.
func DecodeEvent(event events.CloudWatchEvent) (register.LifecycleEvent, error) {
	var detail instanceStateChange
	if len(event.Detail) > 0 {
		if err := jsoniter.Unmarshal(event.Detail, &detail); err != nil {
			return register.LifecycleEvent{}, errors.Wrapf(err, "decoding detail of event %s", event.ID)
		}
	}
	return register.LifecycleEvent{
		State:      detail.State,
		InstanceID: detail.InstanceID,
		Region:     event.Region,
	}, nil
}
