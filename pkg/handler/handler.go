package handler

import (
	"context"
	"fmt"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambdacontext"
	jsoniter "github.com/json-iterator/go"
	"github.com/sirupsen/logrus"
	"github.com/tilinna/clock"

	register "github.com/atlassian/route53-register"
)

// dryRunMessage is the notification sent when the change batch is only logged.
const dryRunMessage = "success"

// Handler registers running instances in the hosted zone of their VPC.
// It holds no per-event state and may be reused across invocations.
type Handler struct {
	logger    logrus.FieldLogger
	instances register.InstanceResolver
	zones     register.ZoneResolver
	records   register.RecordWriter
	notifier  register.Notifier
	dryRun    bool
}

// Option configures a Handler.
type Option func(*Handler)

// WithDryRun logs the change batch instead of submitting it.
func WithDryRun(dryRun bool) Option {
	return func(h *Handler) {
		h.dryRun = dryRun
	}
}

// New returns a Handler using the given collaborators.
func New(
	logger logrus.FieldLogger,
	instances register.InstanceResolver,
	zones register.ZoneResolver,
	records register.RecordWriter,
	notifier register.Notifier,
	opts ...Option,
) *Handler {
	h := &Handler{
		logger:    logger,
		instances: instances,
		zones:     zones,
		records:   records,
		notifier:  notifier,
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// HandleCloudWatchEvent is the Lambda entry point.
func (h *Handler) HandleCloudWatchEvent(ctx context.Context, event events.CloudWatchEvent) (register.Result, error) {
	e, err := DecodeEvent(event)
	if err != nil {
		h.contextLogger(ctx).WithError(err).Error("Invalid event")
		return register.Skipped, err
	}
	return h.Handle(ctx, e)
}

// Handle registers the instance of a running event and notifies the outcome.
// Events in any other state are skipped without external calls.
// A pipeline failure is returned after a best-effort notification; a failed
// notification after a successful registration only degrades the result.
func (h *Handler) Handle(ctx context.Context, e register.LifecycleEvent) (register.Result, error) {
	logger := h.contextLogger(ctx).WithFields(logrus.Fields{
		"instance": e.InstanceID,
		"region":   e.Region,
		"state":    e.State,
	})
	if e.State != register.StateRunning {
		logger.Debug("Ignoring event")
		return register.Skipped, nil
	}

	clck := clock.FromContext(ctx)
	start := clck.Now()

	message, err := h.registerInstance(ctx, logger, e)
	if err != nil {
		logger.WithError(err).Error("Failed to register instance")
		h.notifyFailure(ctx, logger, e, err)
		return register.Skipped, err
	}

	result := register.Finished
	ok, err := h.notifier.Notify(ctx, message)
	switch {
	case err != nil:
		logger.WithError(err).Warn("Failed to notify")
		result = register.FinishedUnnotified
	case !ok:
		logger.Warn("Notification was not acknowledged")
		result = register.FinishedUnnotified
	}

	logger.WithField("duration", clck.Now().Sub(start)).Info(result.String())
	return result, nil
}

func (h *Handler) registerInstance(ctx context.Context, logger logrus.FieldLogger, e register.LifecycleEvent) (string, error) {
	instance, err := h.instances.Instance(ctx, e.InstanceID)
	if err != nil {
		return "", err
	}
	logger = logger.WithFields(logrus.Fields{
		"vpc":       instance.VPCID,
		"host_name": instance.HostName,
	})

	zone, err := h.zones.Zone(ctx, instance.VPCID, e.Region)
	if err != nil {
		return "", err
	}
	logger = logger.WithField("zone", zone.ID)

	batch := register.NewChangeBatch(instance, zone)
	if doc, err := jsoniter.MarshalToString(batch); err == nil {
		logger.WithField("change_batch", doc).Info("Built change batch")
	}

	if h.dryRun {
		logger.Info("Dry run, change batch not submitted")
		return dryRunMessage, nil
	}

	info, err := h.records.WriteRecord(ctx, zone.ID, batch)
	if err != nil {
		return "", err
	}
	return successMessage(instance, zone, info), nil
}

func (h *Handler) notifyFailure(ctx context.Context, logger logrus.FieldLogger, e register.LifecycleEvent, cause error) {
	ok, err := h.notifier.Notify(ctx, failureMessage(e, cause))
	switch {
	case err != nil:
		logger.WithError(err).Warn("Failed to notify the failure")
	case !ok:
		logger.Warn("Failure notification was not acknowledged")
	}
}

func (h *Handler) contextLogger(ctx context.Context) logrus.FieldLogger {
	if lc, ok := lambdacontext.FromContext(ctx); ok {
		return h.logger.WithField("aws_request_id", lc.AwsRequestID)
	}
	return h.logger
}

func successMessage(instance *register.Instance, zone *register.Zone, info *register.ChangeInfo) string {
	return fmt.Sprintf("Registered %s -> %s for instance %s (change %s: %s)",
		register.RecordName(instance, zone), instance.PrivateIP, instance.ID, info.ID, info.Status)
}

func failureMessage(e register.LifecycleEvent, cause error) string {
	return fmt.Sprintf("Failed to register instance %s in %s: %v", e.InstanceID, e.Region, cause)
}
