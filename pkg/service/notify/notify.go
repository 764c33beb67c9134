package notify

import (
	"context"
	"fmt"

	"github.com/m-mizutani/goerr/v2"
	"github.com/slack-go/slack"
	"golang.org/x/sync/errgroup"

	"github.com/teranga-immo/teranga/pkg/domain/interfaces"
	"github.com/teranga-immo/teranga/pkg/domain/model"
	"github.com/teranga-immo/teranga/pkg/utils/async"
	"github.com/teranga-immo/teranga/pkg/utils/logging"
)

const maxConcurrentDeliveries = 8

// Event is a notification fan-out produced by a workflow transition
type Event struct {
	Kind       model.NotificationKind
	Title      string
	Body       string
	Recipients []int64
	Data       map[string]string
}

// Dispatcher writes in-app notifications after a state transition has been
// persisted. Delivery is best effort: failures are logged and never abort
// or roll back the transition that produced the event.
type Dispatcher struct {
	repo         interfaces.Repository
	slackClient  *slack.Client
	slackChannel string
}

type Option func(*Dispatcher)

// WithSlack mirrors every event to a Slack channel for the back office
func WithSlack(token, channel string) Option {
	return func(d *Dispatcher) {
		d.slackClient = slack.New(token)
		d.slackChannel = channel
	}
}

func New(repo interfaces.Repository, opts ...Option) *Dispatcher {
	d := &Dispatcher{repo: repo}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Dispatch delivers the event in the background and returns immediately.
// Call only after the triggering write has committed.
func (d *Dispatcher) Dispatch(ctx context.Context, ev Event) {
	async.Dispatch(ctx, func(ctx context.Context) error {
		return d.Deliver(ctx, ev)
	})
}

// Deliver writes one notification record per recipient. A failed recipient
// does not block the others; the first error is returned for logging.
func (d *Dispatcher) Deliver(ctx context.Context, ev Event) error {
	eg, ctx := errgroup.WithContext(ctx)
	eg.SetLimit(maxConcurrentDeliveries)

	for _, recipientID := range ev.Recipients {
		if recipientID == 0 {
			continue
		}
		eg.Go(func() error {
			_, err := d.repo.Notification().Create(ctx, &model.Notification{
				RecipientID: recipientID,
				Kind:        ev.Kind,
				Title:       ev.Title,
				Body:        ev.Body,
				Data:        ev.Data,
			})
			if err != nil {
				return goerr.Wrap(err, "failed to store notification",
					goerr.V("recipient_id", recipientID),
					goerr.V("kind", ev.Kind))
			}
			return nil
		})
	}

	if err := eg.Wait(); err != nil {
		return err
	}

	d.mirrorToSlack(ctx, ev)
	return nil
}

func (d *Dispatcher) mirrorToSlack(ctx context.Context, ev Event) {
	if d.slackClient == nil {
		return
	}

	text := fmt.Sprintf("[%s] %s", ev.Kind, ev.Title)
	if ev.Body != "" {
		text += "\n" + ev.Body
	}

	_, _, err := d.slackClient.PostMessageContext(ctx, d.slackChannel,
		slack.MsgOptionText(text, false))
	if err != nil {
		logging.From(ctx).Warn("failed to mirror notification to slack",
			"error", err,
			"kind", ev.Kind)
	}
}
