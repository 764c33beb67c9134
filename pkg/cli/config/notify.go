package config

import (
	"github.com/urfave/cli/v3"

	"github.com/teranga-immo/teranga/pkg/domain/interfaces"
	"github.com/teranga-immo/teranga/pkg/service/notify"
	"github.com/teranga-immo/teranga/pkg/utils/logging"
)

// Notify holds CLI flags for notification delivery configuration
type Notify struct {
	slackToken   string `masq:"secret"`
	slackChannel string
}

// Flags returns CLI flags for notification configuration
func (n *Notify) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "slack-bot-token",
			Usage:       "Slack bot token for mirroring staff notifications",
			Sources:     cli.EnvVars("TERANGA_SLACK_BOT_TOKEN"),
			Destination: &n.slackToken,
		},
		&cli.StringFlag{
			Name:        "slack-channel",
			Usage:       "Slack channel for staff notifications",
			Sources:     cli.EnvVars("TERANGA_SLACK_CHANNEL"),
			Destination: &n.slackChannel,
		},
	}
}

// Configure builds the notification dispatcher
func (n *Notify) Configure(repo interfaces.Repository) *notify.Dispatcher {
	var opts []notify.Option
	if n.slackToken != "" && n.slackChannel != "" {
		opts = append(opts, notify.WithSlack(n.slackToken, n.slackChannel))
		logging.Default().Info("Slack notification mirroring enabled", "channel", n.slackChannel)
	}
	return notify.New(repo, opts...)
}
