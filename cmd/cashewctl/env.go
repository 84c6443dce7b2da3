package main

import (
	"errors"
	"os"
	"time"

	"github.com/example/cashew-corner/internal/auth"
	"github.com/example/cashew-corner/internal/client"
	"github.com/example/cashew-corner/internal/command"
	"github.com/example/cashew-corner/internal/config"
	"github.com/example/cashew-corner/internal/events"
	"github.com/example/cashew-corner/internal/infrastructure/kafka"
	"github.com/example/cashew-corner/internal/logging"
	"github.com/example/cashew-corner/internal/query"
	"github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"
)

const envKey = "env"

var errNotSignedIn = errors.New("not signed in, run `cashewctl login` first")

// env is everything a subcommand needs, built once per invocation
type env struct {
	cfg      config.Config
	log      *logrus.Logger
	client   *client.Client
	session  *auth.Manager
	commands *command.Handler
	queries  *query.Handler
	activity *events.Channel
	producer *kafka.Producer
	json     bool
}

func setup(c *cli.Context) error {
	cfg, err := config.Load(c.String("config-dir"), "cashewctl")
	if err != nil {
		return cli.Exit("load config: "+err.Error(), 1)
	}
	if api := c.String("api"); api != "" {
		cfg.APIBaseURL = api
	}

	logger, err := logging.New(cfg.LogLevel, cfg.LogFormat, os.Stderr)
	if err != nil {
		return cli.Exit(err.Error(), 1)
	}

	cl := client.New(cfg.APIBaseURL, client.WithTimeout(cfg.HTTPTimeout), client.WithLogger(logger))
	session := auth.NewManager(cl.Auth(), auth.NewFileStore(cfg.SessionFile), auth.WithLogger(logger))
	cl.SetAuthorizer(session)
	cl.SetUnauthorizedHandler(session.HandleUnauthorized)
	if err := session.Restore(); err != nil {
		logger.WithError(err).Warn("could not restore saved session")
	}

	e := &env{
		cfg:      cfg,
		log:      logger,
		client:   cl,
		session:  session,
		queries:  query.NewHandler(query.SourcesFromClient(cl), logger),
		activity: events.NewChannel(16),
		json:     c.Bool("json"),
	}

	publishers := events.Fanout{e.activity}
	if len(cfg.KafkaBrokers) > 0 {
		e.producer = kafka.NewProducer(cfg.KafkaBrokers, cfg.KafkaTopic)
		publishers = append(publishers, e.producer)
	}
	e.commands = command.NewHandler(command.APIsFromClient(cl), publishers, logger)

	c.App.Metadata = map[string]any{envKey: e}
	return nil
}

// teardown reports the activity of this invocation and releases the producer
func teardown(c *cli.Context) error {
	e, ok := c.App.Metadata[envKey].(*env)
	if !ok {
		return nil
	}
	e.activity.Close()
	for ev := range e.activity.Events() {
		e.log.WithFields(logrus.Fields{
			"event_type":   ev.Type,
			"aggregate":    ev.AggregateType,
			"aggregate_id": ev.AggregateID,
		}).Debug("activity")
	}
	if e.producer != nil {
		if err := e.producer.Close(); err != nil {
			e.log.WithError(err).Warn("close kafka producer")
		}
	}
	return nil
}

func envFrom(c *cli.Context) *env {
	return c.App.Metadata[envKey].(*env)
}

// authed returns the env after checking that a usable session exists
func authed(c *cli.Context) (*env, error) {
	e := envFrom(c)
	if !e.session.HasActiveSession() {
		return nil, cli.Exit(errNotSignedIn.Error(), 1)
	}
	return e, nil
}

func today() time.Time {
	return time.Now()
}
