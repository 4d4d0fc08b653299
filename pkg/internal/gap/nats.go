package gap

import (
	jsoniter "github.com/json-iterator/go"
	"github.com/nats-io/nats.go"
	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
)

var Nc *nats.Conn

func InitializeToNats() error {
	url := viper.GetString("nats.url")
	if len(url) == 0 {
		log.Warn().Msg("No nats url was configured, events will not be exchanged with other services.")
		return nil
	}

	conn, err := nats.Connect(
		url,
		nats.Name("Hypernet.Quill"),
		nats.MaxReconnects(-1),
		nats.DisconnectErrHandler(func(_ *nats.Conn, err error) {
			if err != nil {
				log.Warn().Err(err).Msg("Disconnected from nats...")
			}
		}),
		nats.ReconnectHandler(func(conn *nats.Conn) {
			log.Info().Str("url", conn.ConnectedUrl()).Msg("Reconnected to nats.")
		}),
	)
	if err != nil {
		return err
	}

	Nc = conn
	log.Info().Str("url", conn.ConnectedUrl()).Msg("Connected to nats!")
	return nil
}

func EventSubject(event string) string {
	return viper.GetString("nats.subject_prefix") + event
}

// PublishEvent sends the event to the bus without waiting for any consumer,
// the event is dropped when nats is not configured.
func PublishEvent(event string, data any) {
	if Nc == nil {
		return
	}

	raw, err := jsoniter.Marshal(data)
	if err != nil {
		log.Error().Err(err).Str("event", event).Msg("An error occurred when encoding event...")
		return
	}
	if err := Nc.Publish(EventSubject(event), raw); err != nil {
		log.Warn().Err(err).Str("event", event).Msg("An error occurred when publishing event...")
	}
}

func Close() {
	if Nc == nil {
		return
	}
	if err := Nc.Drain(); err != nil {
		log.Warn().Err(err).Msg("An error occurred when draining nats connection...")
	}
}
