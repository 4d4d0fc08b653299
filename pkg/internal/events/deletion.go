package events

import (
	"fmt"

	"git.solsynth.dev/hypernet/quill/pkg/internal/gap"
	"git.solsynth.dev/hypernet/quill/pkg/internal/services"
	jsoniter "github.com/json-iterator/go"
	"github.com/nats-io/nats.go"
	"github.com/rs/zerolog/log"
)

const AccountDeletionEvent = "accounts.deletion"

type AccountDeletionPayload struct {
	ID uint `json:"id"`
}

// HandleAccountDeletion runs the cascade for an account removed by the identity provider.
func HandleAccountDeletion(raw []byte) error {
	var data AccountDeletionPayload
	if err := jsoniter.Unmarshal(raw, &data); err != nil {
		return fmt.Errorf("unable to decode account deletion event: %v", err)
	} else if data.ID == 0 {
		return fmt.Errorf("account deletion event carries no account id")
	}

	return services.DeleteAccount(data.ID)
}

func SubscribeAccountDeletion() (*nats.Subscription, error) {
	if gap.Nc == nil {
		return nil, nil
	}

	subject := gap.EventSubject(AccountDeletionEvent)
	return gap.Nc.QueueSubscribe(subject, "quill", func(msg *nats.Msg) {
		if err := HandleAccountDeletion(msg.Data); err != nil {
			log.Error().Err(err).Str("subject", msg.Subject).Msg("An error occurred when handling account deletion...")
			return
		}
		log.Info().Str("subject", msg.Subject).Msg("Handled account deletion event.")
	})
}
