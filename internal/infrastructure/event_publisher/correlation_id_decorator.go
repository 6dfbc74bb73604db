package event_publisher

import (
	"github.com/ThreeDotsLabs/watermill/message"

	"quickshow/internal/log"
)

// CorrelationPublisherDecorator copies the correlation id from the
// publishing context into message metadata, so consumers log under the
// same id as the request that triggered the event.
type CorrelationPublisherDecorator struct {
	message.Publisher
}

func (c CorrelationPublisherDecorator) Publish(topic string, messages ...*message.Message) error {
	for _, msg := range messages {
		msg.Metadata.Set("correlation_id", log.CorrelationIDFromContext(msg.Context()))
	}
	return c.Publisher.Publish(topic, messages...)
}
