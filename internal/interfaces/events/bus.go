package events

import (
	"fmt"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/components/cqrs"
	"github.com/ThreeDotsLabs/watermill/message"

	"quickshow/internal/entities"
)

const (
	internalTopicPrefix = "internal-events.svc-quickshow."
	externalTopicPrefix = "events."
)

func NewEventBus(
	pub message.Publisher,
	logger watermill.LoggerAdapter,
) (*cqrs.EventBus, error) {
	return cqrs.NewEventBusWithConfig(
		pub,
		cqrs.EventBusConfig{
			GeneratePublishTopic: func(params cqrs.GenerateEventPublishTopicParams) (string, error) {
				return topicForEvent(params.Event, params.EventName)
			},
			Marshaler: cqrs.JSONMarshaler{
				GenerateName: cqrs.StructName,
			},
			Logger: logger,
		},
	)
}

func topicForEvent(event any, eventName string) (string, error) {
	e, ok := event.(entities.Event)
	if !ok {
		return "", fmt.Errorf("invalid event type: %T doesn't implement entities.Event", event)
	}

	if e.IsInternal() {
		return internalTopicPrefix + eventName, nil
	}
	return externalTopicPrefix + eventName, nil
}
