package pubsub

import "cloud.google.com/go/pubsub"

type client struct {
	client   *pubsub.Client
	teardown func()
}

// EventType represents the type of event/message sent via pubsub.
type EventType string

const (
	EventRoundScored        EventType = "round-scored"
	EventSettlementComputed EventType = "settlement-computed"
	EventCupRoundPlayed     EventType = "cup-round-played"
	EventExpensesSettled    EventType = "expenses-settled"
)
