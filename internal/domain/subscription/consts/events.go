package consts

// Subscription change event types published to Kafka
const (
	EventTypeSubscribed   = "subscribed"
	EventTypeUnsubscribed = "unsubscribed"
)
