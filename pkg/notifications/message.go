package notifications

// Message is a notification that can be rendered as a Microsoft Teams card
type Message interface {
	AsTeamsMessage() (*MessageCard, error)
}
