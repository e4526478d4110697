package models

import "time"

// Message is one letter between matched penpals. Messages are immutable once
// created; DeliverAt is always CreatedAt plus the configured delivery delay.
type Message struct {
	ID         string     `dynamodbav:"id" json:"id"`
	From       string     `dynamodbav:"from" json:"from"`
	To         string     `dynamodbav:"to" json:"to"`
	Content    string     `dynamodbav:"content" json:"content"`
	CreatedAt  time.Time  `dynamodbav:"createdAt" json:"createdAt"`
	DeliverAt  time.Time  `dynamodbav:"deliverAt" json:"deliverAt"`
	NotifiedAt *time.Time `dynamodbav:"notifiedAt,omitempty" json:"notifiedAt,omitempty"`
}

// MessageView is a message as seen by one participant. Content is nil for
// letters addressed to the viewer that have not reached their delivery time.
type MessageView struct {
	ID        string    `json:"id"`
	From      string    `json:"from"`
	To        string    `json:"to"`
	Content   *string   `json:"content"`
	CreatedAt time.Time `json:"createdAt"`
	DeliverAt time.Time `json:"deliverAt"`
	Delivered bool      `json:"delivered"`
}

// ViewFor renders the message for one viewer at the given instant.
func (m *Message) ViewFor(viewer string, now time.Time) MessageView {
	delivered := !now.Before(m.DeliverAt)
	view := MessageView{
		ID:        m.ID,
		From:      m.From,
		To:        m.To,
		CreatedAt: m.CreatedAt,
		DeliverAt: m.DeliverAt,
		Delivered: delivered,
	}
	if delivered || m.From == viewer {
		content := m.Content
		view.Content = &content
	}
	return view
}
