package models

import "time"

type ChatReference string

const (
	FromEmjay    ChatReference = "EMJAY"
	FromCustomer ChatReference = "CUSTOMER"
)

func (c ChatReference) Valid() bool {
	return c == FromEmjay || c == FromCustomer
}

// PushNotification targets a single token or a token list.
type PushNotification struct {
	Title  string            `json:"title"`
	Body   string            `json:"body"`
	Token  string            `json:"token,omitempty"`
	Tokens []string          `json:"tokens,omitempty"`
	Data   map[string]string `json:"data,omitempty"`
}

// Message is one chat line between the shop and a customer.
type Message struct {
	ID         string        `bson:"id" json:"id"`
	CustomerID string        `bson:"customerId" json:"customerId"`
	Message    string        `bson:"message" json:"message"`
	From       ChatReference `bson:"from" json:"from"`
	Timestamp  time.Time     `bson:"timestamp" json:"timestamp"`
	IsRead     bool          `bson:"isRead" json:"isRead"`
}

type LastMessage struct {
	Message   string        `bson:"message" json:"message"`
	Timestamp time.Time     `bson:"timestamp" json:"timestamp"`
	From      ChatReference `bson:"from" json:"from"`
}

// Conversation is the per-customer chat summary.
type Conversation struct {
	ID                  string      `bson:"id" json:"id"`
	CustomerID          string      `bson:"customerId" json:"customerId"`
	LastMessage         LastMessage `bson:"lastMessage" json:"lastMessage"`
	EmjayUnreadCount    int         `bson:"emjayUnreadCount" json:"emjayUnreadCount"`
	CustomerUnreadCount int         `bson:"customerUnreadCount" json:"customerUnreadCount"`
	UpdatedAt           time.Time   `bson:"updatedAt" json:"updatedAt"`
}
