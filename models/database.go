package models

// PenpalsTable is the DynamoDB table name for the persisted document
const PenpalsTable = "Penpals"

// DatabaseDocumentID is the fixed partition key of the single document
const DatabaseDocumentID = "penpals"

// Database is the aggregate root persisted as one document: every store
// backend loads and saves it whole.
type Database struct {
	Users        map[string]*User        `dynamodbav:"users" json:"users"`
	PendingCodes map[string]*PendingCode `dynamodbav:"pendingCodes" json:"pendingCodes"`
	Messages     []*Message              `dynamodbav:"messages" json:"messages"`
}

// NewDatabase returns an empty database with initialized collections.
func NewDatabase() *Database {
	return &Database{
		Users:        map[string]*User{},
		PendingCodes: map[string]*PendingCode{},
		Messages:     []*Message{},
	}
}

// Normalize backfills nil collections after deserialization.
func (db *Database) Normalize() {
	if db.Users == nil {
		db.Users = map[string]*User{}
	}
	if db.PendingCodes == nil {
		db.PendingCodes = map[string]*PendingCode{}
	}
	if db.Messages == nil {
		db.Messages = []*Message{}
	}
}

// MessagesBetween returns all messages exchanged between two users, in both
// directions, in stored (append) order.
func (db *Database) MessagesBetween(emailA, emailB string) []*Message {
	var out []*Message
	for _, m := range db.Messages {
		if (m.From == emailA && m.To == emailB) || (m.From == emailB && m.To == emailA) {
			out = append(out, m)
		}
	}
	return out
}
