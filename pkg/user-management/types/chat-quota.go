package types

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ChatQuota counts the chat completions of a user for the current calendar day.
type ChatQuota struct {
	ID primitive.ObjectID `bson:"_id,omitempty" json:"id"`

	UserID        string    `bson:"userID" json:"userID"`
	DailyCount    int       `bson:"dailyCount" json:"dailyCount"`
	LastResetDate time.Time `bson:"lastResetDate" json:"lastResetDate"`
	CreatedAt     time.Time `bson:"createdAt" json:"createdAt"`
}

// NeedsReset reports whether the stored reset date is on another calendar
// day than now (date fields, not a rolling 24h window). The stored timestamp
// comes back from the database in UTC, so compare both in now's location.
func (q ChatQuota) NeedsReset(now time.Time) bool {
	y1, m1, d1 := q.LastResetDate.In(now.Location()).Date()
	y2, m2, d2 := now.Date()
	return y1 != y2 || m1 != m2 || d1 != d2
}
