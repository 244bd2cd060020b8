package types

import (
	"testing"
	"time"
)

func TestNeedsReset(t *testing.T) {
	jakarta := time.FixedZone("UTC+7", 7*60*60)

	t.Run("same day", func(t *testing.T) {
		now := time.Date(2026, 9, 1, 14, 0, 0, 0, time.UTC)
		q := ChatQuota{LastResetDate: now.Add(-2 * time.Hour)}
		if q.NeedsReset(now) {
			t.Error("quota reset two hours ago should not need a reset")
		}
	})

	t.Run("next day", func(t *testing.T) {
		now := time.Date(2026, 9, 2, 0, 5, 0, 0, time.UTC)
		q := ChatQuota{LastResetDate: time.Date(2026, 9, 1, 23, 55, 0, 0, time.UTC)}
		if !q.NeedsReset(now) {
			t.Error("quota from yesterday should need a reset")
		}
	})

	t.Run("stored UTC compared in local zone", func(t *testing.T) {
		// the database hands timestamps back in UTC regardless of the
		// zone they were written in
		now := time.Date(2026, 9, 1, 1, 0, 0, 0, jakarta)
		q := ChatQuota{LastResetDate: now.UTC()}
		if q.NeedsReset(now) {
			t.Errorf("quota reset zero seconds ago should not need a reset, stored=%v now=%v",
				q.LastResetDate, now)
		}
	})

	t.Run("local midnight crossed with UTC stored date", func(t *testing.T) {
		now := time.Date(2026, 9, 2, 0, 30, 0, 0, jakarta)
		q := ChatQuota{LastResetDate: time.Date(2026, 9, 1, 23, 0, 0, 0, jakarta).UTC()}
		if !q.NeedsReset(now) {
			t.Error("quota from before local midnight should need a reset")
		}
	})
}
