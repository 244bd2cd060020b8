package usermanagement

import (
	"time"
)

// QuotaInfo describes a user's remaining chat allowance for the current day.
type QuotaInfo struct {
	CanChat   bool `json:"canChat"`
	Remaining int  `json:"remaining"`
	Limit     int  `json:"limit"`
}

// CheckChatLimit reports how many chats the user has left today. The daily
// counter is lazily reset on the first check after a calendar day change.
func (s *Service) CheckChatLimit(userID string) (QuotaInfo, error) {
	quota, err := s.quotas.GetOrCreateChatQuota(userID)
	if err != nil {
		return QuotaInfo{}, err
	}

	if quota.NeedsReset(time.Now()) {
		if err := s.quotas.ResetChatQuota(userID); err != nil {
			return QuotaInfo{}, err
		}
		quota.DailyCount = 0
	}

	remaining := s.policy.DailyChatLimit - quota.DailyCount
	if remaining < 0 {
		remaining = 0
	}
	return QuotaInfo{
		CanChat:   remaining > 0,
		Remaining: remaining,
		Limit:     s.policy.DailyChatLimit,
	}, nil
}

// CountChatCompletion spends one unit of today's allowance. It returns
// ErrQuotaExceeded, without counting anything, when the limit is already
// reached. The underlying increment is conditional, so two concurrent chats
// cannot push the counter past the limit.
func (s *Service) CountChatCompletion(userID string) error {
	info, err := s.CheckChatLimit(userID)
	if err != nil {
		return err
	}
	if !info.CanChat {
		return ErrQuotaExceeded
	}
	ok, err := s.quotas.IncrementChatQuota(userID, s.policy.DailyChatLimit)
	if err != nil {
		return err
	}
	if !ok {
		return ErrQuotaExceeded
	}
	return nil
}
