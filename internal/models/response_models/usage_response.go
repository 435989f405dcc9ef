package response_models

// UsageReport is what the dashboard renders: current tier, counters, the
// limits enforced for that tier, and the tier-change log. Limits come from
// the same table the entitlement gate reads.
type UsageReport struct {
	Tier    string              `json:"tier"`
	Usage   map[string]int      `json:"usage"`
	Limits  map[string]int      `json:"limits"`
	History []TierHistoryRecord `json:"history,omitempty"`
}

type TierHistoryRecord struct {
	Tier         string `json:"tier"`
	StartDate    int64  `json:"start_date"`
	EndDate      *int64 `json:"end_date,omitempty"`
	DurationDays *int   `json:"duration_days,omitempty"`
	IsCurrent    bool   `json:"is_current"`
	ChangeReason string `json:"change_reason,omitempty"`
}
