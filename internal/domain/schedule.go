package domain

// Schedule is an entry in a user's day plan.
type Schedule struct {
	ID        string `json:"id,omitempty"`
	UserID    int64  `json:"user_id"`
	Day       string `json:"day"`
	Title     string `json:"title,omitempty"`
	StartTime string `json:"start_time,omitempty"`
	EndTime   string `json:"end_time,omitempty"`
	Extra     Extra  `json:"-"`
}

func (s *Schedule) UnmarshalJSON(data []byte) error {
	type plain Schedule
	var p plain
	extra, err := decodeWithExtra(data, &p)
	if err != nil {
		return err
	}
	*s = Schedule(p)
	s.Extra = extra
	return nil
}

func (s Schedule) MarshalJSON() ([]byte, error) {
	type plain Schedule
	return encodeWithExtra(plain(s), s.Extra)
}
