package domain

// DateLayout is the on-disk format of calendar dates.
const DateLayout = "2006-01-02"

// Deadline is a dated obligation. DueDate is kept as the raw string so records
// with malformed dates survive a load/save round trip.
type Deadline struct {
	ID      string `json:"id,omitempty"`
	UserID  int64  `json:"user_id"`
	Subject string `json:"subject"`
	DueDate string `json:"due_date"`
	Extra   Extra  `json:"-"`
}

func (d *Deadline) UnmarshalJSON(data []byte) error {
	type plain Deadline
	var p plain
	extra, err := decodeWithExtra(data, &p)
	if err != nil {
		return err
	}
	*d = Deadline(p)
	d.Extra = extra
	return nil
}

func (d Deadline) MarshalJSON() ([]byte, error) {
	type plain Deadline
	return encodeWithExtra(plain(d), d.Extra)
}
