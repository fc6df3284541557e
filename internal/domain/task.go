package domain

// Task is a to-do item owned by a user.
type Task struct {
	ID        string `json:"id,omitempty"`
	UserID    int64  `json:"user_id"`
	Title     string `json:"title,omitempty"`
	Completed bool   `json:"completed"`
	Extra     Extra  `json:"-"`
}

func (t *Task) UnmarshalJSON(data []byte) error {
	type plain Task
	var p plain
	extra, err := decodeWithExtra(data, &p)
	if err != nil {
		return err
	}
	*t = Task(p)
	t.Extra = extra
	return nil
}

func (t Task) MarshalJSON() ([]byte, error) {
	type plain Task
	return encodeWithExtra(plain(t), t.Extra)
}
