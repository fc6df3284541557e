package domain

// Document is the single persisted aggregate: everything the service knows.
type Document struct {
	Users      []User     `json:"users"`
	Tasks      []Task     `json:"tasks"`
	Deadlines  []Deadline `json:"deadlines"`
	Schedules  []Schedule `json:"schedules"`
	NextUserID int64      `json:"next_user_id,omitempty"`
	Extra      Extra      `json:"-"`
}

// NewDocument returns a document with four empty sequences.
func NewDocument() *Document {
	return &Document{
		Users:     []User{},
		Tasks:     []Task{},
		Deadlines: []Deadline{},
		Schedules: []Schedule{},
	}
}

func (d *Document) UnmarshalJSON(data []byte) error {
	type plain Document
	var p plain
	extra, err := decodeWithExtra(data, &p)
	if err != nil {
		return err
	}
	*d = Document(p)
	d.Extra = extra
	d.normalize()
	return nil
}

func (d Document) MarshalJSON() ([]byte, error) {
	type plain Document
	d.normalize()
	return encodeWithExtra(plain(d), d.Extra)
}

// normalize replaces nil sequences so they serialize as [] rather than null.
func (d *Document) normalize() {
	if d.Users == nil {
		d.Users = []User{}
	}
	if d.Tasks == nil {
		d.Tasks = []Task{}
	}
	if d.Deadlines == nil {
		d.Deadlines = []Deadline{}
	}
	if d.Schedules == nil {
		d.Schedules = []Schedule{}
	}
}

// AllocateUserID returns the next user id and advances the counter. Documents
// written before the counter existed continue after the highest id in use.
func (d *Document) AllocateUserID() int64 {
	next := d.NextUserID
	for _, u := range d.Users {
		if u.ID >= next {
			next = u.ID + 1
		}
	}
	if next < 1 {
		next = 1
	}
	d.NextUserID = next + 1
	return next
}

// FindUserByEmail does a case-sensitive exact match.
func (d *Document) FindUserByEmail(email string) (*User, bool) {
	for i := range d.Users {
		if d.Users[i].Email == email {
			return &d.Users[i], true
		}
	}
	return nil, false
}

// FindUserByID looks a user up by id.
func (d *Document) FindUserByID(id int64) (*User, bool) {
	for i := range d.Users {
		if d.Users[i].ID == id {
			return &d.Users[i], true
		}
	}
	return nil, false
}
