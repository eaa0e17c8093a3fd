package repository

const (
	DefaultListLimit = 25
	MaxListLimit     = 100
)

// ListFilter narrows list queries. Zero values match every row.
type ListFilter struct {
	Status  string
	OwnerID int64
	Limit   int
	Offset  int
}

// Normalize clamps limit and offset into their valid ranges.
func (f ListFilter) Normalize() ListFilter {
	if f.Limit <= 0 {
		f.Limit = DefaultListLimit
	}
	if f.Limit > MaxListLimit {
		f.Limit = MaxListLimit
	}
	if f.Offset < 0 {
		f.Offset = 0
	}
	return f
}

func affected(res interface{ RowsAffected() (int64, error) }) (bool, error) {
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}
