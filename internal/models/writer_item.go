package models

type ItemStatus string

const (
	ItemWritten  ItemStatus = "written"
	ItemApproved ItemStatus = "approved"
	ItemDropped  ItemStatus = "dropped"
)

func ParseItemStatus(s string) (ItemStatus, bool) {
	switch ItemStatus(s) {
	case ItemWritten, ItemApproved, ItemDropped:
		return ItemStatus(s), true
	}
	return "", false
}

func (s ItemStatus) Valid() bool {
	_, ok := ParseItemStatus(string(s))
	return ok
}

// WriterItem is a piece of written content. Created as written; the
// status is overwritten unconditionally on transition, so re-approving
// or re-dropping any number of times is allowed.
type WriterItem struct {
	ID      string     `json:"id"`
	DateKey string     `json:"date_key"`
	Title   string     `json:"title"`
	Client  string     `json:"client"`
	Status  ItemStatus `json:"status"`
}
