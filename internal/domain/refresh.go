package domain

// RefreshIntent asks for a user's home tab to be re-rendered after a mutation.
// The zero value means no refresh.
type RefreshIntent struct {
	TeamID string
	UserID string
}

func RefreshFor(actor Actor) RefreshIntent {
	return RefreshIntent{TeamID: actor.TeamID, UserID: actor.UserID}
}

func (r RefreshIntent) Requested() bool {
	return r.TeamID != "" && r.UserID != ""
}
