package domain

// Identity is the authenticated caller a request acts on behalf of.
type Identity struct {
	ID    int64
	Email string
}
