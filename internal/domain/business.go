package domain

type Business struct {
	ID            int64
	OwnerID       *int64 // client-supplied, never verified against users
	Name          string
	StreetAddress string
	City          string
	State         string
	ZipCode       int64
}

// BusinessInput is a create/replace request as submitted. Nil means the attribute was absent.
// owner_id may legitimately be null, so its presence is tracked by OwnerIDSet.
type BusinessInput struct {
	OwnerID       *int64
	OwnerIDSet    bool
	Name          *string
	StreetAddress *string
	City          *string
	State         *string
	ZipCode       *int64
}

// Page is an offset/limit window over an ordered listing.
type Page struct {
	Offset int
	Limit  int
}

const (
	DefaultPageOffset = 0
	DefaultPageLimit  = 3
)
