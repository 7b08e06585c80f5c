package domain

type Lodging struct {
	ID          int64
	Name        string
	Description string
	Price       string // fixed-point decimal text as stored, e.g. "129.99"
}

// LodgingInput carries lodging attributes without any validation; storage
// constraints are the only gate.
type LodgingInput struct {
	Name        *string
	Description *string
	Price       *string
}
