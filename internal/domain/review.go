package domain

type Review struct {
	ID         int64
	UserID     int64
	BusinessID int64
	Stars      int
	Text       string
}

type ReviewInput struct {
	UserID     *int64
	BusinessID *int64
	Stars      *int
	Text       *string // defaults to "" on create
}

// ReviewUpdate replaces Stars; Text is replaced only when non-nil.
type ReviewUpdate struct {
	Stars *int
	Text  *string
}
