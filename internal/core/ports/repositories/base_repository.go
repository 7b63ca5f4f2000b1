package repositories

// ListParams carries keyset pagination input shared by list queries.
type ListParams struct {
	Limit     int
	NextToken *string
}
