package people

import "fmt"

// NoMatchMessage is the summary text when a bulk delete matched nothing.
const NoMatchMessage = "no person with given first name found"

// DeleteSummary tallies a bulk delete.
type DeleteSummary struct {
	// Total is the number of records that matched the lookup.
	Total int
	// Deleted is the number of those answered with 200 OK.
	Deleted int
}

// Failed returns how many matched records were not confirmed deleted.
func (s DeleteSummary) Failed() int {
	return s.Total - s.Deleted
}

// String renders the summary as "<deleted>/<total> deleted", or
// NoMatchMessage when nothing matched.
func (s DeleteSummary) String() string {
	if s.Total == 0 {
		return NoMatchMessage
	}
	return fmt.Sprintf("%d/%d deleted", s.Deleted, s.Total)
}
