// Package model defines domain types for the project log and its rollups.
package model

// DateLayout is the ISO date format used for LoggedProject.Date.
const DateLayout = "2006-01-02"

// LoggedProject is one completed project recorded by the user.
type LoggedProject struct {
	ID    string
	Name  string
	Price float64 // >= 0
	Hours float64 // >= 0
	Date  string  // DateLayout, kept as typed
}

// Month returns the "YYYY-MM" part of Date, or "" if Date is not an ISO date.
func (p LoggedProject) Month() string {
	if len(p.Date) < 7 || p.Date[4] != '-' {
		return ""
	}
	for i, c := range p.Date[:7] {
		if i == 4 {
			continue
		}
		if c < '0' || c > '9' {
			return ""
		}
	}
	return p.Date[:7]
}
