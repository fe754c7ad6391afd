package attendance

import "sort"

// Record is one employee's clock events for one day. Stamps are epoch milliseconds.
type Record struct {
	In      *int64 `json:"in,omitempty"`
	Out     *int64 `json:"out,omitempty"`
	InNote  string `json:"inNote,omitempty"`
	OutNote string `json:"outNote,omitempty"`
}

// HasIn reports whether the employee clocked in.
func (r Record) HasIn() bool {
	return r.In != nil
}

// HasOut reports whether the employee clocked out.
func (r Record) HasOut() bool {
	return r.Out != nil
}

// Closed reports whether both stamps are present.
func (r Record) Closed() bool {
	return r.In != nil && r.Out != nil
}

// Day maps employee id to that day's record.
type Day map[string]Record

// Ledger maps day-key to the day's records.
type Ledger map[string]Day

// Day returns the records of a day, never nil.
func (l Ledger) Day(key string) Day {
	if day, ok := l[key]; ok && day != nil {
		return day
	}
	return Day{}
}

// KeysBetween returns the day-keys k with from <= k <= to, ascending.
func (l Ledger) KeysBetween(from, to string) []string {
	var keys []string
	for k := range l {
		if k >= from && k <= to {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)
	return keys
}

// RemoveEmployee drops every record of employeeID and reports whether any existed.
func (l Ledger) RemoveEmployee(employeeID string) bool {
	removed := false
	for _, day := range l {
		if _, ok := day[employeeID]; ok {
			delete(day, employeeID)
			removed = true
		}
	}
	return removed
}
