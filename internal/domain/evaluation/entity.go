package evaluation

// Evaluation is one scored review of an intern. Scores are 1-5.
type Evaluation struct {
	Date          string `json:"date"`
	Discipline    int    `json:"discipline"`
	Skill         int    `json:"skill"`
	Communication int    `json:"communication"`
	Notes         string `json:"notes,omitempty"`
}

// Bag holds an employee's evaluations in insertion order.
type Bag struct {
	Records []Evaluation `json:"records"`
}

// Book maps employee id to its bag.
type Book map[string]Bag

// Average is the mean of the three scores.
func (e Evaluation) Average() float64 {
	return float64(e.Discipline+e.Skill+e.Communication) / 3
}
