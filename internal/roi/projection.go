package roi

// Projection holds cumulative weekly series for a result.
type Projection struct {
	Savings []float64
	Cost    []float64
}

// Project returns cumulative savings and cumulative tool cost for the first
// weeks weeks. Tool cost accrues evenly across the year.
func Project(res Result, weeks int) Projection {
	if weeks <= 0 {
		return Projection{}
	}
	weeklyCost := res.AnnualToolCost / weeksPerYear
	p := Projection{
		Savings: make([]float64, weeks),
		Cost:    make([]float64, weeks),
	}
	for i := 0; i < weeks; i++ {
		n := float64(i + 1)
		p.Savings[i] = res.WeeklyValue * n
		p.Cost[i] = weeklyCost * n
	}
	return p
}

// Net returns cumulative savings minus cumulative cost per week.
func (p Projection) Net() []float64 {
	out := make([]float64, len(p.Savings))
	for i := range p.Savings {
		out[i] = p.Savings[i] - p.Cost[i]
	}
	return out
}
