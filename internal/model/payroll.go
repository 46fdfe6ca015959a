package model

import "fmt"

// PayLine is one {price, amount, total} triple.  Total is derived and
// only ever set by NewPayroll.
type PayLine struct {
	Price  float64
	Amount int
	Total  float64
}

// Payroll groups the three pay lines of a caregiver with their sum.
type Payroll struct {
	Salary    PayLine
	Saturday  PayLine
	Allowance PayLine
	TotalBank float64
}

// PayInput holds the six numbers a salary update consists of.
type PayInput struct {
	SalaryPrice     float64
	SalaryAmount    int
	SaturdayPrice   float64
	SaturdayAmount  int
	AllowancePrice  float64
	AllowanceAmount int
}

// NewPayroll computes every total from in.  Negative prices or amounts
// are rejected with ErrInvalidInput.
func NewPayroll(in PayInput) (Payroll, error) {
	checks := []struct {
		name string
		v    float64
	}{
		{"salary_price", in.SalaryPrice},
		{"salary_amount", float64(in.SalaryAmount)},
		{"saturday_price", in.SaturdayPrice},
		{"saturday_amount", float64(in.SaturdayAmount)},
		{"allowance_price", in.AllowancePrice},
		{"allowance_amount", float64(in.AllowanceAmount)},
	}
	for _, c := range checks {
		if c.v < 0 {
			return Payroll{}, Invalid(fmt.Errorf("%s must not be negative", c.name))
		}
	}

	p := Payroll{
		Salary:    line(in.SalaryPrice, in.SalaryAmount),
		Saturday:  line(in.SaturdayPrice, in.SaturdayAmount),
		Allowance: line(in.AllowancePrice, in.AllowanceAmount),
	}
	p.TotalBank = p.Salary.Total + p.Saturday.Total + p.Allowance.Total
	return p, nil
}

func line(price float64, amount int) PayLine {
	return PayLine{Price: price, Amount: amount, Total: price * float64(amount)}
}
