// Package people is compiled together with its generated mappers by the gen
// integration test.
package people

import "time"

type Role int32

const (
	RoleAdmin Role = iota
	RoleUser
)

//rowmap:generate
type Person struct {
	ID   int
	Name string
	Role Role
}

type Audit struct {
	CreatedAt time.Time
	Revision  int
	Note      *string
}

type code struct {
	Code string
}

type Tagged struct {
	code
}

type Coded struct {
	Code string
}

//rowmap:generate
type Employee struct {
	Person
	*Audit
	Tagged
	Coded
	Name   string
	Bonus  *float64
	Tags   []string
	Hidden string `rowmap:"-"`
	Label  string `rowmap:"title"`
	Span   time.Duration
}

func NewEmployee() *Employee {
	return &Employee{Tags: []string{}, Span: time.Minute}
}

//rowmap:generate
type Badge struct {
	Serial string
}

// NewBadge can fail, so Badge only gets a setter.
func NewBadge() (*Badge, error) {
	return &Badge{Serial: "B-0"}, nil
}
