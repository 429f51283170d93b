// Package person holds the entity used by the invalid-argument demonstration:
// a person whose age setter rejects negative values.
package person

import (
	"fmt"

	"github.com/jsamuelsen11/go-failure-demos/internal/domain"
)

// MsgNegativeAge is the validation message for a negative age.
const MsgNegativeAge = "cannot be negative"

// Person is a named individual with an age in whole years.
type Person struct {
	Name string
	Age  int
}

// SetAge updates the age. A negative value is rejected with a
// *domain.ValidationError and leaves the current age untouched.
func (p *Person) SetAge(age int) error {
	if age < 0 {
		return &domain.ValidationError{Fields: map[string]string{
			"age": fmt.Sprintf("%s, got %d", MsgNegativeAge, age),
		}}
	}
	p.Age = age
	return nil
}
