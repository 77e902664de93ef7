// Package validate is the parse-don't-validate boundary of the simulation
// core. Each function takes one raw form segment and returns either a fully
// typed value or the complete list of field violations; unvalidated data
// never flows further down the pipeline.
package validate

import (
	"regexp"

	pkgerrors "crediris/pkg/errors"
)

// French mobile/landline in national (0-prefixed) or international form.
var phonePattern = regexp.MustCompile(`^(\+33|0)[1-9](\d{2}){4}$`)

var postalCodePattern = regexp.MustCompile(`^\d{5}$`)

// Deliberately loose; deliverability is the mailer's problem.
var emailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

type violations []pkgerrors.FieldViolation

func (v *violations) add(field, message string) {
	*v = append(*v, pkgerrors.FieldViolation{Field: field, Message: message})
}
