package employee

import "errors"

var (
	ErrEmployeeNotFound = errors.New("employee not found")
	ErrRelationNotFound = errors.New("employment relation not found")
)
