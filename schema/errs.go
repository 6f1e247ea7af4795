package schema

import "errors"

var (
	ErrParse     = errors.New("parse error")
	ErrNotObject = errors.New("schema document is not an object")
)
