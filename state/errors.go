package state

import "errors"

var errNoAlternatives = errors.New("state: choice without alternatives")
