package product

import "errors"

var (
	// -- Resource State --
	ErrProductNotFound = errors.New("product not found")

	// -- Validation & Input --
	ErrInvalidFacetID = errors.New("facet ids must be integers")
	ErrInvalidToggle  = errors.New("toggle values must be \"true\" or \"false\"")
	ErrInvalidPage    = errors.New("page must be a positive integer")
	ErrInvalidLimit   = errors.New("limit must be a positive integer")
)
