package policies

import (
	"errors"
	"fmt"
)

// Error kinds. Every decision failure wraps exactly one of these so the API
// boundary can map kinds to status codes with errors.Is. None is retried;
// each is a terminal decision.
var (
	ErrPermissionDenied = errors.New("Permission denied")
	ErrInvalidState     = errors.New("Invalid state")
	ErrImmutableField   = errors.New("Field cannot be updated")
	ErrInvalidRequest   = errors.New("Invalid request")
	// ErrNotFound covers both absent and not-visible records so an
	// unauthorized actor cannot tell private from missing.
	ErrNotFound = errors.New("Not found")
)

var (
	ErrOnlySellersCanAddCars = fmt.Errorf("%w: only sellers can add cars", ErrPermissionDenied)
	ErrNotListingOwner       = fmt.Errorf("%w: only the owner or an admin can modify this listing", ErrPermissionDenied)
	ErrAdminOnlyApproval     = fmt.Errorf("%w: only admins can change listing approval", ErrPermissionDenied)

	ErrInquiryRequiresAuth   = fmt.Errorf("%w: authentication required to send an inquiry", ErrPermissionDenied)
	ErrInquiryUnapprovedCar  = fmt.Errorf("%w: cannot send an inquiry for an unapproved car", ErrInvalidState)
	ErrInquiryMessageFrozen  = fmt.Errorf("%w: message cannot be updated", ErrImmutableField)
	ErrInquiryNotSellerAdmin = fmt.Errorf("%w: only the inquiry's seller or an admin can update it", ErrPermissionDenied)

	ErrCompareIDsRequired = fmt.Errorf("%w: provide car ids for comparison, e.g. ?ids=1,2,3", ErrInvalidRequest)
	ErrCompareIDsInvalid  = fmt.Errorf("%w: invalid car ids provided", ErrInvalidRequest)
)
