package content

import (
	"errors"
	"fmt"
)

// AcquisitionError means page content could not be obtained or was too
// short to enrich from. The entry is skipped and left for a later
// attempt; this is never fatal to the batch.
type AcquisitionError struct {
	URL     string
	Message string
	Cause   error
}

func (e *AcquisitionError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("acquisition failed for %s: %s: %v", e.URL, e.Message, e.Cause)
	}
	return fmt.Sprintf("acquisition failed for %s: %s", e.URL, e.Message)
}

func (e *AcquisitionError) Unwrap() error {
	return e.Cause
}

// IsAcquisitionFailure reports whether err is an AcquisitionError.
func IsAcquisitionFailure(err error) bool {
	var target *AcquisitionError
	return errors.As(err, &target)
}
