package meshbuf

import (
	"errors"
	"fmt"
)

// Sentinels matched by errors.Is against the typed errors below.
var (
	ErrBufferAccess = errors.New("buffer access")
	ErrCapacity     = errors.New("capacity")
)

// BufferAccessError reports a required buffer that is missing or cannot be
// read as whole records.
type BufferAccessError struct {
	Buffer string
	Reason string
}

func (e *BufferAccessError) Error() string {
	return fmt.Sprintf("meshbuf: %s buffer: %s", e.Buffer, e.Reason)
}

func (e *BufferAccessError) Is(target error) bool { return target == ErrBufferAccess }

// CapacityError reports an index or a size that does not fit the buffer it
// addresses. Element is the position in the part selection that faulted, or -1
// when the fault is not tied to one element.
type CapacityError struct {
	Buffer  string
	Need    int
	Have    int
	Element int
}

func (e *CapacityError) Error() string {
	if e.Element >= 0 {
		return fmt.Sprintf("meshbuf: %s buffer: selection entry %d: index %d outside [0,%d)",
			e.Buffer, e.Element, e.Need, e.Have)
	}
	return fmt.Sprintf("meshbuf: %s buffer: need %d, have %d", e.Buffer, e.Need, e.Have)
}

func (e *CapacityError) Is(target error) bool { return target == ErrCapacity }
