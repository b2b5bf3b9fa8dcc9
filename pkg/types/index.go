package types

import "fmt"

// Index is a one-based position into a visible listing. The zero value is not
// a valid Index; build one with NewIndex or IndexFromZeroBased.
type Index struct {
	zeroBased int
}

// NewIndex builds an Index from a one-based position.
func NewIndex(oneBased int) (Index, error) {
	if oneBased <= 0 {
		return Index{}, fmt.Errorf("%w: index must be a positive integer, got %d", ErrInvalidArgument, oneBased)
	}
	return Index{zeroBased: oneBased - 1}, nil
}

// IndexFromZeroBased builds an Index from a zero-based position.
func IndexFromZeroBased(zeroBased int) (Index, error) {
	return NewIndex(zeroBased + 1)
}

func (i Index) ZeroBased() int { return i.zeroBased }

func (i Index) OneBased() int { return i.zeroBased + 1 }

// In reports whether the index addresses an element of a listing of size n.
func (i Index) In(n int) bool {
	return i.zeroBased >= 0 && i.zeroBased < n
}

// Check returns ErrIndexOutOfRange when the index does not fit a listing of
// size n.
func (i Index) Check(n int) error {
	if !i.In(n) {
		return fmt.Errorf("%w: %d (listing has %d entries)", ErrIndexOutOfRange, i.OneBased(), n)
	}
	return nil
}

func (i Index) String() string {
	return fmt.Sprintf("%d", i.OneBased())
}
