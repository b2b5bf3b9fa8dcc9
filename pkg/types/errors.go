package types

import "errors"

// Kind classifies a failure so the shell and tests can react to it without
// matching on message text.
type Kind string

const (
	KindUnknown         Kind = "Unknown"
	KindParse           Kind = "ParseError"
	KindUnknownCommand  Kind = "UnknownCommand"
	KindUnknownVariant  Kind = "UnknownVariant"
	KindIndexOutOfRange Kind = "IndexOutOfRange"
	KindNotFound        Kind = "NotFound"
	KindDuplicate       Kind = "Duplicate"
	KindInvalidArgument Kind = "InvalidArgument"
)

// Sentinel errors, one per Kind. Failure sites wrap them with
// fmt.Errorf("%w: ...") so errors.Is and KindOf keep working.
var (
	ErrParse           = errors.New("invalid command format")
	ErrUnknownCommand  = errors.New("unknown command")
	ErrUnknownVariant  = errors.New("event type not recognized")
	ErrIndexOutOfRange = errors.New("index is out of range")
	ErrNotFound        = errors.New("not found")
	ErrDuplicate       = errors.New("already exists")
	ErrInvalidArgument = errors.New("invalid argument")
)

var kindSentinels = []struct {
	kind Kind
	err  error
}{
	{KindParse, ErrParse},
	{KindUnknownCommand, ErrUnknownCommand},
	{KindUnknownVariant, ErrUnknownVariant},
	{KindIndexOutOfRange, ErrIndexOutOfRange},
	{KindNotFound, ErrNotFound},
	{KindDuplicate, ErrDuplicate},
	{KindInvalidArgument, ErrInvalidArgument},
}

// KindOf reports the Kind of err, or KindUnknown when err wraps none of the
// sentinels.
func KindOf(err error) Kind {
	if err == nil {
		return ""
	}
	for _, ks := range kindSentinels {
		if errors.Is(err, ks.err) {
			return ks.kind
		}
	}
	return KindUnknown
}
