// Package result defines the single outcome shape every service operation returns.
// The HTTP layer maps kinds to status codes; services never touch transport concerns.
package result

// Kind tags the outcome of an operation.
type Kind int

const (
	KindOK Kind = iota
	KindInvalid
	KindNotFound
	KindBlocked // domain rule violation, e.g. editing the fallback category
	KindFailed  // infrastructure failure surfaced as a generic error
)

type Result struct {
	Kind    Kind
	Data    any
	Message string            // message code, translatable by the caller
	Fields  map[string]string // field -> message code, set only for KindInvalid
}

// OK wraps a successful outcome carrying data.
func OK(data any) Result { return Result{Kind: KindOK, Data: data} }

// Done is a successful outcome without data, only a message code.
func Done(message string) Result { return Result{Kind: KindOK, Message: message} }

// Invalid reports per-field validation failures. No mutation was performed.
func Invalid(fields map[string]string) Result {
	return Result{Kind: KindInvalid, Message: "validation_failed", Fields: fields}
}

func NotFound(message string) Result { return Result{Kind: KindNotFound, Message: message} }

// Blocked reports a domain rule violation distinct from a validation error.
func Blocked(message string) Result { return Result{Kind: KindBlocked, Message: message} }

// Fail converts an unexpected store error into a generic result. The underlying
// message is carried verbatim; callers decide how much of it to expose.
func Fail(err error) Result {
	msg := "internal_error"
	if err != nil {
		msg = err.Error()
	}
	return Result{Kind: KindFailed, Message: msg}
}

func (r Result) OK() bool { return r.Kind == KindOK }
