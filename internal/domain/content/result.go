package content

// Status distinguishes "nothing to show" from "upstream failed".
type Status string

const (
	StatusOK     Status = "ok"
	StatusEmpty  Status = "empty"
	StatusFailed Status = "failed"
)

// Result is the outcome of one aggregator fetch. Items is never nil so callers can
// render it directly; Err is set only when Status is StatusFailed.
type Result[T any] struct {
	Status Status
	Items  []T
	Err    error
}

func OK[T any](items []T) Result[T] {
	if len(items) == 0 {
		return Empty[T]()
	}
	return Result[T]{Status: StatusOK, Items: items}
}

func Empty[T any]() Result[T] {
	return Result[T]{Status: StatusEmpty, Items: []T{}}
}

func Failed[T any](err error) Result[T] {
	return Result[T]{Status: StatusFailed, Items: []T{}, Err: err}
}

// Map converts the items while keeping status and error.
func Map[T, U any](in Result[T], fn func(T) U) Result[U] {
	out := make([]U, 0, len(in.Items))
	for _, item := range in.Items {
		out = append(out, fn(item))
	}
	return Result[U]{Status: in.Status, Items: out, Err: in.Err}
}

func (r Result[T]) ErrorMessage() string {
	if r.Err == nil {
		return ""
	}
	return r.Err.Error()
}

// Degraded reports status with placeholder items, for rails that must never render empty.
func Degraded[T any](status Status, err error, items []T) Result[T] {
	if items == nil {
		items = []T{}
	}
	return Result[T]{Status: status, Items: items, Err: err}
}
