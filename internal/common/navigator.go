package common

const (
	// Navigator states:
	// * Active while the cursor points at a question
	// * Completed once the cursor moves one past the last question - the
	//   next call to Next() asks for the final result
	//
	NavigatorActive    = iota
	NavigatorCompleted = iota
)

type Navigator struct {
	position int
	length   int
}

// An empty question set starts out completed.
func NewNavigator(length int) *Navigator {
	return &Navigator{length: length}
}

func (n *Navigator) Position() int {
	return n.position
}

func (n *Navigator) Length() int {
	return n.length
}

func (n *Navigator) State() int {
	if n.position >= n.length {
		return NavigatorCompleted
	}
	return NavigatorActive
}

func (n *Navigator) IsLastQuestion() bool {
	return n.length > 0 && n.position == n.length-1
}

func (n *Navigator) CanGoBack() bool {
	return n.position > 0
}

// CanGoForward reports whether Next has somewhere to go. That holds for any
// non-empty navigator: once completed, Next yields the final result.
func (n *Navigator) CanGoForward() bool {
	return n.length > 0
}

// Next advances the cursor. Returns true if the navigator was already
// completed, in which case the caller should produce the final result.
func (n *Navigator) Next() bool {
	if n.State() == NavigatorCompleted {
		return true
	}
	n.position++
	return false
}

func (n *Navigator) Previous() error {
	if n.position == 0 {
		return NewOutOfRangeError(-1, n.length)
	}
	n.position--
	return nil
}

func (n *Navigator) JumpTo(i int) error {
	if i < 0 || i >= n.length {
		return NewOutOfRangeError(i, n.length)
	}
	n.position = i
	return nil
}
