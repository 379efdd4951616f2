package cli

import (
	"fmt"
	"io"
)

// Navigator renders "go to the login screen" as a terminal message.
type Navigator struct {
	out        io.Writer
	redirected bool
	reason     string
}

func NewNavigator(out io.Writer) *Navigator {
	return &Navigator{out: out}
}

func (n *Navigator) ToLogin(reason string) {
	n.redirected = true
	n.reason = reason
	if reason != "" {
		fmt.Fprintln(n.out, reason)
	}
	fmt.Fprintln(n.out, "Please log in: dashboard -cmd login -email <email> -password <password>")
}

// Redirected reports whether the last command ended on the login screen.
func (n *Navigator) Redirected() bool {
	return n.redirected
}

func (n *Navigator) Reason() string {
	return n.reason
}
