package valchain

// Constraint is a predicate paired with the message reported when the
// predicate fails. The rules package produces these for common checks.
type Constraint[U any] struct {
	Check   func(U) bool
	Message string
}

// Errors evaluates the constraint and returns the message when it fails.
func (c Constraint[U]) Errors(u U) []string {
	if c.Check == nil || c.Check(u) {
		return nil
	}
	return []string{c.Message}
}

// Constraints collects the checks registered for one attribute during a
// single combinator call. It is created fresh for each call, handed to the
// caller's configuration function, then evaluated and discarded.
//
// Every registered check runs, in registration order, and their messages are
// concatenated in that order.
type Constraints[U any] struct {
	checks []func(U) []string
}

// Add registers a predicate with a fixed failure message.
func (c *Constraints[U]) Add(pred func(U) bool, msg string) *Constraints[U] {
	if pred == nil {
		return c
	}
	c.checks = append(c.checks, Constraint[U]{Check: pred, Message: msg}.Errors)
	return c
}

// AddFunc registers a function producing zero or more messages, for checks
// whose message depends on the value.
func (c *Constraints[U]) AddFunc(fn func(U) []string) *Constraints[U] {
	if fn == nil {
		return c
	}
	c.checks = append(c.checks, fn)
	return c
}

// Use registers ready-made predicate/message pairs.
func (c *Constraints[U]) Use(rules ...Constraint[U]) *Constraints[U] {
	for _, r := range rules {
		if r.Check == nil {
			continue
		}
		c.checks = append(c.checks, r.Errors)
	}
	return c
}

// Len reports how many checks are registered.
func (c *Constraints[U]) Len() int { return len(c.checks) }

func (c *Constraints[U]) eval(u U) []string {
	var out []string
	for _, check := range c.checks {
		out = append(out, check(u)...)
	}
	return out
}

// buildConstraints runs cfg against a fresh builder and returns the combined
// check function.
func buildConstraints[U any](cfg func(*Constraints[U])) func(U) []string {
	c := &Constraints[U]{}
	if cfg != nil {
		cfg(c)
	}
	return c.eval
}
