package anim

type cleanupAction struct {
	name string
	fn   func()
	done bool
}

// Cleanup collects teardown actions and runs them in reverse order of
// registration. Each action runs at most once.
type Cleanup struct {
	actions []*cleanupAction
}

// Push registers fn under a descriptive name
func (c *Cleanup) Push(name string, fn func()) {
	c.actions = append(c.actions, &cleanupAction{name: name, fn: fn})
}

// Run executes pending actions last-in first-out and returns their names in
// the order they ran. Running an empty or already-run stack is a no-op.
func (c *Cleanup) Run() []string {
	var ran []string
	for i := len(c.actions) - 1; i >= 0; i-- {
		a := c.actions[i]
		if a.done {
			continue
		}
		a.done = true
		a.fn()
		ran = append(ran, a.name)
	}
	c.actions = c.actions[:0]
	return ran
}

// Len returns the number of pending actions
func (c *Cleanup) Len() int {
	n := 0
	for _, a := range c.actions {
		if !a.done {
			n++
		}
	}
	return n
}
