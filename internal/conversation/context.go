package conversation

// Context is the ordered log of turns for one document. The first entry is
// always the anchoring system instruction; truncation never evicts it.
type Context struct {
	messages    []Message
	maxRetained int
}

func newContext(systemPrompt string, maxRetained int) *Context {
	return &Context{
		messages:    []Message{{Role: RoleSystem, Content: systemPrompt}},
		maxRetained: maxRetained,
	}
}

// Messages returns a copy of the current log.
func (c *Context) Messages() []Message {
	cp := make([]Message, len(c.messages))
	copy(cp, c.messages)
	return cp
}

// Len reports the number of retained turns.
func (c *Context) Len() int {
	return len(c.messages)
}

// LastRole returns the role of the most recent turn.
func (c *Context) LastRole() string {
	if len(c.messages) == 0 {
		return ""
	}
	return c.messages[len(c.messages)-1].Role
}

func (c *Context) append(role, content string) {
	c.messages = append(c.messages, Message{Role: role, Content: content})
	c.truncate()
}

// truncate retains the system instruction plus the most recent
// maxRetained-1 turns, dropping the oldest non-system turns in order.
func (c *Context) truncate() {
	if c.maxRetained <= 0 || len(c.messages) <= c.maxRetained {
		return
	}
	keep := c.maxRetained - 1
	tail := c.messages[len(c.messages)-keep:]
	retained := make([]Message, 0, c.maxRetained)
	retained = append(retained, c.messages[0])
	retained = append(retained, tail...)
	c.messages = retained
}
