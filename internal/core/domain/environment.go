package domain

import (
	"cmp"
	"fmt"
	"slices"
	"strings"
)

// Mask replaces secure values in any text handed to the reporting sink.
const Mask = "********"

// EnvironmentVariable is a single named value. Secure values are never printed.
type EnvironmentVariable struct {
	Name   string
	Value  string
	Secure bool
}

// EnvironmentContext is an ordered set of environment variables.
// Setting an existing name replaces its value and secure flag but keeps its position.
type EnvironmentContext struct {
	vars  []EnvironmentVariable
	index map[string]int
}

// NewEnvironmentContext creates an EnvironmentContext holding the given variables in order.
func NewEnvironmentContext(vars ...EnvironmentVariable) *EnvironmentContext {
	c := &EnvironmentContext{index: make(map[string]int, len(vars))}
	for _, v := range vars {
		c.Set(v.Name, v.Value, v.Secure)
	}
	return c
}

// Set adds or replaces a variable.
func (c *EnvironmentContext) Set(name, value string, secure bool) {
	if c.index == nil {
		c.index = make(map[string]int)
	}
	v := EnvironmentVariable{Name: name, Value: value, Secure: secure}
	if i, ok := c.index[name]; ok {
		c.vars[i] = v
		return
	}
	c.index[name] = len(c.vars)
	c.vars = append(c.vars, v)
}

// AddAll copies every variable of other into c, overriding existing names.
func (c *EnvironmentContext) AddAll(other *EnvironmentContext) {
	if other == nil {
		return
	}
	for _, v := range other.vars {
		c.Set(v.Name, v.Value, v.Secure)
	}
}

// Get returns the value of a variable.
func (c *EnvironmentContext) Get(name string) (string, bool) {
	i, ok := c.index[name]
	if !ok {
		return "", false
	}
	return c.vars[i].Value, true
}

// Len returns the number of variables.
func (c *EnvironmentContext) Len() int {
	return len(c.vars)
}

// Variables returns a copy of the variables in insertion order.
func (c *EnvironmentContext) Variables() []EnvironmentVariable {
	return slices.Clone(c.vars)
}

// Clone returns an independent copy of c.
func (c *EnvironmentContext) Clone() *EnvironmentContext {
	return NewEnvironmentContext(c.vars...)
}

// Environ returns the variables in "KEY=VALUE" format, suitable for process execution.
func (c *EnvironmentContext) Environ() []string {
	env := make([]string, 0, len(c.vars))
	for _, v := range c.vars {
		env = append(env, v.Name+"="+v.Value)
	}
	return env
}

// SecureValues returns the non-empty values of secure variables, longest first.
func (c *EnvironmentContext) SecureValues() []string {
	var secrets []string
	for _, v := range c.vars {
		if v.Secure && v.Value != "" {
			secrets = append(secrets, v.Value)
		}
	}
	// Longest first so a secret containing another secret is masked whole.
	slices.SortStableFunc(secrets, func(a, b string) int {
		return cmp.Compare(len(b), len(a))
	})
	return slices.Compact(secrets)
}

// Redact masks every secure value found in text.
func (c *EnvironmentContext) Redact(text string) string {
	for _, secret := range c.SecureValues() {
		text = strings.ReplaceAll(text, secret, Mask)
	}
	return text
}

// Report describes every variable as it will be seen by the tasks.
// Names present in processNames are reported as overrides of the agent process environment.
func (c *EnvironmentContext) Report(processNames map[string]bool) []string {
	lines := make([]string, 0, len(c.vars))
	for _, v := range c.vars {
		value := v.Value
		if v.Secure {
			value = Mask
		}
		if processNames[v.Name] {
			lines = append(lines, fmt.Sprintf("overriding environment variable '%s' with value '%s'", v.Name, value))
			continue
		}
		lines = append(lines, fmt.Sprintf("setting environment variable '%s' to value '%s'", v.Name, value))
	}
	return lines
}
