package registry

import "github.com/zclconf/go-cty/cty"

// StringArg extracts a string argument. The second return is false when the
// argument is absent, null, or not a string.
func (c *Call) StringArg(name string) (string, bool) {
	v, ok := c.Arguments[name]
	if !ok || v.IsNull() || v.Type() != cty.String {
		return "", false
	}
	return v.AsString(), true
}

// IntArg extracts a whole-number argument.
func (c *Call) IntArg(name string) (int64, bool) {
	v, ok := c.Arguments[name]
	if !ok || v.IsNull() || v.Type() != cty.Number {
		return 0, false
	}
	n, acc := v.AsBigFloat().Int64()
	if acc != 0 {
		return 0, false
	}
	return n, true
}

// BoolArg extracts a boolean argument.
func (c *Call) BoolArg(name string) (bool, bool) {
	v, ok := c.Arguments[name]
	if !ok || v.IsNull() || v.Type() != cty.Bool {
		return false, false
	}
	return v.True(), true
}
