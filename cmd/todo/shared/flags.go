package shared

import (
	"fmt"
	"strconv"
)

// BoolValue is a pflag.Value for booleans that always takes an argument, so
// both `--completed true` and `--completed=true` parse. The stock bool flag
// only accepts the `=` form.
type BoolValue struct {
	p *bool
}

// NewBoolValue returns a BoolValue writing to p, initialised to def.
func NewBoolValue(p *bool, def bool) *BoolValue {
	*p = def
	return &BoolValue{p: p}
}

func (b *BoolValue) Set(s string) error {
	v, err := strconv.ParseBool(s)
	if err != nil {
		return fmt.Errorf("invalid boolean %q", s)
	}
	*b.p = v
	return nil
}

func (b *BoolValue) String() string {
	if b == nil || b.p == nil {
		return "false"
	}
	return strconv.FormatBool(*b.p)
}

func (*BoolValue) Type() string { return "bool" }
