package organizer

import (
	"github.com/relormdb/relorm/ormerr"
	"github.com/relormdb/relorm/relation"
)

// ExpandSelector resolves path to either a single primitive-field path
// or, when path names a message, the cartesian set of primitive-field
// paths reachable from it through singular (non-repeated, non-map)
// message fields, in registration order, §4.5.
func (o *Organizer) ExpandSelector(path relation.Path) ([]relation.Path, error) {
	obj, err := o.reg.GetObject(path)
	if err != nil {
		return nil, err
	}
	switch v := obj.(type) {
	case *relation.PrimitiveFieldInfo:
		return []relation.Path{v.Path()}, nil
	case *relation.MessageInfo:
		var out []relation.Path
		o.collectSingularFields(v, &out)
		return out, nil
	default:
		return nil, ormerr.New(ormerr.UnknownPath, path.String(), "selector resolves to neither a field nor a message")
	}
}

// collectSingularFields walks msg's immediate children in declaration
// order, recursing into singular sub-messages and skipping repeated or
// map fields entirely.
func (o *Organizer) collectSingularFields(msg *relation.MessageInfo, out *[]relation.Path) {
	for _, f := range msg.Descriptor().Fields() {
		if f.IsRepeated() || f.IsMap() {
			continue
		}
		childPath := msg.Path().JoinNumber(uint32(f.Number()))
		obj, err := o.reg.GetObject(childPath)
		if err != nil {
			continue
		}
		switch child := obj.(type) {
		case *relation.PrimitiveFieldInfo:
			*out = append(*out, child.Path())
		case *relation.MessageInfo:
			o.collectSingularFields(child, out)
		}
	}
}
