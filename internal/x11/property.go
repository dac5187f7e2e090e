package x11

import (
	"fmt"

	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil/xprop"
	"github.com/matjam/setroot/internal/types"
)

// InternAtom returns the atom for name, creating it if needed.
func (c *Connection) InternAtom(name string) (types.Atom, error) {
	if c.xu != nil {
		atom, err := xprop.Atm(c.xu, name)
		if err != nil {
			return types.AtomNone, protocolError("InternAtom "+name, err)
		}
		return types.Atom(atom), nil
	}

	reply, err := xproto.InternAtom(c.conn, false, uint16(len(name)), name).Reply()
	if err != nil {
		return types.AtomNone, protocolError("InternAtom "+name, err)
	}
	return types.Atom(reply.Atom), nil
}

// GetProperty reads up to two 32-bit units of a property. It returns nil if
// the property is not set and an error if it is set with a different type.
func (c *Connection) GetProperty(win types.Window, atom, typ types.Atom) (*types.Property, error) {
	reply, err := xproto.GetProperty(c.conn, false, xproto.Window(win),
		xproto.Atom(atom), xproto.Atom(typ), 0, 2).Reply()
	if err != nil {
		return nil, protocolError("GetProperty", err)
	}
	if reply.Type == xproto.AtomNone {
		return nil, nil
	}
	if typ != types.AtomNone && types.Atom(reply.Type) != typ {
		return nil, fmt.Errorf("x11: property %d has type %d, want %d", atom, reply.Type, typ)
	}

	return &types.Property{
		Type:   types.Atom(reply.Type),
		Format: reply.Format,
		Value:  reply.Value,
	}, nil
}

// ChangeProperty replaces a property value.
func (c *Connection) ChangeProperty(win types.Window, atom, typ types.Atom, format byte, data []byte) error {
	if format != 8 && format != 16 && format != 32 {
		return fmt.Errorf("x11: invalid property format %d", format)
	}
	err := xproto.ChangePropertyChecked(c.conn, xproto.PropModeReplace, xproto.Window(win),
		xproto.Atom(atom), xproto.Atom(typ), format,
		uint32(len(data)/int(format/8)), data).Check()
	return protocolError("ChangeProperty", err)
}
