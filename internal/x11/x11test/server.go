// Package x11test provides an in-memory stand-in for an X server. It models
// only what the background engine relies on: server global resource ids,
// root window properties, pixmap ownership and close-down modes.
package x11test

import (
	"encoding/binary"
	"errors"
	"fmt"
	"slices"
	"sync"

	"github.com/matjam/setroot/internal/raster"
	"github.com/matjam/setroot/internal/types"
)

// DefaultGeometry is a small 24-bit TrueColor screen.
var DefaultGeometry = types.Geometry{
	Width:        64,
	Height:       48,
	Depth:        24,
	BitsPerPixel: 32,
	ByteOrder:    types.LSBFirst,
	RedMask:      0xff0000,
	GreenMask:    0x00ff00,
	BlueMask:     0x0000ff,
}

const rootWindow types.Window = 0x100

// Pixmap is the server side state of a pixmap. Its contents are modelled as
// a solid pixel plus the alphas of every image composited onto it.
type Pixmap struct {
	ID     types.Pixmap
	Width  uint16
	Height uint16
	Depth  byte
	Owner  int

	Pixel      uint32
	CopiedFrom types.Drawable
	CopyGC     types.GCParams
	Alphas     []float64
}

// Server is a fake X server. The zero value is not usable; use NewServer.
type Server struct {
	mu sync.Mutex

	geometry types.Geometry
	nextID   uint32
	clients  int

	atoms   map[string]types.Atom
	props   map[types.Atom]types.Property
	pixmaps map[types.Pixmap]*Pixmap
	gcs     map[types.GC]types.GCParams
	killed  map[int]bool

	background types.Pixmap
	published  []types.Pixmap
	surfaces   []*Surface

	// RootPixel is what a copy of the root window contains.
	RootPixel uint32
	// DialErr makes every dial fail.
	DialErr error
	// IgnoreRetain makes retained dials return connections that do not
	// retain their resources.
	IgnoreRetain bool

	failures map[string]error
}

func NewServer(g types.Geometry) *Server {
	return &Server{
		geometry: g,
		nextID:   0x200000,
		atoms:    map[string]types.Atom{"PIXMAP": types.AtomPixmap},
		props:    map[types.Atom]types.Property{},
		pixmaps:  map[types.Pixmap]*Pixmap{},
		gcs:      map[types.GC]types.GCParams{},
		killed:   map[int]bool{},
		failures: map[string]error{},
	}
}

// Fail makes every later request named op fail with err. A nil err clears it.
func (s *Server) Fail(op string, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err == nil {
		delete(s.failures, op)
		return
	}
	s.failures[op] = err
}

// Dial opens an ordinary connection.
func (s *Server) Dial() (*Conn, error) {
	return s.dial(false)
}

// DialRetained opens a connection that retains its resources on close,
// unless IgnoreRetain is set.
func (s *Server) DialRetained() (*Conn, error) {
	return s.dial(!s.IgnoreRetain)
}

func (s *Server) dial(retain bool) (*Conn, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.DialErr != nil {
		return nil, s.DialErr
	}
	s.clients++
	return &Conn{srv: s, id: s.clients, retain: retain}, nil
}

// Pixmap returns the live pixmap with the given id, or nil.
func (s *Server) Pixmap(id types.Pixmap) *Pixmap {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.pixmaps[id]
	if !ok {
		return nil
	}
	cp := *p
	cp.Alphas = slices.Clone(p.Alphas)
	return &cp
}

// PixmapCount returns the number of live pixmaps.
func (s *Server) PixmapCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.pixmaps)
}

// GCCount returns the number of graphics contexts not yet freed.
func (s *Server) GCCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.gcs)
}

// Background returns the background pixmap attribute of the root window.
func (s *Server) Background() types.Pixmap {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.background
}

// Published lists every pixmap that was set as the root background, in
// order.
func (s *Server) Published() []types.Pixmap {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.published)
}

// Surfaces lists every compositing surface created.
func (s *Server) Surfaces() []*Surface {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.surfaces)
}

// SetRecord writes a root property directly, as another client would.
func (s *Server) SetRecord(name string, prop types.Property) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.props[s.intern(name)] = prop
}

// Record returns a root property, or nil if it is not set.
func (s *Server) Record(name string) *types.Property {
	s.mu.Lock()
	defer s.mu.Unlock()
	atom, ok := s.atoms[name]
	if !ok {
		return nil
	}
	prop, ok := s.props[atom]
	if !ok {
		return nil
	}
	prop.Value = slices.Clone(prop.Value)
	return &prop
}

// AddPixmap creates a pixmap owned by a client that has already gone away
// in retain mode, as a background left behind by another setter.
func (s *Server) AddPixmap(pixel uint32) types.Pixmap {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.clients++
	return s.createPixmap(s.clients, s.geometry.Width, s.geometry.Height, s.geometry.Depth, pixel)
}

func (s *Server) intern(name string) types.Atom {
	if atom, ok := s.atoms[name]; ok {
		return atom
	}
	atom := types.Atom(100 + len(s.atoms))
	s.atoms[name] = atom
	return atom
}

func (s *Server) allocID() uint32 {
	s.nextID++
	return s.nextID
}

func (s *Server) createPixmap(owner int, w, h uint16, depth byte, pixel uint32) types.Pixmap {
	id := types.Pixmap(s.allocID())
	s.pixmaps[id] = &Pixmap{ID: id, Width: w, Height: h, Depth: depth, Owner: owner, Pixel: pixel}
	return id
}

// pixelOf returns the contents of a drawable, which must be the root window
// or a live pixmap.
func (s *Server) pixelOf(d types.Drawable) (uint32, *Pixmap, error) {
	if types.Window(d) == rootWindow {
		return s.RootPixel, nil, nil
	}
	p, ok := s.pixmaps[types.Pixmap(d)]
	if !ok {
		return 0, nil, fmt.Errorf("BadDrawable: 0x%x", uint32(d))
	}
	return p.Pixel, p, nil
}

// destroyOwnedBy frees every pixmap created by client.
func (s *Server) destroyOwnedBy(client int) {
	for id, p := range s.pixmaps {
		if p.Owner == client {
			delete(s.pixmaps, id)
		}
	}
}

func encodePixels(g types.Geometry, pixel uint32, w, h int) []byte {
	var order binary.ByteOrder = binary.LittleEndian
	if g.ByteOrder == types.MSBFirst {
		order = binary.BigEndian
	}
	buf := make([]byte, w*h*4)
	for i := 0; i < len(buf); i += 4 {
		order.PutUint32(buf[i:], pixel)
	}
	return buf
}

// ErrClosed is returned for requests on a closed or killed connection.
var ErrClosed = errors.New("x11test: connection closed")

// Surface records the alphas painted through it.
type Surface struct {
	srv    *Server
	dst    types.Pixmap
	Source *raster.Raster
	Closed bool
}

func (sf *Surface) PaintWithAlpha(alpha float64) error {
	s := sf.srv
	s.mu.Lock()
	defer s.mu.Unlock()
	if sf.Closed {
		return errors.New("x11test: paint on closed surface")
	}
	if err := s.failures["Composite"]; err != nil {
		return err
	}
	p, ok := s.pixmaps[sf.dst]
	if !ok {
		return fmt.Errorf("BadPicture: pixmap 0x%x is gone", uint32(sf.dst))
	}
	p.Alphas = append(p.Alphas, alpha)
	return nil
}

func (sf *Surface) Close() error {
	sf.srv.mu.Lock()
	defer sf.srv.mu.Unlock()
	sf.Closed = true
	return nil
}
