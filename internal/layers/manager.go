// Package layers manages the ordered image layers of a canvas together with
// the selection and layer dialog state.
//
// Every exported Manager method leaves these invariants holding:
//   - z-indexes are exactly 0..n-1 and match slice order
//   - the selected id, when set, names an existing layer
package layers

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"

	"github.com/google/uuid"
	"github.com/pstuifzand/sketchboard/internal/model"
)

var (
	// ErrUnreadable is returned when the raw bytes of a source cannot be read
	ErrUnreadable = errors.New("unreadable image source")
	// ErrUndecodable is returned when the bytes are not a supported image
	ErrUndecodable = errors.New("undecodable image")
	// ErrUnknownLayer is returned when selecting an id that does not exist
	ErrUnknownLayer = errors.New("unknown layer")
	// ErrNotPermutation is returned by reorders that add, drop or repeat layers
	ErrNotPermutation = errors.New("new order is not a permutation of the current layers")
)

// Defaults are the initial attributes of an added layer
type Defaults struct {
	Opacity float64
	X       float64
	Y       float64
}

// DefaultLayerDefaults matches the editor's stock settings
var DefaultLayerDefaults = Defaults{Opacity: 50, X: 100, Y: 100}

// Option configures a Manager
type Option func(*Manager)

// WithDefaults sets the attributes of newly added layers
func WithDefaults(d Defaults) Option {
	return func(m *Manager) { m.defaults = d }
}

// WithIDGenerator replaces the layer id generator
func WithIDGenerator(gen func() string) Option {
	return func(m *Manager) { m.newID = gen }
}

// Manager owns the layers of one editing session
type Manager struct {
	mu         sync.RWMutex
	layers     []model.ImageLayer // index == ZIndex
	selectedID string             // "" means no selection
	dialogOpen bool

	defaults Defaults
	newID    func() string
}

// NewManager creates an empty layer manager
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		layers:   make([]model.ImageLayer, 0),
		defaults: DefaultLayerDefaults,
		newID:    generateID,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

func generateID() string {
	return "layer-" + uuid.NewString()
}

// AddLayer reads and decodes src and appends it as the top layer.
//
// Reading and decoding happen without holding the lock, so other methods may
// run while AddLayer waits. ctx is checked before each stage. On failure the
// collection is left untouched.
func (m *Manager) AddLayer(ctx context.Context, src ImageSource) (model.ImageLayer, error) {
	if err := ctx.Err(); err != nil {
		return model.ImageLayer{}, err
	}
	dataURL, err := readDataURL(src)
	if err != nil {
		return model.ImageLayer{}, fmt.Errorf("failed to read %s: %w", src.Name(), err)
	}

	if err := ctx.Err(); err != nil {
		return model.ImageLayer{}, err
	}
	width, height, err := decodeDimensions(dataURL)
	if err != nil {
		return model.ImageLayer{}, fmt.Errorf("failed to decode %s: %w", src.Name(), err)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	layer := model.ImageLayer{
		ID:       m.newID(),
		Name:     src.Name(),
		Src:      dataURL,
		Opacity:  m.defaults.Opacity,
		X:        m.defaults.X,
		Y:        m.defaults.Y,
		Width:    float64(width),
		Height:   float64(height),
		Rotation: 0,
		Scale:    1,
		ZIndex:   len(m.layers),
	}
	m.layers = append(m.layers, layer)

	log.Printf("Added layer %s (%s, %dx%d) at z=%d", layer.ID, layer.Name, width, height, layer.ZIndex)
	return layer, nil
}

// RemoveLayer deletes the layer with the given id. Unknown ids are ignored.
func (m *Manager) RemoveLayer(id string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	idx := m.indexOf(id)
	if idx == -1 {
		return
	}

	m.layers = append(m.layers[:idx], m.layers[idx+1:]...)
	if m.selectedID == id {
		m.selectedID = ""
	}
	m.renumber()
}

// UpdateLayer applies patch to the layer with the given id.
// It returns false for unknown ids. Values are not range checked.
func (m *Manager) UpdateLayer(id string, patch model.LayerPatch) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	idx := m.indexOf(id)
	if idx == -1 {
		return false
	}
	patch.Apply(&m.layers[idx])
	return true
}

// SelectLayer selects the layer with the given id; "" clears the selection.
// Selecting an unknown id returns ErrUnknownLayer and keeps the current selection.
func (m *Manager) SelectLayer(id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if id != "" && m.indexOf(id) == -1 {
		return fmt.Errorf("%w: %s", ErrUnknownLayer, id)
	}
	m.selectedID = id
	return nil
}

// ReorderLayers replaces the collection with newOrder, deriving each z-index
// from its position. newOrder must hold every current layer exactly once;
// the given values replace the stored ones.
func (m *Manager) ReorderLayers(newOrder []model.ImageLayer) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	ids := make([]string, len(newOrder))
	for i, l := range newOrder {
		ids[i] = l.ID
	}
	if err := m.checkPermutation(ids); err != nil {
		return err
	}

	m.layers = append(make([]model.ImageLayer, 0, len(newOrder)), newOrder...)
	m.renumber()
	return nil
}

// ReorderByID reorders the layers by id, bottom first
func (m *Manager) ReorderByID(ids []string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.checkPermutation(ids); err != nil {
		return err
	}

	reordered := make([]model.ImageLayer, len(ids))
	for i, id := range ids {
		reordered[i] = m.layers[m.indexOf(id)]
	}
	m.layers = reordered
	m.renumber()
	return nil
}

// SetDialogOpen sets the dialog flag. Closing the dialog clears the selection.
func (m *Manager) SetDialogOpen(open bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.dialogOpen = open
	if !open {
		m.selectedID = ""
	}
}

// DialogOpen reports whether the layer dialog is open
func (m *Manager) DialogOpen() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.dialogOpen
}

// SelectedID returns the selected layer id, or "" when nothing is selected
func (m *Manager) SelectedID() string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.selectedID
}

// SelectedLayer returns a copy of the selected layer
func (m *Manager) SelectedLayer() (model.ImageLayer, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.selectedID == "" {
		return model.ImageLayer{}, false
	}
	idx := m.indexOf(m.selectedID)
	if idx == -1 {
		return model.ImageLayer{}, false
	}
	return m.layers[idx], true
}

// Layer returns a copy of the layer with the given id
func (m *Manager) Layer(id string) (model.ImageLayer, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	idx := m.indexOf(id)
	if idx == -1 {
		return model.ImageLayer{}, false
	}
	return m.layers[idx], true
}

// Layers returns a copy of all layers, bottom first
func (m *Manager) Layers() []model.ImageLayer {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]model.ImageLayer, len(m.layers))
	copy(out, m.layers)
	return out
}

// Len returns the number of layers
func (m *Manager) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.layers)
}

func (m *Manager) indexOf(id string) int {
	for i := range m.layers {
		if m.layers[i].ID == id {
			return i
		}
	}
	return -1
}

// renumber rewrites every z-index to the layer's position
func (m *Manager) renumber() {
	for i := range m.layers {
		m.layers[i].ZIndex = i
	}
}

func (m *Manager) checkPermutation(ids []string) error {
	if len(ids) != len(m.layers) {
		return fmt.Errorf("%w: got %d layers, have %d", ErrNotPermutation, len(ids), len(m.layers))
	}
	seen := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		if _, dup := seen[id]; dup {
			return fmt.Errorf("%w: duplicate %s", ErrNotPermutation, id)
		}
		if m.indexOf(id) == -1 {
			return fmt.Errorf("%w: unknown %s", ErrNotPermutation, id)
		}
		seen[id] = struct{}{}
	}
	return nil
}
