package layers

import (
	"fmt"
	"strings"

	"github.com/lithammer/fuzzysearch/fuzzy"
	"github.com/pstuifzand/sketchboard/internal/model"
	"github.com/pstuifzand/sketchboard/internal/query"
)

// FindByName returns the layers whose name fuzzy-matches query (case-insensitive),
// bottom first. An empty query matches every layer.
func (m *Manager) FindByName(query string) []model.ImageLayer {
	query = strings.TrimSpace(query)

	m.mu.RLock()
	defer m.mu.RUnlock()

	var found []model.ImageLayer
	for _, l := range m.layers {
		if query == "" || fuzzy.MatchFold(query, l.Name) {
			found = append(found, l)
		}
	}
	return found
}

// Filter returns the layers matching a query expression such as
// "opacity:>=50 -~draft", bottom first.
func (m *Manager) Filter(q string) ([]model.ImageLayer, error) {
	expr, err := query.Parse(q)
	if err != nil {
		return nil, fmt.Errorf("failed to parse layer query: %w", err)
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	var found []model.ImageLayer
	for i := range m.layers {
		if expr.Matches(&m.layers[i]) {
			found = append(found, m.layers[i])
		}
	}
	return found, nil
}
