package maps

import (
	"github.com/FACorreiaa/go-budget-trip-planner/internal/types"
)

var _ Builder = (*BuilderImpl)(nil)

// Builder projects catalog results into renderable point annotations.
type Builder interface {
	Build(category types.PlaceCategory, center types.Coordinate, places []types.NamedPlace, label string) []types.Annotation
}

// markerOffsetDeg spaces out fallback entries that carry no real coordinate:
// successive entries are offset from the center by a fixed delta in both
// axes so markers do not all overlap. An acknowledged approximation, not a
// geocoding step.
const markerOffsetDeg = 0.004

type BuilderImpl struct{}

func NewBuilderImpl() *BuilderImpl {
	return &BuilderImpl{}
}

func (b *BuilderImpl) Build(category types.PlaceCategory, center types.Coordinate, places []types.NamedPlace, label string) []types.Annotation {
	annotations := make([]types.Annotation, 0, len(places))
	synthesized := 0
	for _, p := range places {
		coord := p.Coordinate
		if !p.HasLocation {
			synthesized++
			coord = types.Coordinate{
				Latitude:  center.Latitude + markerOffsetDeg*float64(synthesized),
				Longitude: center.Longitude + markerOffsetDeg*float64(synthesized),
			}
		}
		annotations = append(annotations, types.Annotation{
			Name:       p.Name,
			Coordinate: coord,
			Category:   category,
			Label:      label,
		})
	}
	return annotations
}
