package dlg3

import (
	"fmt"
	"io"

	json "github.com/goccy/go-json"
)

// Report is the JSON document describing one file: its identification
// data, extents and attribute counts.
type Report struct {
	Path        string     `json:"path,omitempty"`
	Summary     Summary    `json:"summary"`
	BoundingBox Bounds     `json:"bounding_box"`
	Extent      Bounds     `json:"extent"`
	Attributes  AttrCounts `json:"attributes"`
	IslandAreas []int      `json:"island_areas,omitempty"`
}

// Report collects the file's Report.
func (f *File) Report() Report {
	var withIslands []int
	for _, a := range f.AreasWithIslands() {
		withIslands = append(withIslands, a.ID)
	}
	return Report{
		Path:        f.Path,
		Summary:     f.Summary(),
		BoundingBox: f.BoundingBox(),
		Extent:      f.Bounds(),
		Attributes:  FileAttrCounts(f),
		IslandAreas: withIslands,
	}
}

// WriteJSON writes v to w as indented JSON followed by a newline.
func WriteJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encode json: %w", err)
	}
	return nil
}

// FeatureCollection is a GeoJSON feature collection in map ground units.
type FeatureCollection struct {
	Type     string    `json:"type"`
	Features []Feature `json:"features"`
}

// Feature is one GeoJSON feature.
type Feature struct {
	Type       string            `json:"type"`
	Geometry   GeoJSONGeometry   `json:"geometry"`
	Properties FeatureProperties `json:"properties"`
}

// FeatureProperties identify the entity behind a feature.
type FeatureProperties struct {
	Kind  string   `json:"kind"`
	ID    int      `json:"id"`
	Attrs []string `json:"attrs,omitempty"`
}

// GeoJSONGeometry holds coordinates as [x, y] pairs. Only the member
// matching Type is set: Point, LineString or Polygon.
type GeoJSONGeometry struct {
	Type        string `json:"type"`
	Coordinates any    `json:"coordinates"`
}

func pair(p Point) []float64 {
	return []float64{p.Long, p.Lat}
}

func ring(pts []Point) [][]float64 {
	r := make([][]float64, len(pts))
	for i, p := range pts {
		r[i] = pair(p)
	}
	return r
}

func attrKeys(attrs []Attr) []string {
	if len(attrs) == 0 {
		return nil
	}
	keys := make([]string, len(attrs))
	for i, a := range attrs {
		keys[i] = a.Key()
	}
	return keys
}

// FeatureCollection converts every positioned node, every line with
// coordinates and every area to a GeoJSON feature. Area polygons carry
// their outer boundary followed by one ring per island.
func (f *File) FeatureCollection() (FeatureCollection, error) {
	fc := FeatureCollection{Type: "FeatureCollection", Features: []Feature{}}

	for _, n := range f.Nodes {
		if n.Long == nil || n.Lat == nil {
			continue
		}
		fc.Features = append(fc.Features, Feature{
			Type:       "Feature",
			Geometry:   GeoJSONGeometry{Type: "Point", Coordinates: pair(Point{Long: *n.Long, Lat: *n.Lat})},
			Properties: FeatureProperties{Kind: KindNode.String(), ID: n.ID, Attrs: attrKeys(n.Attrs)},
		})
	}

	for _, a := range f.Areas {
		outer, err := f.AreaPoints(a.ID)
		if err != nil {
			return FeatureCollection{}, err
		}
		rings := [][][]float64{ring(outer)}
		for k := range a.Islands {
			isle, err := f.IslandPoints(a.ID, k)
			if err != nil {
				return FeatureCollection{}, err
			}
			rings = append(rings, ring(isle))
		}
		fc.Features = append(fc.Features, Feature{
			Type:       "Feature",
			Geometry:   GeoJSONGeometry{Type: "Polygon", Coordinates: rings},
			Properties: FeatureProperties{Kind: KindArea.String(), ID: a.ID, Attrs: attrKeys(a.Attrs)},
		})
	}

	for _, l := range f.Lines {
		if len(l.Coords) == 0 {
			continue
		}
		fc.Features = append(fc.Features, Feature{
			Type:       "Feature",
			Geometry:   GeoJSONGeometry{Type: "LineString", Coordinates: ring(l.Coords)},
			Properties: FeatureProperties{Kind: KindLine.String(), ID: l.ID, Attrs: attrKeys(l.Attrs)},
		})
	}

	return fc, nil
}
