package fieldio

import (
	"encoding/xml"
	"fmt"
	"os"

	"github.com/CourseplayPathEditor/course-generator/pkg/geo"
)

// waypointXML is one serialized course point. Turn flags are omitted
// when unset so a plain headland point stays one short element.
type waypointXML struct {
	XMLName   xml.Name `xml:"waypoint"`
	X         float64  `xml:"x,attr"`
	Y         float64  `xml:"y,attr"`
	Pass      int      `xml:"pass,attr"`
	Track     int      `xml:"track,attr"`
	TurnStart bool     `xml:"turnStart,attr,omitempty"`
	TurnEnd   bool     `xml:"turnEnd,attr,omitempty"`
}

// courseXML is the serialized course document.
type courseXML struct {
	XMLName   xml.Name      `xml:"course"`
	Name      string        `xml:"name,attr,omitempty"`
	Waypoints []waypointXML `xml:"waypoint"`
}

// WriteCourse serializes a composed course to path as XML.
func WriteCourse(name string, courseVertices []geo.Vertex, path string) error {
	doc := courseXML{Name: name}
	for _, v := range courseVertices {
		doc.Waypoints = append(doc.Waypoints, waypointXML{
			X:         v.X,
			Y:         v.Y,
			Pass:      v.PassNumber,
			Track:     v.Track,
			TurnStart: v.TurnStart,
			TurnEnd:   v.TurnEnd,
		})
	}

	data, err := xml.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding course: %w", err)
	}
	data = append([]byte(xml.Header), data...)
	data = append(data, '\n')

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing course file: %w", err)
	}
	return nil
}

// ReadCourse parses a course file written by WriteCourse back into
// vertices, used by tooling that inspects a produced course.
func ReadCourse(path string) (string, []geo.Vertex, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", nil, fmt.Errorf("reading course file: %w", err)
	}
	var doc courseXML
	if err := xml.Unmarshal(data, &doc); err != nil {
		return "", nil, fmt.Errorf("parsing course file: %w", err)
	}
	out := make([]geo.Vertex, len(doc.Waypoints))
	for i, w := range doc.Waypoints {
		out[i] = geo.Vertex{
			Point:      geo.Pt(w.X, w.Y),
			PassNumber: w.Pass,
			Track:      w.Track,
			TurnStart:  w.TurnStart,
			TurnEnd:    w.TurnEnd,
		}
	}
	return doc.Name, out, nil
}
