package gpx

import (
	"errors"
	"strconv"

	"github.com/beevik/etree"
	"github.com/quantmind-br/ymaps2gpx/internal/domain"
)

const (
	gpxVersion   = "1.1"
	gpxNamespace = "http://www.topografix.com/GPX/1/1"
	gpxSchema    = "http://www.topografix.com/GPX/1/1/gpx.xsd"

	osmandNamespace = "https://osmand.net"
	xsiNamespace    = "http://www.w3.org/2001/XMLSchema-instance"
)

// Document is a parsed or generated GPX file
type Document struct {
	Name      string
	Creator   string
	Waypoints []Waypoint
}

// Waypoint is a single wpt element
type Waypoint struct {
	Lat     float64
	Lon     float64
	Name    string
	Type    string
	Address string
}

// Build renders the list and its resolved points as a GPX 1.1 document.
// Waypoint order follows the points slice. The list title becomes both the
// metadata name and each waypoint's type, so grouping survives import into
// apps that read the type field.
func Build(list *domain.BookmarkList, points []domain.ResolvedPoint, creator string) *etree.Document {
	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="UTF-8"`)

	root := doc.CreateElement("gpx")
	root.CreateAttr("version", gpxVersion)
	root.CreateAttr("creator", creator)
	root.CreateAttr("xmlns", gpxNamespace)
	root.CreateAttr("xmlns:osmand", osmandNamespace)
	root.CreateAttr("xmlns:xsi", xsiNamespace)
	root.CreateAttr("xsi:schemaLocation", gpxNamespace+" "+gpxSchema)

	title := list.DisplayTitle()

	meta := root.CreateElement("metadata")
	meta.CreateElement("name").SetText(title)

	for _, point := range points {
		wpt := root.CreateElement("wpt")
		wpt.CreateAttr("lat", formatCoord(point.Lat))
		wpt.CreateAttr("lon", formatCoord(point.Lon))
		wpt.CreateElement("name").SetText(point.Name)
		wpt.CreateElement("type").SetText(title)

		ext := wpt.CreateElement("extensions")
		ext.CreateElement("osmand:address").SetText(point.Address)
	}

	doc.Indent(2)
	return doc
}

// Parse reads a GPX document produced by Build back into its parts
func Parse(data []byte) (*Document, error) {
	doc := etree.NewDocument()
	if err := doc.ReadFromBytes(data); err != nil {
		return nil, err
	}

	root := doc.SelectElement("gpx")
	if root == nil {
		return nil, errors.New("gpx: missing root element")
	}

	parsed := &Document{
		Creator: root.SelectAttrValue("creator", ""),
	}
	if meta := root.SelectElement("metadata"); meta != nil {
		if name := meta.SelectElement("name"); name != nil {
			parsed.Name = name.Text()
		}
	}

	for _, wpt := range root.SelectElements("wpt") {
		point := Waypoint{}

		lat, err := strconv.ParseFloat(wpt.SelectAttrValue("lat", ""), 64)
		if err != nil {
			return nil, err
		}
		lon, err := strconv.ParseFloat(wpt.SelectAttrValue("lon", ""), 64)
		if err != nil {
			return nil, err
		}
		point.Lat = lat
		point.Lon = lon

		if name := wpt.SelectElement("name"); name != nil {
			point.Name = name.Text()
		}
		if typ := wpt.SelectElement("type"); typ != nil {
			point.Type = typ.Text()
		}
		if ext := wpt.SelectElement("extensions"); ext != nil {
			if addr := ext.SelectElement("osmand:address"); addr != nil {
				point.Address = addr.Text()
			}
		}

		parsed.Waypoints = append(parsed.Waypoints, point)
	}

	return parsed, nil
}

func formatCoord(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
