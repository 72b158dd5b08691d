package server

import (
	"fmt"
	"net/http"

	"github.com/df07/go-recursive-raytracer/pkg/core"
	"github.com/df07/go-recursive-raytracer/pkg/integrator"
	"github.com/df07/go-recursive-raytracer/pkg/material"
	"github.com/df07/go-recursive-raytracer/pkg/renderer"
)

// InspectResponse represents the JSON response for object inspection
type InspectResponse struct {
	Hit         bool                   `json:"hit"`
	SphereIndex int                    `json:"sphereIndex"`
	Center      [3]float64             `json:"center"`
	Radius      float64                `json:"radius"`
	Point       [3]float64             `json:"point"`
	Normal      [3]float64             `json:"normal"`
	Distance    float64                `json:"distance"`
	Lighting    float64                `json:"lighting"`
	Color       string                 `json:"color"` // Final pixel color as #rrggbb
	Epsilon     float64                `json:"epsilon"`
	Material    map[string]interface{} `json:"material"`
}

func toArray(v core.Vec3) [3]float64 {
	return [3]float64{v.X, v.Y, v.Z}
}

func hexColor(c core.Vec3) string {
	c = c.ClampColor()
	return fmt.Sprintf("#%02x%02x%02x", int(c.X+0.5), int(c.Y+0.5), int(c.Z+0.5))
}

// extractMaterialInfo describes a Phong material for the inspector panel
func extractMaterialInfo(m material.Phong) map[string]interface{} {
	properties := map[string]interface{}{
		"color":      hexColor(m.Color),
		"rgb":        toArray(m.Color),
		"reflective": m.Reflective,
	}
	if m.HasSpecular() {
		properties["specular"] = m.Specular
	} else {
		properties["specular"] = "none"
	}
	return properties
}

// newInspectResponse converts an inspection into its JSON form
func newInspectResponse(inspection integrator.Inspection, found bool, epsilon float64) InspectResponse {
	if !found {
		return InspectResponse{Hit: false, SphereIndex: -1, Epsilon: epsilon}
	}
	return InspectResponse{
		Hit:         true,
		SphereIndex: inspection.Index,
		Center:      toArray(inspection.Sphere.Center),
		Radius:      inspection.Sphere.Radius,
		Point:       toArray(inspection.Point),
		Normal:      toArray(inspection.Normal),
		Distance:    inspection.Distance,
		Lighting:    inspection.Lighting,
		Color:       hexColor(inspection.Color),
		Epsilon:     epsilon,
		Material:    extractMaterialInfo(inspection.Sphere.Material),
	}
}

// handleInspect reports which sphere an image pixel shows and how it is lit.
// x and y are image coordinates with the origin at the top-left corner.
func (s *Server) handleInspect(w http.ResponseWriter, r *http.Request) {
	req, err := s.parseRenderRequest(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": fmt.Sprintf("Invalid request: %v", err)})
		return
	}

	pixelX, err := parseIntParam(r.URL.Query(), "x", -1, 0, req.Width-1)
	if err == nil && pixelX < 0 {
		err = fmt.Errorf("missing x")
	}
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	pixelY, err := parseIntParam(r.URL.Query(), "y", -1, 0, req.Height-1)
	if err == nil && pixelY < 0 {
		err = fmt.Errorf("missing y")
	}
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	sceneObj, err := s.createScene(req.Scene)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	rend, err := renderer.NewRenderer(sceneObj, renderer.NewImageCanvas(req.Width, req.Height), req.Config(), nil)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	x, y := renderer.ScreenToCanvas(req.Width, req.Height, pixelX, pixelY)
	inspection, found := rend.Inspect(x, y)
	writeJSON(w, http.StatusOK, newInspectResponse(inspection, found, req.Epsilon))
}
