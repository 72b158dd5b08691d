package loaders

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/df07/go-recursive-raytracer/pkg/core"
	"github.com/df07/go-recursive-raytracer/pkg/lights"
	"github.com/df07/go-recursive-raytracer/pkg/material"
	"github.com/df07/go-recursive-raytracer/pkg/scene"
)

// SceneFile is the on-disk JSON description of a scene
type SceneFile struct {
	Name              string      `json:"name,omitempty"`
	Description       string      `json:"description,omitempty"`
	Group             string      `json:"group,omitempty"`
	ViewportSize      *float64    `json:"viewportSize,omitempty"`     // defaults to 1
	ProjectionPlaneZ  *float64    `json:"projectionPlaneZ,omitempty"` // defaults to 1
	CameraPosition    [3]float64  `json:"cameraPosition"`
	CameraRotationDeg float64     `json:"cameraRotationDeg,omitempty"` // yaw around the Y axis
	BackgroundColor   *[3]float64 `json:"backgroundColor,omitempty"`   // defaults to white
	Spheres           []SphereCfg `json:"spheres"`
	Lights            []LightCfg  `json:"lights"`
}

type SphereCfg struct {
	Center     [3]float64 `json:"center"`
	Radius     float64    `json:"radius"`
	Color      [3]float64 `json:"color"`
	Specular   *float64   `json:"specular,omitempty"` // omitted means no highlight
	Reflective float64    `json:"reflective,omitempty"`
}

type LightCfg struct {
	Type      string     `json:"type"` // "ambient", "point" or "directional"
	Intensity float64    `json:"intensity"`
	Position  [3]float64 `json:"position"`
	Direction [3]float64 `json:"direction"`
}

func vec(a [3]float64) core.Vec3 {
	return core.NewVec3(a[0], a[1], a[2])
}

// LoadSceneJSON reads and validates a scene file
func LoadSceneJSON(path string) (*scene.Scene, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open scene file: %w", err)
	}
	defer file.Close()

	s, err := DecodeSceneJSON(file)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if s.Name == "" {
		base := filepath.Base(path)
		s.Name = strings.TrimSuffix(base, filepath.Ext(base))
	}
	return s, nil
}

// DecodeSceneJSON decodes a scene from r and validates it
func DecodeSceneJSON(r io.Reader) (*scene.Scene, error) {
	decoder := json.NewDecoder(r)
	decoder.DisallowUnknownFields()

	var cfg SceneFile
	if err := decoder.Decode(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode scene: %w", err)
	}

	s, err := cfg.Build()
	if err != nil {
		return nil, err
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return s, nil
}

// Build converts the file description into a scene, applying defaults
func (cfg SceneFile) Build() (*scene.Scene, error) {
	s := scene.NewEmptyScene(cfg.Name)

	if cfg.ViewportSize != nil {
		s.ViewportSize = *cfg.ViewportSize
	}
	if cfg.ProjectionPlaneZ != nil {
		s.ProjectionPlaneZ = *cfg.ProjectionPlaneZ
	}
	s.CameraPosition = vec(cfg.CameraPosition)
	if cfg.CameraRotationDeg != 0 {
		s.CameraRotation = core.RotationY(cfg.CameraRotationDeg)
	}
	if cfg.BackgroundColor != nil {
		s.BackgroundColor = vec(*cfg.BackgroundColor)
	}

	for _, sc := range cfg.Spheres {
		specular := material.NoSpecular
		if sc.Specular != nil {
			specular = *sc.Specular
		}
		s.AddSphere(vec(sc.Center), sc.Radius, material.NewPhong(vec(sc.Color), specular, sc.Reflective))
	}

	for i, lc := range cfg.Lights {
		switch lights.LightType(strings.ToLower(lc.Type)) {
		case lights.LightTypeAmbient:
			s.AddAmbientLight(lc.Intensity)
		case lights.LightTypePoint:
			s.AddPointLight(lc.Intensity, vec(lc.Position))
		case lights.LightTypeDirectional:
			s.AddDirectionalLight(lc.Intensity, vec(lc.Direction))
		default:
			return nil, fmt.Errorf("light %d: unknown type %q", i, lc.Type)
		}
	}

	return s, nil
}
