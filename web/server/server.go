package server

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"image"
	"image/png"
	"log"
	"net/http"
	"net/url"
	"path/filepath"
	"strconv"
	"strings"
	"sync"

	"github.com/df07/go-recursive-raytracer/pkg/integrator"
	"github.com/df07/go-recursive-raytracer/pkg/loaders"
	"github.com/df07/go-recursive-raytracer/pkg/renderer"
	"github.com/df07/go-recursive-raytracer/pkg/scene"
)

// Canvas size limits shared by every endpoint
const (
	defaultSize = 600
	minSize     = 16
	maxSize     = 2000
)

// Server handles web requests for the recursive raytracer
type Server struct {
	port      int
	staticDir string
	scenesDir string

	mu        sync.Mutex
	renderers map[string]*liveRenderer // one long-lived renderer per scene, for epsilon toggling
}

// liveRenderer is a renderer kept across requests together with its canvas.
// mu serializes epsilon changes so each request gets back its own frame.
type liveRenderer struct {
	mu            sync.Mutex
	renderer      *renderer.Renderer
	canvas        *renderer.ImageCanvas
	width, height int
	maxDepth      int
}

func (live *liveRenderer) matches(req *RenderRequest) bool {
	return live.width == req.Width && live.height == req.Height && live.maxDepth == req.MaxDepth
}

// NewServer creates a new web server
func NewServer(port int, staticDir, scenesDir string) *Server {
	return &Server{
		port:      port,
		staticDir: staticDir,
		scenesDir: scenesDir,
		renderers: make(map[string]*liveRenderer),
	}
}

// RenderRequest represents a render request from the client
type RenderRequest struct {
	Scene    string  `json:"scene"`    // Scene ID (e.g., "reference" or "json:matte-trio")
	Width    int     `json:"width"`    // Canvas width
	Height   int     `json:"height"`   // Canvas height
	Epsilon  float64 `json:"epsilon"`  // Shadow ray offset
	MaxDepth int     `json:"maxDepth"` // Reflection recursion limit
}

// Config returns the tracing configuration the request asks for
func (req *RenderRequest) Config() integrator.Config {
	return integrator.Config{ShadowEpsilon: req.Epsilon, MaxDepth: req.MaxDepth}
}

// Handler returns the HTTP routes served by the server
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	// Serve static files
	mux.Handle("/", http.FileServer(http.Dir(s.staticDir)))

	// API endpoints
	mux.HandleFunc("/api/render", s.handleRender)
	mux.HandleFunc("/api/epsilon", s.handleEpsilon)
	mux.HandleFunc("/api/inspect", s.handleInspect)
	mux.HandleFunc("/api/scenes", s.handleScenes)
	mux.HandleFunc("/api/health", s.handleHealth)
	return mux
}

// Start starts the web server
func (s *Server) Start() error {
	addr := fmt.Sprintf(":%d", s.port)
	log.Printf("Starting web server on http://localhost%s", addr)
	return http.ListenAndServe(addr, s.Handler())
}

// handleHealth provides a simple health check endpoint
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleScenes lists built-in and file scenes grouped for the scene picker
func (s *Server) handleScenes(w http.ResponseWriter, r *http.Request) {
	response, err := scene.ListAllScenes(s.scenesDir)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, response)
}

// handleEpsilon switches the shadow epsilon of a long-lived renderer, which
// re-renders immediately, and returns the new frame as a PNG
func (s *Server) handleEpsilon(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		writeJSON(w, http.StatusMethodNotAllowed, map[string]string{"error": "use POST"})
		return
	}

	req, err := s.parseRenderRequest(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": fmt.Sprintf("Invalid request: %v", err)})
		return
	}
	epsilon, err := parseFloatParam(r.URL.Query(), "value", req.Epsilon, 0, 1)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": fmt.Sprintf("Invalid request: %v", err)})
		return
	}

	live, err := s.liveRenderer(req)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	live.mu.Lock()
	stats, err := live.renderer.SetShadowEpsilonContext(r.Context(), epsilon)
	if err != nil {
		live.mu.Unlock()
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{"error": fmt.Sprintf("Rendering failed: %v", err)})
		return
	}
	img := live.canvas.Image()
	live.mu.Unlock()

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("X-Shadow-Epsilon", strconv.FormatFloat(stats.Config.ShadowEpsilon, 'g', -1, 64))
	w.WriteHeader(http.StatusOK)
	w.Write(buf.Bytes())
}

// liveRenderer returns the long-lived renderer for a scene, creating it on
// first use. A request with a different size or depth replaces the scene's
// renderer, so at most one canvas is kept per scene.
func (s *Server) liveRenderer(req *RenderRequest) (*liveRenderer, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if live, ok := s.renderers[req.Scene]; ok && live.matches(req) {
		return live, nil
	}

	sceneObj, err := s.createScene(req.Scene)
	if err != nil {
		return nil, err
	}
	canvas := renderer.NewImageCanvas(req.Width, req.Height)
	r, err := renderer.NewRenderer(sceneObj, canvas, req.Config(), renderer.NewDefaultLogger())
	if err != nil {
		return nil, err
	}

	live := &liveRenderer{
		renderer: r,
		canvas:   canvas,
		width:    req.Width,
		height:   req.Height,
		maxDepth: req.MaxDepth,
	}
	s.renderers[req.Scene] = live
	return live, nil
}

// parseRenderRequest parses request parameters
func (s *Server) parseRenderRequest(r *http.Request) (*RenderRequest, error) {
	req := &RenderRequest{}
	defaults := integrator.DefaultConfig()

	if sceneID := r.URL.Query().Get("scene"); sceneID != "" {
		req.Scene = sceneID
	} else {
		req.Scene = "reference" // Default scene
	}

	// Parse and validate all parameters using helper functions
	var err error
	if req.Width, err = parseIntParam(r.URL.Query(), "width", defaultSize, minSize, maxSize); err != nil {
		return nil, err
	}
	if req.Height, err = parseIntParam(r.URL.Query(), "height", defaultSize, minSize, maxSize); err != nil {
		return nil, err
	}
	if req.Epsilon, err = parseFloatParam(r.URL.Query(), "epsilon", defaults.ShadowEpsilon, 0, 1); err != nil {
		return nil, err
	}
	if req.MaxDepth, err = parseIntParam(r.URL.Query(), "maxDepth", defaults.MaxDepth, 0, 10); err != nil {
		return nil, err
	}

	return req, nil
}

// parseIntParam parses an integer parameter from URL query with validation
func parseIntParam(values url.Values, key string, defaultValue, min, max int) (int, error) {
	if value := values.Get(key); value != "" {
		parsed, err := strconv.Atoi(value)
		if err != nil {
			return 0, fmt.Errorf("invalid %s: %s", key, value)
		}
		if parsed < min || parsed > max {
			return 0, fmt.Errorf("%s must be between %d and %d, got: %d", key, min, max, parsed)
		}
		return parsed, nil
	}
	return defaultValue, nil
}

// parseFloatParam parses a float parameter from URL query with validation
func parseFloatParam(values url.Values, key string, defaultValue, min, max float64) (float64, error) {
	if value := values.Get(key); value != "" {
		parsed, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return 0, fmt.Errorf("invalid %s: %s", key, value)
		}
		if parsed < min || parsed > max {
			return 0, fmt.Errorf("%s must be between %g and %g, got: %g", key, min, max, parsed)
		}
		return parsed, nil
	}
	return defaultValue, nil
}

// createScene resolves a scene ID: "json:<name>" loads <scenesDir>/<name>.json,
// anything else is a built-in scene
func (s *Server) createScene(sceneID string) (*scene.Scene, error) {
	name, isFile := strings.CutPrefix(sceneID, "json:")
	if !isFile {
		return scene.NewScene(sceneID)
	}
	if name == "" || strings.ContainsAny(name, `/\`) || strings.Contains(name, "..") {
		return nil, fmt.Errorf("invalid scene file name: %q", name)
	}
	return loaders.LoadSceneJSON(filepath.Join(s.scenesDir, strings.TrimSuffix(name, ".json")+".json"))
}

// imageToBase64PNG converts an image to base64-encoded PNG
func (s *Server) imageToBase64PNG(img image.Image) (string, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return "", err
	}
	return base64.StdEncoding.EncodeToString(buf.Bytes()), nil
}

// writeJSON writes v as a JSON response with the given status
func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("Error encoding response: %v", err)
	}
}
