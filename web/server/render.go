package server

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/df07/go-recursive-raytracer/pkg/core"
	"github.com/df07/go-recursive-raytracer/pkg/renderer"
)

// SSEEvent represents a unified SSE event for thread-safe writing
type SSEEvent struct {
	Type string `json:"type"` // "console", "error", "complete"
	Data string `json:"data"` // JSON-encoded data
}

// RenderComplete is the payload of the final "complete" event
type RenderComplete struct {
	ImageData string      `json:"imageData"` // Base64 encoded PNG
	Stats     RenderStats `json:"stats"`
	ElapsedMs int64       `json:"elapsedMs"`
	Epsilon   float64     `json:"epsilon"`
	MaxDepth  int         `json:"maxDepth"`
}

// RenderStats represents render statistics
type RenderStats struct {
	Scene            string  `json:"scene"`
	TotalPixels      int     `json:"totalPixels"`
	Spheres          int     `json:"spheres"`
	Lights           int     `json:"lights"`
	AverageLuminance float64 `json:"averageLuminance"`
}

// handleRender renders one frame and streams console output followed by the
// finished image via SSE
func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	// Set SSE headers
	s.setSSEHeaders(w)

	ctx, cancel := context.WithCancel(r.Context())
	defer cancel()

	// Create unified SSE event channel for thread-safe writing
	sseEventChan := make(chan SSEEvent, 100)
	writerDone := make(chan struct{})
	go func() {
		defer close(writerDone)
		s.writeSSEEvents(w, ctx, sseEventChan)
	}()
	defer func() {
		close(sseEventChan)
		<-writerDone
	}()

	// Parse and validate request
	req, err := s.parseRenderRequest(r)
	if err != nil {
		s.handleError(ctx, sseEventChan, fmt.Sprintf("Invalid request: %v", err))
		return
	}

	sceneObj, err := s.createScene(req.Scene)
	if err != nil {
		s.handleError(ctx, sseEventChan, err.Error())
		return
	}

	// Setup console logging and streaming
	consoleChan, webLogger := s.setupConsoleLogging()
	streamDone := make(chan struct{})
	go func() {
		defer close(streamDone)
		s.streamConsoleMessages(ctx, consoleChan, sseEventChan)
	}()

	canvas := renderer.NewImageCanvas(req.Width, req.Height)
	rend, err := renderer.NewRenderer(sceneObj, canvas, req.Config(), webLogger)
	if err != nil {
		close(consoleChan)
		<-streamDone
		s.handleError(ctx, sseEventChan, err.Error())
		return
	}

	startTime := time.Now()
	stats, err := rend.RenderContext(ctx)

	// The renderer is done logging; flush the console before the result
	close(consoleChan)
	<-streamDone

	if err != nil {
		s.handleError(ctx, sseEventChan, fmt.Sprintf("Rendering failed: %v", err))
		return
	}

	s.handleRenderComplete(ctx, sseEventChan, canvas, stats, sceneObj.Name, len(sceneObj.Spheres), len(sceneObj.Lights), startTime)
}

// handleRenderComplete encodes the presented frame and sends the completion event
func (s *Server) handleRenderComplete(ctx context.Context, sseEventChan chan SSEEvent, canvas *renderer.ImageCanvas,
	stats renderer.RenderStats, sceneName string, spheres, lights int, startTime time.Time) {

	img := canvas.Image()
	imageData, err := s.imageToBase64PNG(img)
	if err != nil {
		s.handleError(ctx, sseEventChan, fmt.Sprintf("Failed to encode image: %v", err))
		return
	}

	complete := RenderComplete{
		ImageData: imageData,
		Stats: RenderStats{
			Scene:            sceneName,
			TotalPixels:      stats.TotalPixels,
			Spheres:          spheres,
			Lights:           lights,
			AverageLuminance: renderer.CalculateAverageLuminance(img),
		},
		ElapsedMs: time.Since(startTime).Milliseconds(),
		Epsilon:   stats.Config.ShadowEpsilon,
		MaxDepth:  stats.Config.MaxDepth,
	}

	data, err := json.Marshal(complete)
	if err != nil {
		log.Printf("Error marshaling render result: %v", err)
		return
	}

	select {
	case sseEventChan <- SSEEvent{Type: "complete", Data: string(data)}:
	case <-ctx.Done():
	}
}

// setSSEHeaders sets the required headers for Server-Sent Events
func (s *Server) setSSEHeaders(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("Access-Control-Allow-Origin", "*")
}

// setupConsoleLogging creates console channel and web logger for a render
func (s *Server) setupConsoleLogging() (chan ConsoleMessage, core.Logger) {
	consoleChan := make(chan ConsoleMessage, 50)
	renderID := fmt.Sprintf("render-%d", time.Now().UnixNano())
	webLogger := NewWebLogger(renderID, consoleChan)
	return consoleChan, webLogger
}

// writeSSEEvents handles writing all SSE events in a single goroutine (thread-safe).
// It drains the channel until it is closed or the client goes away.
func (s *Server) writeSSEEvents(w http.ResponseWriter, ctx context.Context, sseEventChan chan SSEEvent) {
	for event := range sseEventChan {
		// Check if client is still connected before writing
		select {
		case <-ctx.Done():
			continue
		default:
		}

		if _, err := fmt.Fprintf(w, "event: %s\ndata: %s\n\n", event.Type, event.Data); err != nil {
			// Client disconnected during write
			continue
		}
		if flusher, ok := w.(http.Flusher); ok {
			flusher.Flush()
		}
	}
}

// streamConsoleMessages forwards console messages until consoleChan is closed
func (s *Server) streamConsoleMessages(ctx context.Context, consoleChan chan ConsoleMessage, sseEventChan chan SSEEvent) {
	for consoleMsg := range consoleChan {
		data, err := json.Marshal(consoleMsg)
		if err != nil {
			log.Printf("Error marshaling console message: %v", err)
			continue
		}

		select {
		case sseEventChan <- SSEEvent{Type: "console", Data: string(data)}:
		case <-ctx.Done():
		}
	}
}

// handleError sends an error event to the SSE channel
func (s *Server) handleError(ctx context.Context, sseEventChan chan SSEEvent, message string) {
	select {
	case sseEventChan <- SSEEvent{Type: "error", Data: message}:
	case <-ctx.Done():
		// Client disconnected, don't block
	}
}
