package scene

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// SceneInfo represents a discovered scene with its metadata
type SceneInfo struct {
	ID          string `json:"id"`          // Unique identifier
	DisplayName string `json:"displayName"` // UI display name
	Description string `json:"description"` // Optional description
	Group       string `json:"group"`       // Grouping category
	Type        string `json:"type"`        // "builtin" or "json"
	FilePath    string `json:"filePath,omitempty"`
}

// SceneGroup represents a group of related scenes
type SceneGroup struct {
	Name   string      `json:"name"`
	Scenes []SceneInfo `json:"scenes"`
}

// ScenesResponse represents the complete response for /api/scenes
type ScenesResponse struct {
	Groups []SceneGroup `json:"groups"`
}

const builtInGroup = "Built-in Scenes"

var builtInScenes = []struct {
	info    SceneInfo
	factory func() *Scene
}{
	{SceneInfo{ID: "reference", DisplayName: "Reference", Description: "Three shiny spheres on a yellow ground, ambient + point + directional light"}, NewReferenceScene},
	{SceneInfo{ID: "reference-rotated", DisplayName: "Reference (Rotated Camera)", Description: "Reference scene seen from the side"}, NewRotatedReferenceScene},
	{SceneInfo{ID: "single-sphere", DisplayName: "Single Sphere", Description: "One red sphere under ambient light"}, NewSingleSphereScene},
	{SceneInfo{ID: "mirrors", DisplayName: "Facing Mirrors", Description: "Two perfect mirrors facing each other"}, NewMirrorsScene},
}

// NewScene creates a built-in scene by ID
func NewScene(id string) (*Scene, error) {
	for _, builtIn := range builtInScenes {
		if builtIn.info.ID == id {
			return builtIn.factory(), nil
		}
	}
	return nil, fmt.Errorf("unknown scene: %q", id)
}

// ListBuiltInScenes returns metadata for every built-in scene
func ListBuiltInScenes() []SceneInfo {
	scenes := make([]SceneInfo, 0, len(builtInScenes))
	for _, builtIn := range builtInScenes {
		info := builtIn.info
		info.Group = builtInGroup
		info.Type = "builtin"
		scenes = append(scenes, info)
	}
	return scenes
}

// sceneFileHeader is the subset of a JSON scene file needed for listing
type sceneFileHeader struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Group       string `json:"group"`
}

// ListJSONScenes scans dir for *.json scene files. A missing directory is not an error.
func ListJSONScenes(dir string) ([]SceneInfo, error) {
	if _, err := os.Stat(dir); err != nil {
		return []SceneInfo{}, nil
	}

	files, err := filepath.Glob(filepath.Join(dir, "*.json"))
	if err != nil {
		return nil, fmt.Errorf("failed to scan scenes directory: %w", err)
	}

	scenes := make([]SceneInfo, 0, len(files))
	for _, filePath := range files {
		info, err := parseSceneFileMetadata(filePath)
		if err != nil {
			fmt.Printf("Warning: failed to parse metadata for %s: %v\n", filePath, err)
			continue
		}
		scenes = append(scenes, info)
	}

	sort.Slice(scenes, func(i, j int) bool {
		return scenes[i].DisplayName < scenes[j].DisplayName
	})
	return scenes, nil
}

// parseSceneFileMetadata reads the name, description and group of a scene file,
// falling back to values derived from the file name
func parseSceneFileMetadata(filePath string) (SceneInfo, error) {
	filename := filepath.Base(filePath)
	nameWithoutExt := strings.TrimSuffix(filename, filepath.Ext(filename))

	info := SceneInfo{
		ID:          "json:" + nameWithoutExt,
		DisplayName: titleCase(nameWithoutExt),
		Group:       "Scene Files",
		Type:        "json",
		FilePath:    filePath,
	}

	data, err := os.ReadFile(filePath)
	if err != nil {
		return info, err
	}
	var header sceneFileHeader
	if err := json.Unmarshal(data, &header); err != nil {
		return info, err
	}

	if header.Name != "" {
		info.DisplayName = header.Name
	}
	if header.Group != "" {
		info.Group = header.Group
	}
	info.Description = header.Description
	return info, nil
}

// ListAllScenes returns both built-in and file scenes, grouped by category
func ListAllScenes(dir string) (ScenesResponse, error) {
	var response ScenesResponse

	fileScenes, err := ListJSONScenes(dir)
	if err != nil {
		return response, fmt.Errorf("failed to list scene files: %w", err)
	}
	allScenes := append(ListBuiltInScenes(), fileScenes...)

	groupMap := make(map[string][]SceneInfo)
	for _, info := range allScenes {
		groupMap[info.Group] = append(groupMap[info.Group], info)
	}

	// Built-in first, then alphabetical
	var groupNames []string
	for groupName := range groupMap {
		if groupName != builtInGroup {
			groupNames = append(groupNames, groupName)
		}
	}
	sort.Strings(groupNames)
	groupNames = append([]string{builtInGroup}, groupNames...)

	for _, groupName := range groupNames {
		if scenes, exists := groupMap[groupName]; exists {
			response.Groups = append(response.Groups, SceneGroup{Name: groupName, Scenes: scenes})
		}
	}

	return response, nil
}

// titleCase converts a filename-style string to title case
// e.g., "two-mirrors" -> "Two Mirrors"
func titleCase(s string) string {
	s = strings.ReplaceAll(s, "-", " ")
	s = strings.ReplaceAll(s, "_", " ")

	words := strings.Fields(s)
	for i, word := range words {
		words[i] = strings.ToUpper(word[:1]) + strings.ToLower(word[1:])
	}

	return strings.Join(words, " ")
}
