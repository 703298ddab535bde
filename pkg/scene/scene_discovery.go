package scene

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// ErrUnknownScene is returned when a built-in scene name is not recognized
var ErrUnknownScene = errors.New("unknown scene")

// SceneFileExt is the extension of scene description files
const SceneFileExt = ".scene"

// SceneInfo represents a discovered scene with its metadata
type SceneInfo struct {
	ID          string `json:"id"`          // Unique identifier
	Name        string `json:"name"`        // Scene name
	Description string `json:"description"` // Optional description
	Group       string `json:"group"`       // Grouping category
	Type        string `json:"type"`        // "builtin" or "file"
	FilePath    string `json:"filePath"`    // Path to scene file (file type only)
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

// Options control the procedural built-in scenes
type Options struct {
	Rows int   // Sphere grid rows
	Cols int   // Sphere grid columns
	Seed int64 // Seed for depth jitter and wall colors
}

// DefaultOptions returns the 10x10 grid used when nothing is specified
func DefaultOptions() Options {
	return Options{Rows: 10, Cols: 10, Seed: 1}
}

const builtinGroup = "Built-in Scenes"

var builtins = []struct {
	info  SceneInfo
	build func(Options) *Scene
}{
	{
		info: SceneInfo{ID: "default", Name: "Default Scene", Description: "Sphere grid in front of a triangle wall"},
		build: func(o Options) *Scene {
			return NewDefaultScene(o.Rows, o.Cols, o.Seed)
		},
	},
	{
		info: SceneInfo{ID: "spheregrid", Name: "Sphere Grid", Description: "Grid of glass spheres without a backdrop"},
		build: func(o Options) *Scene {
			s := NewDefaultScene(o.Rows, o.Cols, o.Seed)
			s.Triangles = nil
			return s
		},
	},
	{
		info:  SceneInfo{ID: "mirrors", Name: "Mirrors", Description: "Two spheres reflecting into each other"},
		build: func(Options) *Scene { return NewMirrorScene() },
	},
	{
		info:  SceneInfo{ID: "shadow", Name: "Shadow", Description: "Floor with an occluder casting a hard shadow"},
		build: func(Options) *Scene { return NewShadowScene() },
	},
	{
		info:  SceneInfo{ID: "empty", Name: "Empty", Description: "Lights only, renders the background"},
		build: func(Options) *Scene { return NewEmptyScene() },
	},
}

// BuiltinScenes returns metadata for all built-in scenes
func BuiltinScenes() []SceneInfo {
	infos := make([]SceneInfo, 0, len(builtins))
	for _, b := range builtins {
		info := b.info
		info.Group = builtinGroup
		info.Type = "builtin"
		infos = append(infos, info)
	}
	return infos
}

// Names returns the IDs of all built-in scenes
func Names() []string {
	names := make([]string, 0, len(builtins))
	for _, b := range builtins {
		names = append(names, b.info.ID)
	}
	return names
}

// ByName builds the built-in scene with the given ID
func ByName(name string, opts Options) (*Scene, error) {
	for _, b := range builtins {
		if b.info.ID == name {
			return b.build(opts), nil
		}
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownScene, name)
}

// ListSceneFiles scans dir for scene files and returns their metadata. A
// missing directory yields an empty list.
func ListSceneFiles(dir string) ([]SceneInfo, error) {
	if _, err := os.Stat(dir); err != nil {
		return []SceneInfo{}, nil
	}

	files, err := filepath.Glob(filepath.Join(dir, "*"+SceneFileExt))
	if err != nil {
		return nil, fmt.Errorf("failed to scan scenes directory: %w", err)
	}

	scenes := make([]SceneInfo, 0, len(files))
	for _, filePath := range files {
		info, err := ParseSceneMetadata(filePath)
		if err != nil {
			return nil, err
		}
		scenes = append(scenes, info)
	}

	sort.Slice(scenes, func(i, j int) bool {
		return scenes[i].Name < scenes[j].Name
	})

	return scenes, nil
}

// ParseSceneMetadata extracts metadata from the comment header of a scene
// file. Recognized keys are "Scene:", "Description:" and "Group:".
func ParseSceneMetadata(filePath string) (SceneInfo, error) {
	base := strings.TrimSuffix(filepath.Base(filePath), filepath.Ext(filePath))

	info := SceneInfo{
		ID:       "file:" + base,
		Name:     titleCase(base),
		Group:    "Scene Files",
		Type:     "file",
		FilePath: filePath,
	}

	file, err := os.Open(filePath)
	if err != nil {
		return info, fmt.Errorf("failed to open scene file: %w", err)
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		// Stop parsing at first non-comment line
		if !strings.HasPrefix(line, "/") {
			break
		}

		content := strings.TrimSpace(strings.TrimLeft(line, "/"))
		switch {
		case strings.HasPrefix(content, "Scene:"):
			info.Name = strings.TrimSpace(strings.TrimPrefix(content, "Scene:"))
		case strings.HasPrefix(content, "Description:"):
			info.Description = strings.TrimSpace(strings.TrimPrefix(content, "Description:"))
		case strings.HasPrefix(content, "Group:"):
			info.Group = strings.TrimSpace(strings.TrimPrefix(content, "Group:"))
		}
	}

	return info, scanner.Err()
}

// ListAllScenes returns both built-in scenes and scene files under dir,
// grouped by category with the built-in group first
func ListAllScenes(dir string) (ScenesResponse, error) {
	var response ScenesResponse

	files, err := ListSceneFiles(dir)
	if err != nil {
		return response, fmt.Errorf("failed to list scene files: %w", err)
	}

	groupMap := make(map[string][]SceneInfo)
	for _, info := range append(BuiltinScenes(), files...) {
		groupMap[info.Group] = append(groupMap[info.Group], info)
	}

	var groupNames []string
	for name := range groupMap {
		if name != builtinGroup {
			groupNames = append(groupNames, name)
		}
	}
	sort.Strings(groupNames)

	response.Groups = append(response.Groups, SceneGroup{Name: builtinGroup, Scenes: groupMap[builtinGroup]})
	for _, name := range groupNames {
		response.Groups = append(response.Groups, SceneGroup{Name: name, Scenes: groupMap[name]})
	}

	return response, nil
}

// titleCase converts a filename-style string to title case
// e.g., "two-spheres" -> "Two Spheres"
func titleCase(s string) string {
	s = strings.ReplaceAll(s, "-", " ")
	s = strings.ReplaceAll(s, "_", " ")

	words := strings.Fields(s)
	for i, word := range words {
		words[i] = strings.ToUpper(word[:1]) + strings.ToLower(word[1:])
	}

	return strings.Join(words, " ")
}
