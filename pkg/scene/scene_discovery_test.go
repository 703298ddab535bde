package scene

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestTitleCase(t *testing.T) {
	testCases := []struct {
		input    string
		expected string
	}{
		{"two-spheres", "Two Spheres"},
		{"glass_wall", "Glass Wall"},
		{"simple", "Simple"},
		{"UPPER-case", "Upper Case"},
		{"", ""},
	}

	for _, tc := range testCases {
		t.Run(tc.input, func(t *testing.T) {
			if result := titleCase(tc.input); result != tc.expected {
				t.Errorf("titleCase(%q) = %q, want %q", tc.input, result, tc.expected)
			}
		})
	}
}

func TestParseSceneMetadata(t *testing.T) {
	dir := t.TempDir()

	testCases := []struct {
		name     string
		content  string
		expected SceneInfo
	}{
		{
			name: "complete.scene",
			content: `// Scene: Glass Row
// Description: Three spheres in a row
// Group: Samples

s 1 0 0 -5 255 0 0
l 0 5 0`,
			expected: SceneInfo{
				ID:          "file:complete",
				Name:        "Glass Row",
				Description: "Three spheres in a row",
				Group:       "Samples",
				Type:        "file",
			},
		},
		{
			name:    "bare-file.scene",
			content: "s 1 0 0 -5 255 0 0\n// Scene: ignored after geometry\n",
			expected: SceneInfo{
				ID:    "file:bare-file",
				Name:  "Bare File",
				Group: "Scene Files",
				Type:  "file",
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			path := filepath.Join(dir, tc.name)
			if err := os.WriteFile(path, []byte(tc.content), 0o644); err != nil {
				t.Fatalf("Failed to write scene file: %v", err)
			}

			info, err := ParseSceneMetadata(path)
			if err != nil {
				t.Fatalf("Unexpected error: %v", err)
			}

			tc.expected.FilePath = path
			if diff := cmp.Diff(info, tc.expected); diff != "" {
				t.Errorf("Unexpected metadata (-got +want):\n%s", diff)
			}
		})
	}
}

func TestListAllScenes(t *testing.T) {
	dir := t.TempDir()
	content := "// Scene: Zeta\n// Group: Extras\nl 0 0 0\n"
	if err := os.WriteFile(filepath.Join(dir, "zeta.scene"), []byte(content), 0o644); err != nil {
		t.Fatalf("Failed to write scene file: %v", err)
	}
	// Files with other extensions are ignored
	if err := os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("hello"), 0o644); err != nil {
		t.Fatalf("Failed to write file: %v", err)
	}

	response, err := ListAllScenes(dir)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	if len(response.Groups) != 2 {
		t.Fatalf("Expected 2 groups, got %d", len(response.Groups))
	}
	if response.Groups[0].Name != builtinGroup {
		t.Errorf("Expected built-in group first, got %q", response.Groups[0].Name)
	}
	if len(response.Groups[0].Scenes) != len(Names()) {
		t.Errorf("Expected %d built-in scenes, got %d", len(Names()), len(response.Groups[0].Scenes))
	}
	if got := response.Groups[1].Scenes; len(got) != 1 || got[0].Name != "Zeta" {
		t.Errorf("Expected the Zeta scene in the Extras group, got %+v", got)
	}
}

func TestListSceneFiles_MissingDirectory(t *testing.T) {
	scenes, err := ListSceneFiles(filepath.Join(t.TempDir(), "missing"))
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if len(scenes) != 0 {
		t.Errorf("Expected no scenes, got %d", len(scenes))
	}
}
