package scene

import (
	"fmt"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// SceneInfo describes a selectable scene for the web UI
type SceneInfo struct {
	ID          string `json:"id"`          // "<model>/<preset>"
	Name        string `json:"name"`        // Preset name
	DisplayName string `json:"displayName"` // UI display name
	Description string `json:"description"`
	Group       string `json:"group"` // Model display name
	Model       string `json:"model"`
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

// ListAllScenes returns every preset under every model, grouped by model
func ListAllScenes() ScenesResponse {
	var response ScenesResponse
	for _, model := range []Model{Euclidean, Schwarzschild} {
		group := SceneGroup{Name: titleCase(model.String())}
		for _, p := range presets {
			group.Scenes = append(group.Scenes, SceneInfo{
				ID:          fmt.Sprintf("%s/%s", model, p.Name),
				Name:        p.Name,
				DisplayName: titleCase(p.Name),
				Description: p.Description,
				Group:       group.Name,
				Model:       model.String(),
			})
		}
		response.Groups = append(response.Groups, group)
	}
	return response
}

// titleCase converts "edge-on" or "top_down" to "Edge On" / "Top Down"
func titleCase(s string) string {
	s = strings.NewReplacer("-", " ", "_", " ").Replace(s)
	return cases.Title(language.English).String(strings.Join(strings.Fields(s), " "))
}
