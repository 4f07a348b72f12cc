package graph

import (
	"fmt"
	"strings"

	"github.com/aretw0/baton/pkg/domain"
	"github.com/aretw0/baton/pkg/manifest"
)

// Overlay marks the steps reached by a run.
type Overlay struct {
	Visited []string
	Failed  string
}

// GenerateMermaid produces a Mermaid flowchart of the data flow of a manifest.
// It applies semantic styling:
// - Params and result: ((Circle))
// - run_strict steps: [[Subroutine]]
// - Default: [Rectangle]
// Steps with a retry policy are annotated with their attempts.
func GenerateMermaid(m *manifest.Manifest, overlay *Overlay) string {
	var sb strings.Builder
	sb.WriteString("graph TD\n")
	sb.WriteString("    params((\"params\"))\n")

	keys := make([]string, len(m.Steps))
	for i, st := range m.Steps {
		keys[i] = st.Key()
		safeID := sanitizeMermaidID(keys[i])

		opener, closer := "[", "]"
		if st.InvokeWith == domain.MethodRunStrict {
			opener, closer = "[[", "]]"
		}

		label := keys[i]
		if st.Key() != st.Command && st.Command != "" {
			label = fmt.Sprintf("%s <br/> %s", keys[i], st.Command)
		}
		if st.Retry != nil {
			label = fmt.Sprintf("%s <br/> ⟳ %dx", label, st.Retry.Attempts)
		}
		sb.WriteString(fmt.Sprintf("    %s%s\"%s\"%s\n", safeID, opener, escapeLabel(label), closer))

		for _, src := range st.Sources() {
			sb.WriteString(fmt.Sprintf("    %s --> %s\n", sanitizeMermaidID(src), safeID))
		}
	}

	// Result
	sb.WriteString("    result((\"result\"))\n")
	switch {
	case len(keys) == 0:
		sb.WriteString("    params -.-> result\n")
	case m.Result == "take_all":
		for _, k := range keys {
			sb.WriteString(fmt.Sprintf("    %s -.-> result\n", sanitizeMermaidID(k)))
		}
	default:
		sb.WriteString(fmt.Sprintf("    %s -.-> result\n", sanitizeMermaidID(keys[len(keys)-1])))
	}

	if overlay != nil {
		sb.WriteString("\n    %% Overlay Styles\n")
		// Black text stays readable on both themes.
		sb.WriteString("    classDef visited fill:#e1f5fe,stroke:#01579b,stroke-width:2px,color:#000;\n")
		sb.WriteString("    classDef failed fill:#ffcdd2,stroke:#b71c1c,stroke-width:4px,color:#000;\n")

		visitedSet := make(map[string]bool)
		for _, id := range overlay.Visited {
			safeID := sanitizeMermaidID(id)
			if !visitedSet[safeID] && safeID != "" && safeID != sanitizeMermaidID(overlay.Failed) {
				visitedSet[safeID] = true
				sb.WriteString(fmt.Sprintf("    class %s visited;\n", safeID))
			}
		}
		if overlay.Failed != "" {
			sb.WriteString(fmt.Sprintf("    class %s failed;\n", sanitizeMermaidID(overlay.Failed)))
		}
	}

	return sb.String()
}

func escapeLabel(s string) string {
	return strings.ReplaceAll(s, "\"", "'")
}

func sanitizeMermaidID(id string) string {
	s := strings.ReplaceAll(id, ".", "_")
	s = strings.ReplaceAll(s, "-", "_")
	s = strings.ReplaceAll(s, "/", "_")
	s = strings.ReplaceAll(s, "\\", "_")
	s = strings.ReplaceAll(s, " ", "_")
	return s
}
