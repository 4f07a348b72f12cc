package manifest

import (
	"fmt"
	"strings"
)

// Markdown renders a human-readable description of the manifest.
func (m *Manifest) Markdown() string {
	var b strings.Builder

	fmt.Fprintf(&b, "# %s\n\n", m.Name)
	if m.Description != "" {
		fmt.Fprintf(&b, "%s\n\n", strings.TrimSpace(m.Description))
	}

	result := m.Result
	if result == "" {
		result = "take_last"
	}
	fmt.Fprintf(&b, "**Result:** `%s`\n\n", result)

	if len(m.Params) > 0 {
		b.WriteString("## Params\n\n| Field | Type |\n|---|---|\n")
		for _, key := range sortedKeys(m.Params) {
			fmt.Fprintf(&b, "| `%s` | `%s` |\n", key, m.Params[key].Name())
		}
		b.WriteString("\n")
	}

	b.WriteString("## Steps\n\n| # | Step | Command | Method | Arguments | Retry |\n|---|---|---|---|---|---|\n")
	for i, st := range m.Steps {
		name := st.As
		if name == "" {
			name = st.Command
		}
		method := st.InvokeWith
		if method == "" {
			method = "run"
		}
		args := "params"
		switch {
		case st.Receives != nil:
			args = describe(st.Receives)
		case st.ReceivesMany != nil:
			args = "..." + describe(st.ReceivesMany)
		}
		retry := ""
		if st.Retry != nil {
			retry = fmt.Sprintf("%dx", st.Retry.Attempts)
			if len(st.Retry.Tags) > 0 {
				retry += " on " + strings.Join(st.Retry.Tags, ", ")
			}
		}
		fmt.Fprintf(&b, "| %d | %s | `%s` | %s | `%s` | %s |\n", i+1, name, st.Command, method, escapeCell(args), retry)
	}
	return b.String()
}

func escapeCell(s string) string {
	return strings.ReplaceAll(s, "|", `\|`)
}
