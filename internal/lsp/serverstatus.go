package lsp

import "github.com/smithy-lang/smithy-language-server/internal/project"

type openProjectStatus struct {
	Root       string   `json:"root"`
	Files      []string `json:"files"`
	IsDetached bool     `json:"isDetached"`
}

type serverStatusResult struct {
	OpenProjects []openProjectStatus `json:"openProjects"`
}

// serverStatus answers smithy/serverStatus, a diagnostic snapshot of every
// currently loaded project (spec §6).
func (e *Endpoint) serverStatus() serverStatusResult {
	var result serverStatusResult
	for _, p := range e.state.AllProjects() {
		result.OpenProjects = append(result.OpenProjects, openProjectStatus{
			Root:       p.Root(),
			Files:      p.AllSmithyFilePaths(),
			IsDetached: p.Type() == project.Detached,
		})
	}
	return result
}
