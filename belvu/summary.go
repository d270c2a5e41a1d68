package main

import (
	"bitbucket.org/Davydov/belvu/aln"
	"bitbucket.org/Davydov/belvu/engine"
)

// Summary is storing the alignment summary printed by info.
type Summary struct {
	// Version stores belvu version.
	Version string `json:"version"`
	// CommandLine is an array storing binary name and all command-line parameters.
	CommandLine []string `json:"commandLine"`
	// File is the alignment file name.
	File string `json:"file"`
	// Format is the detected input format.
	Format string `json:"format"`
	// Columns is the alignment length.
	Columns int `json:"columns"`
	// Sequences and Markup are the numbers of sequence and annotation rows.
	Sequences int `json:"sequences"`
	Markup    int `json:"markup"`
	// MeanIdentity is the average pairwise percent identity.
	MeanIdentity float64 `json:"meanIdentity"`
	// MeanConservation is the average column conservation.
	MeanConservation float64 `json:"meanConservation"`
	// Organisms lists the organisms with their sequence counts.
	Organisms []OrganismSummary `json:"organisms,omitempty"`
}

// OrganismSummary describes one organism.
type OrganismSummary struct {
	Name      string `json:"name"`
	Color     string `json:"color"`
	Sequences int    `json:"sequences"`
}

// summarize collects the summary of a session.
func summarize(fname string, s *engine.Session) *Summary {
	a := s.Alignment
	sum := &Summary{
		File:      fname,
		Format:    s.Format.String(),
		Columns:   a.MaxLen,
		Sequences: a.NSeq(),
		Markup:    a.NRows() - a.NSeq(),
	}

	rows, ident := s.IdentityMatrix()
	if n := len(rows); n > 1 {
		total := 0.0
		for i := 0; i < n; i++ {
			for j := i + 1; j < n; j++ {
				total += ident.At(i, j)
			}
		}
		sum.MeanIdentity = total / float64(n*(n-1)/2)
	}

	if len(s.Conservation.Values) > 0 {
		total := 0.0
		for _, v := range s.Conservation.Values {
			total += v
		}
		sum.MeanConservation = total / float64(len(s.Conservation.Values))
	}

	count := make(map[aln.OrgID]int)
	for _, r := range rows {
		count[r.Org]++
	}
	for _, o := range a.Organisms() {
		id, _ := a.FindOrganism(o.Name)
		sum.Organisms = append(sum.Organisms, OrganismSummary{
			Name:      o.Name,
			Color:     o.Color.String(),
			Sequences: count[id],
		})
	}
	return sum
}
