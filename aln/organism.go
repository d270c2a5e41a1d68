package aln

import "bitbucket.org/Davydov/belvu/bio"

// OrgID is a handle into the organism table of an alignment. The zero
// value means no organism. Handles stay valid as the table grows.
type OrgID int

// NoOrg is the handle of rows without an organism.
const NoOrg OrgID = 0

// Organism is an entry in the organism table.
type Organism struct {
	Name  string
	Color bio.Color
}

// findOrg searches the name ordered index for an organism.
func (a *Alignment) findOrg(name string) (int, bool) {
	return Search(len(a.orgSorted), func(i int) int {
		o := a.organisms[a.orgSorted[i]-1].Name
		switch {
		case name < o:
			return -1
		case name > o:
			return 1
		}
		return 0
	})
}

// FindOrganism looks up an organism by name.
func (a *Alignment) FindOrganism(name string) (OrgID, bool) {
	i, ok := a.findOrg(name)
	if !ok {
		return NoOrg, false
	}
	return a.orgSorted[i], true
}

// AddOrganism returns the handle of the organism with this name,
// creating the entry if needed.
func (a *Alignment) AddOrganism(name string) OrgID {
	i, ok := a.findOrg(name)
	if ok {
		return a.orgSorted[i]
	}
	a.organisms = append(a.organisms, &Organism{Name: name, Color: bio.Black})
	id := OrgID(len(a.organisms))
	// insert after i
	a.orgSorted = append(a.orgSorted, 0)
	copy(a.orgSorted[i+2:], a.orgSorted[i+1:])
	a.orgSorted[i+1] = id
	return id
}

// Organism returns the entry for a handle, nil for NoOrg.
func (a *Alignment) Organism(id OrgID) *Organism {
	if id <= NoOrg || int(id) > len(a.organisms) {
		return nil
	}
	return a.organisms[id-1]
}

// Organisms returns the organism table ordered by name.
func (a *Alignment) Organisms() []*Organism {
	orgs := make([]*Organism, len(a.orgSorted))
	for i, id := range a.orgSorted {
		orgs[i] = a.organisms[id-1]
	}
	return orgs
}

// OrganismName returns the organism name of a row, "" if it has none.
func (a *Alignment) OrganismName(r *Row) string {
	if o := a.Organism(r.Org); o != nil {
		return o.Name
	}
	return ""
}
