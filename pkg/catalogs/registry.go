package catalogs

// Registry is the published registry document.
type Registry struct {
	Title            string            `json:"title" yaml:"title"`
	Dapps            []Dapp            `json:"dapps" yaml:"dapps"`
	FeaturedSections []FeaturedSection `json:"featuredSections,omitempty" yaml:"featuredSections,omitempty"`
}

// FeaturedSection is a named, ordered grouping of dApps for promotional display.
type FeaturedSection struct {
	Title       string   `json:"title" yaml:"title"`
	Key         string   `json:"key" yaml:"key"`
	Description string   `json:"description,omitempty" yaml:"description,omitempty"`
	DappIDs     []string `json:"dappIds" yaml:"dappIds"`
}

// Copy returns a deep copy of the registry.
func (r *Registry) Copy() *Registry {
	if r == nil {
		return nil
	}
	return &Registry{
		Title:            r.Title,
		Dapps:            CloneDapps(r.Dapps),
		FeaturedSections: cloneSections(r.FeaturedSections),
	}
}

// DappIDs returns the dApp identifiers in document order.
func (r *Registry) DappIDs() []string {
	ids := make([]string, len(r.Dapps))
	for i, d := range r.Dapps {
		ids[i] = d.DappID
	}
	return ids
}

func cloneSections(sections []FeaturedSection) []FeaturedSection {
	if sections == nil {
		return nil
	}
	out := make([]FeaturedSection, len(sections))
	for i, s := range sections {
		out[i] = s
		out[i].DappIDs = cloneSlice(s.DappIDs)
	}
	return out
}
