package catalogs

// StoresDocument is the published list of dApp stores.
type StoresDocument struct {
	DappStores []Store `json:"dappStores" yaml:"dappStores"`
}

// Store is one dApp store and its own featured sections.
type Store struct {
	Name             string            `json:"name" yaml:"name"`
	Key              string            `json:"key" yaml:"key"`
	URL              string            `json:"url,omitempty" yaml:"url,omitempty"`
	FeaturedSections []FeaturedSection `json:"featuredSections,omitempty" yaml:"featuredSections,omitempty"`
}

// Copy returns a deep copy of the store list.
func (s *StoresDocument) Copy() *StoresDocument {
	if s == nil {
		return nil
	}
	out := &StoresDocument{}
	if s.DappStores != nil {
		out.DappStores = make([]Store, len(s.DappStores))
		for i, st := range s.DappStores {
			out.DappStores[i] = st
			out.DappStores[i].FeaturedSections = cloneSections(st.FeaturedSections)
		}
	}
	return out
}

// Keys returns the store keys in document order.
func (s *StoresDocument) Keys() []string {
	keys := make([]string, len(s.DappStores))
	for i, st := range s.DappStores {
		keys[i] = st.Key
	}
	return keys
}

// Find returns the store with the given key.
func (s *StoresDocument) Find(key string) (Store, bool) {
	for _, st := range s.DappStores {
		if st.Key == key {
			return st, true
		}
	}
	return Store{}, false
}
