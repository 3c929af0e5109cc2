package host

import "fmt"

// newStem creates a name generator for objects named after stem. Names are
// reserved in namespace, which is shared by every stem of a document.
func newStem(stem string, namespace map[string]struct{}) *nameStem {
	return &nameStem{
		taken: namespace,
		stem:  stem,
		last:  0,
	}
}

type nameStem struct {
	taken map[string]struct{}
	stem  string
	last  int
}

// Next returns the stem itself if free, then stem001, stem002, ...
func (s *nameStem) Next() string {
	if s.taken == nil {
		s.taken = make(map[string]struct{})
	}

	if _, ok := s.taken[s.stem]; !ok {
		s.taken[s.stem] = struct{}{}
		return s.stem
	}

	for {
		s.last++
		name := fmt.Sprintf("%s%03d", s.stem, s.last)

		if _, ok := s.taken[name]; !ok {
			s.taken[name] = struct{}{}
			return name
		}
	}
}
