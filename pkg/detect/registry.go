package detect

import (
	"sort"

	"github.com/ilexum-group/osdetect/internal/fsaccess"
	"github.com/ilexum-group/osdetect/internal/probes"
	"github.com/ilexum-group/osdetect/pkg/models"
)

// Registry is an ordered collection of probes. Probes run in ascending
// Priority order, ties broken by registration order, and the first positive
// match wins: signatures are designed to be mutually exclusive in practice,
// so order encodes precedence rather than a scoring system. A Registry is
// never mutated after construction and is safe to share across concurrent
// detections.
type Registry struct {
	probes []probes.Probe
	filter bool
}

// NewRegistry builds a registry from the given probes, ordered by Priority
// with registration order as the tie-break.
func NewRegistry(list ...probes.Probe) *Registry {
	ordered := make([]probes.Probe, len(list))
	copy(ordered, list)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].Priority() < ordered[j].Priority()
	})
	return &Registry{probes: ordered}
}

// DefaultRegistry returns the standard probe set: structured Linux release
// descriptors, Windows, macOS and the BSDs, with the generic Linux layout
// heuristic last.
func DefaultRegistry() *Registry {
	return NewRegistry(
		probes.NewLinux(),
		probes.NewWindows(),
		probes.NewMacOS(),
		probes.NewBSD(),
		probes.NewGenericLinux(),
	)
}

// WithKindFiltering returns a copy of the registry with the advisory
// compatibility filter switched on or off. Off (the default) runs every
// probe against every kind: OS files can legally sit on foreign filesystems
// in recovery scenarios.
func (r *Registry) WithKindFiltering(enabled bool) *Registry {
	return &Registry{probes: r.probes, filter: enabled}
}

// Run evaluates the probes against the accessor and returns the first
// positive match, or nil when no signature matched. Absence of an OS is a
// valid outcome, not an error; only accessor-level read failures are
// returned, wrapped as MediaError.
func (r *Registry) Run(acc fsaccess.Accessor, kind models.FilesystemKind) (*models.OSInfo, error) {
	for _, p := range r.probes {
		if r.filter && kind != "" && !p.Compatible(kind) {
			continue
		}
		info, err := p.Probe(acc)
		if err != nil {
			return nil, &MediaError{Probe: p.Name(), Err: err}
		}
		if info != nil {
			return info, nil
		}
	}
	return nil, nil
}
