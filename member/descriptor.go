package member

import (
	"fmt"
	"slices"

	"gopkg.in/yaml.v3"

	"memberlink/backend"
)

// Descriptor is the reconstructable description of a handle: the backends of
// its chain from the root down, plus the store paths it was created with.
// It is only meant to outlive the hierarchy, not the process.
type Descriptor struct {
	// Targets is the identity of the target set the handle was created on.
	Targets    string               `yaml:"targets,omitempty"`
	Chain      []backend.Descriptor `yaml:"chain"`
	StorePaths []string             `yaml:"store_paths,omitempty"`
}

// Descriptor returns the descriptor of hd. Broken and disposed handles have none.
func (hd Handle) Descriptor() (Descriptor, error) {
	h, rec := hd.lookup()
	if rec == nil {
		return Descriptor{}, ErrInvalidHandle
	}

	var (
		d       Descriptor
		persist bool
	)

	for r := rec; r != nil; r = h.parentOf(r) {
		if r.owner == OwnerBroken {
			return Descriptor{}, fmt.Errorf("%w: %s", ErrBrokenChain, h.pathOf(rec))
		}

		d.Chain = append(d.Chain, r.backend.Descriptor())
		d.StorePaths = append(d.StorePaths, r.storePath)
		persist = persist || r.storePath != ""

		if r.parent < 0 {
			break
		}
	}

	slices.Reverse(d.Chain)
	slices.Reverse(d.StorePaths)

	if !persist {
		d.StorePaths = nil
	}

	d.Targets = h.key

	return d, nil
}

// EncodeDescriptor serializes d.
func EncodeDescriptor(d Descriptor) ([]byte, error) {
	if len(d.Chain) == 0 {
		return nil, fmt.Errorf("%w: empty descriptor", ErrUnknownMember)
	}

	data, err := yaml.Marshal(d)
	if err != nil {
		return nil, fmt.Errorf("failed to encode descriptor: %w", err)
	}

	return data, nil
}

// DecodeDescriptor parses a descriptor produced by EncodeDescriptor.
func DecodeDescriptor(data []byte) (Descriptor, error) {
	var d Descriptor
	if err := yaml.Unmarshal(data, &d); err != nil {
		return Descriptor{}, fmt.Errorf("failed to decode descriptor: %w", err)
	}

	if len(d.Chain) == 0 {
		return Descriptor{}, fmt.Errorf("%w: empty descriptor", ErrUnknownMember)
	}

	return d, nil
}
