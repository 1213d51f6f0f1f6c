package pmem

import "fmt"

// New constructs the backend for kind.
func New(kind Kind, opts ...Option) (Ops, error) {
	switch kind {
	case KindClwb:
		b, err := NewClwb(opts...)
		if err != nil {
			return nil, err
		}
		return b, nil
	case KindClflushOpt:
		b, err := NewClflushOpt(opts...)
		if err != nil {
			return nil, err
		}
		return b, nil
	case KindMsync:
		b, err := NewMsync(opts...)
		if err != nil {
			return nil, err
		}
		return b, nil
	case KindNoPersist:
		b, err := NewNoPersist(opts...)
		if err != nil {
			return nil, err
		}
		return b, nil
	}
	return nil, fmt.Errorf("%w: %d", ErrUnknownKind, int(kind))
}

// Available returns the kinds that construct without error on this machine.
func Available(caps Capabilities) []Kind {
	var kinds []Kind
	for _, k := range Kinds {
		if _, err := New(k, WithCapabilities(caps)); err == nil {
			kinds = append(kinds, k)
		}
	}
	return kinds
}
