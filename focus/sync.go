package focus

import (
	"errors"

	"github.com/oligo/gvfocus"
	"github.com/oligo/gvfocus/region"
	"github.com/oligo/gvfocus/textstyle/decoration"
)

// synchronizer owns the decoration channels of an activation and pushes
// region sets into views. Every apply replaces the full content of all
// channels on a view.
type synchronizer struct {
	channels map[gvfocus.ChannelKind]gvfocus.Channel
	// painted are the views that may still show decorations, by view ID.
	painted map[string]gvfocus.View
}

// newSynchronizer allocates one channel per kind. When an allocation fails,
// the channels created so far are disposed.
func newSynchronizer(factory gvfocus.ChannelFactory, styles map[gvfocus.ChannelKind]decoration.Style) (*synchronizer, error) {
	s := &synchronizer{
		channels: make(map[gvfocus.ChannelKind]gvfocus.Channel),
		painted:  make(map[string]gvfocus.View),
	}

	for _, kind := range gvfocus.ChannelKinds() {
		ch, err := factory.CreateChannel(kind, styles[kind])
		if err == nil && ch == nil {
			err = errors.New("no channel allocated")
		}
		if err != nil {
			if derr := s.dispose(); derr != nil {
				logger.Warn("releasing channels", "error", derr)
			}
			return nil, &ChannelError{Kind: kind, Err: err}
		}

		s.channels[kind] = ch
		logger.Debug("channel created", "kind", kind)
	}

	return s, nil
}

// apply replaces the decorations of every channel on v with the regions of
// rs. Channels without regions are cleared. A failing channel does not stop
// the others.
func (s *synchronizer) apply(v gvfocus.View, rs region.RegionSet) error {
	var errs []error
	for _, kind := range gvfocus.ChannelKinds() {
		ch, ok := s.channels[kind]
		if !ok {
			continue
		}
		if err := v.SetDecorations(ch, rs.Channel(kind)); err != nil {
			errs = append(errs, &ChannelError{Kind: kind, Err: err})
		}
	}

	s.painted[v.ID()] = v
	return errors.Join(errs...)
}

// clear empties every channel on v. It is fine to clear a view that was
// never painted.
func (s *synchronizer) clear(v gvfocus.View) error {
	err := s.apply(v, region.RegionSet{})
	delete(s.painted, v.ID())
	return err
}

// clearPainted clears all painted views and the extra ones.
func (s *synchronizer) clearPainted(extra ...gvfocus.View) error {
	views := make(map[string]gvfocus.View, len(s.painted)+len(extra))
	for id, v := range s.painted {
		views[id] = v
	}
	for _, v := range extra {
		if v != nil {
			views[v.ID()] = v
		}
	}

	var errs []error
	for _, v := range views {
		errs = append(errs, s.clear(v))
	}
	return errors.Join(errs...)
}

// clearAll clears views and every painted view, then disposes the channels.
// The synchronizer is unusable afterwards.
func (s *synchronizer) clearAll(views []gvfocus.View) error {
	err := s.clearPainted(views...)
	return errors.Join(err, s.dispose())
}

func (s *synchronizer) dispose() error {
	var errs []error
	for _, kind := range gvfocus.ChannelKinds() {
		ch, ok := s.channels[kind]
		if !ok {
			continue
		}
		if err := ch.Dispose(); err != nil {
			errs = append(errs, &ChannelError{Kind: kind, Err: err})
		}
		delete(s.channels, kind)
		logger.Debug("channel disposed", "kind", kind)
	}
	return errors.Join(errs...)
}
