package plex

import "github.com/golang/glog"

// In-chain diagnostics. Log routes the collection through the logger and
// hands it back unchanged, so a chain can be inspected without being
// broken:
//
//	zeros := bar.Log("bar").Eq(0).Log("bar==0")
//
// Line formatting and destinations are glog's concern, not this
// package's.

// Log writes "[tag]value" at the default verbosity and returns the
// receiver unchanged.
func (p *Plex) Log(tag string) *Plex {
	glog.Infof("[%s]%s\n", tag, p.String())
	return p
}

// LogV writes "[tag]value" only when glog verbosity is at least level,
// and returns the receiver unchanged.
func (p *Plex) LogV(level glog.Level, tag string) *Plex {
	if glog.V(level) {
		glog.Infof("[%s]%s\n", tag, p.String())
	}
	return p
}

// Log writes "[tag]value" for a Dict and returns it unchanged.
func (d *Dict) Log(tag string) *Dict {
	glog.Infof("[%s]%s\n", tag, d.String())
	return d
}
