package module

import dom "scanwedge/internal/services/replay/domain"

// Ports holds the ports exposed by the replay module
type Ports struct {
	Replayer dom.ReplayPort
}
