package tui

// ChannelObserver adapts notify.Observer to a channel for Bubble Tea.
type ChannelObserver struct {
	ch chan<- struct{}
}

// NewChannelObserver creates a new channel-based observer.
func NewChannelObserver(ch chan<- struct{}) *ChannelObserver {
	return &ChannelObserver{ch: ch}
}

// OnChange signals the channel (non-blocking if full).
func (o *ChannelObserver) OnChange() {
	select {
	case o.ch <- struct{}{}:
	default: // Non-blocking if channel full
	}
}
