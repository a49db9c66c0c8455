package session

// AudioBridge tracks how much of the current assistant response the caller
// has heard. It is owned by a Session and only touched under its lock.
type AudioBridge struct {
	latestMediaTimestamp int64
	responseStart        int64
	hasResponseStart     bool
	lastAssistantItem    string
}

// ObserveMedia records the timestamp of the latest inbound media frame.
func (a *AudioBridge) ObserveMedia(timestamp int64) {
	a.latestMediaTimestamp = timestamp
}

// OnAudioDelta latches the response start on the first delta of a response
// and remembers the item being played.
func (a *AudioBridge) OnAudioDelta(itemID string) {
	if !a.hasResponseStart {
		a.responseStart = a.latestMediaTimestamp
		a.hasResponseStart = true
	}
	if itemID != "" {
		a.lastAssistantItem = itemID
	}
}

// BargeIn returns the item to truncate and the played offset in
// milliseconds. ok is false when no response is in flight. The cursors are
// cleared either way so a truncate is never issued twice.
func (a *AudioBridge) BargeIn() (itemID string, elapsedMs int64, ok bool) {
	if a.lastAssistantItem == "" || !a.hasResponseStart {
		return "", 0, false
	}

	elapsedMs = a.latestMediaTimestamp - a.responseStart
	if elapsedMs < 0 {
		elapsedMs = 0
	}
	itemID = a.lastAssistantItem

	a.lastAssistantItem = ""
	a.responseStart = 0
	a.hasResponseStart = false
	return itemID, elapsedMs, true
}

// Reset forgets everything, including the media clock.
func (a *AudioBridge) Reset() {
	*a = AudioBridge{}
}
