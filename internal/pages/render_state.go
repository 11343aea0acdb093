// Package pages holds the page-level view-models of the rate-limit dashboard:
// which of loading, error or content to show, and the display-ready data
// derived from fetched snapshots.
package pages

// RenderState is the top-level branch a page renders.
type RenderState int

const (
	RenderEmpty       RenderState = iota // nothing to render
	RenderLoading                        // first load, no data yet
	RenderErrorNoData                    // blocking error with retry action
	RenderContent                        // data available
)

var renderStateNames = map[RenderState]string{
	RenderEmpty:       "empty",
	RenderLoading:     "loading",
	RenderErrorNoData: "error",
	RenderContent:     "content",
}

func (s RenderState) String() string {
	if name, ok := renderStateNames[s]; ok {
		return name
	}
	return "unknown"
}

// RenderResult is the resolved render state plus the overlays that may
// accompany content.
type RenderResult struct {
	State RenderState
	// Banner is set when content is shown while an error is pending.
	Banner bool
	// Refreshing is set when content is shown while a fetch is in flight.
	Refreshing bool
}

// ResolveRenderState picks the render branch for a page. Loading and errors
// only block the view while there is no data; once a snapshot exists they
// become non-blocking overlays.
func ResolveRenderState(hasSnapshot, isLoading bool, err string) RenderResult {
	switch {
	case isLoading && !hasSnapshot:
		return RenderResult{State: RenderLoading}
	case err != "" && !hasSnapshot:
		return RenderResult{State: RenderErrorNoData}
	case !hasSnapshot:
		return RenderResult{State: RenderEmpty}
	}
	return RenderResult{
		State:      RenderContent,
		Banner:     err != "",
		Refreshing: isLoading,
	}
}
