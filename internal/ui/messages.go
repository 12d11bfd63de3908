package ui

// helpPagerMsg reports that the help pager closed
type helpPagerMsg struct {
	err error
}

// pauseRenderingMsg and resumeRenderingMsg bracket the time the pager owns
// the terminal
type (
	pauseRenderingMsg  struct{}
	resumeRenderingMsg struct{}
)
