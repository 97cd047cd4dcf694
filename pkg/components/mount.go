package components

// Ids of the elements the client mounts widgets into
const (
	ProgressRootID = "progress-root"
	NavbarRootID   = "navbar-root"
	FooterRootID   = "footer-root"
	ControlsRootID = "controls-root"
	TOCRootID      = "toc-root"
	PageDataID     = "page-data"
)
