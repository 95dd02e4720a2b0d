package handler

const (
	// BaseLayout is the default path for layout templates.
	BaseLayout = "layouts/base"

	// RootPath is the path of the submit form.
	RootPath = "/"

	// ListPath is the path of the submission list.
	ListPath = "/Liste"

	// PageStart identifies the submit form in the navigation.
	PageStart = "start"

	// PageListe identifies the submission list in the navigation.
	PageListe = "liste"

	// ErrNilACDFatalLogMsg is used if app, cfg or accessor pointer is nil.
	ErrNilACDFatalLogMsg = "app, cfg or accessor is nil"
)
