package defaults

// DocumentSource supplies the raw rule document.
//
// Load returns created=true when the document did not exist and was just
// written from the bundled template; in that case raw is empty and the caller
// resolves to no defaults.
type DocumentSource interface {
	Load() (raw []byte, created bool, err error)
}
