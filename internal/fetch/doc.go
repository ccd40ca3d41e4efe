// Package fetch ties the request builder, downloader, and pose normalizer
// into one avatar acquisition flow.
//
// One Fetch call is one job: build the request URL, stream the model file
// to the destination directory, then hand the file to the host's importer
// (when one is configured) and normalize the imported skeleton to T-pose
// when that pose was requested. Each job carries its own ID and its own
// progress state; nothing is shared between concurrent jobs.
//
// The importer is an external collaborator. Its failure is surfaced as
// ErrImport with the collaborator's message attached; the file itself is
// never validated or retried here.
package fetch
