// Package http provides the HTTP client used for model file downloads.
//
// This package handles:
//   - A single GET per download, with context support
//   - Status code mapping to sentinel errors
//   - Content-Length extraction for progress accounting
//
// Failed requests are not retried; each download is one attempt and a
// failure is terminal for that invocation.
//
// # Usage
//
//	client := http.NewClient(http.DefaultOptions())
//
//	resp, err := client.Get(ctx, url)
//	if err != nil {
//	    return err
//	}
//	defer resp.Body.Close()
//	// resp.ContentLength is -1 when the server did not announce a size.
package http
