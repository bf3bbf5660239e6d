// Package catalog provides an HTTP client for the public book catalog API.
//
// # Overview
//
// The package issues volume searches against the Google Books API, shapes the
// loosely typed JSON payload into strongly typed values, and reports failures
// as typed errors so callers can tell them apart.
//
// # Architecture
//
//   - client.go: HTTP client and the Fetcher interface
//   - normalize.go: payload decoding with per-field fallbacks
//   - types.go: Response, Entry and Volume
//   - filter.go: search filters and the Request value
//   - errors.go: TransportError, HTTPStatusError, DecodeError and KindOf
//
// # Client Usage
//
//	client, err := catalog.NewClient("")
//	if err != nil {
//		return err
//	}
//	req := catalog.Request{Term: "dune", Filter: catalog.FilterTitle}
//	resp, err := client.Fetch(ctx, req.Query())
//
// Fetch sends exactly one GET {base}/volumes?q=<query>. There are no retries
// and no caching; each call is independent.
//
// # Normalization
//
// Every optional field is filled at decode time so rendering code never
// checks for absence:
//
//   - title: "Title not available"
//   - authors: ["Author not available"]
//   - publishedDate: "Publication date not available"
//   - description: "Description not available"
//   - imageLinks: empty map
//
// A missing items array means zero results. A missing or non-string entry id
// is a DecodeError.
//
// # Error Handling
//
//   - TransportError: connection failure, timeout, cancellation, body read
//   - HTTPStatusError: any non-2xx status
//   - DecodeError: malformed body or structurally invalid payload
//
// KindOf classifies any returned error into an ErrorKind.
package catalog
