// Package download resolves calendar dates to published HIST capture files
// and delivers them to the local data directory.
//
// Files are streamed to a uniquely named partial file and renamed into
// place only once complete, so concurrent fetches and interrupted runs
// never leave a truncated file under the final name.
package download
