// Package buildinfo carries version metadata set with -ldflags at release time.
package buildinfo

import "fmt"

var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)

func String() string {
	return fmt.Sprintf("accessai %s (commit=%s, date=%s)", Version, Commit, Date)
}
