package workspace

import (
	"fmt"
	"io"
	"os"

	"github.com/go-vfm/vfm/internal/pathutil"
)

// EmitTitle writes the OSC 2 terminal-title escape for dir, grounded
// on the teacher's raw OSC-writing idiom in src/tui/light.go
// (\x1b]8;...\x1b\\ for hyperlinks) applied to title-setting instead
// (§6 "cwd-in-title").
func EmitTitle(w io.Writer, program, dir string) {
	fmt.Fprintf(w, "\x1b]2;%s - %s\x1b\\", program, dir)
}

// EmitCwdReport writes the OSC 7 "current working directory" report
// emitted after every successful chdir regardless of cwd-in-title
// (§6 "always emit ESC ] 7 ; file://<host><url-encoded-path> ESC \").
func EmitCwdReport(w io.Writer, dir string) {
	host, err := os.Hostname()
	if err != nil {
		host = ""
	}
	fmt.Fprintf(w, "\x1b]7;file://%s%s\x1b\\", host, pathutil.URLEncodePath(dir))
}
