package progress

import (
	"fmt"
	"os"

	"github.com/schollz/progressbar/v3"
)

// Reporter provides progress feedback during a wiki crawl. The total page
// count is unknown up front, so reporters track the running count.
type Reporter interface {
	Start()
	Update(fetched int)
	Finish(fetched int)
}

// NewReporter returns a TerminalReporter if running in an interactive terminal,
// or a CIReporter if the CI environment variable is set.
func NewReporter() Reporter {
	if os.Getenv("CI") != "" || os.Getenv("GITHUB_ACTIONS") != "" {
		return &CIReporter{}
	}
	return &TerminalReporter{}
}

// TerminalReporter displays a spinner with a page counter in the terminal.
type TerminalReporter struct {
	bar *progressbar.ProgressBar
}

func (r *TerminalReporter) Start() {
	r.bar = progressbar.NewOptions(-1,
		progressbar.OptionSetDescription("Crawling wiki"),
		progressbar.OptionSetWidth(40),
		progressbar.OptionShowCount(),
		progressbar.OptionSpinnerType(14),
		progressbar.OptionClearOnFinish(),
	)
}

func (r *TerminalReporter) Update(fetched int) {
	if r.bar != nil {
		_ = r.bar.Set(fetched)
	}
}

func (r *TerminalReporter) Finish(fetched int) {
	if r.bar != nil {
		_ = r.bar.Finish()
	}
	fmt.Fprintf(os.Stderr, "Crawled %d pages\n", fetched)
}

// CIReporter prints line-by-line progress suitable for CI logs.
type CIReporter struct{}

func (r *CIReporter) Start() {
	fmt.Fprintln(os.Stderr, "Starting wiki crawl")
}

func (r *CIReporter) Update(fetched int) {
	fmt.Fprintf(os.Stderr, "Fetched %d pages so far\n", fetched)
}

func (r *CIReporter) Finish(fetched int) {
	fmt.Fprintf(os.Stderr, "Crawl complete: %d pages\n", fetched)
}
