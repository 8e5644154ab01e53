package parser

import (
	"bufio"
	"bytes"
	"encoding/json"
	"strings"
	"time"

	"github.com/acarl005/stripansi"

	"testflo/internal/domain"
)

// Actions emitted by test2json
const (
	ActionStart       = "start"
	ActionRun         = "run"
	ActionPause       = "pause"
	ActionCont        = "cont"
	ActionPass        = "pass"
	ActionFail        = "fail"
	ActionSkip        = "skip"
	ActionOutput      = "output"
	ActionBuildOutput = "build-output"
	ActionBuildFail   = "build-fail"
)

// Event is one line of `go test -json` output
type Event struct {
	Time    time.Time
	Action  string
	Package string
	Test    string
	Output  string
	Elapsed float64
}

// GoTestParser reads the JSON stream of `go test -json`
type GoTestParser struct{}

// NewGoTestParser creates a new GoTestParser
func NewGoTestParser() *GoTestParser {
	return &GoTestParser{}
}

// Parse returns the outcome of testName. Output of the test and its
// subtests becomes the message of a failure or skip. When no event names
// the test, the run is a failure carrying whatever the toolchain printed,
// which is where compile errors end up.
func (p *GoTestParser) Parse(output []byte, testName string) (domain.Status, string) {
	var (
		status   domain.Status
		found    bool
		testOut  []string
		otherOut []string
	)

	scanner := bufio.NewScanner(bytes.NewReader(output))
	scanner.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)
	for scanner.Scan() {
		line := scanner.Bytes()

		var event Event
		if err := json.Unmarshal(line, &event); err != nil {
			otherOut = append(otherOut, string(line)+"\n")
			continue
		}

		ownsEvent := event.Test == testName || strings.HasPrefix(event.Test, testName+"/")

		switch event.Action {
		case ActionOutput:
			if ownsEvent {
				if !isFrameLine(event.Output) {
					testOut = append(testOut, event.Output)
				}
			} else if event.Test == "" && !isPackageTrailer(event.Output) {
				otherOut = append(otherOut, event.Output)
			}
		case ActionBuildOutput:
			otherOut = append(otherOut, event.Output)
		case ActionPass, ActionFail, ActionSkip:
			if event.Test != testName {
				continue
			}
			found = true
			status = actionStatus(event.Action)
		}
	}

	if !found {
		msg := "no test matched " + testName
		if rest := clean(otherOut); rest != "" {
			msg += "\n" + rest
		}
		return domain.StatusFail, msg
	}

	if status == domain.StatusOK {
		return status, ""
	}
	return status, clean(testOut)
}

func actionStatus(action string) domain.Status {
	switch action {
	case ActionFail:
		return domain.StatusFail
	case ActionSkip:
		return domain.StatusSkip
	default:
		return domain.StatusOK
	}
}

// isFrameLine reports the lines go test prints around every test
func isFrameLine(line string) bool {
	trimmed := strings.TrimSpace(line)
	for _, prefix := range []string{"=== RUN", "=== PAUSE", "=== CONT", "=== NAME", "--- PASS", "--- FAIL", "--- SKIP"} {
		if strings.HasPrefix(trimmed, prefix) {
			return true
		}
	}
	return false
}

// isPackageTrailer reports the package result lines
func isPackageTrailer(line string) bool {
	trimmed := strings.TrimSpace(line)
	switch {
	case trimmed == "PASS", trimmed == "FAIL", trimmed == "testing: warning: no tests to run":
		return true
	case strings.HasPrefix(trimmed, "ok "), strings.HasPrefix(trimmed, "ok\t"):
		return true
	case strings.HasPrefix(trimmed, "FAIL\t"), strings.HasPrefix(trimmed, "FAIL "):
		return true
	}
	return false
}

func clean(lines []string) string {
	return strings.TrimSpace(stripansi.Strip(strings.Join(lines, "")))
}
