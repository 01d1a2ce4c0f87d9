package engine

import (
	"errors"
	"io"
)

// DetectDuplicateKeys drains a token source and reports duplicated object
// keys. If onDup is DupIgnore, no issues are produced. maxIssues < 0 means
// unlimited; 0 means disabled; > 0 sets a limit.
func DetectDuplicateKeys(src TokenSource, onDup DuplicateStrictness, maxIssues int) ([]SimpleIssue, error) {
	if onDup == DupIgnore {
		return nil, nil
	}

	var issues []SimpleIssue
	limited := false
	sink := func(si SimpleIssue) {
		if maxIssues == 0 || limited {
			return
		}
		issues = append(issues, si)
		if maxIssues > 0 && len(issues) >= maxIssues {
			issues = append(issues, SimpleIssue{Code: "truncated", Path: "/", Message: "max issues reached"})
			limited = true
		}
	}

	// Detection always runs in Warn mode so the whole input is scanned; the
	// caller decides whether any finding is fatal.
	wrapped := WrapWithEnforcement(src, EnforceOptions{OnDuplicate: DupWarn, IssueSink: sink})
	for {
		_, err := wrapped.NextToken()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			var ie IssueError
			if errors.As(err, &ie) {
				sink(ie.SimpleIssue)
				break
			}
			sink(SimpleIssue{Code: "parse_error", Path: "/", Message: err.Error()})
			break
		}
		if limited {
			break
		}
	}
	return issues, nil
}
