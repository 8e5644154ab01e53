package parser

import "testflo/internal/domain"

// Parser interprets the output of a test binary for a single test
type Parser interface {
	Parse(output []byte, testName string) (domain.Status, string)
}
