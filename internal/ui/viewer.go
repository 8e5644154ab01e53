package ui

import "testflo/internal/domain"

// Viewer displays failed test results interactively
type Viewer interface {
	View(failures []domain.TestResult) error
}
