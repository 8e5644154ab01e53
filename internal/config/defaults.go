package config

const (
	// DefaultProjectPath is the default project path
	DefaultProjectPath = "."
	// DefaultConfigFile is the project configuration file name
	DefaultConfigFile = ".testflo.yaml"
	// DefaultUnitPattern matches the files scanned for tests
	DefaultUnitPattern = "*_test.go"
	// DefaultMethodPattern matches test functions and suite methods
	DefaultMethodPattern = "Test*"
	// DefaultPackageInit matches the file that stands for its whole package.
	// It must not be a file that can hold tests itself.
	DefaultPackageInit = "doc.go"
	// DefaultGoBinary is the go command used to run tests
	DefaultGoBinary = "go"
)

// DefaultDirExclude are the directory name patterns skipped when scanning for tests
var DefaultDirExclude = []string{
	".*",
	"vendor",
	"testdata",
	"node_modules",
}
