package discovery

import (
	"bufio"
	"os"
	"regexp"
	"strings"

	"github.com/nx-tools/nxgraph/pkg/types"
)

// generatedPattern matches generated-file banners emitted by code
// generators (protoc-gen-ts, graphql-codegen, Angular tooling).
var generatedPattern = regexp.MustCompile(`(?i)^(// Code generated .* DO NOT EDIT\.?|/\* (tslint|eslint)-disable \*/ THIS FILE (IS|WAS) GENERATED.*|// THIS FILE IS GENERATED.*)$`)

// generatedScanLimit bounds how many leading lines are inspected for a
// generated-file banner. Banners appear before any code per convention.
const generatedScanLimit = 10

// ClassifyFile classifies a TypeScript file by its filename. Declaration
// files are excluded; spec/test suffixes mark tests; the .worker.ts suffix
// marks web workers.
func ClassifyFile(name string) types.FileClass {
	lower := strings.ToLower(name)
	if strings.HasSuffix(lower, ".d.ts") {
		return types.ClassExcluded
	}
	if strings.HasSuffix(lower, ".spec.ts") || strings.HasSuffix(lower, ".test.ts") {
		return types.ClassTest
	}
	if strings.HasSuffix(lower, ".worker.ts") {
		return types.ClassWorker
	}
	if strings.HasPrefix(name, "_") || strings.HasPrefix(name, ".") {
		return types.ClassExcluded
	}
	return types.ClassSource
}

// isGeneratedFile checks whether a file carries a generated-code banner in
// its first few lines. Tolerates a leading license header.
func isGeneratedFile(path string) (bool, error) {
	f, err := os.Open(path)
	if err != nil {
		return false, err
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	for i := 0; i < generatedScanLimit && scanner.Scan(); i++ {
		line := strings.TrimSpace(scanner.Text())
		// Stop at the first statement; banners precede code.
		if strings.HasPrefix(line, "import ") || strings.HasPrefix(line, "export ") {
			return false, nil
		}
		if generatedPattern.MatchString(line) {
			return true, nil
		}
	}
	if err := scanner.Err(); err != nil {
		return false, err
	}
	return false, nil
}
