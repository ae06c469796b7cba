// Package mocks provides centralized mock implementations for testing.
//
// This package contains mock implementations of the interfaces that cross
// package boundaries, so test files do not define their own inline mocks.
//
// Usage:
//
// Import the mocks package in your test file and create the required mock:
//
//	import "github.com/phrazzld/scry-trivia/internal/mocks"
//
//	func TestSomething(t *testing.T) {
//	    gen := &mocks.MockTextGenerator{
//	        GenerateTextFn: func(ctx context.Context, prompt string) (string, error) {
//	            return mocks.QuestionsJSON(5), nil
//	        },
//	    }
//
//	    // Use the mock in your test...
//	}
//
// When adding a new mock to this package:
//  1. Create a new file named after the interface being mocked
//  2. Implement the mock struct with function fields for each interface method
//  3. Document any helper methods or special functionality
package mocks
