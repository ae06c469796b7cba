// Package generation provides the boundary between the application and
// external LLM text-generation services. It defines the TextGenerator
// interface and the error taxonomy shared by every implementation, so the
// quiz and ask flows never depend on a specific provider such as Gemini.
package generation
