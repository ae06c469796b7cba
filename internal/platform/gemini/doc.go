// Package gemini provides an implementation of the generation.TextGenerator
// interface that uses Google's Gemini API through the google.golang.org/genai
// client library.
//
// This package is an infrastructure adapter: it translates a prompt into a
// single generateContent call and the reply back into plain text, without
// exposing genai types to the rest of the application.
//
// Key components:
//
// 1. Client:
//   - Implements the generation.TextGenerator interface
//   - Sends the API key in the x-goog-api-key header
//   - Returns candidates[0].content.parts[0].text
//
// 2. Error Handling:
//   - Transport failures and non-success statuses become generation.ErrTransport
//   - Successful replies without usable text become generation.ErrUnexpectedShape
//   - Error strings are redacted before they are logged
//
// The client performs no retries and no caching; every call is a fresh request.
package gemini
