// Package testutil provides helpers shared by the mdxaml test suites.
//
// Key components:
//   - MemFS: afero in-memory filesystem with one-line file setup
//   - Dedent: strips the common indentation of inline markdown fixtures
//   - Trace: renders a document into an indented event trace
//
// Usage guidelines:
//   - Fixtures are defined inline, never in external files
//   - Command tests run on MemFS, never on the real filesystem
package testutil
