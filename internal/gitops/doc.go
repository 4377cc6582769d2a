// Package gitops provides the git operations captainslog performs
// against a log repository: change detection, markdown-scoped staging,
// and a best-effort commit-and-push workflow.
//
// Commands are executed through the CommandExecutor interface so tests
// can substitute a mock and assert on exactly which paths reach
// `git add`. The scoped staging rule is the package's core invariant:
// only markdown files, directories containing markdown files, and their
// ancestor directories are ever staged, whatever else the working tree
// holds.
package gitops
