// Package testutil provides fixtures for testing prepenv components.
//
// Key components:
//   - ClangdTemplate, CMakeListsTemplate, CMakePresetsTemplate: template
//     fixtures with the placeholder lines at the indices prepenv replaces
//   - Project: a project tree on an in-memory or temp-dir filesystem
//
// All test data is defined inline, not in external files.
package testutil
