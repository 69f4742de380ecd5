package tools

import (
	"fmt"
	"os"
	"path/filepath"
)

// defaultTemplates are written on first run so the template tools have
// something to serve before operators customize the directory.
var defaultTemplates = map[string]string{
	"bug.md": `## Bug Fix

### Description
<!-- What bug does this fix? -->

### Root Cause
<!-- What caused the bug? -->

### Testing
<!-- How was the fix verified? -->
`,
	"feature.md": `## Feature

### Description
<!-- What does this feature do? -->

### Motivation
<!-- Why is this feature needed? -->

### Testing
<!-- How was the feature tested? -->
`,
	"docs.md": `## Documentation

### Description
<!-- What documentation changed? -->

### Audience
<!-- Who benefits from this change? -->
`,
	"refactor.md": `## Refactor

### Description
<!-- What was restructured? -->

### Behavior
<!-- Confirm no user-visible behavior changed. -->

### Testing
<!-- How was equivalence verified? -->
`,
	"test.md": `## Test Improvement

### Description
<!-- What coverage was added or fixed? -->
`,
	"performance.md": `## Performance

### Description
<!-- What was optimized? -->

### Measurements
<!-- Before/after numbers. -->
`,
	"security.md": `## Security

### Description
<!-- What vulnerability or hardening does this address? -->

### Impact
<!-- Who was affected and how? -->
`,
}

// EnsureDefaultTemplates populates dir with the built-in PR templates
// if it does not exist yet. An existing directory is left untouched,
// even if empty.
func EnsureDefaultTemplates(dir string) error {
	if _, err := os.Stat(dir); err == nil {
		return nil
	} else if !os.IsNotExist(err) {
		return fmt.Errorf("stat templates dir: %w", err)
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create templates dir: %w", err)
	}
	for name, content := range defaultTemplates {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
			return fmt.Errorf("write template %s: %w", name, err)
		}
	}
	return nil
}
